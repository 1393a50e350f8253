package models

import "time"

type Club struct {
	ID          int       `json:"club_id"`
	Name        string    `json:"name"`
	Sport       *string   `json:"sport,omitempty"`
	Address     *string   `json:"address,omitempty"`
	Country     *string   `json:"country,omitempty"`
	State       *string   `json:"state,omitempty"`
	Region      *string   `json:"region,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	BannerURL   *string   `json:"banner_url,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ClubAdmin struct {
	ClubID    int       `json:"club_id"`
	UserID    int       `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type ClubFilter struct {
	Name    string
	Sport   string
	Country string
	State   string
	Region  string
}
