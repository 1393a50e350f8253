package models

import "time"

const NotificationTypeTeamInvite = "team_invite"

type Notification struct {
	ID            int        `json:"id"`
	UserID        int        `json:"user_id"`
	Type          string     `json:"type"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	ReferenceID   *int       `json:"reference_id,omitempty"`
	ReferenceType *string    `json:"reference_type,omitempty"`
	Link          *string    `json:"link,omitempty"`
	ImageURL      *string    `json:"image_url,omitempty"`
	IsRead        bool       `json:"is_read"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type NotificationPage struct {
	Items []Notification   `json:"items"`
	Meta  NotificationMeta `json:"meta"`
}

type NotificationMeta struct {
	TotalItems   int `json:"totalItems"`
	ItemCount    int `json:"itemCount"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
}
