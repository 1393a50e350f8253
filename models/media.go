package models

import "time"

type Image struct {
	ID                int       `json:"id"`
	CloudflareImageID string    `json:"image_id"`
	AchievementID     *int      `json:"achievement_id,omitempty"`
	UserID            *int      `json:"user_id,omitempty"`
	TeamID            *int      `json:"team_id,omitempty"`
	ImageURL          string    `json:"image_url"`
	AvatarURL         *string   `json:"avatar_url,omitempty"`
	ThumbnailURL      *string   `json:"thumbnail_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type VideoStatus string

const (
	VideoStatusPending VideoStatus = "pending"
	VideoStatusReady   VideoStatus = "ready"
	VideoStatusError   VideoStatus = "error"
)

// VideoStatusFromStream maps a Stream processing state onto the stored status.
func VideoStatusFromStream(state string) VideoStatus {
	switch state {
	case "ready":
		return VideoStatusReady
	case "error":
		return VideoStatusError
	default:
		return VideoStatusPending
	}
}

// VideoOwner is the kind of entity a video belongs to.
type VideoOwner string

const (
	VideoOwnerUser         VideoOwner = "user"
	VideoOwnerTeam         VideoOwner = "team"
	VideoOwnerOrganisation VideoOwner = "organisation"
	VideoOwnerClub         VideoOwner = "club"
)

// Column returns the videos column holding the owner id.
func (o VideoOwner) Column() (string, bool) {
	switch o {
	case VideoOwnerUser:
		return "user_id", true
	case VideoOwnerTeam:
		return "team_id", true
	case VideoOwnerOrganisation:
		return "organisation_id", true
	case VideoOwnerClub:
		return "club_id", true
	}
	return "", false
}

type Video struct {
	ID                int         `json:"id"`
	CloudflareVideoID string      `json:"cloudflare_id"`
	OwnerType         VideoOwner  `json:"owner_type"`
	OwnerID           int         `json:"owner_id"`
	AchievementID     *int        `json:"achievement_id,omitempty"`
	Title             *string     `json:"title,omitempty"`
	Caption           *string     `json:"caption,omitempty"`
	PlaybackURL       *string     `json:"playback_url,omitempty"`
	ThumbnailURL      *string     `json:"thumbnail_url,omitempty"`
	Duration          *float64    `json:"duration,omitempty"`
	Width             *int        `json:"width,omitempty"`
	Height            *int        `json:"height,omitempty"`
	Status            VideoStatus `json:"status"`
	CreatedAt         time.Time   `json:"created_at"`
}
