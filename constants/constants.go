package constants

import "time"

const (
	ExternalAPITimeout = 30 * time.Second
	DatabaseTimeout    = 5 * time.Second
	ShutdownTimeout    = 15 * time.Second
	ReadHeaderTimeout  = 10 * time.Second
)

const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 25
	DBConnMaxLifetime = 5 * time.Minute
)

const (
	DefaultPageSize      = 10
	GalleryPageSize      = 12
	AchievementsPageSize = 10
	MaxPageSize          = 100
)

const (
	MaxJSONBodyBytes   = 1_048_576
	MaxUploadBodyBytes = 50 << 20
	UploadConcurrency  = 4
)

const (
	TokenTTL            = 24 * time.Hour
	ReferenceIDAttempts = 3
)

const DefaultMemberAvatar = "/avatars/default-player.jpg"
