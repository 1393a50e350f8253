package models

import (
	"encoding/json"
	"time"
)

type UserType string

const (
	UserTypePlayer    UserType = "player"
	UserTypeOrganiser UserType = "organiser"
)

func (t UserType) Valid() bool {
	return t == UserTypePlayer || t == UserTypeOrganiser
}

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	UserType     UserType  `json:"user_type"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	BannerURL    *string   `json:"banner_url,omitempty"`
	About        *string   `json:"about,omitempty"`
	Country      *string   `json:"country,omitempty"`
	State        *string   `json:"state,omitempty"`
	Region       *string   `json:"region,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the user-type specific part of a user: *PlayerProfile or *OrganiserProfile.
type Profile interface {
	Kind() UserType
}

type PlayerProfile struct {
	Sport    *string `json:"sport,omitempty"`
	Club     *string `json:"club,omitempty"`
	ClubID   *int    `json:"club_id,omitempty"`
	Gender   *string `json:"gender,omitempty"`
	ClubData *Club   `json:"club_data,omitempty"`
}

func (*PlayerProfile) Kind() UserType { return UserTypePlayer }

type OrganiserProfile struct {
	Club          *string `json:"club,omitempty"`
	ClubID        *int    `json:"club_id,omitempty"`
	OrganiserType *string `json:"organiser_type,omitempty"`
	BankName      *string `json:"bank_name,omitempty"`
	AccountName   *string `json:"account_name,omitempty"`
	BSB           *string `json:"bsb,omitempty"`
	AccountNumber *string `json:"account_number,omitempty"`
}

func (*OrganiserProfile) Kind() UserType { return UserTypeOrganiser }

// UserDetails is a user resolved together with its profile.
type UserDetails struct {
	User
	Profile      Profile         `json:"profile"`
	Achievements json.RawMessage `json:"achievements"`
	Images       json.RawMessage `json:"images"`
}

// PlayerSummary is a row of the player directory.
type PlayerSummary struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Country   *string `json:"country,omitempty"`
	State     *string `json:"state,omitempty"`
	Region    *string `json:"region,omitempty"`
	Sport     *string `json:"sport,omitempty"`
	Club      *string `json:"club,omitempty"`
	Gender    *string `json:"gender,omitempty"`
}

type PlayerFilter struct {
	NameSearch string
	Sport      string
	Country    string
	State      string
	Region     string
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
