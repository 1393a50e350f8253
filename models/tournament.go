package models

import "time"

type EntryType string

const (
	EntryTypeTeam       EntryType = "team"
	EntryTypeIndividual EntryType = "individual"
)

type Tournament struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	Sport           string     `json:"sport"`
	Type            *string    `json:"type,omitempty"`
	Gender          *string    `json:"gender,omitempty"`
	Location        string     `json:"location"`
	Entries         *int       `json:"entries,omitempty"`
	EntryFee        *float64   `json:"entry_fee,omitempty"`
	TotalPrizeMoney *float64   `json:"total_prize_money,omitempty"`
	FirstPrize      *float64   `json:"first_prize,omitempty"`
	SecondPrize     *float64   `json:"second_prize,omitempty"`
	ThirdPrize      *float64   `json:"third_prize,omitempty"`
	PaymentType     *string    `json:"payment_type,omitempty"`
	ManageType      *string    `json:"manage_type,omitempty"`
	EntriesClose    *time.Time `json:"entries_close,omitempty"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	CreatedByUserID int        `json:"created_by_user_id"`
	Approved        *bool      `json:"approved,omitempty"`
	Featured        *bool      `json:"featured,omitempty"`
	Country         *string    `json:"country,omitempty"`
	State           *string    `json:"state,omitempty"`
	Region          *string    `json:"region,omitempty"`
	MaxEntries      *int       `json:"max_entries,omitempty"`
	EntryType       EntryType  `json:"entry_type"`
	HeroImage       *string    `json:"hero_image,omitempty"`
	ThumbnailImage  *string    `json:"thumbnail_image,omitempty"`
	ImageID         *string    `json:"image_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// OrganizerDetails describes whoever created a tournament.
type OrganizerDetails struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	AvatarURL *string  `json:"avatar_url,omitempty"`
	UserType  UserType `json:"user_type"`
	Club      *string  `json:"club,omitempty"`
	ClubData  *Club    `json:"club_data,omitempty"`
}

type TournamentDetails struct {
	Tournament
	EntryCount       int               `json:"entry_count"`
	OrganizerDetails *OrganizerDetails `json:"organizer_details"`
}

type TournamentFilter struct {
	Search        string
	Sport         string
	Type          string
	Gender        string
	Country       string
	State         string
	Region        string
	StartDate     *time.Time
	EndDate       *time.Time
	MinPrizeMoney *float64
	MaxPrizeMoney *float64
}

type OrganiserTournamentFilter struct {
	OrganiserID int
	Gender      string
	Type        string
	Since       *time.Time
	Until       *time.Time
	Search      string
}
