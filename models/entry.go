package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusRefund  PaymentStatus = "refund"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPending, PaymentStatusUnpaid, PaymentStatusRefund:
		return true
	}
	return false
}

type EntryCategory string

const (
	EntryCategoryTeam       EntryCategory = "team"
	EntryCategoryTemporary  EntryCategory = "one-off"
	EntryCategoryIndividual EntryCategory = "individual"
)

// Entry is a tournament registration; exactly one of TeamID, TempTeamID, UserID is set.
type Entry struct {
	ID            int           `json:"id"`
	TournamentID  int           `json:"tournament_id"`
	TeamID        *int          `json:"team_id,omitempty"`
	TempTeamID    *int          `json:"temp_team_id,omitempty"`
	UserID        *int          `json:"user_id,omitempty"`
	EntryDate     time.Time     `json:"entry_date"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	ReferenceID   string        `json:"reference_id"`
}

type EntryMember struct {
	UserID    int     `json:"user_id"`
	Name      string  `json:"name"`
	Email     string  `json:"email,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Position  *string `json:"position,omitempty"`
	Club      *string `json:"club,omitempty"`
	Status    *string `json:"status,omitempty"`
}

type EntryDetails struct {
	Entry
	EntryCategory EntryCategory `json:"entry_category"`
	TeamName      *string       `json:"team_name,omitempty"`
	TeamType      *string       `json:"team_type,omitempty"`
	Club          *string       `json:"club,omitempty"`
	Members       []EntryMember `json:"members"`
}
