package models

import "time"

type EntityType string

const (
	EntityPlayer      EntityType = "player"
	EntityClub        EntityType = "club"
	EntityTeam        EntityType = "team"
	EntityOrganiser   EntityType = "organiser"
	EntityAssociation EntityType = "association"
)

func (t EntityType) Valid() bool {
	switch t {
	case EntityPlayer, EntityClub, EntityTeam, EntityOrganiser, EntityAssociation:
		return true
	}
	return false
}

// AwardLevelRank orders award levels from most to least prestigious. Unknown levels rank last.
var AwardLevelRank = map[string]int{
	"international": 1,
	"national":      2,
	"state":         3,
	"regional":      4,
	"club":          5,
}

type Achievement struct {
	ID           int        `json:"achievement_id"`
	EntityID     int        `json:"entity_id"`
	EntityType   EntityType `json:"entity_type"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	DateAchieved time.Time  `json:"date_achieved"`
	AwardLevel   *string    `json:"award_level,omitempty"`
	Result       *string    `json:"result,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type AchievementWithImages struct {
	Achievement
	Images []Image `json:"images"`
}
