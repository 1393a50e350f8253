package models

import "time"

type CommentEntity string

const (
	CommentOnAchievement CommentEntity = "achievement"
	CommentOnImage       CommentEntity = "image"
	CommentOnVideo       CommentEntity = "video"
)

func (e CommentEntity) Valid() bool {
	switch e {
	case CommentOnAchievement, CommentOnImage, CommentOnVideo:
		return true
	}
	return false
}

type Comment struct {
	ID              int           `json:"comment_id"`
	UserID          int           `json:"user_id"`
	EntityType      CommentEntity `json:"entity_type"`
	EntityID        int           `json:"entity_id"`
	ParentCommentID *int          `json:"parent_comment_id,omitempty"`
	CommentText     string        `json:"comment_text"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type CommentAuthor struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type CommentReply struct {
	Comment
	UserDetails CommentAuthor `json:"user_details"`
}

type CommentThread struct {
	Comment
	UserDetails CommentAuthor  `json:"user_details"`
	ReplyCount  int            `json:"reply_count"`
	Replies     []CommentReply `json:"replies"`
}
