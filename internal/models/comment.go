package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment belongs to exactly one post. Like posts, comments carry their own
// unlock credential; deleting a post cascades to its comments.
type Comment struct {
	CommentID        uint           `gorm:"primaryKey;column:comment_id" json:"commentId"`
	PostID           uint           `gorm:"not null;index" json:"postId"`
	Content          string         `gorm:"type:text;not null" json:"content"`
	UnlockCredential string         `gorm:"not null" json:"-"`
	CreatedAt        time.Time      `json:"createdAt"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
