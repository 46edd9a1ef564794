// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a bulletin board post. Posts have no author account; mutation is
// gated by the unlock credential derived from the author's plaintext code.
type Post struct {
	ContentID uint   `gorm:"primaryKey;column:content_id" json:"contentId"`
	Title     string `gorm:"not null" json:"title"`
	Content   string `gorm:"type:text;not null" json:"content"`
	// UnlockCredential is the one-way derived form of the author's unlock
	// code. It never leaves the server.
	UnlockCredential string    `gorm:"not null" json:"-"`
	ViewCount        int       `gorm:"not null;default:0" json:"viewCount"`
	LikeCount        int       `gorm:"not null;default:0" json:"likeCount"`
	Comments         []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
	// CommentCount is not persisted; computed at query time
	CommentCount int            `gorm:"->" json:"commentCount"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostListEntry is the summary projection of a Post used by the list view.
type PostListEntry struct {
	ContentID    uint      `json:"contentId"`
	Title        string    `json:"title"`
	ViewCount    int       `json:"viewCount"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ListEntry projects the post into its summary form.
func (p *Post) ListEntry() PostListEntry {
	return PostListEntry{
		ContentID:    p.ContentID,
		Title:        p.Title,
		ViewCount:    p.ViewCount,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
	}
}
