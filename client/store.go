// Package client is the Go consumer of the bulletin board API. It mirrors
// what the browser front end does: a content store over HTTP, a canonical
// in-memory post list kept in sync by confirmed mutations, a session-scoped
// like ledger, and a confirm-commit state machine for unlock-gated actions.
package client

import (
	"context"
	"errors"

	"hygall/internal/models"
)

// Sentinel conditions the store maps server error codes onto. Callers use
// errors.Is; the wrapped message carries the server's wording.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unmatched unlock code")
	ErrCodeLength       = errors.New("unlock code must be 4 to 6 characters")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrUpload           = errors.New("upload failed")
)

// ContentStore abstracts the persistent record store behind the board. The
// Synchronizer and Workflow depend only on this contract, so tests substitute
// an in-memory implementation.
type ContentStore interface {
	ListPosts(ctx context.Context) ([]models.PostListEntry, error)
	GetPost(ctx context.Context, contentID uint) (*models.Post, error)
	CreatePost(ctx context.Context, title, content, unlockCode string) (uint, error)
	UpdatePost(ctx context.Context, contentID uint, title, content, unlockCode string) error
	DeletePost(ctx context.Context, contentID uint, unlockCode string) error
	IncrementViewCount(ctx context.Context, contentID uint) error
	IncrementLikeCount(ctx context.Context, contentID uint) error
	AddComment(ctx context.Context, contentID uint, content, unlockCode string) (*models.Comment, error)
	RemoveComment(ctx context.Context, contentID, commentID uint, unlockCode string) error
	VerifyPostCode(ctx context.Context, contentID uint, attempt string) error
	VerifyCommentCode(ctx context.Context, contentID, commentID uint, attempt string) error
	UploadAsset(ctx context.Context, filename string, payload []byte) (string, error)
}
