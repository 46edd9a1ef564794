// Package service contains the application's business logic between the HTTP
// handlers and the repositories.
package service

import (
	"context"

	"hygall/internal/models"
	"hygall/internal/repository"
	"hygall/internal/unlock"
)

const (
	maxTitleLen   = 300
	maxContentLen = 50000
)

// PostService owns post lifecycle operations. Every mutation of an existing
// post re-invokes the authorization gate; creating a post derives and stores
// the credential for later gating.
type PostService struct {
	postRepo repository.PostRepository
	gate     *unlock.Gate
}

type CreatePostInput struct {
	Title      string
	Content    string
	UnlockCode string
}

type UpdatePostInput struct {
	ContentID  uint
	Title      string
	Content    string
	UnlockCode string
}

type DeletePostInput struct {
	ContentID  uint
	UnlockCode string
}

func NewPostService(postRepo repository.PostRepository, gate *unlock.Gate) *PostService {
	return &PostService{
		postRepo: postRepo,
		gate:     gate,
	}
}

// ListPosts returns the summary projection of every post, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]models.PostListEntry, error) {
	return s.postRepo.List(ctx)
}

// GetPost returns the full post with its comments in insertion order.
func (s *PostService) GetPost(ctx context.Context, contentID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, contentID)
}

// CreatePost validates the input, derives the unlock credential, and stores
// the post. Returns the created post with its assigned content ID.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validateTitleContent(in.Title, in.Content); err != nil {
		return nil, err
	}
	if err := unlock.CheckLength(in.UnlockCode); err != nil {
		return nil, err
	}

	credential, err := unlock.Derive(in.UnlockCode)
	if err != nil {
		return nil, models.NewStoreUnavailableError(err)
	}

	post := &models.Post{
		Title:            in.Title,
		Content:          in.Content,
		UnlockCredential: credential,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// UpdatePost commits an edit after re-verifying the unlock code.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) error {
	if in.ContentID < 1 {
		return models.NewValidationError("Post is not initialized")
	}
	if err := validateTitleContent(in.Title, in.Content); err != nil {
		return err
	}
	if err := s.gate.AuthorizePost(ctx, in.ContentID, in.UnlockCode); err != nil {
		return err
	}
	return s.postRepo.Update(ctx, in.ContentID, in.Title, in.Content)
}

// DeletePost removes a post after re-verifying the unlock code.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	if in.ContentID < 1 {
		return models.NewValidationError("Post is not initialized")
	}
	if err := s.gate.AuthorizePost(ctx, in.ContentID, in.UnlockCode); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, in.ContentID)
}

// IncrementViewCount bumps the view counter. Not gated.
func (s *PostService) IncrementViewCount(ctx context.Context, contentID uint) error {
	if contentID < 1 {
		return models.NewValidationError("Post is not initialized")
	}
	return s.postRepo.IncrementViewCount(ctx, contentID)
}

// IncrementLikeCount bumps the like counter. Once-per-session enforcement is
// the caller's session ledger; the server accepts each confirmed request.
func (s *PostService) IncrementLikeCount(ctx context.Context, contentID uint) error {
	if contentID < 1 {
		return models.NewValidationError("Post is not initialized")
	}
	return s.postRepo.IncrementLikeCount(ctx, contentID)
}

// VerifyPostCode runs the authorization gate without committing anything.
// Used by the confirm-commit workflow's verification step.
func (s *PostService) VerifyPostCode(ctx context.Context, contentID uint, code string) error {
	return s.gate.AuthorizePost(ctx, contentID, code)
}

func validateTitleContent(title, content string) error {
	if title == "" || content == "" {
		return models.NewValidationError("Title and content are required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(content) > maxContentLen {
		return models.NewValidationError("Content too long (max 50000 characters)")
	}
	return nil
}
