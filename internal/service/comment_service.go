package service

import (
	"context"

	"hygall/internal/models"
	"hygall/internal/repository"
	"hygall/internal/unlock"
)

const maxCommentLen = 10000

// CommentService owns comment lifecycle operations under a post.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	gate        *unlock.Gate
}

type AddCommentInput struct {
	PostID     uint
	Content    string
	UnlockCode string
}

type RemoveCommentInput struct {
	PostID     uint
	CommentID  uint
	UnlockCode string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	gate *unlock.Gate,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		gate:        gate,
	}
}

// AddComment validates the input, derives the unlock credential, and stores
// the comment under its parent post.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if in.PostID < 1 {
		return nil, models.NewValidationError("Post is not initialized")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}
	if err := unlock.CheckLength(in.UnlockCode); err != nil {
		return nil, err
	}

	// Parent must exist before the credential is derived.
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	credential, err := unlock.Derive(in.UnlockCode)
	if err != nil {
		return nil, models.NewStoreUnavailableError(err)
	}

	comment := &models.Comment{
		PostID:           in.PostID,
		Content:          in.Content,
		UnlockCredential: credential,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// RemoveComment deletes a comment after re-verifying its unlock code.
func (s *CommentService) RemoveComment(ctx context.Context, in RemoveCommentInput) error {
	if in.PostID < 1 || in.CommentID < 1 {
		return models.NewValidationError("Comment target is not initialized")
	}
	if err := s.gate.AuthorizeComment(ctx, in.PostID, in.CommentID, in.UnlockCode); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, in.PostID, in.CommentID)
}

// VerifyCommentCode runs the authorization gate without committing anything.
func (s *CommentService) VerifyCommentCode(ctx context.Context, postID, commentID uint, code string) error {
	return s.gate.AuthorizeComment(ctx, postID, commentID, code)
}
