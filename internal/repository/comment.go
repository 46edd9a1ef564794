package repository

import (
	"context"

	"hygall/internal/cache"
	"hygall/internal/models"
	"hygall/internal/unlock"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID uint) ([]models.Comment, error)
	Delete(ctx context.Context, postID, commentID uint) error
	CommentCredential(ctx context.Context, postID, commentID uint) (string, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Create(comment).Error
	if err == nil {
		cache.InvalidatePost(ctx, comment.PostID)
	}
	return err
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("comment_id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Delete(ctx context.Context, postID, commentID uint) error {
	res := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&models.Comment{}, commentID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

func (r *commentRepository) CommentCredential(ctx context.Context, postID, commentID uint) (string, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Select("unlock_credential").
		Where("post_id = ?", postID).
		First(&comment, commentID).Error
	if err != nil {
		return "", err
	}
	return comment.UnlockCredential, nil
}

// credentialSource adapts the two repositories into the single source the
// authorization gate consumes.
type credentialSource struct {
	posts    PostRepository
	comments CommentRepository
}

// NewCredentialSource combines post and comment credential lookups.
func NewCredentialSource(posts PostRepository, comments CommentRepository) unlock.CredentialSource {
	return &credentialSource{posts: posts, comments: comments}
}

func (s *credentialSource) PostCredential(ctx context.Context, contentID uint) (string, error) {
	return s.posts.PostCredential(ctx, contentID)
}

func (s *credentialSource) CommentCredential(ctx context.Context, postID, commentID uint) (string, error) {
	return s.comments.CommentCredential(ctx, postID, commentID)
}
