// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"hygall/internal/cache"
	"hygall/internal/models"

	"gorm.io/gorm"
)

const commentCountSubquery = "(SELECT count(*) FROM comments WHERE comments.post_id = posts.content_id AND comments.deleted_at IS NULL)"

// PostRepository defines the interface for post data operations. Counter
// increments are atomic at the database so concurrent sessions never lose
// updates; cross-session write conflicts resolve last-writer-wins.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, contentID uint) (*models.Post, error)
	List(ctx context.Context) ([]models.PostListEntry, error)
	Update(ctx context.Context, contentID uint, title, content string) error
	Delete(ctx context.Context, contentID uint) error
	IncrementViewCount(ctx context.Context, contentID uint) error
	IncrementLikeCount(ctx context.Context, contentID uint) error
	PostCredential(ctx context.Context, contentID uint) (string, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidatePostsList(ctx)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, contentID uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(contentID), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).
			Select("posts.*, "+commentCountSubquery+" AS comment_count").
			Preload("Comments", func(db *gorm.DB) *gorm.DB {
				// Insertion order is the comment thread order.
				return db.Order("comments.comment_id ASC")
			}).
			First(&post, contentID).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]models.PostListEntry, error) {
	var entries []models.PostListEntry
	err := cache.Aside(ctx, cache.PostsListKey, &entries, cache.PostListTTL, func() error {
		return r.db.WithContext(ctx).
			Model(&models.Post{}).
			Select("posts.content_id, posts.title, posts.view_count, " + commentCountSubquery + " AS comment_count, posts.created_at").
			Order("posts.content_id DESC").
			Scan(&entries).Error
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *postRepository) Update(ctx context.Context, contentID uint, title, content string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("content_id = ?", contentID).
		Updates(map[string]any{"title": title, "content": content})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidatePost(ctx, contentID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, contentID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Post{}, contentID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// Deleting a post invalidates its comments.
		if err := tx.Where("post_id = ?", contentID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		cache.InvalidatePost(ctx, contentID)
		return nil
	})
}

func (r *postRepository) IncrementViewCount(ctx context.Context, contentID uint) error {
	return r.incrementCounter(ctx, contentID, "view_count")
}

func (r *postRepository) IncrementLikeCount(ctx context.Context, contentID uint) error {
	return r.incrementCounter(ctx, contentID, "like_count")
}

// incrementCounter bumps the named counter in a single UPDATE so two racing
// increments both land.
func (r *postRepository) incrementCounter(ctx context.Context, contentID uint, column string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("content_id = ?", contentID).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidatePost(ctx, contentID)
	return nil
}

func (r *postRepository) PostCredential(ctx context.Context, contentID uint) (string, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Select("unlock_credential").
		First(&post, contentID).Error
	if err != nil {
		return "", err
	}
	return post.UnlockCredential, nil
}
