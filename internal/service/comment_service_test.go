package service

import (
	"context"
	"testing"

	"hygall/internal/database"
	"hygall/internal/models"
	"hygall/internal/repository"
	"hygall/internal/unlock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// commentFixture wires real sqlite-backed repositories under the services.
type commentFixture struct {
	posts    *PostService
	comments *CommentService
	db       *gorm.DB
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)

	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	gate := unlock.NewGate(repository.NewCredentialSource(postRepo, commentRepo))

	return &commentFixture{
		posts:    NewPostService(postRepo, gate),
		comments: NewCommentService(commentRepo, postRepo, gate),
		db:       db,
	}
}

func (f *commentFixture) createPost(t *testing.T, code string) *models.Post {
	t.Helper()
	post, err := f.posts.CreatePost(context.Background(), CreatePostInput{
		Title: "Hi", Content: "Hello", UnlockCode: code,
	})
	require.NoError(t, err)
	return post
}

func TestCommentService_AddAndRemove(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	post := f.createPost(t, "1234")

	comment, err := f.comments.AddComment(ctx, AddCommentInput{
		PostID: post.ContentID, Content: "first!", UnlockCode: "5678",
	})
	require.NoError(t, err)
	assert.Positive(t, comment.CommentID)

	// Wrong code leaves the comment in place.
	err = f.comments.RemoveComment(ctx, RemoveCommentInput{
		PostID: post.ContentID, CommentID: comment.CommentID, UnlockCode: "0000",
	})
	assertAppErrorCode(t, err, models.CodeUnauthorized)

	got, err := f.posts.GetPost(ctx, post.ContentID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)

	require.NoError(t, f.comments.RemoveComment(ctx, RemoveCommentInput{
		PostID: post.ContentID, CommentID: comment.CommentID, UnlockCode: "5678",
	}))

	got, err = f.posts.GetPost(ctx, post.ContentID)
	require.NoError(t, err)
	assert.Empty(t, got.Comments)
}

func TestCommentService_AddComment_Validation(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	post := f.createPost(t, "1234")

	tests := []struct {
		name string
		in   AddCommentInput
		code string
	}{
		{"uninitialized post", AddCommentInput{PostID: 0, Content: "c", UnlockCode: "1234"}, models.CodeValidation},
		{"missing content", AddCommentInput{PostID: post.ContentID, UnlockCode: "1234"}, models.CodeValidation},
		{"code too short", AddCommentInput{PostID: post.ContentID, Content: "c", UnlockCode: "123"}, models.CodeUnlockCodeLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.comments.AddComment(ctx, tt.in)
			assertAppErrorCode(t, err, tt.code)
		})
	}
}

func TestCommentService_AddComment_MissingParent(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.comments.AddComment(context.Background(), AddCommentInput{
		PostID: 999, Content: "orphan", UnlockCode: "1234",
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCommentService_VerifyCommentCode(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	post := f.createPost(t, "1234")
	comment, err := f.comments.AddComment(ctx, AddCommentInput{
		PostID: post.ContentID, Content: "c", UnlockCode: "4567",
	})
	require.NoError(t, err)

	assert.NoError(t, f.comments.VerifyCommentCode(ctx, post.ContentID, comment.CommentID, "4567"))
	assertAppErrorCode(t,
		f.comments.VerifyCommentCode(ctx, post.ContentID, comment.CommentID, "7654"),
		models.CodeUnauthorized)
}
