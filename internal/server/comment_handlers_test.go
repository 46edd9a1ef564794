package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hygall/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	app := newTestApp(t)
	postID := createTestPost(t, app, "Thread", "body", "1234")

	resp, body := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", postID), map[string]string{
		"content":    "First reply",
		"unlockCode": "abcd",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "First reply", body["content"])
	assert.Equal(t, float64(postID), body["postId"])

	// Comments ride along on the post detail, oldest first.
	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", postID), map[string]string{
		"content":    "Second reply",
		"unlockCode": "efgh",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/posts/%d", postID), nil)
	detailResp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = detailResp.Body.Close() }()

	var post models.Post
	require.NoError(t, json.NewDecoder(detailResp.Body).Decode(&post))
	require.Len(t, post.Comments, 2)
	assert.Equal(t, "First reply", post.Comments[0].Content)
	assert.Equal(t, "Second reply", post.Comments[1].Content)
	assert.Equal(t, 2, post.CommentCount)
}

func TestCreateComment_Validation(t *testing.T) {
	app := newTestApp(t)
	postID := createTestPost(t, app, "Thread", "body", "1234")

	tests := []struct {
		name           string
		path           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name:           "empty content",
			path:           fmt.Sprintf("/api/posts/%d/comments", postID),
			body:           map[string]string{"content": "", "unlockCode": "abcd"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "code too short",
			path:           fmt.Sprintf("/api/posts/%d/comments", postID),
			body:           map[string]string{"content": "hi", "unlockCode": "ab"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing parent post",
			path:           "/api/posts/9999/comments",
			body:           map[string]string{"content": "hi", "unlockCode": "abcd"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, app, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestDeleteComment(t *testing.T) {
	app := newTestApp(t)
	postID := createTestPost(t, app, "Thread", "body", "1234")

	resp, created := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", postID), map[string]string{
		"content":    "Delete me",
		"unlockCode": "abcd",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	commentID := uint(created["commentId"].(float64))

	path := fmt.Sprintf("/api/posts/%d/comments/%d", postID, commentID)

	// The post's code does not open the comment.
	resp, _ = doJSON(t, app, http.MethodDelete, path, map[string]string{"unlockCode": "1234"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, path, map[string]string{"unlockCode": "abcd"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, path, map[string]string{"unlockCode": "abcd"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVerifyCommentCode(t *testing.T) {
	app := newTestApp(t)
	postID := createTestPost(t, app, "Thread", "body", "1234")

	resp, created := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", postID), map[string]string{
		"content":    "Guarded",
		"unlockCode": "wxyz",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	commentID := uint(created["commentId"].(float64))

	path := fmt.Sprintf("/api/posts/%d/comments/%d/unlock", postID, commentID)

	resp, body := doJSON(t, app, http.MethodPost, path, map[string]string{"unlockCode": "wxyz"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["verified"])

	resp, _ = doJSON(t, app, http.MethodPost, path, map[string]string{"unlockCode": "zzzz"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
