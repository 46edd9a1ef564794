package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"hygall/internal/models"
)

// Doer issues a single HTTP request. *http.Client satisfies it, and so does
// a Fiber test harness.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPStore is the ContentStore backed by the board's REST API.
type HTTPStore struct {
	baseURL string
	client  Doer
}

// NewHTTPStore builds a store talking to the API at baseURL,
// e.g. "http://localhost:4000".
func NewHTTPStore(baseURL string) *HTTPStore {
	return NewHTTPStoreWithClient(baseURL, &http.Client{Timeout: 15 * time.Second})
}

// NewHTTPStoreWithClient builds a store with a caller-supplied transport.
func NewHTTPStoreWithClient(baseURL string, client Doer) *HTTPStore {
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// do performs one JSON round trip. Non-2xx responses are decoded into the
// standard error envelope and mapped onto the sentinel conditions.
func (s *HTTPStore) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrStoreUnavailable, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrStoreUnavailable, err)
		}
	}
	return nil
}

// decodeError maps the server's error envelope onto sentinel conditions.
// An undecodable body degrades to StoreUnavailable.
func decodeError(resp *http.Response) error {
	var envelope models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%w: status %d", ErrStoreUnavailable, resp.StatusCode)
	}

	var sentinel error
	switch envelope.Code {
	case models.CodeNotFound:
		sentinel = ErrNotFound
	case models.CodeValidation:
		sentinel = ErrValidation
	case models.CodeUnauthorized:
		sentinel = ErrUnauthorized
	case models.CodeUnlockCodeLength:
		sentinel = ErrCodeLength
	case models.CodeUpload:
		sentinel = ErrUpload
	default:
		sentinel = ErrStoreUnavailable
	}

	if envelope.Error != "" {
		return fmt.Errorf("%w: %s", sentinel, envelope.Error)
	}
	return sentinel
}

func (s *HTTPStore) ListPosts(ctx context.Context) ([]models.PostListEntry, error) {
	var entries []models.PostListEntry
	if err := s.do(ctx, http.MethodGet, "/api/posts/", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *HTTPStore) GetPost(ctx context.Context, contentID uint) (*models.Post, error) {
	var post models.Post
	if err := s.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d", contentID), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *HTTPStore) CreatePost(ctx context.Context, title, content, unlockCode string) (uint, error) {
	var created struct {
		ContentID uint `json:"contentId"`
	}
	err := s.do(ctx, http.MethodPost, "/api/posts/", map[string]string{
		"title":      title,
		"content":    content,
		"unlockCode": unlockCode,
	}, &created)
	if err != nil {
		return 0, err
	}
	return created.ContentID, nil
}

func (s *HTTPStore) UpdatePost(ctx context.Context, contentID uint, title, content, unlockCode string) error {
	return s.do(ctx, http.MethodPut, fmt.Sprintf("/api/posts/%d", contentID), map[string]string{
		"title":      title,
		"content":    content,
		"unlockCode": unlockCode,
	}, nil)
}

func (s *HTTPStore) DeletePost(ctx context.Context, contentID uint, unlockCode string) error {
	return s.do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", contentID), map[string]string{
		"unlockCode": unlockCode,
	}, nil)
}

func (s *HTTPStore) IncrementViewCount(ctx context.Context, contentID uint) error {
	return s.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/views", contentID), nil, nil)
}

func (s *HTTPStore) IncrementLikeCount(ctx context.Context, contentID uint) error {
	return s.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/likes", contentID), nil, nil)
}

func (s *HTTPStore) AddComment(ctx context.Context, contentID uint, content, unlockCode string) (*models.Comment, error) {
	var comment models.Comment
	err := s.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", contentID), map[string]string{
		"content":    content,
		"unlockCode": unlockCode,
	}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *HTTPStore) RemoveComment(ctx context.Context, contentID, commentID uint, unlockCode string) error {
	return s.do(ctx, http.MethodDelete,
		fmt.Sprintf("/api/posts/%d/comments/%d", contentID, commentID),
		map[string]string{"unlockCode": unlockCode}, nil)
}

func (s *HTTPStore) VerifyPostCode(ctx context.Context, contentID uint, attempt string) error {
	return s.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/unlock", contentID),
		map[string]string{"unlockCode": attempt}, nil)
}

func (s *HTTPStore) VerifyCommentCode(ctx context.Context, contentID, commentID uint, attempt string) error {
	return s.do(ctx, http.MethodPost,
		fmt.Sprintf("/api/posts/%d/comments/%d/unlock", contentID, commentID),
		map[string]string{"unlockCode": attempt}, nil)
}

func (s *HTTPStore) UploadAsset(ctx context.Context, filename string, payload []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if _, err := part.Write(payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", decodeError(resp)
	}

	var uploaded struct {
		FileName string `json:"fileName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrStoreUnavailable, err)
	}
	return uploaded.FileName, nil
}
