package unlock

import (
	"context"

	"hygall/internal/middleware"
	"hygall/internal/models"
)

// Unlock code length bounds, inclusive.
const (
	MinCodeLength = 4
	MaxCodeLength = 6
)

// Scope names the kind of entity an unlock attempt targets.
type Scope string

const (
	ScopePost    Scope = "post"
	ScopeComment Scope = "comment"
)

// CredentialSource fetches stored credentials for gate decisions. Implemented
// by the repository layer.
type CredentialSource interface {
	PostCredential(ctx context.Context, contentID uint) (string, error)
	CommentCredential(ctx context.Context, postID, commentID uint) (string, error)
}

// Gate answers "is this plaintext code valid for this post/comment". It is
// the sole path by which edit and delete operations may proceed; success
// authorizes exactly one action, so callers re-invoke it per privileged
// action rather than holding a token.
type Gate struct {
	src CredentialSource
}

// NewGate creates a Gate backed by the given credential source.
func NewGate(src CredentialSource) *Gate {
	return &Gate{src: src}
}

// CheckLength validates the unlock code length precondition. Out-of-range
// codes are a distinct condition from a wrong code and never reach the store.
func CheckLength(code string) error {
	if len(code) < MinCodeLength || len(code) > MaxCodeLength {
		return models.NewUnlockCodeLengthError()
	}
	return nil
}

// AuthorizePost verifies an unlock attempt against the post's stored
// credential. Returns nil on success, an UNLOCK_CODE_LENGTH error for
// out-of-range codes, NOT_FOUND when the post is absent, and UNAUTHORIZED
// for a mismatch.
func (g *Gate) AuthorizePost(ctx context.Context, contentID uint, attempt string) error {
	return g.authorize(ctx, ScopePost, attempt, func() (string, error) {
		return g.src.PostCredential(ctx, contentID)
	})
}

// AuthorizeComment verifies an unlock attempt against a comment's stored
// credential.
func (g *Gate) AuthorizeComment(ctx context.Context, postID, commentID uint, attempt string) error {
	return g.authorize(ctx, ScopeComment, attempt, func() (string, error) {
		return g.src.CommentCredential(ctx, postID, commentID)
	})
}

func (g *Gate) authorize(ctx context.Context, scope Scope, attempt string, fetch func() (string, error)) error {
	if err := CheckLength(attempt); err != nil {
		middleware.UnlockAttempts.WithLabelValues(string(scope), "length").Inc()
		return err
	}

	stored, err := fetch()
	if err != nil {
		middleware.UnlockAttempts.WithLabelValues(string(scope), "error").Inc()
		return err
	}

	if !Verify(attempt, stored) {
		middleware.UnlockAttempts.WithLabelValues(string(scope), "unmatched").Inc()
		return models.NewUnauthorizedError("Unmatched unlock code")
	}

	middleware.UnlockAttempts.WithLabelValues(string(scope), "ok").Inc()
	return nil
}
