package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"hygall/internal/unlock"
)

// WorkflowState is the confirm-commit machine's position.
type WorkflowState int

const (
	// WorkflowIdle means no gated action is pending.
	WorkflowIdle WorkflowState = iota
	// WorkflowAwaitingCode means a gated action is open and waits for the
	// user's plaintext unlock code.
	WorkflowAwaitingCode
	// WorkflowVerifying means a submitted code is being checked.
	WorkflowVerifying
	// WorkflowCommitting means verification passed and the mutation is in
	// flight.
	WorkflowCommitting
)

func (s WorkflowState) String() string {
	switch s {
	case WorkflowIdle:
		return "IDLE"
	case WorkflowAwaitingCode:
		return "AWAITING_CODE"
	case WorkflowVerifying:
		return "VERIFYING"
	case WorkflowCommitting:
		return "COMMITTING"
	default:
		return "UNKNOWN"
	}
}

// ActionKind identifies which gated action a workflow instance carries.
type ActionKind int

const (
	ActionEditPost ActionKind = iota
	ActionDeletePost
	ActionDeleteComment
)

// ErrNoPendingAction is returned by Submit and Cancel when the workflow is
// not waiting for a code.
var ErrNoPendingAction = errors.New("no pending gated action")

// workflowTarget pins the entity the eventual commit applies to.
type workflowTarget struct {
	postID    uint
	commentID uint
}

// Workflow is the confirm-commit state machine for unlock-gated actions:
// edit post, delete post, delete comment. An action is opened against a
// target, the user supplies a code, the code is verified, and only then does
// the mutation commit and fold into the Synchronizer. Opening a new target
// while one is pending replaces it; gated actions never stack.
type Workflow struct {
	mu    sync.Mutex
	store ContentStore
	sync  *Synchronizer

	state  WorkflowState
	action ActionKind
	target workflowTarget

	// pending edit payload, set only for ActionEditPost
	editTitle   string
	editContent string
}

func NewWorkflow(store ContentStore, synchronizer *Synchronizer) *Workflow {
	return &Workflow{
		store: store,
		sync:  synchronizer,
	}
}

// State returns the machine's current position.
func (w *Workflow) State() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// OpenEditPost opens the gated edit action carrying the replacement title and
// content. The edit commits only after the unlock code verifies.
func (w *Workflow) OpenEditPost(postID uint, title, content string) {
	w.open(ActionEditPost, workflowTarget{postID: postID}, title, content)
}

// OpenDeletePost opens the gated delete action for a post.
func (w *Workflow) OpenDeletePost(postID uint) {
	w.open(ActionDeletePost, workflowTarget{postID: postID}, "", "")
}

// OpenDeleteComment opens the gated delete action for a comment.
func (w *Workflow) OpenDeleteComment(postID, commentID uint) {
	w.open(ActionDeleteComment, workflowTarget{postID: postID, commentID: commentID}, "", "")
}

func (w *Workflow) open(action ActionKind, target workflowTarget, title, content string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = WorkflowAwaitingCode
	w.action = action
	w.target = target
	w.editTitle = title
	w.editContent = content
}

// Cancel closes a pending action with no side effects. It is only effective
// while waiting for a code; an in-flight verification or commit runs to
// completion first.
func (w *Workflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != WorkflowAwaitingCode {
		return ErrNoPendingAction
	}
	w.reset()
	return nil
}

// Submit verifies the plaintext attempt and, on success, commits the pending
// action. A failed verification (wrong code, or length out of range checked
// before any store call) returns the machine to AWAITING_CODE so the user can
// retry without limit. A failed commit reports the failure and returns to
// IDLE with no local state mutated.
func (w *Workflow) Submit(ctx context.Context, attempt string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != WorkflowAwaitingCode {
		return ErrNoPendingAction
	}
	w.state = WorkflowVerifying

	if err := checkCodeLength(attempt); err != nil {
		w.state = WorkflowAwaitingCode
		return err
	}

	if err := w.verify(ctx, attempt); err != nil {
		if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrCodeLength) {
			w.state = WorkflowAwaitingCode
			return err
		}
		// The target vanished or the store failed; nothing to retry.
		w.reset()
		return err
	}

	w.state = WorkflowCommitting
	if err := w.commit(ctx, attempt); err != nil {
		w.reset()
		return err
	}

	w.reset()
	return nil
}

func (w *Workflow) verify(ctx context.Context, attempt string) error {
	switch w.action {
	case ActionDeleteComment:
		return w.store.VerifyCommentCode(ctx, w.target.postID, w.target.commentID, attempt)
	default:
		return w.store.VerifyPostCode(ctx, w.target.postID, attempt)
	}
}

func (w *Workflow) commit(ctx context.Context, attempt string) error {
	switch w.action {
	case ActionEditPost:
		if err := w.store.UpdatePost(ctx, w.target.postID, w.editTitle, w.editContent, attempt); err != nil {
			return fmt.Errorf("edit failed: %w", err)
		}
		w.sync.applyPostEdit(w.target.postID, w.editTitle, w.editContent)
		return nil

	case ActionDeletePost:
		if err := w.store.DeletePost(ctx, w.target.postID, attempt); err != nil {
			return fmt.Errorf("delete failed: %w", err)
		}
		w.sync.removePostLocally(w.target.postID)
		return nil

	case ActionDeleteComment:
		if err := w.store.RemoveComment(ctx, w.target.postID, w.target.commentID, attempt); err != nil {
			return fmt.Errorf("delete failed: %w", err)
		}
		w.sync.removeCommentLocally(w.target.postID, w.target.commentID)
		return nil
	}
	return fmt.Errorf("unknown action %d", w.action)
}

func (w *Workflow) reset() {
	w.state = WorkflowIdle
	w.target = workflowTarget{}
	w.editTitle = ""
	w.editContent = ""
}

// checkCodeLength enforces the unlock code length bounds locally, before any
// store round trip.
func checkCodeLength(code string) error {
	if len(code) < unlock.MinCodeLength || len(code) > unlock.MaxCodeLength {
		return ErrCodeLength
	}
	return nil
}
