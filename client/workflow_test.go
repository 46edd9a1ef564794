package client

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkflowFixture(t *testing.T) (*fakeStore, *Synchronizer, *Workflow) {
	t.Helper()
	store, s := newSyncFixture(t)
	return store, s, NewWorkflow(store, s)
}

func TestWorkflow_DeletePostCommits(t *testing.T) {
	store, s, w := newWorkflowFixture(t)
	ctx := context.Background()

	id := store.seedPost("doomed", "body", "1234")
	require.NoError(t, s.Refresh(ctx))

	assert.Equal(t, WorkflowIdle, w.State())

	w.OpenDeletePost(id)
	assert.Equal(t, WorkflowAwaitingCode, w.State())

	require.NoError(t, w.Submit(ctx, "1234"))
	assert.Equal(t, WorkflowIdle, w.State())

	// Committed server-side and folded into the local list.
	_, err := store.GetPost(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, s.Entries())
}

func TestWorkflow_WrongCodeReturnsToAwaiting(t *testing.T) {
	store, s, w := newWorkflowFixture(t)
	ctx := context.Background()

	id := store.seedPost("kept", "body", "1234")
	require.NoError(t, s.Refresh(ctx))

	w.OpenDeletePost(id)

	err := w.Submit(ctx, "9999")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, WorkflowAwaitingCode, w.State())

	// Unlimited retries; a later correct attempt still commits.
	err = w.Submit(ctx, "0000")
	assert.ErrorIs(t, err, ErrUnauthorized)
	require.NoError(t, w.Submit(ctx, "1234"))

	assert.Empty(t, s.Entries())
}

func TestWorkflow_ShortCodeNeverReachesStore(t *testing.T) {
	store, s, w := newWorkflowFixture(t)
	ctx := context.Background()

	id := store.seedPost("kept", "body", "1234")
	require.NoError(t, s.Refresh(ctx))

	w.OpenDeletePost(id)

	err := w.Submit(ctx, "12")
	assert.ErrorIs(t, err, ErrCodeLength)
	assert.Equal(t, WorkflowAwaitingCode, w.State())
	assert.Equal(t, 0, store.verifyCalls)
	assert.Equal(t, 0, store.mutationCalls)
}

func TestWorkflow_OpeningNewTargetReplacesPending(t *testing.T) {
	store, s, w := newWorkflowFixture(t)
	ctx := context.Background()

	a := store.seedPost("target a", "body", "1234")
	b := store.seedPost("target b", "body", "1234")
	require.NoError(t, s.Refresh(ctx))

	w.OpenDeletePost(a)
	w.OpenDeletePost(b)

	require.NoError(t, w.Submit(ctx, "1234"))

	// Only B is gone.
	_, err := store.GetPost(ctx, a)
	assert.NoError(t, err)
	_, err = store.GetPost(ctx, b)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkflow_CancelOnlyWhileAwaiting(t *testing.T) {
	store, _, w := newWorkflowFixture(t)

	assert.ErrorIs(t, w.Cancel(), ErrNoPendingAction)

	id := store.seedPost("kept", "body", "1234")
	w.OpenDeletePost(id)
	require.NoError(t, w.Cancel())
	assert.Equal(t, WorkflowIdle, w.State())

	// Nothing pending, so a submit has nothing to act on.
	assert.ErrorIs(t, w.Submit(context.Background(), "1234"), ErrNoPendingAction)
	assert.Equal(t, 0, store.verifyCalls)
}

func TestWorkflow_EditPostCommits(t *testing.T) {
	store, s, w := newWorkflowFixture(t)
	ctx := context.Background()

	id := store.seedPost("before", "old", "1234")
	require.NoError(t, s.Refresh(ctx))
	_, err := s.OpenPost(ctx, id)
	require.NoError(t, err)

	w.OpenEditPost(id, "after", "new")
	require.NoError(t, w.Submit(ctx, "1234"))

	post, err := store.GetPost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "after", post.Title)
	assert.Equal(t, "new", post.Content)

	// Local mirrors follow the confirmed edit.
	assert.Equal(t, "after", s.CurrentPost().Title)
	assert.Equal(t, "after", s.Entries()[0].Title)
}

func TestWorkflow_DeleteCommentWrongCodeLeavesCountUnchanged(t *testing.T) {
	store, s, w := newWorkflowFixture(t)
	ctx := context.Background()

	postID := store.seedPost("thread", "body", "1234")
	require.NoError(t, s.Refresh(ctx))
	_, err := s.OpenPost(ctx, postID)
	require.NoError(t, err)

	comment, err := s.AddComment(ctx, postID, "keep me", "abcd")
	require.NoError(t, err)

	w.OpenDeleteComment(postID, comment.CommentID)
	assert.ErrorIs(t, w.Submit(ctx, "zzzz"), ErrUnauthorized)

	assert.Equal(t, 1, s.CurrentPost().CommentCount)
	assert.Len(t, s.CurrentPost().Comments, 1)
	assert.Equal(t, 1, s.Entries()[0].CommentCount)
}

func TestWorkflow_DeleteCommentCommits(t *testing.T) {
	store, s, w := newWorkflowFixture(t)
	ctx := context.Background()

	postID := store.seedPost("thread", "body", "1234")
	require.NoError(t, s.Refresh(ctx))
	_, err := s.OpenPost(ctx, postID)
	require.NoError(t, err)

	comment, err := s.AddComment(ctx, postID, "bye", "abcd")
	require.NoError(t, err)

	w.OpenDeleteComment(postID, comment.CommentID)
	require.NoError(t, w.Submit(ctx, "abcd"))

	assert.Equal(t, 0, s.CurrentPost().CommentCount)
	assert.Empty(t, s.CurrentPost().Comments)
	assert.Equal(t, 0, s.Entries()[0].CommentCount)
}

func TestWorkflow_StoreFailureOnCommitReturnsIdle(t *testing.T) {
	store, s, w := newWorkflowFixture(t)
	ctx := context.Background()

	id := store.seedPost("kept", "body", "1234")
	require.NoError(t, s.Refresh(ctx))

	w.OpenDeletePost(id)
	store.deleteErr = fmt.Errorf("%w: connection reset", ErrStoreUnavailable)

	err := w.Submit(ctx, "1234")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, WorkflowIdle, w.State())

	// No partial application: the entry is still mirrored locally.
	assert.Len(t, s.Entries(), 1)
}
