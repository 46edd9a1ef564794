package client

import (
	"context"
	"strings"
	"sync"

	"hygall/internal/models"
)

// ListState tracks whether the canonical list holds a fetched snapshot.
type ListState int

const (
	StateEmpty ListState = iota
	StateLoaded
)

func (s ListState) String() string {
	switch s {
	case StateEmpty:
		return "EMPTY"
	case StateLoaded:
		return "LOADED"
	default:
		return "UNKNOWN"
	}
}

// Filter selects which canonical entries the filtered view shows. The view is
// always recomputed from the canonical list, never mutated on its own.
type Filter struct {
	Keyword        string
	CountThreshold int
}

// Synchronizer owns the canonical in-memory post list and the currently open
// post. Confirmed mutations are folded in as local patches so routine counter
// changes never force a full refetch. Nothing else writes to these structures.
type Synchronizer struct {
	mu     sync.Mutex
	store  ContentStore
	ledger *LikeLedger

	state   ListState
	entries []models.PostListEntry
	current *models.Post
	filter  Filter
}

func NewSynchronizer(store ContentStore, ledger *LikeLedger) *Synchronizer {
	return &Synchronizer{
		store:  store,
		ledger: ledger,
	}
}

// Refresh replaces the canonical list wholesale from the store. A failed
// fetch leaves the previous list untouched.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	entries, err := s.store.ListPosts(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.state = StateLoaded
	return nil
}

// Clear discards the canonical list and the open post, e.g. when navigating
// away from the list view.
func (s *Synchronizer) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateEmpty
	s.entries = nil
	s.current = nil
}

func (s *Synchronizer) State() ListState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Entries returns a copy of the canonical list.
func (s *Synchronizer) Entries() []models.PostListEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PostListEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// SetFilter updates the filter inputs. The filtered view is derived on read,
// so no recompute happens here.
func (s *Synchronizer) SetFilter(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// Filtered returns the derived view: entries meeting the view-count threshold
// whose title contains the keyword. With an empty keyword only the threshold
// applies. Same inputs always yield the same output.
func (s *Synchronizer) Filtered() []models.PostListEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.PostListEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		if entry.ViewCount < s.filter.CountThreshold {
			continue
		}
		if s.filter.Keyword != "" && !strings.Contains(entry.Title, s.filter.Keyword) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// OpenPost registers a view and fetches the post in full, replacing the
// currently open post. The list entry's view count is patched only after the
// store confirms the increment. A failed fetch leaves the previous open post
// in place.
func (s *Synchronizer) OpenPost(ctx context.Context, contentID uint) (*models.Post, error) {
	if err := s.store.IncrementViewCount(ctx, contentID); err != nil {
		return nil, err
	}
	s.patchEntry(contentID, func(e *models.PostListEntry) {
		e.ViewCount++
	})

	post, err := s.store.GetPost(ctx, contentID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = post
	s.mu.Unlock()
	return post, nil
}

// CurrentPost returns the currently open post, or nil.
func (s *Synchronizer) CurrentPost() *models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// LikePost sends a like increment unless this session already liked the post.
// It returns whether an increment was sent. The ledger is acquired before the
// store call, so a second tap while the first is in flight sends nothing.
func (s *Synchronizer) LikePost(ctx context.Context, contentID uint) (bool, error) {
	if s.ledger != nil && !s.ledger.TryAcquire(contentID) {
		return false, nil
	}

	if err := s.store.IncrementLikeCount(ctx, contentID); err != nil {
		return false, err
	}

	s.mu.Lock()
	if s.current != nil && s.current.ContentID == contentID {
		s.current.LikeCount++
	}
	s.mu.Unlock()
	return true, nil
}

// CreatePost submits a new post and returns its assigned content ID. The
// list is deliberately not patched; the list view refetches on navigation.
func (s *Synchronizer) CreatePost(ctx context.Context, title, content, unlockCode string) (uint, error) {
	if err := checkCodeLength(unlockCode); err != nil {
		return 0, err
	}
	return s.store.CreatePost(ctx, title, content, unlockCode)
}

// AddComment submits a comment and, once the store confirms, appends it to
// the open post and nudges the matching list entry's comment count so the
// summary and detail views cannot diverge.
func (s *Synchronizer) AddComment(ctx context.Context, contentID uint, content, unlockCode string) (*models.Comment, error) {
	if err := checkCodeLength(unlockCode); err != nil {
		return nil, err
	}

	comment, err := s.store.AddComment(ctx, contentID, content, unlockCode)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.current != nil && s.current.ContentID == contentID {
		s.current.Comments = append(s.current.Comments, *comment)
		s.current.CommentCount++
	}
	s.mu.Unlock()
	s.patchEntry(contentID, func(e *models.PostListEntry) {
		e.CommentCount++
	})
	return comment, nil
}

// patchEntry applies a delta to the matching canonical entry, if present.
func (s *Synchronizer) patchEntry(contentID uint, patch func(*models.PostListEntry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ContentID == contentID {
			patch(&s.entries[i])
			return
		}
	}
}

// applyPostEdit folds a confirmed edit into the open post and list entry.
func (s *Synchronizer) applyPostEdit(contentID uint, title, content string) {
	s.mu.Lock()
	if s.current != nil && s.current.ContentID == contentID {
		s.current.Title = title
		s.current.Content = content
	}
	s.mu.Unlock()
	s.patchEntry(contentID, func(e *models.PostListEntry) {
		e.Title = title
	})
}

// removePostLocally drops a confirmed-deleted post from the canonical list
// and closes it if it was open.
func (s *Synchronizer) removePostLocally(contentID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.ContentID == contentID {
		s.current = nil
	}
	for i := range s.entries {
		if s.entries[i].ContentID == contentID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// removeCommentLocally drops a confirmed-deleted comment from the open post
// and decrements the matching list entry's comment count.
func (s *Synchronizer) removeCommentLocally(contentID, commentID uint) {
	s.mu.Lock()
	if s.current != nil && s.current.ContentID == contentID {
		for i := range s.current.Comments {
			if s.current.Comments[i].CommentID == commentID {
				s.current.Comments = append(s.current.Comments[:i], s.current.Comments[i+1:]...)
				break
			}
		}
		if s.current.CommentCount > 0 {
			s.current.CommentCount--
		}
	}
	s.mu.Unlock()
	s.patchEntry(contentID, func(e *models.PostListEntry) {
		if e.CommentCount > 0 {
			e.CommentCount--
		}
	})
}
