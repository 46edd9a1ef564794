package client

import (
	"strconv"
	"strings"
	"sync"
)

// LedgerKey is the fixed slot name the like ledger persists under.
const LedgerKey = "liked_posts"

// KeyValueSlot is a session-scoped key-value store. The browser uses session
// storage; here any process-local implementation with the same lifetime works.
type KeyValueSlot interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// MemorySlot is the in-process KeyValueSlot.
type MemorySlot struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: make(map[string]string)}
}

func (s *MemorySlot) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemorySlot) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// LikeLedger records which posts this session has already liked, so a like
// increment is sent at most once per (session, post) pair.
//
// The persisted value is a comma-terminated list of decimal content IDs
// ("7,42,"), matching the encoding previous deployments left behind in
// session storage.
type LikeLedger struct {
	mu    sync.Mutex
	slot  KeyValueSlot
	order []uint
	liked map[uint]struct{}
}

// NewLikeLedger loads the ledger from the slot. Malformed tokens in a stale
// value are skipped rather than failing the whole load.
func NewLikeLedger(slot KeyValueSlot) *LikeLedger {
	l := &LikeLedger{
		slot:  slot,
		liked: make(map[uint]struct{}),
	}

	raw, ok := slot.Get(LedgerKey)
	if !ok {
		return l
	}
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		id, err := strconv.ParseUint(token, 10, 32)
		if err != nil {
			continue
		}
		l.add(uint(id))
	}
	return l
}

// add records id in memory without persisting. Caller holds no lock yet
// during construction; Record paths hold l.mu.
func (l *LikeLedger) add(id uint) bool {
	if _, seen := l.liked[id]; seen {
		return false
	}
	l.liked[id] = struct{}{}
	l.order = append(l.order, id)
	return true
}

// CanLike reports whether this session has not yet liked the post.
func (l *LikeLedger) CanLike(contentID uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, seen := l.liked[contentID]
	return !seen
}

// RecordLike idempotently adds the post to the ledger and persists it.
func (l *LikeLedger) RecordLike(contentID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.add(contentID) {
		l.persist()
	}
}

// TryAcquire atomically checks and records the like in one critical section.
// It returns true exactly once per content ID for the ledger's lifetime,
// which is what makes a concurrent double-tap send a single increment.
func (l *LikeLedger) TryAcquire(contentID uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.add(contentID) {
		return false
	}
	l.persist()
	return true
}

func (l *LikeLedger) persist() {
	var b strings.Builder
	for _, id := range l.order {
		b.WriteString(strconv.FormatUint(uint64(id), 10))
		b.WriteByte(',')
	}
	l.slot.Set(LedgerKey, b.String())
}
