// Package service provides the business-logic facade over the staged entry
// store, serializing access for concurrent callers such as HTTP handlers.
package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/atinyakov/AuthKeeper/internal/models"
)

// EntryStore defines the staged store operations needed by the EntryService.
type EntryStore interface {
	// List returns the draft entries in order.
	List() []models.Entry
	// Committed returns the last committed snapshot.
	Committed() []models.Entry
	// Append adds an empty entry to the draft and returns it.
	Append() models.Entry
	// Drop removes a draft entry; unknown ids are ignored.
	Drop(id string) bool
	// Patch updates a draft entry; unknown ids are ignored.
	Patch(id string, f models.Fields) bool
	// Commit promotes the draft and persists it.
	Commit(ctx context.Context) error
	// Discard resets the draft to the committed snapshot.
	Discard()
	// Dirty reports uncommitted edits.
	Dirty() bool
	// Version returns the change counter.
	Version() uint64
}

// Snapshot is a consistent view of the draft.
type Snapshot struct {
	Version uint64         `json:"version"`
	Dirty   bool           `json:"dirty"`
	Entries []models.Entry `json:"entries"`
}

// EntryService implements entry editing for concurrent callers.
type EntryService struct {
	mu    sync.Mutex
	store EntryStore
	log   *zap.Logger
}

// NewEntryService constructs an EntryService over store.
func NewEntryService(store EntryStore, log *zap.Logger) *EntryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &EntryService{store: store, log: log}
}

// List returns the draft together with its version and dirty flag.
func (s *EntryService) List(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Version: s.store.Version(),
		Dirty:   s.store.Dirty(),
		Entries: s.store.List(),
	}
}

// Committed returns the committed snapshot.
func (s *EntryService) Committed(ctx context.Context) []models.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Committed()
}

// Append creates a new empty entry.
func (s *EntryService) Append(ctx context.Context) models.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.store.Append()
	s.log.Debug("entry appended", zap.String("id", e.ID))
	return e
}

// Drop removes an entry. Unknown ids are not an error.
func (s *EntryService) Drop(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.store.Drop(id) {
		s.log.Debug("drop ignored, unknown entry", zap.String("id", id))
	}
}

// Patch applies a partial update. Unknown ids are not an error.
func (s *EntryService) Patch(ctx context.Context, id string, f models.Fields) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.store.Patch(id, f) {
		s.log.Debug("patch ignored, unknown entry", zap.String("id", id))
	}
}

// Commit promotes the draft on behalf of operator and persists it.
func (s *EntryService) Commit(ctx context.Context, operator string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Commit(ctx); err != nil {
		return err
	}
	s.log.Info("draft committed", zap.String("operator", operator))
	return nil
}

// Discard drops uncommitted edits.
func (s *EntryService) Discard(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Discard()
}
