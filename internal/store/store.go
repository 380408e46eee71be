// Package store keeps the staged edit model of authentication entries: a
// draft collection edited freely and a committed snapshot that is the last
// persisted state.
package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/AuthKeeper/internal/entry"
	"github.com/atinyakov/AuthKeeper/internal/models"
)

// SnapshotRepository persists the committed collection.
type SnapshotRepository interface {
	// Load returns the persisted collection, or an empty one when none is usable.
	Load(ctx context.Context) []models.Entry
	// Save overwrites the persisted collection.
	Save(ctx context.Context, entries []models.Entry) error
}

// Store owns the draft and committed collections. It is not safe for
// concurrent use; callers that share it must serialize access.
type Store struct {
	repo SnapshotRepository
	log  *zap.Logger

	draft     []models.Entry
	committed []models.Entry

	version   uint64
	observers []observer
	nextObs   int

	newID func() string
}

// New creates a Store seeded from the repository's persisted snapshot.
func New(ctx context.Context, repo SnapshotRepository, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	committed := models.CloneEntries(repo.Load(ctx))
	s := &Store{
		repo:      repo,
		log:       log,
		committed: committed,
		draft:     models.CloneEntries(committed),
		newID:     uuid.NewString,
	}
	log.Debug("store loaded", zap.Int("entries", len(committed)))
	return s
}

// List returns a copy of the draft in insertion order.
func (s *Store) List() []models.Entry {
	return models.CloneEntries(s.draft)
}

// Get returns a copy of the draft entry with the given id.
func (s *Store) Get(id string) (models.Entry, bool) {
	if i := s.index(id); i >= 0 {
		return s.draft[i].Clone(), true
	}
	return models.Entry{}, false
}

// Committed returns a copy of the last committed snapshot.
func (s *Store) Committed() []models.Entry {
	return models.CloneEntries(s.committed)
}

// Append adds an empty entry with a fresh id to the end of the draft.
func (s *Store) Append() models.Entry {
	e := models.Entry{
		ID:       s.newID(),
		Tags:     []models.Tag{},
		AuthType: models.AuthUnset,
	}
	s.draft = append(s.draft, e)
	s.changed(EventAppend, e.ID)
	return e.Clone()
}

// Drop removes the entry with the given id from the draft. Unknown ids are
// ignored; the result only tells whether something was removed.
func (s *Store) Drop(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.draft = slices.Delete(s.draft, i, i+1)
	s.changed(EventDrop, id)
	return true
}

// Patch applies a partial update to the draft entry with the given id.
// Unknown ids are ignored.
func (s *Store) Patch(id string, f models.Fields) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	entry.Apply(&s.draft[i], f)
	s.changed(EventPatch, id)
	return true
}

// Commit promotes a copy of the draft to the committed snapshot and persists
// it. The promotion stands even when persisting fails; the error is returned
// so the caller can retry.
func (s *Store) Commit(ctx context.Context) error {
	s.committed = models.CloneEntries(s.draft)
	s.changed(EventCommit, "")

	if err := s.repo.Save(ctx, s.committed); err != nil {
		s.log.Error("failed to persist committed entries", zap.Error(err))
		return fmt.Errorf("commit: %w", err)
	}
	s.log.Info("entries committed", zap.Int("entries", len(s.committed)))
	return nil
}

// Discard resets the draft to the committed snapshot.
func (s *Store) Discard() {
	s.draft = models.CloneEntries(s.committed)
	s.changed(EventDiscard, "")
}

// Dirty reports whether the draft has edits not yet committed.
func (s *Store) Dirty() bool {
	return !models.EqualEntries(s.draft, s.committed)
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.draft, func(e models.Entry) bool { return e.ID == id })
}
