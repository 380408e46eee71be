package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/atinyakov/AuthKeeper/internal/models"
	"github.com/atinyakov/AuthKeeper/internal/tags"
)

// SnapshotKey is the single key holding the committed collection.
const SnapshotKey = "auth_entries"

// SnapshotRepository reads and writes the committed entry collection.
type SnapshotRepository struct {
	kv  KV
	log *zap.Logger
}

// NewSnapshotRepository creates a SnapshotRepository on top of kv.
func NewSnapshotRepository(kv KV, log *zap.Logger) *SnapshotRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &SnapshotRepository{kv: kv, log: log}
}

// Save serializes entries and overwrites the stored snapshot.
func (r *SnapshotRepository) Save(ctx context.Context, entries []models.Entry) error {
	if entries == nil {
		entries = []models.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := r.kv.Put(ctx, SnapshotKey, data); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot. A missing, unreadable or malformed
// value yields an empty collection and is only logged.
func (r *SnapshotRepository) Load(ctx context.Context) []models.Entry {
	data, err := r.kv.Get(ctx, SnapshotKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.log.Warn("failed to read snapshot, starting empty", zap.Error(err))
		}
		return []models.Entry{}
	}

	var entries []models.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		r.log.Warn("malformed snapshot, starting empty", zap.Error(err))
		return []models.Entry{}
	}
	if entries == nil {
		return []models.Entry{}
	}

	for i := range entries {
		normalize(&entries[i])
	}
	return entries
}

// normalize restores the derived fields of a decoded entry.
func normalize(e *models.Entry) {
	e.Tags = tags.Split(e.TagsInput)
	if !e.AuthType.Valid() {
		e.AuthType = models.AuthUnset
	}
	if e.AuthType != models.AuthLocal {
		e.Secret = nil
	}
}
