package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/atinyakov/AuthKeeper/internal/models"
)

type failingKV struct {
	getErr error
	putErr error
}

func (f failingKV) Get(context.Context, string) ([]byte, error) { return nil, f.getErr }
func (f failingKV) Put(context.Context, string, []byte) error    { return f.putErr }

func bufferLogger(buf *bytes.Buffer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

func TestSnapshot_SaveWritesWireFormat(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewSnapshotRepository(kv, zap.NewNop())
	secret := "pw"
	entries := []models.Entry{
		{ID: "1", Tags: []models.Tag{{Text: "a"}}, TagsInput: "a", AuthType: models.AuthLocal, Username: "u", Secret: &secret},
		{ID: "2", Tags: []models.Tag{}, AuthType: models.AuthLDAP},
	}

	require.NoError(t, repo.Save(context.Background(), entries))

	raw, err := kv.Get(context.Background(), SnapshotKey)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, map[string]any{
		"id":        "1",
		"tags":      []any{map[string]any{"text": "a"}},
		"tagsInput": "a",
		"authType":  "LOCAL",
		"username":  "u",
		"secret":    "pw",
	}, decoded[0])
	assert.Nil(t, decoded[1]["secret"])
	assert.Contains(t, decoded[1], "secret")
}

func TestSnapshot_SaveNilWritesEmptyArray(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewSnapshotRepository(kv, nil)
	require.NoError(t, repo.Save(context.Background(), nil))

	raw, err := kv.Get(context.Background(), SnapshotKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestSnapshot_SaveError(t *testing.T) {
	repo := NewSnapshotRepository(failingKV{putErr: errors.New("boom")}, zap.NewNop())
	err := repo.Save(context.Background(), []models.Entry{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save snapshot: boom")
}

func TestSnapshot_LoadRoundTrip(t *testing.T) {
	repo := NewSnapshotRepository(NewMemoryKV(), zap.NewNop())
	secret := "pw"
	entries := []models.Entry{
		{ID: "1", Tags: []models.Tag{{Text: "x"}, {Text: "y"}}, TagsInput: "x;y", AuthType: models.AuthLocal, Username: "u", Secret: &secret},
		{ID: "2", Tags: []models.Tag{}, AuthType: models.AuthUnset},
	}
	require.NoError(t, repo.Save(context.Background(), entries))

	got := repo.Load(context.Background())
	assert.True(t, models.EqualEntries(entries, got), "got %+v", got)
}

func TestSnapshot_LoadRecoverable(t *testing.T) {
	tests := []struct {
		name    string
		kv      KV
		wantLog string
	}{
		{"missing key", NewMemoryKV(), ""},
		{"read error", failingKV{getErr: errors.New("io")}, "failed to read snapshot"},
		{"malformed", seeded(`{not json`), "malformed snapshot"},
		{"wrong shape", seeded(`{"id":"1"}`), "malformed snapshot"},
		{"null document", seeded(`null`), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			repo := NewSnapshotRepository(tt.kv, bufferLogger(&buf))

			got := repo.Load(context.Background())
			require.NotNil(t, got)
			assert.Empty(t, got)
			if tt.wantLog == "" {
				assert.Empty(t, buf.String())
			} else {
				assert.Contains(t, buf.String(), tt.wantLog)
			}
		})
	}
}

func TestSnapshot_LoadNormalizesEntries(t *testing.T) {
	kv := seeded(`[
		{"id":"1","tags":[{"text":"stale"}],"tagsInput":" a ; b ","authType":"LDAP","username":"u","secret":"leak"},
		{"id":"2","tagsInput":"","authType":"BOGUS","username":"","secret":"x"},
		{"id":"3","tags":[],"tagsInput":"","authType":"LOCAL","username":"","secret":"keep"}
	]`)
	got := NewSnapshotRepository(kv, zap.NewNop()).Load(context.Background())
	require.Len(t, got, 3)

	assert.Equal(t, []models.Tag{{Text: "a"}, {Text: "b"}}, got[0].Tags)
	assert.Nil(t, got[0].Secret)

	assert.Equal(t, models.AuthUnset, got[1].AuthType)
	assert.Nil(t, got[1].Secret)
	assert.NotNil(t, got[1].Tags)

	require.NotNil(t, got[2].Secret)
	assert.Equal(t, "keep", *got[2].Secret)
}

func seeded(doc string) *MemoryKV {
	kv := NewMemoryKV()
	_ = kv.Put(context.Background(), SnapshotKey, []byte(doc))
	return kv
}
