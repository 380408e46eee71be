package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/AuthKeeper/internal/config"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		opts config.Options
		want any
	}{
		{"memory", config.Options{Backend: config.BackendMemory}, &MemoryKV{}},
		{"file", config.Options{Backend: config.BackendFile, StoragePath: filepath.Join(dir, "files")}, &FileKV{}},
		{"sqlite", config.Options{Backend: config.BackendSQLite, StoragePath: filepath.Join(dir, "kv.db")}, &SQLiteKV{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv, closeFn, err := Open(&tt.opts)
			require.NoError(t, err)
			defer func() { assert.NoError(t, closeFn()) }()
			assert.IsType(t, tt.want, kv)
			kvContract(t, kv)
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	_, closeFn, err := Open(&config.Options{Backend: "redis"})
	assert.Error(t, err)
	assert.NotNil(t, closeFn)

	_, _, err = Open(&config.Options{Backend: config.BackendPostgres, DatabaseDSN: "host=127.0.0.1 port=1 sslmode=disable connect_timeout=1"})
	assert.Error(t, err)
}
