package repository

import (
	"fmt"

	"github.com/atinyakov/AuthKeeper/internal/config"
	"github.com/atinyakov/AuthKeeper/internal/db"
)

// Open builds the KV backend selected by opts. The returned close function
// releases any database handle and is never nil.
func Open(opts *config.Options) (KV, func() error, error) {
	noop := func() error { return nil }

	switch opts.Backend {
	case config.BackendMemory:
		return NewMemoryKV(), noop, nil
	case config.BackendFile:
		kv, err := NewFileKV(opts.StoragePath)
		if err != nil {
			return nil, noop, err
		}
		return kv, noop, nil
	case config.BackendSQLite:
		conn, err := db.InitSQLite(opts.StoragePath)
		if err != nil {
			return nil, noop, err
		}
		return NewSQLiteKV(conn), conn.Close, nil
	case config.BackendPostgres:
		conn, err := db.InitPostgres(opts.DatabaseDSN)
		if err != nil {
			return nil, noop, err
		}
		return NewPostgresKV(conn), conn.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown storage backend %q", opts.Backend)
}
