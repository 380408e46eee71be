// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables and
// an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
)

// Storage backends understood by the binaries.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"address"`

	// DatabaseDSN holds the PostgreSQL connection string for the postgres backend.
	DatabaseDSN string `json:"database_dsn"`

	// Backend selects the key-value store holding the committed entries.
	Backend string `json:"backend"`

	// StoragePath is the directory of the file backend or the SQLite file.
	StoragePath string `json:"storage_path"`

	// TLSCert, TLSKey and TLSCA enable HTTPS with client certificates when set.
	TLSCert string `json:"tls_cert"`
	TLSKey  string `json:"tls_key"`
	TLSCA   string `json:"tls_ca"`

	// LogLevel is the minimum zap level.
	LogLevel string `json:"log_level"`

	// Config is the path to the Config file.
	Config string `json:"-"`
}

// TLSEnabled reports whether a server certificate is configured.
func (o *Options) TLSEnabled() bool {
	return o.TLSCert != "" && o.TLSKey != ""
}

// Parse parses the process command line and environment. It exits the
// process on invalid configuration.
func Parse() *Options {
	opts, err := ParseArgs(flag.CommandLine, os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return opts
}

// ParseArgs registers the options on fs, parses args and applies the config
// file and environment overrides, in that order.
func ParseArgs(fs *flag.FlagSet, args []string, getenv func(string) string) (*Options, error) {
	options := &Options{}
	fs.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&options.Backend, "backend", BackendFile, "storage backend: file | sqlite | postgres | memory")
	fs.StringVar(&options.StoragePath, "path", "data", "file backend directory or sqlite file")
	fs.StringVar(&options.TLSCert, "tls-cert", "", "path to server certificate")
	fs.StringVar(&options.TLSKey, "tls-key", "", "path to server key")
	fs.StringVar(&options.TLSCA, "tls-ca", "", "path to CA used to verify client certificates")
	fs.StringVar(&options.LogLevel, "log-level", "info", "log level")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if configPath := getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				return nil, fmt.Errorf("error while reading config file: %w", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("error while parsing config file: %w", err)
			}
		}
	}

	if serverAddress := getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if backend := getenv("STORAGE_BACKEND"); backend != "" {
		options.Backend = backend
	}
	if path := getenv("STORAGE_PATH"); path != "" {
		options.StoragePath = path
	}
	if level := getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	switch options.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	case BackendPostgres:
		if options.DatabaseDSN == "" {
			return nil, fmt.Errorf("backend %q requires a database DSN", options.Backend)
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", options.Backend)
	}

	return options, nil
}
