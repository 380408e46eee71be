// Package main initializes and starts the AuthKeeper editing server,
// setting up configuration, logging, the key-value backend, the staged
// entry store, handlers, and optional mutual TLS.
package main

import (
	"cmp"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	nethttp "net/http"

	"github.com/atinyakov/AuthKeeper/internal/config"
	"github.com/atinyakov/AuthKeeper/internal/logger"
	"github.com/atinyakov/AuthKeeper/internal/repository"
	"github.com/atinyakov/AuthKeeper/internal/server/handler/http"
	"github.com/atinyakov/AuthKeeper/internal/service"
	"github.com/atinyakov/AuthKeeper/internal/store"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Open the key-value backend holding the committed snapshot.
	kv, closeKV, err := repository.Open(options)
	if err != nil {
		zapLogger.Fatal("cannot open storage", zap.String("backend", options.Backend), zap.Error(err))
	}
	defer func() { _ = closeKV() }()

	// Build the staged store and the serialized service in front of it.
	snapshots := repository.NewSnapshotRepository(kv, zapLogger)
	entryStore := store.New(context.Background(), snapshots, zapLogger)
	entryService := service.NewEntryService(entryStore, zapLogger)

	entriesHandler := &http.EntriesHandler{EntryService: entryService, Logger: zapLogger}
	router := http.NewRouter(entriesHandler, zapLogger, options.TLSEnabled() && options.TLSCA != "")

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	if !options.TLSEnabled() {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Port), zap.String("backend", options.Backend))
		if err := server.ListenAndServe(); err != nil {
			zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
		}
		return
	}

	tlsConfig, err := serverTLS(options)
	if err != nil {
		zapLogger.Fatal("failed to configure TLS", zap.Error(err))
	}
	server.TLSConfig = tlsConfig

	zapLogger.Info("starting HTTPS server", zap.String("addr", options.Port), zap.String("backend", options.Backend))
	if err := server.ListenAndServeTLS("", ""); err != nil {
		zapLogger.Fatal("failed to start HTTPS server", zap.Error(err))
	}
}

// serverTLS loads the server key pair and, when a CA is configured,
// requires clients to present a certificate signed by it.
func serverTLS(options *config.Options) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(options.TLSCert, options.TLSKey)
	if err != nil {
		return nil, fmt.Errorf("load server TLS cert/key: %w", err)
	}

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}
	if options.TLSCA == "" {
		return tlsConfig, nil
	}

	caCert, err := os.ReadFile(options.TLSCA)
	if err != nil {
		return nil, fmt.Errorf("read CA cert: %w", err)
	}
	caCertPool := x509.NewCertPool()
	if ok := caCertPool.AppendCertsFromPEM(caCert); !ok {
		return nil, fmt.Errorf("append CA cert to pool")
	}
	tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
	tlsConfig.ClientCAs = caCertPool
	return tlsConfig, nil
}
