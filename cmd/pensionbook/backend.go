package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/alexanderramin/pensionbook/internal/config"
	"github.com/alexanderramin/pensionbook/internal/db"
	"github.com/alexanderramin/pensionbook/internal/repository"
	"github.com/alexanderramin/pensionbook/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openSnapshotStore opens the snapshot store named by cfg.Backend.
func openSnapshotStore(ctx context.Context, cfg *config.Config) (repository.SnapshotStore, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSQLiteSnapshotStore(database), database, nil

	case config.BackendPostgres:
		database, err := db.OpenPostgres(cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresSnapshotStore(database), database, nil

	case config.BackendFile:
		return repository.NewFileSnapshotStore(cfg.DataDir), nopCloser{}, nil

	case config.BackendS3:
		store, err := repository.NewS3SnapshotStore(ctx, cfg.S3.Bucket, cfg.S3.Prefix, cfg.S3.Region, cfg.S3.Endpoint)
		if err != nil {
			return nil, nil, err
		}
		return store, nopCloser{}, nil

	case config.BackendNATS:
		store, err := repository.NewNATSSnapshotStore(cfg.NATS.URL, cfg.NATS.Bucket)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil

	case config.BackendMemory:
		return repository.NewMemorySnapshotStore(), nopCloser{}, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// connector returns the function the CLI uses to open the record service
// once flags have been applied. Metrics are registered with reg once and
// shared by every service it opens.
func connector(logger *slog.Logger, reg prometheus.Registerer) func(context.Context, *config.Config) (service.PensionService, io.Closer, error) {
	logObserver := service.NewLogUseCaseObserver(logger)
	metricsObserver := service.NewMetricsUseCaseObserver(reg)
	return func(ctx context.Context, cfg *config.Config) (service.PensionService, io.Closer, error) {
		store, closer, err := openSnapshotStore(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.DebugContext(ctx, "backend opened", "backend", cfg.Backend)
		svc := service.NewPensionService(store, logger, logObserver, metricsObserver)
		return svc, closer, nil
	}
}
