package store

import (
	"context"
	"fmt"
)

// Supported DDR_COHORT_STORE values.
const (
	DriverFS       = "fs"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
	DriverMemory   = "memory"
)

type Config struct {
	Driver string
	Path   string // fs and sqlite
	DSN    string // postgres
	S3     S3Config
}

// Open builds the durable store named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverFS, "":
		return NewFileStore(cfg.Path), nil
	case DriverSQLite:
		return NewSQLiteStore(ctx, cfg.Path)
	case DriverPostgres:
		return NewPostgresStore(ctx, cfg.DSN)
	case DriverS3:
		return NewS3Store(ctx, cfg.S3)
	case DriverMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown cohort store driver %q", cfg.Driver)
}
