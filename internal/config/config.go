// Package config reads process configuration from the environment, after
// loading a .env file when one is present.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/ddrcohort/logger"
	"github.com/yumyai/ddrcohort/pkg/db"
	"github.com/yumyai/ddrcohort/pkg/store"
)

type Config struct {
	DataDir     string
	TableDriver string
	TableDSN    string
	Tables      db.TableNames
	Store       store.Config
	Listen      string
	LogLevel    zapcore.Level
}

// Load reads .env (if any) and then the environment. The returned bool
// reports whether a .env file was found.
func Load() (Config, bool, error) {
	found := godotenv.Load() == nil
	cfg, err := FromEnv(os.Getenv)
	return cfg, found, err
}

// FromEnv builds and validates a Config from getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	var cfg Config
	cfg.DataDir = get("DDR_DATA", "./data")

	cfg.TableDriver = get("DDR_TABLE_DRIVER", db.DriverSQLite)
	switch cfg.TableDriver {
	case db.DriverSQLite, db.DriverDuckDB:
	default:
		return cfg, fmt.Errorf("DDR_TABLE_DRIVER: unknown driver %q", cfg.TableDriver)
	}
	cfg.TableDSN = get("DDR_TABLE_DSN", filepath.Join(cfg.DataDir, "db", "ddr.db"))

	def := db.DefaultTableNames()
	cfg.Tables = db.TableNames{
		GeneLoss:             get("DDR_GENE_LOSS_TABLE", def.GeneLoss),
		Survival:             get("DDR_SURVIVAL_TABLE", def.Survival),
		Footprint:            get("DDR_FOOTPRINT_TABLE", def.Footprint),
		FootprintDescription: get("DDR_FOOTPRINT_DESC_TABLE", def.FootprintDescription),
	}

	cfg.Store = store.Config{
		Driver: get("DDR_COHORT_STORE", store.DriverFS),
		Path:   get("DDR_COHORT_STORE_PATH", filepath.Join(cfg.DataDir, "group_results.json")),
		DSN:    get("DDR_COHORT_STORE_DSN", ""),
		S3: store.S3Config{
			Bucket:   get("DDR_COHORT_S3_BUCKET", ""),
			Key:      get("DDR_COHORT_S3_KEY", "cohorts/current.json"),
			Region:   get("DDR_COHORT_S3_REGION", ""),
			Endpoint: get("DDR_COHORT_S3_ENDPOINT", ""),
		},
	}
	if v := get("DDR_COHORT_S3_PATH_STYLE", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("DDR_COHORT_S3_PATH_STYLE: %w", err)
		}
		cfg.Store.S3.PathStyle = b
	}
	switch cfg.Store.Driver {
	case store.DriverFS, store.DriverSQLite, store.DriverMemory:
	case store.DriverPostgres:
		if cfg.Store.DSN == "" {
			return cfg, fmt.Errorf("DDR_COHORT_STORE_DSN is required for the postgres cohort store")
		}
	case store.DriverS3:
		if cfg.Store.S3.Bucket == "" {
			return cfg, fmt.Errorf("DDR_COHORT_S3_BUCKET is required for the s3 cohort store")
		}
	default:
		return cfg, fmt.Errorf("DDR_COHORT_STORE: unknown driver %q", cfg.Store.Driver)
	}

	cfg.Listen = get("DDR_LISTEN", "0.0.0.0:8080")

	lvl, err := logger.ParseLevel(getenv("DDR_LOG_LEVEL"))
	if err != nil {
		return cfg, fmt.Errorf("DDR_LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = lvl
	return cfg, nil
}
