package config

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func envOf(kv map[string]string) func(string) string {
	return func(k string) string { return kv[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.TableDriver != "sqlite" || cfg.TableDSN != filepath.Join("data", "db", "ddr.db") {
		t.Errorf("table source = %s %s", cfg.TableDriver, cfg.TableDSN)
	}
	if cfg.Tables.GeneLoss != "gene_loss" || cfg.Tables.FootprintDescription != "footprint_descriptions" {
		t.Errorf("tables = %+v", cfg.Tables)
	}
	if cfg.Store.Driver != "fs" || cfg.Store.Path != filepath.Join("data", "group_results.json") {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Listen != "0.0.0.0:8080" || cfg.LogLevel != zapcore.InfoLevel {
		t.Errorf("listen = %s level = %v", cfg.Listen, cfg.LogLevel)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"DDR_DATA":                 "/srv/ddr",
		"DDR_TABLE_DRIVER":         "duckdb",
		"DDR_COHORT_STORE":         "s3",
		"DDR_COHORT_S3_BUCKET":     "cohorts",
		"DDR_COHORT_S3_PATH_STYLE": "true",
		"DDR_LOG_LEVEL":            "debug",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.TableDSN != "/srv/ddr/db/ddr.db" || cfg.TableDriver != "duckdb" {
		t.Errorf("table source = %s %s", cfg.TableDriver, cfg.TableDSN)
	}
	if !cfg.Store.S3.PathStyle || cfg.Store.S3.Key != "cohorts/current.json" {
		t.Errorf("s3 = %+v", cfg.Store.S3)
	}
	if cfg.LogLevel != zapcore.DebugLevel {
		t.Errorf("level = %v", cfg.LogLevel)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []map[string]string{
		{"DDR_TABLE_DRIVER": "mysql"},
		{"DDR_COHORT_STORE": "redis"},
		{"DDR_COHORT_STORE": "postgres"},
		{"DDR_COHORT_STORE": "s3"},
		{"DDR_COHORT_S3_PATH_STYLE": "sometimes"},
		{"DDR_LOG_LEVEL": "chatty"},
	}
	for _, env := range tests {
		if _, err := FromEnv(envOf(env)); err == nil {
			t.Errorf("FromEnv(%v) should fail", env)
		}
	}
}
