package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb" // registers "duckdb"
	_ "modernc.org/sqlite"              // registers "sqlite"
)

// Supported table source drivers.
const (
	DriverSQLite = "sqlite"
	DriverDuckDB = "duckdb"
)

// Column names shared by every input table.
const (
	SampleColumn     = "TCGA Sample"
	CancerTypeColumn = "Cancer type"
)

// TableNames locates the input tables inside the database.
type TableNames struct {
	GeneLoss             string
	Survival             string
	Footprint            string
	FootprintDescription string
}

func DefaultTableNames() TableNames {
	return TableNames{
		GeneLoss:             "gene_loss",
		Survival:             "survival",
		Footprint:            "footprint",
		FootprintDescription: "footprint_descriptions",
	}
}

// Open connects to the table source and checks it answers.
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverSQLite, DriverDuckDB:
	default:
		return nil, fmt.Errorf("unknown table driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}
