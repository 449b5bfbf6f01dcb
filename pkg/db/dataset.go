package db

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/yumyai/ddrcohort/logger"
	"github.com/yumyai/ddrcohort/pkg/model"
	"github.com/yumyai/ddrcohort/pkg/survival"
)

// Dataset is every input table, loaded once at startup and shared read-only.
// Survival and Footprints are nil when their tables could not be read.
type Dataset struct {
	Matrix     *model.GeneLossMatrix
	Survival   *survival.Table
	Footprints *model.FootprintTable
}

// LoadDataset reads the gene loss matrix, which is required, and the
// optional survival and footprint tables.
func LoadDataset(ctx context.Context, db *sql.DB, names TableNames) (*Dataset, error) {
	m, err := LoadGeneLossMatrix(ctx, db, names.GeneLoss)
	if err != nil {
		return nil, fmt.Errorf("gene loss matrix: %w", err)
	}
	ds := &Dataset{Matrix: m}
	logger.Info("Loaded gene loss matrix",
		zap.String("table", names.GeneLoss),
		zap.Int("samples", len(m.Samples())),
		zap.Int("genes", len(m.Genes())))

	if names.Survival != "" {
		ds.Survival, err = LoadSurvivalTable(ctx, db, names.Survival)
		if err != nil {
			logger.Warn("Survival table unavailable", zap.String("table", names.Survival), zap.Error(err))
			ds.Survival = nil
		} else {
			logger.Info("Loaded survival table", zap.String("table", names.Survival), zap.Int("samples", ds.Survival.Len()))
		}
	}

	if names.Footprint != "" {
		ds.Footprints, err = LoadFootprintTable(ctx, db, names.Footprint, names.FootprintDescription)
		if err != nil {
			logger.Warn("Footprint table unavailable", zap.String("table", names.Footprint), zap.Error(err))
			ds.Footprints = nil
		} else {
			logger.Info("Loaded footprint table", zap.String("table", names.Footprint), zap.Int("features", len(ds.Footprints.Features())))
		}
	}
	return ds, nil
}
