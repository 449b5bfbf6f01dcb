package db

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/yumyai/ddrcohort/pkg/model"
)

// Columns of the footprint description table.
const (
	FeatureColumn     = "DDR Score"
	DescriptionColumn = "Brief Description"
)

// featureName shows underscores in stored column names as spaces.
func featureName(column string) string {
	return strings.ReplaceAll(column, "_", " ")
}

// LoadFootprintTable reads the numeric footprint scores and, when descTable
// is not empty, their descriptions.
func LoadFootprintTable(ctx context.Context, db *sql.DB, table, descTable string) (*model.FootprintTable, error) {
	raw, err := readTable(ctx, db, table)
	if err != nil {
		return nil, err
	}
	sampleCol, err := raw.index(SampleColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", table, err)
	}
	cancerCol, err := raw.index(CancerTypeColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", table, err)
	}

	var features []string
	var cols []int
	for i, c := range raw.columns {
		if i == sampleCol || i == cancerCol {
			continue
		}
		features = append(features, featureName(c))
		cols = append(cols, i)
	}

	t := model.NewFootprintTable(features)
	for r, row := range raw.rows {
		id := cellString(row[sampleCol])
		if id == "" {
			return nil, fmt.Errorf("%s row %d: empty sample id", table, r+1)
		}
		values := make([]float64, len(cols))
		for j, ci := range cols {
			f, ok, err := cellFloat(row[ci])
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %q: %w", table, r+1, raw.columns[ci], err)
			}
			if !ok {
				f = math.NaN()
			}
			values[j] = f
		}
		s := model.Sample{ID: id, CancerType: cellString(row[cancerCol])}
		if err := t.AddSample(s, values); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", table, r+1, err)
		}
	}

	if descTable == "" {
		return t, nil
	}
	desc, err := readTable(ctx, db, descTable)
	if err != nil {
		return nil, err
	}
	fc, err := desc.index(FeatureColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", descTable, err)
	}
	dc, err := desc.index(DescriptionColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", descTable, err)
	}
	for _, row := range desc.rows {
		f := featureName(cellString(row[fc]))
		if t.HasFeature(f) {
			t.SetDescription(f, cellString(row[dc]))
		}
	}
	return t, nil
}
