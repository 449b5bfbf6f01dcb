package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yumyai/ddrcohort/pkg/model"
)

// LoadGeneLossMatrix reads the gene loss table. Every column other than the
// sample and cancer type columns is a gene.
func LoadGeneLossMatrix(ctx context.Context, db *sql.DB, table string) (*model.GeneLossMatrix, error) {
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

	var genes []string
	var geneCols []int
	for i, c := range raw.columns {
		if i == sampleCol || i == cancerCol {
			continue
		}
		genes = append(genes, c)
		geneCols = append(geneCols, i)
	}

	m := model.NewGeneLossMatrix(genes)
	for r, row := range raw.rows {
		id := cellString(row[sampleCol])
		if id == "" {
			return nil, fmt.Errorf("%s row %d: empty sample id", table, r+1)
		}
		flags := make([]model.Flag, len(geneCols))
		for j, ci := range geneCols {
			f, err := cellFlag(row[ci])
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %q: %w", table, r+1, raw.columns[ci], err)
			}
			flags[j] = f
		}
		s := model.Sample{ID: id, CancerType: cellString(row[cancerCol])}
		if err := m.AddSample(s, flags); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", table, r+1, err)
		}
	}
	return m, nil
}
