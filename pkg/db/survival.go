package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yumyai/ddrcohort/pkg/survival"
)

// LoadSurvivalTable reads the survival outcomes. An endpoint is any column
// whose paired time column is also present; other columns are ignored.
func LoadSurvivalTable(ctx context.Context, db *sql.DB, table string) (*survival.Table, error) {
	raw, err := readTable(ctx, db, table)
	if err != nil {
		return nil, err
	}
	sampleCol, err := raw.index(SampleColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", table, err)
	}

	var endpoints []survival.Endpoint
	var eventCols, timeCols []int
	for i, c := range raw.columns {
		if i == sampleCol || survival.IsTimeColumn(c) {
			continue
		}
		e := survival.Endpoint(c)
		ti, err := raw.index(e.TimeColumn())
		if err != nil {
			continue
		}
		endpoints = append(endpoints, e)
		eventCols = append(eventCols, i)
		timeCols = append(timeCols, ti)
	}
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("%s: no endpoint with a matching time column", table)
	}

	t := survival.NewTable(endpoints)
	for r, row := range raw.rows {
		id := cellString(row[sampleCol])
		if id == "" {
			return nil, fmt.Errorf("%s row %d: empty sample id", table, r+1)
		}
		recs := make([]survival.Record, len(endpoints))
		for j := range endpoints {
			ev, evOK, err := cellFloat(row[eventCols[j]])
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %q: %w", table, r+1, raw.columns[eventCols[j]], err)
			}
			tm, tmOK, err := cellFloat(row[timeCols[j]])
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %q: %w", table, r+1, raw.columns[timeCols[j]], err)
			}
			recs[j] = survival.Record{Time: tm, Event: int(ev), Valid: evOK && tmOK && tm >= 0}
		}
		if err := t.Add(id, recs); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", table, r+1, err)
		}
	}
	return t, nil
}
