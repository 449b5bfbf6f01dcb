package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yumyai/ddrcohort/pkg/model"
)

var ErrColumnMissing = errors.New("required column is missing")

// rawTable is a whole table read without knowing its schema up front.
type rawTable struct {
	columns []string
	rows    [][]interface{}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// readTable loads every row of table. Column names are trimmed.
func readTable(ctx context.Context, db *sql.DB, table string) (*rawTable, error) {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", table, err)
	}
	for i := range columns {
		columns[i] = strings.TrimSpace(columns[i])
	}

	t := &rawTable{columns: columns}
	for rows.Next() {
		row := make([]interface{}, len(columns))
		rowPointers := make([]interface{}, len(columns))
		for i := range row {
			rowPointers[i] = &row[i]
		}
		if err := rows.Scan(rowPointers...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		// Convert []byte data to string, if applicable
		for i, val := range row {
			if b, ok := val.([]byte); ok {
				row[i] = string(b)
			}
		}
		t.rows = append(t.rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	return t, nil
}

func (t *rawTable) index(name string) (int, error) {
	for i, c := range t.columns {
		if c == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrColumnMissing, name)
}

func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// cellFlag turns a gene loss cell into a flag. NULL and empty text are
// missing; numbers are lost when non-zero.
func cellFlag(v interface{}) (model.Flag, error) {
	f, ok, err := cellFloat(v)
	if err == nil {
		if !ok {
			return model.FlagMissing, nil
		}
		if f != 0 {
			return model.FlagLost, nil
		}
		return model.FlagRetained, nil
	}

	s, isString := v.(string)
	if !isString {
		return model.FlagMissing, err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "t":
		return model.FlagLost, nil
	case "false", "no", "n", "f":
		return model.FlagRetained, nil
	case "na", "nan", "n/a":
		return model.FlagMissing, nil
	}
	return model.FlagMissing, fmt.Errorf("cannot read %q as a loss flag", s)
}

// cellFloat reads a numeric cell. ok is false for NULL, NaN and empty text.
func cellFloat(v interface{}) (float64, bool, error) {
	switch x := v.(type) {
	case nil:
		return 0, false, nil
	case bool:
		if x {
			return 1, true, nil
		}
		return 0, true, nil
	case int64:
		return float64(x), true, nil
	case int32:
		return float64(x), true, nil
	case int16:
		return float64(x), true, nil
	case int8:
		return float64(x), true, nil
	case int:
		return float64(x), true, nil
	case uint64:
		return float64(x), true, nil
	case uint32:
		return float64(x), true, nil
	case uint16:
		return float64(x), true, nil
	case uint8:
		return float64(x), true, nil
	case float32:
		if math.IsNaN(float64(x)) {
			return 0, false, nil
		}
		return float64(x), true, nil
	case float64:
		if math.IsNaN(x) {
			return 0, false, nil
		}
		return x, true, nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, fmt.Errorf("cannot read %q as a number", s)
		}
		if math.IsNaN(f) {
			return 0, false, nil
		}
		return f, true, nil
	default:
		return 0, false, fmt.Errorf("unsupported cell type %T", v)
	}
}
