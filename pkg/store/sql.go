package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "modernc.org/sqlite"             // registers "sqlite"

	"github.com/yumyai/ddrcohort/pkg/model"
)

// slot is the key of the single row holding the current partition.
const slot = "current"

type dialect struct {
	driver string
	ddl    string
	load   string
	upsert string
}

var (
	sqliteDialect = dialect{
		driver: "sqlite",
		ddl:    `CREATE TABLE IF NOT EXISTS cohort_state (slot TEXT PRIMARY KEY, payload BLOB NOT NULL)`,
		load:   `SELECT payload FROM cohort_state WHERE slot = ?`,
		upsert: `INSERT INTO cohort_state(slot, payload) VALUES(?, ?) ON CONFLICT(slot) DO UPDATE SET payload=excluded.payload`,
	}
	postgresDialect = dialect{
		driver: "pgx",
		ddl:    `CREATE TABLE IF NOT EXISTS cohort_state (slot TEXT PRIMARY KEY, payload BYTEA NOT NULL)`,
		load:   `SELECT payload FROM cohort_state WHERE slot = $1`,
		upsert: `INSERT INTO cohort_state(slot, payload) VALUES($1, $2) ON CONFLICT(slot) DO UPDATE SET payload=EXCLUDED.payload`,
	}
)

// SQLStore keeps the partition as a single row of cohort_state in sqlite or
// postgres.
type SQLStore struct {
	db *sql.DB
	d  dialect
}

func NewSQLiteStore(ctx context.Context, path string) (*SQLStore, error) {
	return newSQLStore(ctx, sqliteDialect, path)
}

func NewPostgresStore(ctx context.Context, dsn string) (*SQLStore, error) {
	if dsn == "" {
		return nil, errors.New("postgres cohort store needs a DSN")
	}
	return newSQLStore(ctx, postgresDialect, dsn)
}

func newSQLStore(ctx context.Context, d dialect, dsn string) (*SQLStore, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.driver, err)
	}
	if _, err := db.ExecContext(ctx, d.ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure cohort_state table: %w", err)
	}
	return &SQLStore{db: db, d: d}, nil
}

func (s *SQLStore) Save(ctx context.Context, p *model.Partition) (err error) {
	data, err := Encode(p)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, s.d.upsert, slot, data); err != nil {
		return fmt.Errorf("upsert cohort_state: %w", err)
	}
	return tx.Commit()
}

func (s *SQLStore) Load(ctx context.Context) (*model.Partition, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, s.d.load, slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select cohort_state: %w", err)
	}
	return Decode(data)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
