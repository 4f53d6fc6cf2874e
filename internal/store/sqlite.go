package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/mortgage-cli/internal/mortgage"
	"github.com/sells-group/mortgage-cli/internal/search"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	financing    TEXT NOT NULL,
	restrictions TEXT NOT NULL,
	home_value   REAL NOT NULL,
	breakdown    TEXT,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_home_value ON runs(home_value);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, financing mortgage.FinancingTerms, restrictions search.Restrictions, result mortgage.Mortgage) (*Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	financingJSON, err := json.Marshal(financing)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal financing")
	}
	restrictionsJSON, err := json.Marshal(restrictions)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal restrictions")
	}

	breakdown := result.Cost()
	var breakdownJSON sql.NullString
	if breakdown != nil {
		b, err := json.Marshal(breakdown)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: marshal breakdown")
		}
		breakdownJSON = sql.NullString{String: string(b), Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, financing, restrictions, home_value, breakdown, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, string(financingJSON), string(restrictionsJSON), result.HomeValue, breakdownJSON, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &Run{
		ID:           id,
		Financing:    financing,
		Restrictions: restrictions,
		HomeValue:    result.HomeValue,
		Breakdown:    breakdown,
		CreatedAt:    now,
	}, nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, financing, restrictions, home_value, breakdown, created_at FROM runs WHERE id = ?`,
		runID,
	)
	return scanRun(row)
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]Run, error) {
	query := `SELECT id, financing, restrictions, home_value, breakdown, created_at FROM runs WHERE 1=1`
	var args []any

	if filter.MinHomeValue > 0 {
		query += ` AND home_value >= ?`
		args = append(args, filter.MinHomeValue)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*Run, error) {
	var r Run
	var financingJSON, restrictionsJSON string
	var breakdownJSON sql.NullString

	err := row.Scan(&r.ID, &financingJSON, &restrictionsJSON, &r.HomeValue, &breakdownJSON, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("run not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan run")
	}

	if err := json.Unmarshal([]byte(financingJSON), &r.Financing); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal financing")
	}
	if err := json.Unmarshal([]byte(restrictionsJSON), &r.Restrictions); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal restrictions")
	}
	if breakdownJSON.Valid {
		r.Breakdown = &mortgage.CostBreakdown{}
		if err := json.Unmarshal([]byte(breakdownJSON.String), r.Breakdown); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal breakdown")
		}
	}
	return &r, nil
}
