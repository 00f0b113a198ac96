package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"NavSentinel/internal/model"
)

// SQLiteRecorder persists history to a SQLite database. Decimal values are
// stored as TEXT to keep them exact.
type SQLiteRecorder struct {
	db *sql.DB
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Debug().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS observations (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			nav         TEXT NOT NULL,
			fund        TEXT NOT NULL,
			stake_value TEXT NOT NULL,
			nav_delta   TEXT,
			stake_delta TEXT,
			fund_delta  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_observations_ts ON observations(timestamp)`,

		`CREATE TABLE IF NOT EXISTS delta_reports (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			baseline    TEXT NOT NULL,
			since       INTEGER NOT NULL,
			nav_delta   TEXT NOT NULL,
			stake_delta TEXT NOT NULL,
			fund_delta  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_delta_reports_ts ON delta_reports(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordUpdate(u *model.UpdateReport) error {
	var navDelta, stakeDelta, fundDelta sql.NullString
	if dl := u.Deltas; dl != nil {
		navDelta = sql.NullString{String: dl.Nav.String(), Valid: true}
		stakeDelta = sql.NullString{String: dl.Stake.String(), Valid: true}
		fundDelta = sql.NullString{String: dl.Fund.String(), Valid: true}
	}
	_, err := r.db.Exec(`INSERT INTO observations
		(timestamp, nav, fund, stake_value, nav_delta, stake_delta, fund_delta)
		VALUES (?,?,?,?,?,?,?)`,
		u.Time.Unix(), u.Nav.String(), u.Fund.String(), u.StakeValue.String(),
		navDelta, stakeDelta, fundDelta,
	)
	return err
}

func (r *SQLiteRecorder) RecordDelta(d *model.DeltaReport) error {
	_, err := r.db.Exec(`INSERT INTO delta_reports
		(timestamp, baseline, since, nav_delta, stake_delta, fund_delta)
		VALUES (?,?,?,?,?,?)`,
		d.Time.Unix(), d.Baseline.String(), d.Since.Unix(),
		d.Deltas.Nav.String(), d.Deltas.Stake.String(), d.Deltas.Fund.String(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Debug().Msg("closing sqlite recorder")
	return r.db.Close()
}
