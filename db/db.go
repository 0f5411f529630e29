package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"runer/model"

	_ "github.com/mattn/go-sqlite3"
)

// DB is the run history, shared by every project on the machine.
type DB struct {
	conn *sql.DB
}

func New(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) migrate() error {
	_, err := d.conn.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			cmd TEXT NOT NULL,
			exit_code INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_runs_name ON runs(name);
		CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`)
	return err
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) Record(r model.Run) (int64, error) {
	result, err := d.conn.Exec(
		`INSERT INTO runs (name, cmd, exit_code, started_at, duration_ms) VALUES (?, ?, ?, ?, ?)`,
		r.Name, r.Cmd, r.ExitCode, r.StartedAt.UTC(), r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Recent returns up to limit runs, newest first.
func (d *DB) Recent(limit int) ([]model.Run, error) {
	rows, err := d.conn.Query(`
		SELECT id, name, cmd, exit_code, started_at, duration_ms
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var r model.Run
		var ms int64
		if err := rows.Scan(&r.ID, &r.Name, &r.Cmd, &r.ExitCode, &r.StartedAt, &ms); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LastUsed maps each command name to the start time of its latest run.
func (d *DB) LastUsed() (map[string]time.Time, error) {
	rows, err := d.conn.Query(`SELECT name, started_at FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	last := make(map[string]time.Time)
	for rows.Next() {
		var name string
		var ts time.Time
		if err := rows.Scan(&name, &ts); err != nil {
			return nil, err
		}
		if _, seen := last[name]; !seen {
			last[name] = ts
		}
	}
	return last, rows.Err()
}
