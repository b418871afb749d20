package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const (
	createRecordTable = `CREATE TABLE IF NOT EXISTS behavior_record (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	content TEXT NOT NULL
)`
	selectRecord = `SELECT content FROM behavior_record WHERE id = 1`
	upsertRecord = `INSERT INTO behavior_record (id, content) VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET content = excluded.content`
)

// SQLiteBackend keeps the record in a single-row table of a SQLite file.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend opens (or creates) the database at path.
func NewSQLiteBackend(ctx context.Context, path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, createRecordTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create behavior_record table: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Read(ctx context.Context) (string, error) {
	var content string
	err := b.db.QueryRowContext(ctx, selectRecord).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("select behavior record: %w", err)
	}
	return content, nil
}

func (b *SQLiteBackend) Write(ctx context.Context, content string) error {
	if _, err := b.db.ExecContext(ctx, upsertRecord, content); err != nil {
		return fmt.Errorf("upsert behavior record: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
