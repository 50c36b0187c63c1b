// Package db provides PostgreSQL access for the export history store.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the history tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS resumes (
			id UUID PRIMARY KEY,
			filename TEXT NOT NULL,
			record JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS exports (
			id UUID PRIMARY KEY,
			resume_id UUID REFERENCES resumes(id),
			format TEXT NOT NULL,
			size_bytes BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// ResumeRow is one stored resume record.
type ResumeRow struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveResume stores an uploaded record and returns its ID
func (db *DB) SaveResume(ctx context.Context, filename string, record []byte) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO resumes (id, filename, record) VALUES ($1, $2, $3)`,
		id, filename, record,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return id, nil
}

// GetResume retrieves a stored record by ID. Returns nil when not found.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) ([]byte, error) {
	var record []byte
	err := db.pool.QueryRow(ctx,
		`SELECT record FROM resumes WHERE id = $1`, id,
	).Scan(&record)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return record, nil
}

// ListResumes returns stored records, newest first
func (db *DB) ListResumes(ctx context.Context, limit int) ([]ResumeRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, filename, created_at FROM resumes ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var out []ResumeRow
	for rows.Next() {
		var r ResumeRow
		if err := rows.Scan(&r.ID, &r.Filename, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return out, nil
}

// RecordExport logs a completed export for auditing
func (db *DB) RecordExport(ctx context.Context, resumeID uuid.UUID, format string, sizeBytes int) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO exports (id, resume_id, format, size_bytes) VALUES ($1, $2, $3, $4)`,
		uuid.New(), resumeID, format, sizeBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}
	return nil
}
