// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/tripsheet/internal/models"
	"github.com/mmynk/tripsheet/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveSheet inserts a sheet, or replaces the sheet with the same ID.
func (s *SQLiteStore) SaveSheet(ctx context.Context, sheet *models.Sheet) error {
	if sheet.ID == "" {
		sheet.ID = uuid.New().String()
	}
	if sheet.CreatedAt == 0 {
		sheet.CreatedAt = time.Now().Unix()
	}
	if sheet.Title == "" {
		sheet.Title = sheet.Tag
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sheets (id, tag, title, snapshot, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET tag = excluded.tag, title = excluded.title,
		 snapshot = excluded.snapshot, created_at = excluded.created_at`,
		sheet.ID, sheet.Tag, sheet.Title, string(sheet.Snapshot), sheet.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save sheet: %w", err)
	}
	return nil
}

// GetSheet retrieves a sheet by ID, including its snapshot.
func (s *SQLiteStore) GetSheet(ctx context.Context, id string) (*models.Sheet, error) {
	sheet := &models.Sheet{}
	var snapshot string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, tag, title, snapshot, created_at FROM sheets WHERE id = ?",
		id,
	).Scan(&sheet.ID, &sheet.Tag, &sheet.Title, &snapshot, &sheet.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrSheetNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet: %w", err)
	}
	sheet.Snapshot = []byte(snapshot)
	return sheet, nil
}

// ListSheets returns sheet metadata ordered newest first.
func (s *SQLiteStore) ListSheets(ctx context.Context) ([]*models.Sheet, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, tag, title, created_at FROM sheets ORDER BY created_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sheets: %w", err)
	}
	defer rows.Close()

	var sheets []*models.Sheet
	for rows.Next() {
		sheet := &models.Sheet{}
		if err := rows.Scan(&sheet.ID, &sheet.Tag, &sheet.Title, &sheet.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sheet: %w", err)
		}
		sheets = append(sheets, sheet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sheets: %w", err)
	}
	return sheets, nil
}

// DeleteSheet removes a sheet by ID.
func (s *SQLiteStore) DeleteSheet(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sheets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete sheet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrSheetNotFound, id)
	}
	return nil
}
