// Package storage provides abstractions for archiving exported sheets.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripsheet/internal/models"
)

// ErrSheetNotFound is returned when no sheet has the requested ID.
var ErrSheetNotFound = errors.New("sheet not found")

// Store defines the interface for sheet archive operations.
// The archive belongs to a single local process; it is not a shared database.
type Store interface {
	// SaveSheet persists a sheet. The sheet.ID and CreatedAt fields are
	// populated by the store when empty.
	SaveSheet(ctx context.Context, sheet *models.Sheet) error

	// GetSheet retrieves a sheet by its ID.
	// Returns ErrSheetNotFound if the sheet does not exist.
	GetSheet(ctx context.Context, id string) (*models.Sheet, error)

	// ListSheets returns every archived sheet, newest first, without snapshots.
	ListSheets(ctx context.Context) ([]*models.Sheet, error)

	// DeleteSheet removes a sheet.
	// Returns ErrSheetNotFound if the sheet does not exist.
	DeleteSheet(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
