package storage

import (
	"context"
	"errors"

	"playstore-dashboard/models"
)

// ErrMissingColumn is returned when a source table lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// TableSource is the interface any input backend must satisfy. Load returns a
// fresh, fully materialised copy of both tables on every call.
type TableSource interface {
	Load(ctx context.Context) (*models.Tables, error)
	Close() error
}

// ResultWriter is the interface for exporting a pipeline's tidy table.
type ResultWriter interface {
	Write(res *models.Result) error
	Close() error
}
