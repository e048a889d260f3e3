package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"playstore-dashboard/models"
)

// Column names of the source tables.
const (
	ColApp         = "App"
	ColCategory    = "Category"
	ColRating      = "Rating"
	ColReviews     = "Reviews"
	ColInstalls    = "Installs"
	ColLastUpdated = "Last Updated"
	ColSentiment   = "Sentiment"
	ColPolarity    = "Sentiment_Polarity"
)

var (
	appColumns    = []string{ColApp, ColCategory, ColRating, ColReviews, ColInstalls, ColLastUpdated}
	reviewColumns = []string{ColApp, ColSentiment}
)

// CSVSource reads the app catalog and the reviews table from two CSV files
// with a header row.
type CSVSource struct {
	appsPath    string
	reviewsPath string
}

// NewCSVSource returns a source reading the two given files on each Load.
func NewCSVSource(appsPath, reviewsPath string) *CSVSource {
	return &CSVSource{appsPath: appsPath, reviewsPath: reviewsPath}
}

// Load reads both files. An empty reviews path yields an empty reviews table.
func (s *CSVSource) Load(ctx context.Context) (*models.Tables, error) {
	apps, err := readFile(ctx, s.appsPath, ReadApps)
	if err != nil {
		return nil, err
	}

	tables := &models.Tables{Apps: apps}
	if s.reviewsPath == "" {
		return tables, nil
	}

	tables.Reviews, err = readFile(ctx, s.reviewsPath, ReadReviews)
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// Close is a no-op; files are opened and closed within Load.
func (s *CSVSource) Close() error { return nil }

func readFile[T any](ctx context.Context, path string, read func(context.Context, io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	rows, err := read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("csv: read %q: %w", path, err)
	}
	return rows, nil
}

// ReadApps parses an app catalog table.
func ReadApps(ctx context.Context, r io.Reader) ([]*models.RawApp, error) {
	var out []*models.RawApp
	err := readRecords(ctx, r, appColumns, func(get func(string) string) {
		out = append(out, &models.RawApp{
			App:         get(ColApp),
			Category:    get(ColCategory),
			Rating:      get(ColRating),
			Reviews:     get(ColReviews),
			Installs:    get(ColInstalls),
			LastUpdated: get(ColLastUpdated),
		})
	})
	return out, err
}

// ReadReviews parses a user reviews table. The polarity column is optional.
func ReadReviews(ctx context.Context, r io.Reader) ([]*models.RawReview, error) {
	var out []*models.RawReview
	err := readRecords(ctx, r, reviewColumns, func(get func(string) string) {
		out = append(out, &models.RawReview{
			App:       get(ColApp),
			Sentiment: get(ColSentiment),
			Polarity:  get(ColPolarity),
		})
	})
	return out, err
}

// readRecords maps each data row by header name. Short rows read as empty
// cells, extra cells are ignored and rows the CSV reader rejects are skipped.
func readRecords(ctx context.Context, r io.Reader, required []string, emit func(get func(string) string)) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return fmt.Errorf("header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	for n := 1; ; n++ {
		if n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			// unreadable row, skipped like any other malformed row
			continue
		}
		if err != nil {
			return fmt.Errorf("record %d: %w", n, err)
		}

		emit(func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		})
	}
}
