package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"playstore-dashboard/models"
	"playstore-dashboard/utils"
)

// Every column is read back as text so the same normalizer handles both sources.
const (
	selectApps = `
		SELECT COALESCE(app, ''), COALESCE(category, ''), COALESCE(rating::text, ''),
		       COALESCE(reviews::text, ''), COALESCE(installs::text, ''), COALESCE(last_updated::text, '')
		FROM apps
		ORDER BY id`
	selectReviews = `
		SELECT COALESCE(app, ''), COALESCE(sentiment, ''), COALESCE(sentiment_polarity::text, '')
		FROM reviews
		ORDER BY id`
)

// PostgresSource reads both tables from PostgreSQL. It never writes.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource opens a connection and waits for the server with retry.
func NewPostgresSource(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1}
	}
	if retry.BaseDelay == 0 {
		retry.BaseDelay = 2 * time.Second
	}
	if err := retry.Do(ctx, "postgres ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return NewPostgresSourceFromDB(db), nil
}

// NewPostgresSourceFromDB wraps an already open handle.
func NewPostgresSourceFromDB(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// Load reads the apps and reviews tables ordered by id.
func (ps *PostgresSource) Load(ctx context.Context) (*models.Tables, error) {
	apps, err := queryRows(ctx, ps.db, selectApps, func(rows *sql.Rows) (*models.RawApp, error) {
		a := &models.RawApp{}
		err := rows.Scan(&a.App, &a.Category, &a.Rating, &a.Reviews, &a.Installs, &a.LastUpdated)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch apps: %w", err)
	}

	reviews, err := queryRows(ctx, ps.db, selectReviews, func(rows *sql.Rows) (*models.RawReview, error) {
		r := &models.RawReview{}
		err := rows.Scan(&r.App, &r.Sentiment, &r.Polarity)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch reviews: %w", err)
	}

	return &models.Tables{Apps: apps, Reviews: reviews}, nil
}

func (ps *PostgresSource) Close() error {
	return ps.db.Close()
}

func queryRows[T any](ctx context.Context, db *sql.DB, query string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
