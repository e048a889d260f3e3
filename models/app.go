package models

import "time"

// RawApp holds one row of the app catalog exactly as read from the source table.
// Every field is kept as text so the normalizer decides what is usable.
type RawApp struct {
	App         string
	Category    string
	Rating      string
	Reviews     string
	Installs    string
	LastUpdated string
}

// App is a catalog row that passed the inclusion rule of a pipeline.
// Rating is NaN when the source value was missing or unparseable.
// Reviews is zero when the active rule did not require it.
type App struct {
	App         string
	Category    string
	Rating      float64
	Reviews     uint64
	Installs    uint64
	LastUpdated time.Time
	HasUpdated  bool
}

// RawReview holds one row of the user reviews table.
type RawReview struct {
	App       string
	Sentiment string
	Polarity  string
}

// Review is a user review with the sentiment label normalised.
// Sentiment is empty when the source value was missing.
type Review struct {
	App       string
	Sentiment string
}

// JoinedReview is a review paired with one matching catalog row.
type JoinedReview struct {
	App         string
	Category    string
	Rating      float64
	Sentiment   string
	RatingGroup RatingGroup
}

// Tables is a fully materialised copy of both source tables.
type Tables struct {
	Apps    []*RawApp
	Reviews []*RawReview
}
