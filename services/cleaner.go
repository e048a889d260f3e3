package services

import (
	"playstore-dashboard/models"
	"playstore-dashboard/utils"
)

// Rule decides which catalog rows a pipeline may use. Rows failing a required
// parse, or at or below MinReviews, are dropped.
type Rule struct {
	Name            string
	RequireReviews  bool
	MinReviews      uint64
	RequireInstalls bool
}

var (
	// ReviewsRule keeps apps with more than 1000 parseable reviews.
	ReviewsRule = Rule{Name: "reviews", RequireReviews: true, MinReviews: 1000}
	// InstallsRule keeps apps whose install count parses.
	InstallsRule = Rule{Name: "installs", RequireInstalls: true}
	// TrendRule keeps apps with parseable installs and more than 500 reviews.
	TrendRule = Rule{Name: "trend", RequireInstalls: true, RequireReviews: true, MinReviews: 500}
)

// Cleaner transforms raw source rows into typed records.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// CleanApps applies rule to the raw catalog and returns the surviving rows in
// input order. Dropped rows are counted and logged, never returned as errors.
func (c *Cleaner) CleanApps(raw []*models.RawApp, rule Rule) []*models.App {
	result := make([]*models.App, 0, len(raw))

	for _, r := range raw {
		if r == nil {
			continue
		}
		app := &models.App{
			App:      r.App,
			Category: NormaliseLabel(r.Category),
			Rating:   ParseRating(r.Rating),
		}

		if rule.RequireInstalls {
			n, ok := ParseCount(r.Installs)
			if !ok {
				c.logger.Debug("[cleaner] %s: dropping %q, installs %q not a count", rule.Name, r.App, r.Installs)
				continue
			}
			app.Installs = n
		}

		if rule.RequireReviews {
			n, ok := ParseCount(r.Reviews)
			if !ok {
				c.logger.Debug("[cleaner] %s: dropping %q, reviews %q not a count", rule.Name, r.App, r.Reviews)
				continue
			}
			if n <= rule.MinReviews {
				continue
			}
			app.Reviews = n
		}

		app.LastUpdated, app.HasUpdated = ParseDate(r.LastUpdated)
		result = append(result, app)
	}

	c.logger.Info("[cleaner] %s: cleaned %d → %d apps (dropped %d)",
		rule.Name, len(raw), len(result), len(raw)-len(result))
	return result
}

// CleanReviews normalises the reviews table. Rows are never dropped here:
// a review with a missing sentiment still counts towards category frequency.
func (c *Cleaner) CleanReviews(raw []*models.RawReview) []*models.Review {
	result := make([]*models.Review, 0, len(raw))
	missing := 0
	for _, r := range raw {
		if r == nil {
			continue
		}
		rv := &models.Review{App: r.App, Sentiment: NormaliseLabel(r.Sentiment)}
		if rv.Sentiment == "" {
			missing++
		}
		result = append(result, rv)
	}
	c.logger.Debug("[cleaner] reviews: %d rows, %d without sentiment", len(result), missing)
	return result
}
