package models

import (
	"fmt"
	"time"
)

// RatingGroup is the discrete bucket a catalog rating falls into.
type RatingGroup string

const (
	RatingLow  RatingGroup = "1-2 stars"
	RatingMid  RatingGroup = "3-4 stars"
	RatingHigh RatingGroup = "4-5 stars"
)

// Sentiment labels found in the reviews table.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

// PivotTable is the wide result of a grouped count: one row per distinct key tuple,
// one count column per distinct pivot value.
type PivotTable struct {
	KeyNames []string
	Columns  []string
	Rows     []PivotRow
}

// PivotRow is one key tuple with a count per pivot column.
type PivotRow struct {
	Keys   []string
	Counts []int
}

// Count returns the tally of column col in row r, or 0 when col is not a pivot column.
func (p *PivotTable) Count(r PivotRow, col string) int {
	for i, c := range p.Columns {
		if c == col {
			return r.Counts[i]
		}
	}
	return 0
}

// SentimentTally is one stacked bar of the sentiment chart.
type SentimentTally struct {
	Category    string      `json:"category"`
	RatingGroup RatingGroup `json:"rating_group"`
	Positive    int         `json:"positive"`
	Neutral     int         `json:"neutral"`
	Negative    int         `json:"negative"`
}

// Total returns the number of reviews in the bar.
func (s SentimentTally) Total() int {
	return s.Positive + s.Neutral + s.Negative
}

// Highlight labels shown on the installs chart.
const (
	LabelAbove1M = "Above 1M Installs"
	LabelBelow1M = "Below 1M Installs"
)

// CategorySummary is one bar of the installs-by-category chart.
type CategorySummary struct {
	Category       string `json:"category"`
	Installs       uint64 `json:"installs"`
	Highlight      bool   `json:"highlight"`
	HighlightLabel string `json:"highlight_label"`
}

// YearMonth is a calendar month period. The zero value is the null period,
// used for rows whose update date could not be parsed.
type YearMonth struct {
	Year  int
	Month time.Month
	Valid bool
}

// NullPeriod is rendered for rows without a usable date.
const NullPeriod = "NaT"

// MonthOf returns the period containing t.
func MonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month(), Valid: true}
}

func (y YearMonth) String() string {
	if !y.Valid {
		return NullPeriod
	}
	return fmt.Sprintf("%04d-%02d", y.Year, int(y.Month))
}

// Before orders periods chronologically with the null period last.
func (y YearMonth) Before(o YearMonth) bool {
	switch {
	case !y.Valid:
		return false
	case !o.Valid:
		return true
	case y.Year != o.Year:
		return y.Year < o.Year
	default:
		return y.Month < o.Month
	}
}

// Time returns the first instant of the period in UTC.
func (y YearMonth) Time() time.Time {
	return time.Date(y.Year, y.Month, 1, 0, 0, 0, 0, time.UTC)
}

// MarshalText renders the period as YYYY-MM or NaT.
func (y YearMonth) MarshalText() ([]byte, error) {
	return []byte(y.String()), nil
}

// UnmarshalText parses YYYY-MM; NaT yields the null period.
func (y *YearMonth) UnmarshalText(b []byte) error {
	if string(b) == NullPeriod {
		*y = YearMonth{}
		return nil
	}
	t, err := time.Parse("2006-01", string(b))
	if err != nil {
		return fmt.Errorf("year-month %q: %w", b, err)
	}
	*y = MonthOf(t)
	return nil
}

// MonthlyCategorySeries is one point of the installs trend.
// Previous and GrowthPct are nil when undefined.
type MonthlyCategorySeries struct {
	YearMonth   YearMonth `json:"year_month"`
	Category    string    `json:"category"`
	Installs    uint64    `json:"installs"`
	Previous    *uint64   `json:"previous"`
	GrowthPct   *float64  `json:"growth_pct"`
	Significant bool      `json:"significant"`
}
