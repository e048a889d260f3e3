package models

import "strconv"

// Result is what a pipeline hands to the chart layer. Exactly one of the
// table fields is set, matching Task.
type Result struct {
	Task       string `json:"task"`
	Title      string `json:"title"`
	Renderable bool   `json:"renderable"`
	Warning    string `json:"warning,omitempty"`

	Sentiment []SentimentTally        `json:"sentiment,omitempty"`
	Installs  []CategorySummary       `json:"installs,omitempty"`
	Trend     []MonthlyCategorySeries `json:"trend,omitempty"`
}

// Rows returns the number of rows in whichever table is set.
func (r *Result) Rows() int {
	return len(r.Sentiment) + len(r.Installs) + len(r.Trend)
}

// Records flattens whichever table is set into a header and string rows, in
// the column names the dashboard uses. Undefined values are empty strings.
func (r *Result) Records() ([]string, [][]string) {
	switch {
	case r.Sentiment != nil:
		header := []string{"Category", "Rating Groups", SentimentPositive, SentimentNeutral, SentimentNegative}
		rows := make([][]string, 0, len(r.Sentiment))
		for _, s := range r.Sentiment {
			rows = append(rows, []string{
				s.Category, string(s.RatingGroup),
				strconv.Itoa(s.Positive), strconv.Itoa(s.Neutral), strconv.Itoa(s.Negative),
			})
		}
		return header, rows
	case r.Installs != nil:
		header := []string{"Category", "Installs", "Highlight", "Highlight_Label"}
		rows := make([][]string, 0, len(r.Installs))
		for _, c := range r.Installs {
			rows = append(rows, []string{
				c.Category, strconv.FormatUint(c.Installs, 10),
				strconv.FormatBool(c.Highlight), c.HighlightLabel,
			})
		}
		return header, rows
	case r.Trend != nil:
		header := []string{"YearMonth", "Category", "Installs", "previous", "MoM", "Significant"}
		rows := make([][]string, 0, len(r.Trend))
		for _, p := range r.Trend {
			prev, mom := "", ""
			if p.Previous != nil {
				prev = strconv.FormatUint(*p.Previous, 10)
			}
			if p.GrowthPct != nil {
				mom = strconv.FormatFloat(*p.GrowthPct, 'f', -1, 64)
			}
			rows = append(rows, []string{
				p.YearMonth.String(), p.Category, strconv.FormatUint(p.Installs, 10),
				prev, mom, strconv.FormatBool(p.Significant),
			})
		}
		return header, rows
	}
	return nil, nil
}
