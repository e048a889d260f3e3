package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearMonthOrderingAndText(t *testing.T) {
	jan := MonthOf(time.Date(2018, 1, 31, 23, 0, 0, 0, time.UTC))
	feb := YearMonth{Year: 2018, Month: time.February, Valid: true}
	dec := YearMonth{Year: 2017, Month: time.December, Valid: true}
	null := YearMonth{}

	assert.Equal(t, "2018-01", jan.String())
	assert.Equal(t, NullPeriod, null.String())
	assert.True(t, jan.Before(feb))
	assert.True(t, dec.Before(jan))
	assert.False(t, feb.Before(jan))
	assert.True(t, feb.Before(null))
	assert.False(t, null.Before(feb))
	assert.False(t, null.Before(null))
	assert.Equal(t, time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC), feb.Time())
}

func TestResultRecordsTrend(t *testing.T) {
	prev := uint64(100)
	growth := 50.0
	r := &Result{Trend: []MonthlyCategorySeries{
		{YearMonth: YearMonth{Year: 2018, Month: 1, Valid: true}, Category: "X", Installs: 100},
		{YearMonth: YearMonth{Year: 2018, Month: 2, Valid: true}, Category: "X", Installs: 150, Previous: &prev, GrowthPct: &growth, Significant: true},
	}}

	header, rows := r.Records()

	assert.Equal(t, []string{"YearMonth", "Category", "Installs", "previous", "MoM", "Significant"}, header)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2018-01", "X", "100", "", "", "false"}, rows[0])
	assert.Equal(t, []string{"2018-02", "X", "150", "100", "50", "true"}, rows[1])
}

func TestResultRecordsSentimentAndInstalls(t *testing.T) {
	s := &Result{Sentiment: []SentimentTally{{Category: "GAME", RatingGroup: RatingHigh, Positive: 3, Negative: 1}}}
	header, rows := s.Records()
	assert.Equal(t, "Rating Groups", header[1])
	assert.Equal(t, []string{"GAME", "4-5 stars", "3", "0", "1"}, rows[0])

	i := &Result{Installs: []CategorySummary{{Category: "TOOLS", Installs: 2_000_000, Highlight: true, HighlightLabel: LabelAbove1M}}}
	_, rows = i.Records()
	assert.Equal(t, []string{"TOOLS", "2000000", "true", "Above 1M Installs"}, rows[0])

	header, rows = (&Result{}).Records()
	assert.Nil(t, header)
	assert.Nil(t, rows)
}

func TestSeriesJSONUsesNullForUndefinedGrowth(t *testing.T) {
	b, err := json.Marshal(MonthlyCategorySeries{YearMonth: YearMonth{Year: 2018, Month: 3, Valid: true}, Category: "X", Installs: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"year_month":"2018-03","category":"X","installs":1,"previous":null,"growth_pct":null,"significant":false}`, string(b))
}

func TestPivotCount(t *testing.T) {
	p := &PivotTable{Columns: []string{"Negative", "Positive"}}
	row := PivotRow{Keys: []string{"GAME"}, Counts: []int{2, 5}}
	assert.Equal(t, 5, p.Count(row, "Positive"))
	assert.Equal(t, 0, p.Count(row, "Neutral"))
}

func TestYearMonthUnmarshalText(t *testing.T) {
	var y YearMonth
	require.NoError(t, y.UnmarshalText([]byte("2018-03")))
	assert.Equal(t, YearMonth{Year: 2018, Month: time.March, Valid: true}, y)

	require.NoError(t, y.UnmarshalText([]byte(NullPeriod)))
	assert.False(t, y.Valid)

	assert.Error(t, y.UnmarshalText([]byte("March")))
}
