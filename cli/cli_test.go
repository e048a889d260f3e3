package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playstore-dashboard/models"
	"playstore-dashboard/services"
	"playstore-dashboard/utils"
)

const appsCSV = `App,Category,Rating,Reviews,Installs,Last Updated
Tool A,TOOLS,4.5,"2,000","5,000,000+","January 7, 2018"
Tool B,TOOLS,3.5,1500,"10,000+","February 7, 2018"
Money,FINANCE,4.1,800,"500,000+","January 2, 2018"
Biz One,BUSINESS,4.0,900,"1,000+","January 9, 2018"
Biz Two,BUSINESS,4.0,900,"5,000+","February 9, 2018"
Broken,1.9,19,3.0M,Free,"1.0.19"
`

const reviewsCSV = `App,Translated_Review,Sentiment,Sentiment_Polarity,Sentiment_Subjectivity
Tool A,great,Positive,0.8,0.5
Tool A,meh,Neutral,0,0.1
Tool B,bad,Negative,-0.5,0.4
Tool B,nan,nan,nan,nan
Nobody,ok,Positive,0.2,0.3
`

type fixture struct {
	apps, reviews string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{apps: filepath.Join(dir, "apps.csv"), reviews: filepath.Join(dir, "reviews.csv")}
	require.NoError(t, os.WriteFile(f.apps, []byte(appsCSV), 0o644))
	require.NoError(t, os.WriteFile(f.reviews, []byte(reviewsCSV), 0o644))
	t.Setenv("DATA_SOURCE", "csv")
	t.Setenv("DEBUG", "")
	return f
}

func clockAt(t *testing.T, hour int) services.Clock {
	loc, err := services.LoadGateLocation("Asia/Kolkata")
	require.NoError(t, err)
	return services.FixedClock(time.Date(2026, 10, 19, hour, 0, 0, 0, loc))
}

func execute(t *testing.T, clock services.Clock, f fixture, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(utils.Discard(), clock)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--apps", f.apps, "--reviews", f.reviews, "--tz", "Asia/Kolkata"))
	err := root.Execute()
	return out.String(), err
}

func TestInstallsCSV(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, clockAt(t, 15), f, "installs", "--format", "csv")
	require.NoError(t, err)

	assert.Equal(t,
		"Category,Installs,Highlight,Highlight_Label\n"+
			"BUSINESS,6000,false,Below 1M Installs\n"+
			"FINANCE,500000,false,Below 1M Installs\n"+
			"TOOLS,5010000,true,Above 1M Installs\n",
		out)
}

func TestLateEveningShowsWarning(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, clockAt(t, 22), f, "installs")
	require.NoError(t, err)
	assert.Contains(t, out, "The dashboard is only available between 12 PM and 8 PM IST.")
	assert.NotContains(t, out, "FINANCE")

	out, err = execute(t, clockAt(t, 22), f, "trend", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "The graph is only visible between 12 PM and 9 PM IST.")
}

func TestSentimentIgnoresClock(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, clockAt(t, 22), f, "run", "Sentiment Distribution", "--format", "json")
	require.NoError(t, err)

	var res models.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Renderable)
	assert.Equal(t, []models.SentimentTally{
		{Category: "TOOLS", RatingGroup: models.RatingMid, Negative: 1},
		{Category: "TOOLS", RatingGroup: models.RatingHigh, Positive: 1, Neutral: 1},
	}, res.Sentiment)
}

func TestTrendJSONOutsideWindowStillCarriesData(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, clockAt(t, 23), f, "trend", "--format", "json")
	require.NoError(t, err)

	var res struct {
		Renderable bool              `json:"renderable"`
		Warning    string            `json:"warning"`
		Trend      []json.RawMessage `json:"trend"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Renderable)
	assert.NotEmpty(t, res.Warning)
	assert.Len(t, res.Trend, 2)
}

func TestMenu(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, clockAt(t, 15), f, "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Sentiment Distribution (sentiment)")
	assert.Contains(t, out, "2. Global Installs by Category (installs)")
	assert.Contains(t, out, "3. Installs Trend Over Time (trend)")
}

func TestBadArguments(t *testing.T) {
	f := newFixture(t)

	_, err := execute(t, clockAt(t, 15), f, "installs", "--format", "pdf")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, clockAt(t, 15), f, "run", "Revenue")
	assert.ErrorIs(t, err, services.ErrUnknownTask)

	_, err = execute(t, clockAt(t, 15), f, "installs", "--source", "mongo")
	assert.ErrorContains(t, err, "unknown data source")
}

func TestFileOutputs(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	xlsx := filepath.Join(dir, "installs.xlsx")
	png := filepath.Join(dir, "charts", "installs.png")
	html := filepath.Join(dir, "trend.html")

	_, err := execute(t, clockAt(t, 15), f, "installs", "--format", "xlsx", "--out", xlsx, "--chart", png)
	require.NoError(t, err)
	assert.FileExists(t, xlsx)

	body, err := os.ReadFile(png)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))

	_, err = execute(t, clockAt(t, 15), f, "trend", "--format", "html", "--out", html)
	require.NoError(t, err)
	page, err := os.ReadFile(html)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<h1>Installs Trend Over Time</h1>")
}

func TestMissingInputFile(t *testing.T) {
	f := newFixture(t)
	f.apps = filepath.Join(t.TempDir(), "missing.csv")

	_, err := execute(t, clockAt(t, 15), f, "installs")
	assert.Error(t, err)
}
