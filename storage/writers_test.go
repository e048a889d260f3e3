package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"playstore-dashboard/models"
)

func installsResult() *models.Result {
	return &models.Result{
		Task: "Global Installs by Category",
		Installs: []models.CategorySummary{
			{Category: "FINANCE", Installs: 500_000, HighlightLabel: models.LabelBelow1M},
			{Category: "TOOLS", Installs: 2_000_000, Highlight: true, HighlightLabel: models.LabelAbove1M},
		},
	}
}

func TestCSVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "installs.csv")

	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(installsResult()))
	require.NoError(t, w.Close())

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Category,Installs,Highlight,Highlight_Label\n"+
			"FINANCE,500000,false,Below 1M Installs\n"+
			"TOOLS,2000000,true,Above 1M Installs\n",
		string(body))
}

func TestStreamCSVWriterEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamCSVWriter(&buf)
	require.NoError(t, w.Write(&models.Result{}))
	require.NoError(t, w.Close())
	assert.Empty(t, buf.String())
}

func TestXLSXWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.xlsx")

	w, err := NewXLSXWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(installsResult()))
	require.NoError(t, w.Write(&models.Result{
		Task:      "Sentiment Distribution",
		Sentiment: []models.SentimentTally{{Category: "GAME", RatingGroup: models.RatingHigh, Positive: 2}},
	}))
	require.NoError(t, w.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Global Installs by Category", "Sentiment Distribution"}, f.GetSheetList())

	rows, err := f.GetRows("Global Installs by Category")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Category", "Installs", "Highlight", "Highlight_Label"}, rows[0])
	assert.Equal(t, "TOOLS", rows[2][0])
	assert.Equal(t, "2000000", rows[2][1])

	rows, err = f.GetRows("Sentiment Distribution")
	require.NoError(t, err)
	assert.Equal(t, []string{"GAME", "4-5 stars", "2", "0", "0"}, rows[1])
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet1", sheetName(""))
	assert.Len(t, sheetName("a very long task name that keeps going on"), 31)
}
