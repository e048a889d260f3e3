package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playstore-dashboard/models"
	"playstore-dashboard/utils"
)

func newTestLogger() *utils.Logger { return utils.Discard() }

func TestCleanAppsReviewsRule(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawApp{
		{App: "Big", Category: "GAME", Rating: "4.5", Reviews: "2,500"},
		{App: "Small", Category: "GAME", Rating: "4.5", Reviews: "1000"},
		{App: "Broken", Category: "GAME", Rating: "19", Reviews: "3.0M"},
		{App: "NoRating", Category: "TOOLS", Rating: "NaN", Reviews: "5000"},
	}

	got := c.CleanApps(raw, ReviewsRule)

	require.Len(t, got, 2)
	assert.Equal(t, "Big", got[0].App)
	assert.Equal(t, uint64(2500), got[0].Reviews)
	assert.Equal(t, "NoRating", got[1].App)
	assert.True(t, math.IsNaN(got[1].Rating))
}

func TestCleanAppsInstallsRule(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawApp{
		{App: "A", Category: "TOOLS", Installs: "1,000,000+", Reviews: "junk"},
		{App: "B", Category: "TOOLS", Installs: "Free"},
		{App: "C", Category: "TOOLS", Installs: "0"},
	}

	got := c.CleanApps(raw, InstallsRule)

	require.Len(t, got, 2)
	assert.Equal(t, uint64(1000000), got[0].Installs)
	assert.Equal(t, uint64(0), got[1].Installs)
}

func TestCleanAppsTrendRuleKeepsUndatedRows(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawApp{
		{App: "Dated", Category: "BUSINESS", Installs: "10,000+", Reviews: "600", LastUpdated: "March 3, 2018"},
		{App: "Undated", Category: "BUSINESS", Installs: "10,000+", Reviews: "600", LastUpdated: "not a date"},
		{App: "FewReviews", Category: "BUSINESS", Installs: "10,000+", Reviews: "500"},
		{App: "BadReviews", Category: "BUSINESS", Installs: "10,000+", Reviews: "many"},
	}

	got := c.CleanApps(raw, TrendRule)

	require.Len(t, got, 2)
	assert.True(t, got[0].HasUpdated)
	assert.False(t, got[1].HasUpdated)
}

func TestCleanAppsEmptyInput(t *testing.T) {
	c := NewCleaner(newTestLogger())
	assert.Empty(t, c.CleanApps(nil, InstallsRule))
	assert.Empty(t, c.CleanReviews(nil))
}

func TestCleanReviewsMapsMissingSentiment(t *testing.T) {
	c := NewCleaner(newTestLogger())
	got := c.CleanReviews([]*models.RawReview{
		{App: "A", Sentiment: "Positive"},
		{App: "A", Sentiment: "nan"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "Positive", got[0].Sentiment)
	assert.Equal(t, "", got[1].Sentiment)
}
