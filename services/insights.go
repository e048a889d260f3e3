package services

import (
	"sort"

	"playstore-dashboard/models"
	"playstore-dashboard/utils"
)

const (
	topCategories     = 5
	highlightInstalls = 1_000_000
)

var (
	installsExcludedPrefixes = []string{"A", "C", "G", "S"}
	trendExcludedAppPrefixes = []string{"x", "y", "z"}
	trendCategoryPrefixes    = []string{"E", "C", "B"}
)

// InsightService runs the three dashboard pipelines. Each method reads only its
// arguments and returns a fresh table, so repeated calls on the same input give
// identical results.
type InsightService struct {
	logger  *utils.Logger
	cleaner *Cleaner
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger, cleaner: NewCleaner(logger)}
}

func appCategory(a *models.App) string { return a.Category }
func appName(a *models.App) string { return a.App }
func appInstalls(a *models.App) uint64 { return a.Installs }
func joinedCategory(j *models.JoinedReview) string { return j.Category }

// SentimentByRatingGroup tallies review sentiment per category and rating
// bucket, for the five categories with the most joined reviews.
func (s *InsightService) SentimentByRatingGroup(rawApps []*models.RawApp, rawReviews []*models.RawReview) []models.SentimentTally {
	apps := s.cleaner.CleanApps(rawApps, ReviewsRule)
	reviews := s.cleaner.CleanReviews(rawReviews)

	joined := Join(reviews, apps)
	top := TopN(joined, joinedCategory, topCategories)
	joined = KeepIn(joined, joinedCategory, top)
	s.logger.Debug("[insights] sentiment: %d joined reviews in %v", len(joined), top)

	pivot := GroupCount(joined,
		[]string{"Category", "Rating Groups"},
		func(j *models.JoinedReview) []string { return []string{j.Category, string(j.RatingGroup)} },
		func(j *models.JoinedReview) string { return j.Sentiment },
	)

	out := make([]models.SentimentTally, 0, len(pivot.Rows))
	for _, row := range pivot.Rows {
		out = append(out, models.SentimentTally{
			Category:    row.Keys[0],
			RatingGroup: models.RatingGroup(row.Keys[1]),
			Positive:    pivot.Count(row, models.SentimentPositive),
			Neutral:     pivot.Count(row, models.SentimentNeutral),
			Negative:    pivot.Count(row, models.SentimentNegative),
		})
	}
	return out
}

// InstallsByCategory sums installs for the top five categories, minus those
// starting with A, C, G or S, and flags categories holding an app above 1M installs.
func (s *InsightService) InstallsByCategory(rawApps []*models.RawApp) []models.CategorySummary {
	apps := s.cleaner.CleanApps(rawApps, InstallsRule)

	top := TopN(apps, appCategory, topCategories)
	apps = KeepIn(apps, appCategory, top)
	apps = ExcludeByPrefix(apps, appCategory, installsExcludedPrefixes...)

	sums := GroupSum(apps, appCategory, appInstalls)
	flags := HighlightFlag(apps, appCategory, appInstalls, highlightInstalls)

	out := make([]models.CategorySummary, 0, len(sums))
	for _, sum := range sums {
		cs := models.CategorySummary{
			Category:       sum.Key,
			Installs:       sum.Total,
			Highlight:      flags[sum.Key],
			HighlightLabel: models.LabelBelow1M,
		}
		if cs.Highlight {
			cs.HighlightLabel = models.LabelAbove1M
		}
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

type periodKey struct {
	period   models.YearMonth
	category string
}

// InstallsTrend builds the monthly installs series for E*, C* and B* categories
// with month-over-month growth per category.
func (s *InsightService) InstallsTrend(rawApps []*models.RawApp) []models.MonthlyCategorySeries {
	apps := s.cleaner.CleanApps(rawApps, TrendRule)
	apps = ExcludeByPrefix(apps, appName, trendExcludedAppPrefixes...)
	apps = KeepByPrefix(apps, appCategory, trendCategoryPrefixes...)

	sums := GroupSum(apps, func(a *models.App) periodKey {
		k := periodKey{category: a.Category}
		if a.HasUpdated {
			k.period = models.MonthOf(a.LastUpdated)
		}
		return k
	}, appInstalls)

	series := make([]models.MonthlyCategorySeries, 0, len(sums))
	for _, sum := range sums {
		series = append(series, models.MonthlyCategorySeries{
			YearMonth: sum.Key.period,
			Category:  sum.Key.category,
			Installs:  sum.Total,
		})
	}
	return MonthOverMonthGrowth(series)
}
