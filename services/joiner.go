package services

import "playstore-dashboard/models"

// Join pairs every review with every catalog row of the same App name.
// Reviews without a match are dropped; a name listed twice in the catalog
// yields two output rows per review. Output follows review order, then
// catalog order within a review.
func Join(reviews []*models.Review, apps []*models.App) []*models.JoinedReview {
	byName := make(map[string][]*models.App, len(apps))
	for _, a := range apps {
		byName[a.App] = append(byName[a.App], a)
	}

	out := make([]*models.JoinedReview, 0, len(reviews))
	for _, r := range reviews {
		for _, a := range byName[r.App] {
			out = append(out, &models.JoinedReview{
				App:         a.App,
				Category:    a.Category,
				Rating:      a.Rating,
				Sentiment:   r.Sentiment,
				RatingGroup: BucketRating(a.Rating),
			})
		}
	}
	return out
}
