package social

import (
	"context"

	"hive-social-network/database"
	"hive-social-network/models"
)

// PostTraffic counts posts per UTC creation day, oldest day first.
func (s *Service) PostTraffic(ctx context.Context) (counts []models.DailyCount, err error) {
	defer func() { s.track(ctx, "post_traffic", err) }()
	return s.store.Repo().DailyCounts(ctx, database.TrafficPosts)
}

// CommentTraffic counts comments per UTC creation day, oldest day first.
func (s *Service) CommentTraffic(ctx context.Context) (counts []models.DailyCount, err error) {
	defer func() { s.track(ctx, "comment_traffic", err) }()
	return s.store.Repo().DailyCounts(ctx, database.TrafficComments)
}
