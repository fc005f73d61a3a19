package database

import (
	"context"
	"fmt"
	"time"

	"hive-social-network/models"
)

// TrafficSource names a table whose rows can be counted per day.
type TrafficSource string

const (
	TrafficPosts    TrafficSource = "posts"
	TrafficComments TrafficSource = "comments"
)

// DailyCounts groups the rows of source by UTC creation day, oldest day
// first. Timestamps are stored in UTC, so the first ten characters are the
// day.
func (r *Repo) DailyCounts(ctx context.Context, source TrafficSource) (counts []models.DailyCount, err error) {
	defer func(start time.Time) { observe("daily_counts", string(source), start, err) }(time.Now())

	if source != TrafficPosts && source != TrafficComments {
		return nil, fmt.Errorf("unknown traffic source %q", source)
	}

	rows, err := r.q.QueryContext(ctx,
		"SELECT substr(created_at, 1, 10) AS day, COUNT(*) FROM "+string(source)+" GROUP BY day ORDER BY day")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts = []models.DailyCount{}
	for rows.Next() {
		var c models.DailyCount
		if err = rows.Scan(&c.Date, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
