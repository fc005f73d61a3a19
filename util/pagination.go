package util

import (
	"net/http"
	"strconv"

	"hive-social-network/models"
)

// PageFromRequest reads the page and limit query parameters. page defaults
// to 1; limit defaults to defaultLimit and is capped at maxLimit. Values that
// are missing, malformed or below 1 fall back to the defaults.
func PageFromRequest(r *http.Request, defaultLimit, maxLimit int) models.Page {
	q := r.URL.Query()
	page := positiveInt(q.Get("page"), 1)
	limit := positiveInt(q.Get("limit"), defaultLimit)
	if limit > maxLimit {
		limit = maxLimit
	}
	return models.Page{Number: page, Limit: limit}
}

func positiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
