// Package views holds pure projections over domain state. Nothing here
// mutates anything; callers re-invoke on dependency change.
package views

import (
	"math"
	"strings"

	"github.com/example/campus-shuttle/internal/models"
)

// Filter returns the vehicles matching a free-text query and the
// selected route, preserving original order. The query matches title
// or route case-insensitively (empty query matches all). The route
// clause matches on the origin token, i.e. the text before " to ";
// an empty token is vacuously true.
func Filter(vehicles []models.Vehicle, query, selectedRoute string) []models.Vehicle {
	q := strings.ToLower(strings.TrimSpace(query))
	routeToken := strings.ToLower(strings.TrimSpace(originToken(selectedRoute)))

	out := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		title := strings.ToLower(v.Title)
		route := strings.ToLower(v.Route)
		if q != "" && !strings.Contains(title, q) && !strings.Contains(route, q) {
			continue
		}
		if routeToken != "" && !strings.Contains(route, routeToken) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func originToken(route string) string {
	if i := strings.Index(route, " to "); i >= 0 {
		return route[:i]
	}
	return route
}

// AverageRating is the arithmetic mean of the history rounded to one
// decimal place, or 0 when the history is empty.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(ratings))
	return math.Round(avg*10) / 10
}
