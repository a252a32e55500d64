// Package query holds the read-only views over a guest list: search,
// status filtering and RSVP counts. Every function leaves its input alone.
package query

import (
	"fmt"
	"strings"

	"wedding-planner/internal/models"
)

// Stats are the RSVP counts of a guest list
type Stats struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
	Declined  int `json:"declined"`
	Maybe     int `json:"maybe"`
}

// FilterBySearch returns the guests whose name contains query, ignoring case.
// A blank query returns guests unchanged.
func FilterBySearch(guests []models.Guest, query string) []models.Guest {
	if strings.TrimSpace(query) == "" {
		return guests
	}
	needle := strings.ToLower(query)

	result := make([]models.Guest, 0, len(guests))
	for _, g := range guests {
		if strings.Contains(strings.ToLower(g.Name), needle) {
			result = append(result, g)
		}
	}
	return result
}

// FilterByStatus returns the guests with the given RSVP status.
// models.FilterAll returns guests unchanged.
func FilterByStatus(guests []models.Guest, status models.StatusFilter) []models.Guest {
	if status == models.FilterAll {
		return guests
	}

	result := make([]models.Guest, 0, len(guests))
	for _, g := range guests {
		if models.StatusFilter(g.RSVP) == status {
			result = append(result, g)
		}
	}
	return result
}

// ApplyFilters searches first, then filters by status
func ApplyFilters(guests []models.Guest, query string, status models.StatusFilter) []models.Guest {
	return FilterByStatus(FilterBySearch(guests, query), status)
}

// ComputeStats counts the guests per RSVP status
func ComputeStats(guests []models.Guest) Stats {
	stats := Stats{Total: len(guests)}
	for _, g := range guests {
		switch g.RSVP {
		case models.RSVPYes:
			stats.Confirmed++
		case models.RSVPNo:
			stats.Declined++
		case models.RSVPMaybe:
			stats.Maybe++
		}
	}
	return stats
}

// Summary renders the stats on one line
func (s Stats) Summary() string {
	return fmt.Sprintf("Total: %d | Confirmed: %d | Declined: %d | Maybe: %d",
		s.Total, s.Confirmed, s.Declined, s.Maybe)
}
