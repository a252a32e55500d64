package registry

import (
	"encoding/json"
	"fmt"
	"strings"

	"wedding-planner/internal/models"
)

// EncodeGuests serialises the whole guest list as one JSON array
func EncodeGuests(guests []models.Guest) (string, error) {
	if guests == nil {
		guests = []models.Guest{}
	}
	data, err := json.Marshal(guests)
	if err != nil {
		return "", fmt.Errorf("failed to marshal guests: %w", err)
	}
	return string(data), nil
}

// DecodeGuests parses a snapshot written by EncodeGuests.
// Records without an id or a name, and repeated ids, are dropped and counted
// in skipped. RSVP values are matched ignoring case; unknown ones read as Maybe.
func DecodeGuests(raw string) (guests []models.Guest, skipped int, err error) {
	var decoded []models.Guest
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal guests: %w", err)
	}

	guests = make([]models.Guest, 0, len(decoded))
	seen := make(map[string]struct{}, len(decoded))
	for _, g := range decoded {
		g.Name = strings.TrimSpace(g.Name)
		if g.ID == "" || g.Name == "" {
			skipped++
			continue
		}
		if _, dup := seen[g.ID]; dup {
			skipped++
			continue
		}
		seen[g.ID] = struct{}{}

		g.RSVP = normalizeRSVP(g.RSVP)
		guests = append(guests, g)
	}
	return guests, skipped, nil
}

// normalizeRSVP matches the canonical names ignoring case; anything else is Maybe
func normalizeRSVP(s models.RSVPStatus) models.RSVPStatus {
	v := strings.TrimSpace(string(s))
	for _, status := range models.Statuses {
		if strings.EqualFold(v, string(status)) {
			return status
		}
	}
	return models.RSVPMaybe
}
