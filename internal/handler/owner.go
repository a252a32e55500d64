package handler

import (
	"fmt"
	"strings"

	"wedding-planner/internal/models"
	"wedding-planner/internal/query"
)

const ownerHelp = "Send *stats* for the RSVP counts, *list* for every guest, " +
	"or *yes*/*no*/*maybe* to see who replied that way."

// HandleOwnerMessage answers a chat message from the owner's phone.
// It only reads the guest list. ok is false when the text is not a command.
func (c *Controller) HandleOwnerMessage(text string) (reply string, ok bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return "", false
	}

	guests := c.registry.List()
	switch {
	case containsAny(text, "stats", "summary", "count", "📊"):
		return summaryMessage(query.ComputeStats(guests)), true
	case containsAny(text, "list", "guests", "all"):
		return guestLines("All guests", guests), true
	case containsAny(text, "help", "?"):
		return ownerHelp, true
	}

	if status, err := models.ParseRSVP(text); err == nil {
		matched := query.FilterByStatus(guests, models.FilterFor(status))
		return guestLines(fmt.Sprintf("Guests with RSVP %s", status), matched), true
	}
	return "", false
}

func guestLines(title string, guests []models.Guest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 *%s* (%d)\n", title, len(guests))
	if len(guests) == 0 {
		b.WriteString("\nNo guests found.")
		return b.String()
	}
	for _, g := range guests {
		fmt.Fprintf(&b, "\n• %s: %s", g.Name, g.RSVP)
	}
	return b.String()
}

// containsAny checks if the text contains any of the given keywords
func containsAny(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
