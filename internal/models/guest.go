package models

import (
	"strings"
)

// Guest represents a wedding invitee
type Guest struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	RSVP      RSVPStatus `json:"rsvp"`
	AddedDate string     `json:"addedDate"`
	IsRandom  bool       `json:"isRandom,omitempty"`
}

// RSVPStatus represents the guest's reply to the invitation
type RSVPStatus string

const (
	RSVPYes   RSVPStatus = "Yes"
	RSVPNo    RSVPStatus = "No"
	RSVPMaybe RSVPStatus = "Maybe"
)

// Statuses lists every RSVP status in display order
var Statuses = []RSVPStatus{RSVPYes, RSVPNo, RSVPMaybe}

// Valid reports whether s is one of the known statuses
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPYes, RSVPNo, RSVPMaybe:
		return true
	}
	return false
}

// OrDefault returns Maybe for the zero value and s otherwise
func (s RSVPStatus) OrDefault() RSVPStatus {
	if s == "" {
		return RSVPMaybe
	}
	return s
}

// ParseRSVP parses user input such as "yes", "N" or "maybe"
func ParseRSVP(text string) (RSVPStatus, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "yes", "y":
		return RSVPYes, nil
	case "no", "n":
		return RSVPNo, nil
	case "maybe", "m":
		return RSVPMaybe, nil
	}
	return "", &ValidationError{Field: "rsvp", Reason: "must be one of Yes, No or Maybe"}
}

// StatusFilter selects guests by RSVP status; FilterAll matches everyone
type StatusFilter string

const FilterAll StatusFilter = "All"

// FilterFor returns the filter matching a single status
func FilterFor(s RSVPStatus) StatusFilter {
	return StatusFilter(s)
}

// ParseStatusFilter accepts "all" or any RSVP status
func ParseStatusFilter(text string) (StatusFilter, error) {
	if strings.EqualFold(strings.TrimSpace(text), string(FilterAll)) || strings.TrimSpace(text) == "" {
		return FilterAll, nil
	}
	s, err := ParseRSVP(text)
	if err != nil {
		return "", &ValidationError{Field: "filter", Reason: "must be All, Yes, No or Maybe"}
	}
	return FilterFor(s), nil
}
