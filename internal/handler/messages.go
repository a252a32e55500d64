package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"wedding-planner/internal/models"
	"wedding-planner/internal/query"
	"wedding-planner/internal/registry"
)

// UserMessage turns an error into text fit for the user.
// Discarded random guests produce no message.
func UserMessage(err error) string {
	if err == nil || errors.Is(err, registry.ErrStaleResult) {
		return ""
	}

	var (
		verr  *models.ValidationError
		perr  *models.ProviderError
		fault *models.PersistenceFault
	)
	switch {
	case errors.As(err, &verr):
		return capitalize(verr.Reason)
	case errors.As(err, &perr):
		if perr.Op == "decode" {
			return "No user data received from API"
		}
		return "Failed to fetch random guest. Please check your internet connection."
	case errors.As(err, &fault):
		if fault.Op == "load" {
			return "Failed to load guests"
		}
		return "Failed to save guests"
	case errors.Is(err, models.ErrNotFound):
		return "Guest not found"
	case errors.Is(err, ErrRequestPending):
		return "Still fetching the previous random guest"
	case errors.Is(err, ErrNotComposing):
		return "Start adding a guest first"
	case errors.Is(err, ErrSharingDisabled):
		return "WhatsApp sharing is not configured"
	case errors.Is(err, ErrClosed):
		return ""
	}
	return fmt.Sprintf("Something went wrong: %v", err)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// summaryMessage formats the stats for a chat message
func summaryMessage(stats query.Stats) string {
	return fmt.Sprintf(
		"💍 *Guest list*\n\n"+
			"👥 Total: %d\n"+
			"✅ Confirmed: %d\n"+
			"❌ Declined: %d\n"+
			"🤔 Maybe: %d",
		stats.Total, stats.Confirmed, stats.Declined, stats.Maybe,
	)
}

// Kind classifies a notification
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notification is a message pushed to the user outside of a request,
// such as a failed background save
type Notification struct {
	Kind    Kind
	Message string
}

// Notifier shows notifications to the user
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// LogNotifier writes notifications to the log
type LogNotifier struct {
	Log zerolog.Logger
}

func (l LogNotifier) Notify(n Notification) {
	ev := l.Log.Info()
	if n.Kind == KindError {
		ev = l.Log.Error()
	}
	ev.Str("kind", string(n.Kind)).Msg(strings.TrimSpace(n.Message))
}
