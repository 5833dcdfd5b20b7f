// Package notify delivers scanner alerts to chat channels. Alerts carry an
// event type so operators can subscribe to opportunity hits without also
// receiving operational noise like venue fetch failures.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Event classifies a notification for the subscription filter.
type Event string

const (
	// EventOpportunity fires when a scan cycle or watchlist refresh finds
	// profitable pairs.
	EventOpportunity Event = "opportunity"
	// EventScanError fires when a venue fetch fails during a scan cycle.
	EventScanError Event = "scan_error"
)

// Sender is one delivery channel for alerts.
type Sender interface {
	// Send delivers an alert with the given title and message body.
	Send(ctx context.Context, title, message string) error
	// Name identifies the channel in logs (e.g. "telegram").
	Name() string
}

// Notifier fans an alert out to every configured sender, subject to the
// event subscription filter.
type Notifier struct {
	senders    []Sender
	subscribed map[Event]bool
	logger     *slog.Logger
}

// NewNotifier creates a Notifier delivering to the given senders. events
// holds the subscribed event names from configuration; an empty list
// subscribes to everything.
func NewNotifier(senders []Sender, events []string, logger *slog.Logger) *Notifier {
	subscribed := make(map[Event]bool, len(events))
	for _, e := range events {
		subscribed[Event(strings.TrimSpace(e))] = true
	}
	return &Notifier{
		senders:    senders,
		subscribed: subscribed,
		logger:     logger.With(slog.String("component", "notifier")),
	}
}

// Notify delivers the alert to every sender if the event is subscribed.
// Unsubscribed events are dropped silently. A failing sender does not block
// delivery to the others; all failures are joined into the returned error.
func (n *Notifier) Notify(ctx context.Context, event Event, title, message string) error {
	if len(n.subscribed) > 0 && !n.subscribed[event] {
		n.logger.DebugContext(ctx, "event not subscribed",
			slog.String("event", string(event)),
		)
		return nil
	}
	if len(n.senders) == 0 {
		return nil
	}

	var errs []error
	for _, s := range n.senders {
		if err := s.Send(ctx, title, message); err != nil {
			n.logger.ErrorContext(ctx, "sender failed",
				slog.String("sender", s.Name()),
				slog.String("event", string(event)),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		n.logger.DebugContext(ctx, "alert delivered",
			slog.String("sender", s.Name()),
			slog.String("title", title),
		)
	}
	if len(errs) > 0 {
		return fmt.Errorf("notify: %w", errors.Join(errs...))
	}
	return nil
}
