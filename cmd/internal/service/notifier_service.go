package service

import (
	"calpal/cmd/internal/domain/entity"
	"calpal/cmd/internal/notify"
	"calpal/cmd/internal/timeutil"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
)

// notifyWindow is the horizon ahead of "now" within which an event becomes
// due for its single notification.
const notifyWindow = 24 * time.Hour

type NotifierSessionRepository interface {
	FindLoggedIn() (*entity.UserSession, error)
}

// DefaultNotifierService runs the periodic notification pass. It is a linear
// scan over the active user's events: anything due within the next 24 hours
// that has not been notified gets exactly one notification and its one-way
// flag set. A pass that fails partway leaves already-flagged events flagged,
// which the next pass tolerates.
type DefaultNotifierService struct {
	EventRepo   EventRepository
	SessionRepo NotifierSessionRepository
	Sink        notify.Sink
	Now         func() time.Time
}

func NewNotifierService(eventRepo EventRepository, sessionRepo NotifierSessionRepository, sink notify.Sink) *DefaultNotifierService {
	return &DefaultNotifierService{
		EventRepo:   eventRepo,
		SessionRepo: sessionRepo,
		Sink:        sink,
		Now:         time.Now,
	}
}

func (n *DefaultNotifierService) RunPass() error {
	session, err := n.SessionRepo.FindLoggedIn()
	if err != nil {
		return fmt.Errorf("failed to resolve active session: %w", err)
	}

	// Nobody logged in: nothing to do, not an error.
	if session == nil {
		return nil
	}

	events, err := n.EventRepo.FindAllByUser(session.UserID)
	if err != nil {
		return fmt.Errorf("failed to fetch events for user %d: %w", session.UserID, err)
	}

	now := n.Now()
	for _, event := range events {
		n.process(event, now)
	}
	return nil
}

func (n *DefaultNotifierService) process(event *entity.Event, now time.Time) {
	if event.Notified {
		return
	}

	instant, err := timeutil.Combine(event.Date, event.Time)
	if err != nil {
		// A malformed stored datetime must never trigger a notification.
		log.Warnf("skipping event %d with malformed datetime %q %q: %v", event.ID, event.Date, event.Time, err)
		return
	}

	delta := instant.Sub(now)
	if delta < 0 || delta >= notifyWindow {
		return
	}

	title := "Upcoming Event: " + event.Name
	body := fmt.Sprintf("Event '%s' starts at %s on %s.", event.Name, event.Time, event.Date)

	if err := n.Sink.Emit(event.UserID, event.ID, title, body); err != nil {
		// Leave the flag untouched so the next pass retries this event.
		log.Errorf("failed to emit notification for event %d: %v", event.ID, err)
		return
	}

	if err := n.EventRepo.MarkNotified(event.ID); err != nil {
		log.Errorf("failed to mark event %d notified: %v", event.ID, err)
	}
}
