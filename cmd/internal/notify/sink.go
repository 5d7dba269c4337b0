package notify

import "github.com/labstack/gommon/log"

// Sink receives the notifications the notifier pass emits. The eventID keys
// the notification so downstream layers can dedupe or cancel per event.
type Sink interface {
	Emit(userID, eventID int, title, body string) error
}

// LogSink writes notifications to the application log. It is the fallback
// sink when no push credentials are configured.
type LogSink struct{}

func (LogSink) Emit(userID, eventID int, title, body string) error {
	log.Infof("notification for user %d (event %d): %s - %s", userID, eventID, title, body)
	return nil
}
