package notify

import (
	"calpal/cmd/internal/domain/entity"
	"encoding/json"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/labstack/gommon/log"
)

type SubscriptionRepository interface {
	FindByUser(userId int) ([]*entity.PushSubscription, error)
	DeleteByEndpoint(endpoint string) error
}

type pushPayload struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// WebPushSink delivers notifications to every push subscription the target
// user has registered.
type WebPushSink struct {
	Subs         SubscriptionRepository
	Subscriber   string
	VAPIDPublic  string
	VAPIDPrivate string
}

func NewWebPushSink(subs SubscriptionRepository, subscriber, vapidPublic, vapidPrivate string) *WebPushSink {
	return &WebPushSink{
		Subs:         subs,
		Subscriber:   subscriber,
		VAPIDPublic:  vapidPublic,
		VAPIDPrivate: vapidPrivate,
	}
}

func (w *WebPushSink) Emit(userID, eventID int, title, body string) error {
	subs, err := w.Subs.FindByUser(userID)
	if err != nil {
		return err
	}

	message, err := json.Marshal(&pushPayload{ID: eventID, Title: title, Body: body})
	if err != nil {
		return err
	}

	for _, sub := range subs {
		w.push(sub, message)
	}
	return nil
}

func (w *WebPushSink) push(sub *entity.PushSubscription, message []byte) {
	resp, err := webpush.SendNotification(message, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			Auth:   sub.Auth,
			P256dh: sub.P256dh,
		},
	}, &webpush.Options{
		Subscriber:      w.Subscriber,
		VAPIDPublicKey:  w.VAPIDPublic,
		VAPIDPrivateKey: w.VAPIDPrivate,
		TTL:             30,
	})
	if resp != nil {
		defer resp.Body.Close()
	}

	if err != nil {
		log.Errorf("failed to push to subscription %d: %v", sub.ID, err)
		return
	}

	// The push service reports dead subscriptions with 404/410; drop them.
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		if derr := w.Subs.DeleteByEndpoint(sub.Endpoint); derr != nil {
			log.Errorf("failed to prune subscription %d: %v", sub.ID, derr)
		}
	}
}
