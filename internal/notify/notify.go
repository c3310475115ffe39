// Package notify delivers the acknowledgments a user gets after liking a
// recommendation.
package notify

import (
	"context"
	"errors"

	"github.com/muhammadolammi/icanmatch/internal/logging"
)

type Event string

const (
	EventJobInterest Event = "job_interest"
	EventCartAdd     Event = "cart_add"
)

type Message struct {
	UserID int    `json:"userId"`
	Event  Event  `json:"event"`
	ItemID int    `json:"itemId"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// LogNotifier writes each message to the request logger.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, msg Message) error {
	logging.Ctx(ctx).Info().
		Int("user_id", msg.UserID).
		Str("event", string(msg.Event)).
		Int("item_id", msg.ItemID).
		Msg(msg.Text)
	return nil
}

// Multi delivers to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
