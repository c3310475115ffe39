package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/streadway/amqp"
)

// DefaultExchange is the topic exchange like events are published to.
const DefaultExchange = "matchmaking_events"

// Channel is the subset of *amqp.Channel the publisher uses.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Dialer opens a fresh channel per publish.
type Dialer func() (Channel, error)

// ConnDialer opens channels on an existing connection.
func ConnDialer(conn *amqp.Connection) Dialer {
	return func() (Channel, error) {
		return conn.Channel()
	}
}

type AMQPNotifier struct {
	dial     Dialer
	exchange string
	now      func() time.Time
	mu       sync.Mutex
}

func NewAMQPNotifier(dial Dialer, exchange string) *AMQPNotifier {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &AMQPNotifier{dial: dial, exchange: exchange, now: time.Now}
}

// RoutingKey is user.<id>.<event>.
func RoutingKey(msg Message) string {
	return fmt.Sprintf("user.%d.%s", msg.UserID, msg.Event)
}

func (n *AMQPNotifier) Notify(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	ch, err := n.dial()
	if err != nil {
		return fmt.Errorf("open amqp channel: %w", err)
	}
	defer ch.Close()

	err = ch.Publish(
		n.exchange,
		RoutingKey(msg),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   n.now(),
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", msg.Event, err)
	}
	return nil
}
