package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	sent    []published
	closed  int
	failErr error
}

func (c *fakeChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.failErr != nil {
		return c.failErr
	}
	c.sent = append(c.sent, published{exchange, key, msg})
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed++
	return nil
}

func TestAMQPNotifierPublishes(t *testing.T) {
	ch := &fakeChannel{}
	n := NewAMQPNotifier(func() (Channel, error) { return ch, nil }, "")
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	n.now = func() time.Time { return fixed }

	msg := Message{UserID: 4, Event: EventCartAdd, ItemID: 2, Title: "AWS", Text: `"AWS" added to your cart!`}
	require.NoError(t, n.Notify(context.Background(), msg))

	require.Len(t, ch.sent, 1)
	got := ch.sent[0]
	assert.Equal(t, DefaultExchange, got.exchange)
	assert.Equal(t, "user.4.cart_add", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, fixed, got.msg.Timestamp)
	assert.Equal(t, 1, ch.closed)

	var decoded Message
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, msg, decoded)
}

func TestAMQPNotifierErrors(t *testing.T) {
	dialErr := errors.New("connection closed")
	n := NewAMQPNotifier(func() (Channel, error) { return nil, dialErr }, "x")
	err := n.Notify(context.Background(), Message{Event: EventJobInterest})
	assert.ErrorIs(t, err, dialErr)

	pubErr := errors.New("channel closed")
	ch := &fakeChannel{failErr: pubErr}
	n = NewAMQPNotifier(func() (Channel, error) { return ch, nil }, "x")
	err = n.Notify(context.Background(), Message{Event: EventJobInterest})
	assert.ErrorIs(t, err, pubErr)
	assert.Equal(t, 1, ch.closed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, n.Notify(ctx, Message{}), context.Canceled)
}

type failing struct{ err error }

func (f failing) Notify(context.Context, Message) error { return f.err }

func TestMultiJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	m := Multi{LogNotifier{}, failing{boom}, LogNotifier{}}
	assert.ErrorIs(t, m.Notify(context.Background(), Message{Text: "hi"}), boom)
	assert.NoError(t, Multi{LogNotifier{}}.Notify(context.Background(), Message{}))
}
