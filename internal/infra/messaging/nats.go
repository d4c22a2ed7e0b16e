package messaging

import (
	"context"
	"errors"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/config"
	"github.com/nats-io/nats.go"
)

// Client owns the broker connection for a process. Reconnection is handled by
// the client options (supervised wait, unlimited retries), never by callers;
// callers only observe readiness through Ready.
type Client struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	cfg  config.Broker
}

func New(ctx context.Context, cfg config.Broker) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("nats: url is required")
	}
	if cfg.Stream == "" || cfg.OrderEventsSubject == "" || cfg.ProductEventsSubject == "" {
		return nil, errors.New("nats: stream and event subjects are required")
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name("event-driven-analytics"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(cfg.ReconnectWait),
	)
	if err != nil {
		return nil, err
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, err
	}

	client := &Client{conn: conn, js: js, cfg: cfg}
	if conn.IsConnected() {
		if err := client.ensureStream(ctx); err != nil {
			conn.Close()
			return nil, err
		}
	}
	return client, nil
}

func (c *Client) Close() {
	if c == nil || c.conn == nil {
		return
	}
	c.conn.Close()
}

// Ready reports whether the connection is currently established. The
// publisher checks this each tick and skips the tick while reconnecting.
func (c *Client) Ready() bool {
	return c != nil && c.conn != nil && c.conn.IsConnected()
}

// Publish sends a durable message and returns only after the broker has
// acknowledged persisting it; an error means the message was not accepted.
func (c *Client) Publish(ctx context.Context, subject string, payload []byte) error {
	if c == nil || c.js == nil {
		return errors.New("nats: jetstream not initialized")
	}
	msg := nats.NewMsg(subject)
	msg.Data = payload
	_, err := c.js.PublishMsg(msg, nats.Context(ctx))
	return err
}

// OrderEventsSubscription binds a durable pull consumer to the order-events
// subject with at most one unacknowledged message in flight, so processing is
// sequential per consumer instance and an unacked message is redelivered.
func (c *Client) OrderEventsSubscription(ctx context.Context) (*nats.Subscription, error) {
	if c == nil || c.js == nil {
		return nil, errors.New("nats: jetstream not initialized")
	}
	if c.cfg.ConsumerDurable == "" {
		return nil, errors.New("nats: consumer durable is required")
	}
	if err := c.ensureStream(ctx); err != nil {
		return nil, err
	}
	if err := c.ensureConsumer(ctx); err != nil {
		return nil, err
	}
	return c.js.PullSubscribe(
		c.cfg.OrderEventsSubject,
		c.cfg.ConsumerDurable,
		nats.Bind(c.cfg.Stream, c.cfg.ConsumerDurable),
	)
}

// EnsureStream declares the durable stream whose subjects back the outbox
// topics. Publishers call it once the connection first becomes ready, since
// New skips declaration while the broker is still unreachable.
func (c *Client) EnsureStream(ctx context.Context) error {
	if c == nil || c.js == nil {
		return errors.New("nats: jetstream not initialized")
	}
	return c.ensureStream(ctx)
}

func (c *Client) ensureStream(ctx context.Context) error {
	subjects := []string{c.cfg.OrderEventsSubject, c.cfg.ProductEventsSubject}

	info, err := c.js.StreamInfo(c.cfg.Stream, nats.Context(ctx))
	if err == nil {
		if !sameSubjects(info.Config.Subjects, subjects) {
			info.Config.Subjects = subjects
			_, err = c.js.UpdateStream(&info.Config, nats.Context(ctx))
		}
		return err
	}

	if errors.Is(err, nats.ErrStreamNotFound) {
		_, err = c.js.AddStream(&nats.StreamConfig{
			Name:      c.cfg.Stream,
			Subjects:  subjects,
			Storage:   nats.FileStorage,
			Retention: nats.LimitsPolicy,
		}, nats.Context(ctx))
		return err
	}
	return err
}

func (c *Client) ensureConsumer(ctx context.Context) error {
	_, err := c.js.ConsumerInfo(c.cfg.Stream, c.cfg.ConsumerDurable, nats.Context(ctx))
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrConsumerNotFound) {
		return err
	}

	_, err = c.js.AddConsumer(c.cfg.Stream, &nats.ConsumerConfig{
		Durable:       c.cfg.ConsumerDurable,
		AckPolicy:     nats.AckExplicitPolicy,
		AckWait:       c.cfg.AckWait,
		MaxAckPending: 1,
		MaxDeliver:    -1,
		FilterSubject: c.cfg.OrderEventsSubject,
	}, nats.Context(ctx))
	return err
}

func sameSubjects(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, s := range a {
		seen[s]++
	}
	for _, s := range b {
		if seen[s] == 0 {
			return false
		}
		seen[s]--
	}
	return true
}
