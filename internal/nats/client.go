// Package nats provides a JetStream client for favorite events.
package nats

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Stream layout for favorite events.
const (
	StreamName  = "STARRED"
	SubjectsAll = "starred.>"
)

// Client wraps nats connection and jetstream context.
type Client struct {
	Conn *nats.Conn
	js   jetstream.JetStream
}

// New connects to natsURL and makes sure the favorites stream exists.
func New(ctx context.Context, natsURL string) (*Client, error) {
	conn, err := nats.Connect(natsURL, nats.Name("starred"))
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	c := &Client{Conn: conn, js: js}
	if err := c.EnsureStream(ctx, StreamName, []string{SubjectsAll}); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// EnsureStream creates a stream if it doesn't exist.
func (c *Client) EnsureStream(ctx context.Context, name string, subjects []string) error {
	_, err := c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     name,
		Subjects: subjects,
	})
	if err != nil {
		return fmt.Errorf("create stream %s: %w", name, err)
	}
	return nil
}

// Publish publishes payload to subject and waits for the stream ack.
func (c *Client) Publish(ctx context.Context, subject string, payload []byte) error {
	if _, err := c.js.Publish(ctx, subject, payload); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}
	return nil
}

// Subscribe creates a durable consumer on the favorites stream and hands
// every message to handler. A handler error naks the message for redelivery.
// The returned stop function ends consumption.
func (c *Client) Subscribe(ctx context.Context, consumer, subject string, handler func(subject string, data []byte) error) (func(), error) {
	cons, err := c.js.CreateOrUpdateConsumer(ctx, StreamName, jetstream.ConsumerConfig{
		Durable:       consumer,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("create consumer: %w", err)
	}

	cc, err := cons.Consume(func(msg jetstream.Msg) {
		if err := handler(msg.Subject(), msg.Data()); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	})
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", subject, err)
	}
	return cc.Stop, nil
}

// Close closes the nats connection.
func (c *Client) Close() {
	c.Conn.Close()
}

// IsConnected returns true if connected to nats.
func (c *Client) IsConnected() bool {
	return c.Conn.IsConnected()
}
