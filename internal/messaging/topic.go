// Package messaging provides the outbound topic client used to deliver
// forecast event messages. Delivery guarantees (at-least-once, retries,
// batching) are the transport's responsibility, not the caller's.
package messaging

import (
	"context"
	"fmt"

	"gocloud.dev/pubsub"

	// Register pubsub drivers for topic URLs
	_ "gocloud.dev/pubsub/gcppubsub"
	_ "gocloud.dev/pubsub/mempubsub"
)

// Message is one outbound message: an opaque body plus transport metadata.
type Message struct {
	Body     []byte
	Metadata map[string]string
}

// Publisher is the narrow capability interface the pipeline publishes through.
// Tests substitute an in-memory implementation.
type Publisher interface {
	// Publish attempts delivery of a single message. A returned error means
	// the transport rejected this message; the caller decides whether to
	// continue with the next one.
	Publish(ctx context.Context, msg *Message) error

	// Shutdown flushes pending sends and releases the topic client.
	Shutdown(ctx context.Context) error
}

// topicPublisher implements Publisher on top of a gocloud pubsub topic.
type topicPublisher struct {
	topic *pubsub.Topic
}

// OpenTopic opens a topic for the configured URL.
// Supports: gcppubsub://, mem://
func OpenTopic(ctx context.Context, urlstr string) (Publisher, error) {
	topic, err := pubsub.OpenTopic(ctx, urlstr)
	if err != nil {
		return nil, fmt.Errorf("failed to open topic: %w", err)
	}
	return &topicPublisher{topic: topic}, nil
}

// Publish sends one message to the topic.
func (p *topicPublisher) Publish(ctx context.Context, msg *Message) error {
	return p.topic.Send(ctx, &pubsub.Message{
		Body:     msg.Body,
		Metadata: msg.Metadata,
	})
}

// Shutdown releases the topic client.
func (p *topicPublisher) Shutdown(ctx context.Context) error {
	return p.topic.Shutdown(ctx)
}
