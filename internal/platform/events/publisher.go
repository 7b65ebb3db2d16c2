// Package events provides a fire-and-forget NATS JetStream publisher for
// domain events.
package events

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Event is the envelope sent to every subject.
type Event struct {
	EventID    string         `json:"event_id"`
	EventName  string         `json:"event_name"`
	Actor      string         `json:"actor,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// Publisher publishes events to JetStream. A nil *Publisher, or one built
// with a nil JetStream context, is a no-op.
type Publisher struct {
	js     nats.JetStreamContext
	log    *zap.Logger
	prefix string
}

// New creates a Publisher; subjects are "<prefix>.<event name>".
func New(js nats.JetStreamContext, prefix string, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{js: js, log: log, prefix: prefix}
}

// EnsureStream creates the stream capturing "<prefix>.>" when it is missing.
func (p *Publisher) EnsureStream(name string) error {
	if p == nil || p.js == nil {
		return nil
	}
	_, err := p.js.StreamInfo(name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return err
	}
	_, err = p.js.AddStream(&nats.StreamConfig{
		Name:     name,
		Subjects: []string{p.prefix + ".>"},
		Storage:  nats.FileStorage,
		MaxAge:   7 * 24 * time.Hour,
	})
	return err
}

// Publish sends the event asynchronously. Failures are logged and never
// surface to the caller.
func (p *Publisher) Publish(eventName, actor string, payload map[string]any) {
	if p == nil || p.js == nil {
		return
	}
	data, err := json.Marshal(NewEvent(eventName, actor, payload))
	if err != nil {
		p.log.Warn("events: marshal failed", zap.String("event", eventName), zap.Error(err))
		return
	}
	subject := p.prefix + "." + eventName
	if _, err := p.js.PublishAsync(subject, data); err != nil {
		p.log.Warn("events: publish failed", zap.String("subject", subject), zap.Error(err))
	}
}

func NewEvent(eventName, actor string, payload map[string]any) Event {
	return Event{
		EventID:    uuid.NewString(),
		EventName:  eventName,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}
