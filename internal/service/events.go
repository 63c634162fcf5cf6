package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/sajjad-mugdho/frontend/internal/observability"
)

// LessonCheckedEvent is published after a learner checks an editor session.
type LessonCheckedEvent struct {
	UserID         string    `json:"user_id"`
	Course         string    `json:"course"`
	Section        int       `json:"section"`
	Lesson         int       `json:"lesson"`
	AllMatch       bool      `json:"all_match"`
	IncorrectFiles []string  `json:"incorrect_files"`
	CorrelationID  string    `json:"correlation_id,omitempty"`
	CheckedAt      time.Time `json:"checked_at"`
}

// EventPublisher delivers domain events to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, event interface{}) error
}

type natsPublisher struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

// NewNATSPublisher publishes JSON encoded events on a NATS connection.
func NewNATSPublisher(conn *nats.Conn, logger zerolog.Logger) EventPublisher {
	return &natsPublisher{
		conn:   conn,
		logger: logger.With().Str("component", "nats_publisher").Logger(),
	}
}

func (p *natsPublisher) Publish(ctx context.Context, subject string, event interface{}) error {
	if p.conn == nil {
		return fmt.Errorf("nats connection not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	if err := p.conn.Publish(subject, payload); err != nil {
		observability.EventsPublished().WithLabelValues(subject, "error").Inc()
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	observability.EventsPublished().WithLabelValues(subject, "ok").Inc()
	return nil
}

type logPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher writes events to the log. It is used when no broker is configured.
func NewLogPublisher(logger zerolog.Logger) EventPublisher {
	return &logPublisher{logger: logger.With().Str("component", "event_log").Logger()}
}

func (p *logPublisher) Publish(_ context.Context, subject string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	p.logger.Info().Str("subject", subject).RawJSON("event", payload).Msg("event published")
	observability.EventsPublished().WithLabelValues(subject, "logged").Inc()
	return nil
}
