// Package events chains ingest and analysis over NATS: ingest runs publish
// on IngestedSubject and analyzers subscribe through a queue group.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/codes"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/pkg/logging"
	"github.com/honeycarbs/jobmarket-tracker/pkg/telemetry"
)

var tracer = telemetry.GetTracer("jobmarket-tracker/events")

const (
	IngestedSubject = "jobs.ingested"
	analyzerQueue   = "analyzers"
)

// IngestHandler reacts to a completed ingest run
type IngestHandler func(ctx context.Context, result domain.IngestResult)

// Bus publishes and consumes ingest events on one NATS connection
type Bus struct {
	conn   *nats.Conn
	logger *logging.Logger
}

// Connect dials url and keeps reconnecting for the lifetime of the process
func Connect(url string, logger *logging.Logger) (*Bus, error) {
	opts := []nats.Option{
		nats.Name("jobmarket-tracker"),
		nats.Timeout(5 * time.Second),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("events: connect to %s: %w", url, err)
	}

	return &Bus{conn: conn, logger: logger.Named("events")}, nil
}

// PublishIngested announces result on IngestedSubject
func (b *Bus) PublishIngested(ctx context.Context, result domain.IngestResult) error {
	_, span := tracer.Start(ctx, "PublishIngested")
	defer span.End()

	data, err := json.Marshal(result)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("events: marshal ingest result: %w", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", IngestedSubject),
		telemetry.Int("message.size", len(data)),
	)

	if err := b.conn.Publish(IngestedSubject, data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("events: publish: %w", err)
	}

	b.logger.Debug("published ingest event", "added", result.Added, "subject", IngestedSubject)
	return nil
}

// SubscribeIngested delivers each ingest event to handle. Members of the
// analyzer queue group share the load, so one event triggers one run.
func (b *Bus) SubscribeIngested(handle IngestHandler) (*nats.Subscription, error) {
	sub, err := b.conn.QueueSubscribe(IngestedSubject, analyzerQueue, func(msg *nats.Msg) {
		dispatch(b.logger, msg, handle)
	})
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", IngestedSubject, err)
	}
	b.logger.Info("subscribed", "subject", IngestedSubject, "queue", analyzerQueue)
	return sub, nil
}

// Drain flushes pending messages and closes the connection
func (b *Bus) Drain() error {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.Drain()
}

func dispatch(logger *logging.Logger, msg *nats.Msg, handle IngestHandler) {
	ctx, span := tracer.Start(context.Background(), "handleIngested")
	defer span.End()

	var result domain.IngestResult
	if err := json.Unmarshal(msg.Data, &result); err != nil {
		span.RecordError(err)
		logger.Error("malformed ingest event", "subject", msg.Subject, "error", err)
		return
	}

	handle(ctx, result)
}
