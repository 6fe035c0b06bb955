package workers

import (
	"chat-relay/domain/event"
	"context"
	"log/slog"
	"time"
)

// TelemetryWorker drains the engine's telemetry channel into a handler
// chain, and periodically reports the channel's own fill level so that
// backpressure is visible before events start dropping.
type TelemetryWorker struct {
	log            *slog.Logger
	metricInterval time.Duration
	telemetryChan  chan event.Event
	handlers       []event.Handler
}

func NewTelemetryWorker(log *slog.Logger,
	metricInterval time.Duration,
	telemetryChan chan event.Event,
	handlers []event.Handler) *TelemetryWorker {
	return &TelemetryWorker{
		log:            log,
		metricInterval: metricInterval,
		telemetryChan:  telemetryChan,
		handlers:       handlers,
	}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping telemetry worker")
			return nil
		case evt, ok := <-w.telemetryChan:
			if !ok {
				return nil
			}
			w.handle(evt)
		case <-ticker.C:
			w.handle(event.Event{
				Type:      event.ChannelCapacityType,
				CreatedAt: time.Now().UTC(),
				Payload: event.ChannelCapacity{
					ChannelName: "telemetry",
					Capacity:    cap(w.telemetryChan),
					Length:      len(w.telemetryChan),
				},
			})
		}
	}
}

func (w *TelemetryWorker) handle(evt event.Event) {
	for _, h := range w.handlers {
		h.Handle(evt)
	}
}
