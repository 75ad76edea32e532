package realtime

import (
	"context"
	"log/slog"
	"time"
)

// Broker publishes payloads to the subscribers of a channel, possibly
// across processes.
type Broker interface {
	Publish(ctx context.Context, channel string, payload any) error
	Close() error
}

// LocalBroker delivers straight to a Hub of this process.
type LocalBroker struct {
	hub *Hub
	now func() time.Time
}

// NewLocalBroker creates a LocalBroker over hub.
func NewLocalBroker(hub *Hub) *LocalBroker {
	return &LocalBroker{hub: hub, now: time.Now}
}

// Publish implements Broker.
func (b *LocalBroker) Publish(_ context.Context, channel string, payload any) error {
	f, err := NewFrame(channel, payload, b.now())
	if err != nil {
		return err
	}
	b.hub.Deliver(f)
	return nil
}

// Close implements Broker.
func (b *LocalBroker) Close() error { return nil }

// RunTimeRefresh delivers the current time on TimeChannel to the
// subscribers of hub every interval until ctx is done. Ticks never leave
// the process: each instance serves its own clock.
func RunTimeRefresh(ctx context.Context, hub *Hub, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			payload := TimePayload{Time: now.Format("15:04:05"), Unix: now.Unix()}
			f, err := NewFrame(TimeChannel, payload, now)
			if err != nil {
				logger.WarnContext(ctx, "build time refresh frame", slog.String("error", err.Error()))
				continue
			}
			hub.Deliver(f)
		}
	}
}
