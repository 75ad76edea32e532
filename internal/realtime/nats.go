package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSBroker publishes frames to NATS and relays every frame under its
// subject prefix into the local Hub, so instances share channels. Time
// refresh frames are local to each process and are not relayed.
type NATSBroker struct {
	conn   *nats.Conn
	sub    *nats.Subscription
	prefix string
	hub    *Hub
	now    func() time.Time
	log    *slog.Logger
}

// NewNATSBroker connects to url with automatic reconnection and starts the
// relay. Extra options are appended to the defaults.
func NewNATSBroker(url, prefix string, hub *Hub, logger *slog.Logger, opts ...nats.Option) (*NATSBroker, error) {
	defaults := []nats.Option{
		nats.Name("sapl-realtime"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	}
	nc, err := nats.Connect(url, append(defaults, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}

	b := &NATSBroker{
		conn:   nc,
		prefix: prefix,
		hub:    hub,
		now:    time.Now,
		log:    logger.With("component", "nats_broker"),
	}

	b.sub, err = nc.Subscribe(prefix+".>", b.relay)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("subscribing to %s.>: %w", prefix, err)
	}
	// The subscription must reach the server before the first publish.
	if err := nc.Flush(); err != nil {
		nc.Close()
		return nil, fmt.Errorf("flushing subscription: %w", err)
	}
	return b, nil
}

func (b *NATSBroker) relay(msg *nats.Msg) {
	var f Frame
	if err := json.Unmarshal(msg.Data, &f); err != nil {
		b.log.Warn("discard malformed frame", slog.String("subject", msg.Subject), slog.String("error", err.Error()))
		return
	}
	if f.Channel == TimeChannel {
		return
	}
	b.hub.Deliver(f)
}

// Publish implements Broker.
func (b *NATSBroker) Publish(_ context.Context, channel string, payload any) error {
	f, err := NewFrame(channel, payload, b.now())
	if err != nil {
		return err
	}
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	if err := b.conn.Publish(Subject(b.prefix, channel), data); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	return nil
}

// Ping reports whether the NATS connection is up.
func (b *NATSBroker) Ping(_ context.Context) error {
	if !b.conn.IsConnected() {
		return fmt.Errorf("nats: %s", b.conn.Status())
	}
	return nil
}

// Close implements Broker.
func (b *NATSBroker) Close() error {
	if b.sub != nil {
		_ = b.sub.Unsubscribe()
	}
	b.conn.Close()
	return nil
}
