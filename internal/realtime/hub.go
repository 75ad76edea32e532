package realtime

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Subscription receives the frames of one channel.
type Subscription struct {
	channel string
	ch      chan Frame
	dropped atomic.Int64
	hub     *Hub
	once    sync.Once
}

// C returns the frame stream. It is closed by Close.
func (s *Subscription) C() <-chan Frame {
	return s.ch
}

// Dropped returns how many frames were skipped because the buffer was full.
func (s *Subscription) Dropped() int64 {
	return s.dropped.Load()
}

// Close unsubscribes and closes C. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

// Hub keeps the subscribers of every channel of this process.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscription]struct{}
	buffer int
	log    *slog.Logger
}

// NewHub creates a Hub whose subscribers buffer up to buffer frames.
func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		subs:   make(map[string]map[*Subscription]struct{}),
		buffer: buffer,
		log:    logger.With("component", "realtime_hub"),
	}
}

// Subscribe registers a subscriber on channel.
func (h *Hub) Subscribe(channel string) *Subscription {
	s := &Subscription{
		channel: channel,
		ch:      make(chan Frame, h.buffer),
		hub:     h,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[channel]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[channel] = set
	}
	set[s] = struct{}{}
	return s
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[s.channel]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.subs, s.channel)
		}
	}
	close(s.ch)
}

// Deliver hands f to every current subscriber of f.Channel without
// blocking and returns how many received it.
func (h *Hub) Deliver(f Frame) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for s := range h.subs[f.Channel] {
		select {
		case s.ch <- f:
			delivered++
		default:
			if n := s.dropped.Add(1); n == 1 || n%100 == 0 {
				h.log.Warn("slow subscriber, frame dropped",
					slog.String("channel", f.Channel), slog.Int64("dropped", n))
			}
		}
	}
	return delivered
}

// Subscribers returns the number of subscribers of channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[channel])
}
