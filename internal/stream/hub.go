package stream

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/braillebridge/teacher-console/pkg/backendapi"
)

// Hub fans progress log lines out to subscribers. Subscribers that cannot
// keep up are skipped rather than blocking the producer.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan string]struct{}
	log         *Log
	logger      zerolog.Logger
}

// NewHub builds an empty hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[chan string]struct{}),
		log:         &Log{},
		logger:      logger.With().Str("component", "progress_hub").Logger(),
	}
}

// Subscribe registers a listener. The returned cancel function must be called
// when the listener goes away.
func (h *Hub) Subscribe() (<-chan string, func()) {
	ch := make(chan string, 64)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
		h.mu.Unlock()
	}

	return ch, cancel
}

// Publish appends the event to the log and broadcasts the resulting line.
// Finished events are dropped.
func (h *Hub) Publish(event backendapi.ProgressEvent) {
	line, ok := h.log.Append(event)
	if !ok {
		return
	}

	h.mu.Lock()
	for ch := range h.subscribers {
		select {
		case ch <- line:
		default:
			h.logger.Debug().Msg("dropping progress line for slow subscriber")
		}
	}
	h.mu.Unlock()
}

// Lines returns the accumulated log in order.
func (h *Hub) Lines() []string {
	return h.log.Lines()
}
