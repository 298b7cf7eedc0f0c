// Package stream provides Server-Sent Events fanout of catalog changes to
// connected checkout terminals.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"checkout_backend/internal/catalog/store"
	"checkout_backend/platform/logger"
)

// eventCatalog is the SSE event name carrying a full valid-view snapshot.
const eventCatalog = "catalog"

// subscriberBuffer is the per-terminal channel depth. A terminal that falls
// this far behind is dropped rather than allowed to stall the mutation path.
const subscriberBuffer = 16

// ViewSource supplies the current valid view for a subscriber's initial sync.
type ViewSource interface {
	ValidView() []store.Item
}

// Subscriber is a live outbound channel to one checkout terminal. It owns no
// product data, only the channel broadcast payloads are written to.
type Subscriber struct {
	ID     uuid.UUID
	events chan []byte
}

// Service manages subscriber connections and catalog broadcasts. It is the
// subscriber registry and broadcast dispatcher in one: registration,
// deregistration, and fanout all synchronize on a single mutex, and every
// per-subscriber write is non-blocking.
type Service struct {
	mu          sync.Mutex
	subscribers map[uuid.UUID]*Subscriber
	log         *logger.Logger
}

// New creates a new stream service.
func New(log *logger.Logger) *Service {
	return &Service{
		subscribers: make(map[uuid.UUID]*Subscriber),
		log:         log,
	}
}

// Register adds a subscriber and returns its handle. The caller is expected
// to push the current valid view to the subscriber once before reading
// broadcasts; a subscriber registered mid-broadcast is not guaranteed that
// in-flight broadcast but receives every one after it.
func (s *Service) Register() *Subscriber {
	sub := &Subscriber{
		ID:     uuid.New(),
		events: make(chan []byte, subscriberBuffer),
	}

	s.mu.Lock()
	s.subscribers[sub.ID] = sub
	total := len(s.subscribers)
	s.mu.Unlock()

	s.log.SubscriberEvent("connected", sub.ID.String(), total)
	return sub
}

// Unregister removes a subscriber and closes its channel. Safe to call
// multiple times and safe to call while a broadcast is in flight.
func (s *Service) Unregister(id uuid.UUID) {
	s.mu.Lock()
	sub, ok := s.subscribers[id]
	if ok {
		delete(s.subscribers, id)
		close(sub.events)
	}
	total := len(s.subscribers)
	s.mu.Unlock()

	if ok {
		s.log.SubscriberEvent("disconnected", id.String(), total)
	}
}

// Count returns the number of connected subscribers.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// Broadcast serializes the view once and writes the identical payload to
// every subscriber. Writes are fire-and-forget: a subscriber whose buffer is
// full is dropped, and no failure ever reaches the mutation caller.
//
// Sends happen under the registry mutex. They cannot block (select/default),
// and holding the lock means a concurrent Unregister cannot close a channel
// mid-send.
func (s *Service) Broadcast(view []store.Item) {
	payload, err := json.Marshal(view)
	if err != nil {
		s.log.Error("broadcast marshal failed", "error", err.Error())
		return
	}

	s.mu.Lock()
	delivered := 0
	var dropped []*Subscriber
	for id, sub := range s.subscribers {
		select {
		case sub.events <- payload:
			delivered++
		default:
			delete(s.subscribers, id)
			close(sub.events)
			dropped = append(dropped, sub)
		}
	}
	s.mu.Unlock()

	for _, sub := range dropped {
		s.log.Warn("subscriber buffer full, dropping", "subscriber_id", sub.ID.String())
	}
	s.log.BroadcastEvent(len(view), delivered, len(dropped))
}

// Handler returns a Gin handler for terminal SSE connections. It registers
// the caller, immediately sends the current valid view, then relays every
// broadcast until the terminal disconnects.
func (s *Service) Handler(source ViewSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")

		sub := s.Register()
		defer s.Unregister(sub.ID)

		// Initial sync: current view, not a replay of missed broadcasts.
		initial, err := json.Marshal(source.ValidView())
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.SSEvent(eventCatalog, string(initial))
		c.Writer.Flush()

		clientGone := c.Request.Context().Done()
		for {
			select {
			case <-clientGone:
				return
			case payload, ok := <-sub.events:
				if !ok {
					return
				}
				c.SSEvent(eventCatalog, string(payload))
				c.Writer.Flush()
			}
		}
	}
}

// Close drops every subscriber. Used on shutdown.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subscribers {
		close(sub.events)
	}
	s.subscribers = make(map[uuid.UUID]*Subscriber)
}
