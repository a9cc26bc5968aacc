package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/nfa/internal/logging"
	"github.com/go-chi/chi/v5"
)

// globalTopic carries server-wide events such as automaton reloads.
const globalTopic = ""

// StreamManager fans events out to SSE subscribers, keyed by topic.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{}
	logger      *slog.Logger
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logging.NewNop(),
	}
}

// Subscribe registers a buffered channel for topic. The returned func unsubscribes
// and closes the channel.
func (sm *StreamManager) Subscribe(topic string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[topic]; !ok {
		sm.subscribers[topic] = make(map[chan<- string]struct{})
	}
	sm.subscribers[topic][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[topic]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, topic)
			}
		}
	}
}

// Broadcast sends msg to every subscriber of topic. Slow subscribers lose the message.
func (sm *StreamManager) Broadcast(topic string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[topic] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: client buffer full, dropping message", "topic", topic)
		}
	}
}

// Subscribers returns the number of channels listening on topic.
func (sm *StreamManager) Subscribers(topic string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[topic])
}

// SubscribeEvents handles GET /events: automaton reload notifications.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	s.stream(w, r, globalTopic)
}

// SubscribeComputation handles GET /computations/{id}/events: the computation after every feed.
func (s *Server) SubscribeComputation(w http.ResponseWriter, r *http.Request) {
	s.stream(w, r, chi.URLParam(r, "id"))
}

func (s *Server) stream(w http.ResponseWriter, r *http.Request, topic string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SSE: streaming not supported")
		return
	}

	ch, cancel := s.Streams.Subscribe(topic)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected", "topic", topic)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
