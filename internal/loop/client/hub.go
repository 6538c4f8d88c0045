package client

import (
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var (
	// ErrHubFull is returned by Register when the session limit is reached.
	ErrHubFull = errors.New("too many players connected")
	// ErrHubClosed is returned by Register once Shutdown has started.
	ErrHubClosed = errors.New("server is shutting down")
)

// HubEvent is a notification from the hub to a running session.
type HubEvent int

const (
	HubShutdown HubEvent = iota // The host is going down; finish up
)

// Session is one registered player connection.
type Session struct {
	ID       uuid.UUID
	Username string
	Started  time.Time
	EventsCh chan HubEvent // Events sent to the session
}

// Hub tracks the live sessions of a multi-user host so they can be counted,
// limited and notified on shutdown. Each session runs its own world.
type Hub struct {
	mu          sync.RWMutex
	sessions    map[uuid.UUID]*Session
	maxSessions int // 0 means unlimited
	closing     bool
	logger      *log.Logger
}

// NewHub creates a hub allowing up to maxSessions concurrent sessions.
func NewHub(maxSessions int, logger *log.Logger) *Hub {
	return &Hub{
		sessions:    make(map[uuid.UUID]*Session),
		maxSessions: maxSessions,
		logger:      logger,
	}
}

// Register adds a session for username.
func (h *Hub) Register(username string) (*Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closing {
		return nil, ErrHubClosed
	}
	if h.maxSessions > 0 && len(h.sessions) >= h.maxSessions {
		return nil, ErrHubFull
	}

	s := &Session{
		ID:       uuid.New(),
		Username: username,
		Started:  time.Now(),
		EventsCh: make(chan HubEvent, 4),
	}
	h.sessions[s.ID] = s
	h.logger.Info("session registered", "session", s.ID, "user", username, "sessions", len(h.sessions))
	return s, nil
}

// Unregister removes a session. Unknown ids are ignored.
func (h *Hub) Unregister(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[id]
	if !ok {
		return
	}
	delete(h.sessions, id)
	h.logger.Info("session unregistered", "session", id, "user", s.Username,
		"duration", time.Since(s.Started).Round(time.Second), "sessions", len(h.sessions))
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Shutdown refuses new sessions, notifies the live ones and waits for them to
// disconnect, or for timeout. Returns the number of sessions still connected.
func (h *Hub) Shutdown(timeout time.Duration) int {
	h.mu.Lock()
	h.closing = true
	for _, s := range h.sessions {
		select {
		case s.EventsCh <- HubShutdown:
		default:
		}
	}
	h.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if remaining := h.Len(); remaining == 0 {
			return 0
		}
		select {
		case <-deadline:
			return h.Len()
		case <-ticker.C:
		}
	}
}
