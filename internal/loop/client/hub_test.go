package client

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func newTestHub(maxSessions int) *Hub {
	return NewHub(maxSessions, log.New(io.Discard))
}

func TestHubRegisterLimit(t *testing.T) {
	h := newTestHub(2)

	a, err := h.Register("alice")
	if err != nil {
		t.Fatal(err)
	}
	b, err := h.Register("bob")
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Error("sessions should get distinct ids")
	}
	if _, err := h.Register("carol"); !errors.Is(err, ErrHubFull) {
		t.Errorf("third register err = %v, want ErrHubFull", err)
	}

	h.Unregister(a.ID)
	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
	if _, err := h.Register("carol"); err != nil {
		t.Errorf("register after unregister: %v", err)
	}
}

func TestHubUnlimited(t *testing.T) {
	h := newTestHub(0)
	for i := 0; i < 50; i++ {
		if _, err := h.Register("player"); err != nil {
			t.Fatal(err)
		}
	}
	if h.Len() != 50 {
		t.Errorf("Len() = %d, want 50", h.Len())
	}
}

func TestHubUnregisterUnknown(t *testing.T) {
	h := newTestHub(0)
	if _, err := h.Register("alice"); err != nil {
		t.Fatal(err)
	}
	h.Unregister(uuid.New())
	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}

func TestHubShutdownEmpty(t *testing.T) {
	h := newTestHub(0)
	if n := h.Shutdown(time.Second); n != 0 {
		t.Errorf("Shutdown() = %d, want 0", n)
	}
	if _, err := h.Register("late"); !errors.Is(err, ErrHubClosed) {
		t.Errorf("register after shutdown err = %v, want ErrHubClosed", err)
	}
}

func TestHubShutdownWaitsForSessions(t *testing.T) {
	h := newTestHub(0)
	s, err := h.Register("alice")
	if err != nil {
		t.Fatal(err)
	}

	go func() {
		<-s.EventsCh
		h.Unregister(s.ID)
	}()

	start := time.Now()
	if n := h.Shutdown(5 * time.Second); n != 0 {
		t.Errorf("Shutdown() = %d, want 0", n)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("Shutdown should return once sessions are gone")
	}
}

func TestHubShutdownTimeout(t *testing.T) {
	h := newTestHub(0)
	s, err := h.Register("stuck")
	if err != nil {
		t.Fatal(err)
	}

	if n := h.Shutdown(50 * time.Millisecond); n != 1 {
		t.Errorf("Shutdown() = %d, want 1", n)
	}
	select {
	case ev := <-s.EventsCh:
		if ev != HubShutdown {
			t.Errorf("event = %v, want HubShutdown", ev)
		}
	default:
		t.Error("session was not notified")
	}
}
