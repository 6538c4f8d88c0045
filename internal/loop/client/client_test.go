package client

import (
	"bytes"
	"io"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/santavirus/internal/input"
	"github.com/tomz197/santavirus/internal/loop/config"
	"github.com/tomz197/santavirus/internal/loop/sim"
	"github.com/tomz197/santavirus/internal/object"
)

type recordingAudio struct {
	music bool
	kinds []sim.EventKind
}

func (r *recordingAudio) SetMusic(on bool)        { r.music = on }
func (r *recordingAudio) Music() bool             { return r.music }
func (r *recordingAudio) Play(kind sim.EventKind) { r.kinds = append(r.kinds, kind) }

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func newTestClient(t *testing.T, out io.Writer, opts ClientOptions) *Client {
	t.Helper()
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = fixedSize(120, 40)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	// An empty reader ends immediately; tests drive handleInput directly.
	return NewClient(strings.NewReader(""), out, opts)
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		name                           string
		termW, termH                   int
		wantW, wantH, wantCol, wantRow int
	}{
		{"small", 80, 24, 80, 24, 0, 0},
		{"exact max", config.MaxTermWidth, config.MaxTermHeight, config.MaxTermWidth, config.MaxTermHeight, 0, 0},
		{"wide", 300, 40, config.MaxTermWidth, 40, 50, 0},
		{"tall", 100, 80, 100, config.MaxTermHeight, 0, 10},
		{"zero", 0, 0, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, col, row := clampTermSize(tt.termW, tt.termH)
			if w != tt.wantW || h != tt.wantH || col != tt.wantCol || row != tt.wantRow {
				t.Errorf("clampTermSize(%d, %d) = %d, %d, %d, %d; want %d, %d, %d, %d",
					tt.termW, tt.termH, w, h, col, row, tt.wantW, tt.wantH, tt.wantCol, tt.wantRow)
			}
		})
	}
}

func TestNewClientStatePointerCentered(t *testing.T) {
	st := NewClientState(object.Bounds{Width: 960, Height: 540})
	if !st.Running {
		t.Error("expected new state to be running")
	}
	if st.pointerX != 480 || st.pointerY != 270 {
		t.Errorf("pointer = (%v, %v), want (480, 270)", st.pointerX, st.pointerY)
	}
}

func TestHandleInputMouseMovesPointer(t *testing.T) {
	c := newTestClient(t, io.Discard, ClientOptions{})
	in := input.Input{
		Active:     true,
		MouseMoved: true,
		Mouse:      input.Mouse{Col: 61, Row: 11, Seen: true},
	}
	c.handleInput(in, time.Now())

	wantX, wantY, _ := c.canvas.TerminalToLogical(61, 11)
	if c.state.pointerX != wantX || c.state.pointerY != wantY {
		t.Errorf("pointer = (%v, %v), want (%v, %v)", c.state.pointerX, c.state.pointerY, wantX, wantY)
	}
	if c.state.Input.PointerX != wantX || c.state.Input.PointerY != wantY {
		t.Error("sim input should carry the pointer")
	}
	if !c.pointerVisible() {
		t.Error("crosshair should be visible in mouse mode")
	}
}

func TestHandleInputKeyboardPointer(t *testing.T) {
	c := newTestClient(t, io.Discard, ClientOptions{})
	p := c.world.Player()

	c.handleInput(input.Input{Active: true, Right: true}, time.Now())
	if c.state.pointerX != p.X+keyboardReach || c.state.pointerY != p.Y {
		t.Errorf("pointer = (%v, %v), want (%v, %v)", c.state.pointerX, c.state.pointerY, p.X+keyboardReach, p.Y)
	}
	if c.pointerVisible() {
		t.Error("crosshair should be hidden in keyboard mode")
	}

	// Releasing the key parks the pointer just ahead of the player, keeping the aim
	c.handleInput(input.Input{}, time.Now())
	if c.state.pointerX != p.X+keyboardIdle || c.state.pointerY != p.Y {
		t.Errorf("idle pointer = (%v, %v), want (%v, %v)", c.state.pointerX, c.state.pointerY, p.X+keyboardIdle, p.Y)
	}

	c.handleInput(input.Input{Active: true, Up: true, Left: true}, time.Now())
	d := keyboardReach / math.Sqrt2
	if math.Abs(c.state.pointerX-(p.X-d)) > 1e-9 || math.Abs(c.state.pointerY-(p.Y-d)) > 1e-9 {
		t.Errorf("diagonal pointer = (%v, %v), want (%v, %v)", c.state.pointerX, c.state.pointerY, p.X-d, p.Y-d)
	}
}

func TestHandleInputMusicToggle(t *testing.T) {
	rec := &recordingAudio{music: true}
	c := newTestClient(t, io.Discard, ClientOptions{Audio: rec})

	c.handleInput(input.Input{Active: true, Music: true}, time.Now())
	if rec.music {
		t.Error("music should be off after toggle")
	}
	c.handleInput(input.Input{Active: true, Music: true}, time.Now())
	if !rec.music {
		t.Error("music should be on after second toggle")
	}
}

func TestHandleInputClickEdgeStarts(t *testing.T) {
	c := newTestClient(t, io.Discard, ClientOptions{})
	held := input.Input{Active: true, Fire: true, Mouse: input.Mouse{Col: 10, Row: 10, Held: true, Seen: true}}

	c.handleInput(held, time.Now())
	if !c.state.Input.Start {
		t.Error("mouse press should count as start")
	}
	c.handleInput(held, time.Now())
	if c.state.Input.Start {
		t.Error("holding the button should not start again")
	}
	if !c.state.Input.Fire {
		t.Error("held button should fire")
	}
}

func TestStartPlaysEvent(t *testing.T) {
	rec := &recordingAudio{}
	c := newTestClient(t, io.Discard, ClientOptions{Audio: rec})

	c.handleInput(input.Input{Active: true, Start: true}, time.Now())
	c.update(1.0 / 60)

	if c.world.State() != sim.StatePlaying {
		t.Fatalf("state = %v, want playing", c.world.State())
	}
	if len(rec.kinds) == 0 || rec.kinds[0] != sim.EventGameStarted {
		t.Errorf("played %v, want game started first", rec.kinds)
	}
}

func TestHandleInputQuit(t *testing.T) {
	for _, in := range []input.Input{{Quit: true}, {Closed: true}} {
		c := newTestClient(t, io.Discard, ClientOptions{})
		c.handleInput(in, time.Now())
		if c.state.Running {
			t.Errorf("input %+v should stop the client", in)
		}
	}
}

func TestInactivity(t *testing.T) {
	c := newTestClient(t, io.Discard, ClientOptions{})
	now := time.Now()

	c.lastInput = now.Add(-(config.InactivityWarnUser + 5) * time.Second)
	c.handleInput(input.Input{}, now)
	if !c.state.isInactive || !c.state.Running {
		t.Fatalf("expected warning only, inactive=%v running=%v", c.state.isInactive, c.state.Running)
	}

	c.handleInput(input.Input{Active: true}, now)
	if c.state.isInactive {
		t.Error("activity should clear the warning")
	}

	c.lastInput = now.Add(-(config.InactivityDisconnectUser + 5) * time.Second)
	c.handleInput(input.Input{}, now)
	if c.state.Running {
		t.Error("expected disconnect after long inactivity")
	}
}

func TestShutdownCountdown(t *testing.T) {
	hub := NewHub(0, log.New(io.Discard))
	session, err := hub.Register("tester")
	if err != nil {
		t.Fatal(err)
	}
	c := newTestClient(t, io.Discard, ClientOptions{Hub: hub, Session: session})

	session.EventsCh <- HubShutdown
	c.processHubEvents()
	if !c.state.shuttingDown || c.state.shutdownTimer != config.ShutdownDisplaySeconds {
		t.Fatalf("shuttingDown=%v timer=%v", c.state.shuttingDown, c.state.shutdownTimer)
	}

	clock := c.world.Snapshot().Clock
	c.update(1)
	if !c.state.Running {
		t.Fatal("client stopped too early")
	}
	if c.world.Snapshot().Clock != clock {
		t.Error("world should be frozen during shutdown")
	}
	c.update(config.ShutdownDisplaySeconds)
	if c.state.Running {
		t.Error("client should stop when the countdown ends")
	}
}

func TestDrawFrameMenu(t *testing.T) {
	var out bytes.Buffer
	c := newTestClient(t, &out, ClientOptions{})

	if err := c.drawFrame(); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"Click or press ENTER to start", "HP 5", "Orbs  0/15", "SINGLE SHOT", "Music: ON"} {
		if !strings.Contains(got, want) {
			t.Errorf("menu frame missing %q", want)
		}
	}
	if !strings.Contains(got, "\033[H\033[2J") {
		t.Error("first frame should clear the screen")
	}

	// Same state again: no full clear
	out.Reset()
	if err := c.drawFrame(); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "\033[H\033[2J") {
		t.Error("unchanged state should not clear the screen")
	}
}

func TestDrawFramePlaying(t *testing.T) {
	var out bytes.Buffer
	c := newTestClient(t, &out, ClientOptions{})
	c.handleInput(input.Input{Active: true, Start: true}, time.Now())
	c.update(1.0 / 60)

	if err := c.drawFrame(); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "Goal: collect 3 orbs") {
		t.Error("playing frame should show the objective")
	}
	if strings.Contains(got, "Click or press ENTER to start") {
		t.Error("playing frame should not show the menu prompt")
	}
}

func TestDrawFrameShutdown(t *testing.T) {
	var out bytes.Buffer
	c := newTestClient(t, &out, ClientOptions{})
	c.state.shuttingDown = true
	c.state.shutdownTimer = config.ShutdownDisplaySeconds

	if err := c.drawFrame(); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "SERVER SHUTTING DOWN") || !strings.Contains(got, "Disconnecting in 10 seconds") {
		t.Errorf("shutdown screen missing, got %q", got)
	}
}

func TestRunQuits(t *testing.T) {
	var out bytes.Buffer
	c := NewClient(strings.NewReader("q"), &out, ClientOptions{
		TermSizeFunc: fixedSize(80, 24),
		Rand:         rand.New(rand.NewSource(1)),
	})

	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	if !strings.Contains(out.String(), "\033[?25h") {
		t.Error("cursor should be restored on exit")
	}
}
