// Package client runs one terminal player: it owns a simulation world, feeds it
// input from a raw terminal byte stream and renders it with half-block graphics.
package client

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/santavirus/internal/audio"
	"github.com/tomz197/santavirus/internal/draw"
	"github.com/tomz197/santavirus/internal/input"
	"github.com/tomz197/santavirus/internal/loop/config"
	"github.com/tomz197/santavirus/internal/loop/sim"
	"github.com/tomz197/santavirus/internal/object"
	"github.com/tomz197/santavirus/internal/physics"
)

// Client handles simulation, rendering and input for a single terminal.
type Client struct {
	world        *sim.World
	audio        audio.Output
	session      *Session // nil for local play
	hub          *Hub
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	frameTime    time.Duration
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Width        int          // Playfield width, config.DefaultWidth if zero
	Height       int          // Playfield height, config.DefaultHeight if zero
	FPS          int          // Frame rate, config.TargetFPS if zero
	Rand         physics.Rand // Random source, time-seeded if nil
	Audio        audio.Output // Sound output, silent if nil
	Hub          *Hub         // Hub the session belongs to, if any
	Session      *Session     // Session to unregister on exit, if any
	Logger       *log.Logger  // Discards if nil
}

// NewClient creates a client reading terminal input from r and drawing to w.
func NewClient(r io.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = config.DefaultWidth, config.DefaultHeight
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = config.TargetFPS
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	out := opts.Audio
	if out == nil {
		out = audio.NewSilent(true)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	bounds := object.Bounds{Width: float64(width), Height: float64(height)}

	// Canvas is clamped to the max render resolution and centered
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, bounds.Width, bounds.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		world:        sim.New(bounds, rng),
		audio:        out,
		session:      opts.Session,
		hub:          opts.Hub,
		state:        NewClientState(bounds),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		frameTime:    time.Second / time.Duration(fps),
		logger:       logger,
	}
}

// Run starts the client loop. Blocks until the player quits, the input ends,
// the session idles out or the host shuts down.
func (c *Client) Run() error {
	if err := draw.EnterGame(c.writer); err != nil {
		return err
	}
	defer func() {
		_ = draw.LeaveGame(c.writer)
		if c.hub != nil && c.session != nil {
			c.hub.Unregister(c.session.ID)
		}
	}()

	lastTime := time.Now()
	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.handleInput(input.ReadInput(c.inputStream), frameStart)
		c.processHubEvents()
		c.updateScreen()
		c.update(c.state.delta.Seconds())

		if err := c.drawFrame(); err != nil {
			return err
		}

		if elapsed := time.Since(frameStart); elapsed < c.frameTime {
			time.Sleep(c.frameTime - elapsed)
		}
	}
	return nil
}

// handleInput turns terminal input into simulation input and client actions.
func (c *Client) handleInput(in input.Input, now time.Time) {
	st := c.state

	if in.Active {
		c.lastInput = now
		st.isInactive = false
	} else if idle := now.Sub(c.lastInput).Seconds(); idle > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting idle player", c.logFields()...)
		st.Running = false
	} else if idle > config.InactivityWarnUser {
		st.isInactive = true
	}

	if in.Quit || in.Closed {
		st.Running = false
	}
	if in.Music {
		c.audio.SetMusic(!c.audio.Music())
	}

	c.updatePointer(in)

	click := in.Mouse.Held && !st.mouseHeld
	st.mouseHeld = in.Mouse.Held

	st.Input = sim.Input{
		PointerX: st.pointerX,
		PointerY: st.pointerY,
		Fire:     in.Fire,
		Start:    in.Start || click,
	}
}

// updatePointer moves the playfield pointer from mouse reports or held keys.
func (c *Client) updatePointer(in input.Input) {
	st := c.state

	if in.MouseMoved {
		st.keyboardMode = false
		st.pointerX, st.pointerY, _ = c.canvas.TerminalToLogical(in.Mouse.Col, in.Mouse.Row)
		return
	}

	dx, dy := 0.0, 0.0
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	if in.Up {
		dy--
	}
	if in.Down {
		dy++
	}

	p := c.world.Player()
	if dx != 0 || dy != 0 {
		st.keyboardMode = true
		st.aimX, st.aimY, _ = physics.Unit(dx, dy)
		st.pointerX = p.X + st.aimX*keyboardReach
		st.pointerY = p.Y + st.aimY*keyboardReach
	} else if st.keyboardMode {
		st.pointerX = p.X + st.aimX*keyboardIdle
		st.pointerY = p.Y + st.aimY*keyboardIdle
	}
}

// processHubEvents handles notifications from the hub.
func (c *Client) processHubEvents() {
	if c.session == nil {
		return
	}
	for {
		select {
		case ev := <-c.session.EventsCh:
			if ev == HubShutdown && !c.state.shuttingDown {
				c.state.shuttingDown = true
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// update advances the world by dt seconds, or the shutdown countdown while shutting down.
func (c *Client) update(dt float64) {
	if c.state.shuttingDown {
		c.state.shutdownTimer -= dt
		if c.state.shutdownTimer <= 0 {
			c.state.Running = false
		}
		return
	}

	c.world.Step(dt, c.state.Input)
	for _, ev := range c.world.Events() {
		c.audio.Play(ev.Kind)
		switch ev.Kind {
		case sim.EventGameStarted:
			// The key that started the run must not also fire
			c.inputStream.ResetKeys()
			c.logger.Debug("run started", c.logFields()...)
		case sim.EventGameWon, sim.EventGameLost:
			c.logger.Debug("run ended", append(c.logFields(), "state", c.world.State(), "pickups", c.world.Pickups())...)
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = max(1, min(termWidth, config.MaxTermWidth))
	renderHeight = max(1, min(termHeight, config.MaxTermHeight))
	offsetCol = max(0, (termWidth-renderWidth)/2)
	offsetRow = max(0, (termHeight-renderHeight)/2)
	return
}

func (c *Client) logFields() []any {
	if c.session == nil {
		return nil
	}
	return []any{"session", c.session.ID, "user", c.session.Username}
}

// pointerVisible reports whether the crosshair should be drawn.
func (c *Client) pointerVisible() bool {
	return !c.state.keyboardMode
}
