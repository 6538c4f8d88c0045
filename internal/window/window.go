// Package window runs the game in an ebiten window, on the desktop or in a
// browser through WebAssembly.
package window

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/santavirus/internal/audio"
	"github.com/tomz197/santavirus/internal/loop/config"
	"github.com/tomz197/santavirus/internal/loop/sim"
	"github.com/tomz197/santavirus/internal/object"
	"github.com/tomz197/santavirus/internal/physics"
)

// playerBuffer is the audio latency of the ebiten player.
const playerBuffer = 100 * time.Millisecond

// Options configures the window game.
type Options struct {
	Width, Height int          // Playfield size, config defaults if zero
	Rand          physics.Rand // Random source, time-seeded if nil
	Music         bool         // Start with music on
	Logger        *log.Logger  // Discards if nil
}

// Game implements ebiten.Game around a simulation world.
type Game struct {
	world  *sim.World
	engine *audio.Engine
	player *ebaudio.Player
	logger *log.Logger

	width, height int
	focused       bool
	mouseHeld     bool
	pointerX      float64
	pointerY      float64
}

// New creates the game and starts its audio player.
func New(opts Options) (*Game, error) {
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = config.DefaultWidth, config.DefaultHeight
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	bounds := object.Bounds{Width: float64(width), Height: float64(height)}
	pointerX, pointerY := bounds.Center()
	g := &Game{
		world:    sim.New(bounds, rng),
		engine:   audio.NewEngine(audio.DefaultSampleRate, opts.Music),
		logger:   logger,
		width:    width,
		height:   height,
		focused:  true,
		pointerX: pointerX,
		pointerY: pointerY,
	}

	ctx := ebaudio.NewContext(int(audio.DefaultSampleRate))
	player, err := ctx.NewPlayer(audio.NewPCMReader(g.engine))
	if err != nil {
		return nil, err
	}
	player.SetBufferSize(playerBuffer)
	player.Play()
	g.player = player

	return g, nil
}

// Update advances the game by one tick.
func (g *Game) Update() error {
	if focused := ebiten.IsFocused(); focused != g.focused {
		g.focused = focused
		g.engine.SetSuspended(!focused)
		g.logger.Debug("focus changed", "focused", focused)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.engine.SetMusic(!g.engine.Music())
	}

	in := g.readInput()
	g.world.Step(1/float64(ebiten.TPS()), in)
	for _, ev := range g.world.Events() {
		g.engine.Play(ev.Kind)
		if ev.Kind == sim.EventGameWon || ev.Kind == sim.EventGameLost {
			g.logger.Info("run ended", "state", g.world.State(), "pickups", g.world.Pickups())
		}
	}
	return nil
}

// readInput gathers mouse and keyboard state into simulation input.
func (g *Game) readInput() sim.Input {
	mx, my := ebiten.CursorPosition()
	g.pointerX, g.pointerY = clampPointer(float64(mx), float64(my), g.world.Bounds())

	held := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	click := held && !g.mouseHeld
	g.mouseHeld = held

	start := click ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyR)

	return sim.Input{
		PointerX: g.pointerX,
		PointerY: g.pointerY,
		Fire:     held || ebiten.IsKeyPressed(ebiten.KeySpace),
		Start:    start,
	}
}

// Layout keeps the logical playfield size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Close stops the audio player.
func (g *Game) Close() error {
	if g.player == nil {
		return nil
	}
	return g.player.Close()
}

// clampPointer keeps a cursor position inside the playfield.
func clampPointer(x, y float64, b object.Bounds) (float64, float64) {
	return physics.Clamp(x, 0, b.Width), physics.Clamp(y, 0, b.Height)
}

var _ ebiten.Game = (*Game)(nil)
