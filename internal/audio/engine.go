package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/tomz197/santavirus/internal/loop/sim"
)

// DefaultSampleRate is used by every backend.
const DefaultSampleRate = beep.SampleRate(44100)

const (
	musicGain  = 0.55
	maxEffects = 24 // Effects playing at once; extra ones are dropped
)

// Engine mixes the looping jingle with short effects. It is a beep.Streamer
// pulled by the audio driver goroutine; all other methods may be called from
// the game loop.
type Engine struct {
	mu        sync.Mutex
	sr        beep.SampleRate
	mixer     *beep.Mixer // Music plus every playing effect
	music     *beep.Ctrl
	musicOn   bool
	suspended bool
}

// NewEngine creates an engine producing audio at sample rate sr.
func NewEngine(sr beep.SampleRate, musicOn bool) *Engine {
	e := &Engine{
		sr:      sr,
		mixer:   &beep.Mixer{},
		musicOn: musicOn,
	}
	e.music = &beep.Ctrl{
		Streamer: gain(newJingle(sr), musicGain),
		Paused:   !musicOn,
	}
	e.mixer.Add(e.music)
	return e
}

// SampleRate returns the engine's sample rate.
func (e *Engine) SampleRate() beep.SampleRate {
	return e.sr
}

// Stream implements beep.Streamer. It never runs dry.
func (e *Engine) Stream(samples [][2]float64) (n int, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n, _ = e.mixer.Stream(samples)
	clear(samples[n:])
	return len(samples), true
}

// Err implements beep.Streamer.
func (e *Engine) Err() error {
	return nil
}

// SetMusic turns the background music on or off.
func (e *Engine) SetMusic(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.musicOn = on
	e.music.Paused = !e.musicOn || e.suspended
}

// Music reports whether the music is switched on.
func (e *Engine) Music() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.musicOn
}

// SetSuspended pauses the music while the game is in the background,
// without changing the music toggle.
func (e *Engine) SetSuspended(suspended bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.suspended = suspended
	e.music.Paused = !e.musicOn || e.suspended
}

// Play starts the effect for a simulation event, if it has one.
func (e *Engine) Play(kind sim.EventKind) {
	s := effectFor(e.sr, kind)
	if s == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mixer.Len() > maxEffects {
		return
	}
	e.mixer.Add(s)
}

// gain scales a streamer by a linear factor.
func gain(s beep.Streamer, g float64) beep.Streamer {
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(g),
	}
}
