package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/tomz197/santavirus/internal/loop/sim"
)

// waveFunc builds an endless tone.
type waveFunc func(sr beep.SampleRate, freq float64) (beep.Streamer, error)

var (
	sine   waveFunc = generators.SineTone
	square waveFunc = generators.SquareTone
)

// Note frequencies in Hz.
const (
	noteC5 = 523.25
	noteD5 = 587.33
	noteE5 = 659.25
	noteF5 = 698.46
	noteG5 = 783.99
	noteA5 = 880.00
	noteC6 = 1046.50
	noteA4 = 440.00
	noteG4 = 392.00
	noteE4 = 329.63
	noteC4 = 261.63
)

// note is one step of a melody. A zero frequency is a rest.
type note struct {
	freq  float64
	beats float64
}

// tone returns a shaped, finite note, or nil if the generator rejects freq.
func tone(sr beep.SampleRate, wave waveFunc, freq float64, d time.Duration, g float64) beep.Streamer {
	n := sr.N(d)
	if freq <= 0 {
		return generators.Silence(n)
	}
	src, err := wave(sr, freq)
	if err != nil {
		return nil
	}
	return gain(newEnvelope(beep.Take(n, src), n, sr.N(5*time.Millisecond)), g)
}

// phrase plays notes back to back.
func phrase(sr beep.SampleRate, wave waveFunc, beat time.Duration, g float64, notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		d := time.Duration(n.beats * float64(beat))
		if s := tone(sr, wave, n.freq, d, g); s != nil {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return beep.Seq(parts...)
}

// effectFor returns a fresh streamer for an event, or nil for silent events.
func effectFor(sr beep.SampleRate, kind sim.EventKind) beep.Streamer {
	const ms = time.Millisecond
	switch kind {
	case sim.EventShotFired:
		return tone(sr, square, noteA5, 40*ms, 0.08)
	case sim.EventEnemyHit:
		return tone(sr, square, noteE4, 50*ms, 0.12)
	case sim.EventEnemyKilled:
		return phrase(sr, square, 45*ms, 0.14, note{noteG4, 1}, note{noteC4, 2})
	case sim.EventPlayerHurt:
		return tone(sr, square, 110, 180*ms, 0.25)
	case sim.EventOrbCollected:
		return phrase(sr, sine, 40*ms, 0.3, note{noteE5, 1}, note{noteC6, 2})
	case sim.EventWeaponUpgraded:
		return phrase(sr, sine, 70*ms, 0.3, note{noteC5, 1}, note{noteE5, 1}, note{noteG5, 1}, note{noteC6, 2})
	case sim.EventPortalOpened:
		return phrase(sr, sine, 90*ms, 0.3, note{noteG4, 1}, note{noteC5, 1}, note{noteE5, 1}, note{noteG5, 1}, note{noteC6, 3})
	case sim.EventGameWon:
		return phrase(sr, square, 110*ms, 0.15,
			note{noteC5, 1}, note{noteC5, 1}, note{noteC5, 1}, note{noteC5, 2},
			note{noteA4, 2}, note{noteD5, 2}, note{noteC5, 1}, note{noteD5, 1}, note{noteC6, 4})
	case sim.EventGameLost:
		return phrase(sr, square, 160*ms, 0.18, note{noteE5, 1}, note{noteC5, 1}, note{noteG4, 1}, note{noteC4, 4})
	case sim.EventGameStarted:
		return phrase(sr, sine, 60*ms, 0.25, note{noteC5, 1}, note{noteG5, 2})
	}
	return nil
}

// jingleTune is the background melody, looped forever.
var jingleTune = []note{
	{noteE5, 1}, {noteE5, 1}, {noteE5, 2},
	{noteE5, 1}, {noteE5, 1}, {noteE5, 2},
	{noteE5, 1}, {noteG5, 1}, {noteC5, 1.5}, {noteD5, 0.5},
	{noteE5, 4},
	{noteF5, 1}, {noteF5, 1}, {noteF5, 1.5}, {noteF5, 0.5},
	{noteF5, 1}, {noteE5, 1}, {noteE5, 1}, {noteE5, 0.5}, {noteE5, 0.5},
	{noteE5, 1}, {noteD5, 1}, {noteD5, 1}, {noteE5, 1},
	{noteD5, 2}, {noteG5, 2},
	{0, 4},
}

const jingleBeat = 180 * time.Millisecond

// jingle streams jingleTune endlessly, building each note as it is reached.
type jingle struct {
	sr  beep.SampleRate
	idx int
	cur beep.Streamer
}

func newJingle(sr beep.SampleRate) *jingle {
	return &jingle{sr: sr}
}

func (j *jingle) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		if j.cur == nil {
			nt := jingleTune[j.idx]
			j.idx = (j.idx + 1) % len(jingleTune)
			d := time.Duration(nt.beats * float64(jingleBeat))
			j.cur = tone(j.sr, sine, nt.freq, d, 1)
			if j.cur == nil {
				j.cur = generators.Silence(j.sr.N(d))
			}
		}
		m, more := j.cur.Stream(samples[n:])
		n += m
		if !more || m == 0 {
			j.cur = nil
		}
	}
	return n, true
}

func (j *jingle) Err() error {
	return nil
}

// envelope fades a finite streamer of n samples in over attack samples and
// out over its last third, avoiding clicks at note edges.
type envelope struct {
	s      beep.Streamer
	pos    int
	n      int
	attack int
}

func newEnvelope(s beep.Streamer, n, attack int) *envelope {
	return &envelope{s: s, n: max(n, 1), attack: max(attack, 1)}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	release := e.n / 3
	for i := 0; i < n; i++ {
		g := 1.0
		if e.pos < e.attack {
			g = float64(e.pos) / float64(e.attack)
		}
		if left := e.n - e.pos; release > 0 && left < release {
			g = min(g, float64(left)/float64(release))
		}
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error {
	return e.s.Err()
}
