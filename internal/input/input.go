// Package input turns raw terminal bytes into per-frame game input.
// Keyboard keys and xterm SGR mouse reports are both understood.
package input

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// maxSequenceLen bounds how long an unfinished escape sequence may grow
// before it is treated as garbage.
const maxSequenceLen = 32

// Mouse is the last known mouse state.
type Mouse struct {
	Col, Row int  // 1-based terminal cell of the last report
	Held     bool // Left button down
	Seen     bool // At least one report received
}

// Input represents the current frame's input state.
type Input struct {
	Quit  bool // q or Ctrl-C pressed this frame
	Start bool // Enter, Space or r pressed this frame
	Music bool // m pressed this frame

	Fire                  bool // Space held or left mouse button down
	Left, Right, Up, Down bool // Pointer nudge keys held

	Mouse      Mouse
	MouseMoved bool // A mouse report arrived this frame

	Active bool // Any byte arrived this frame
	Closed bool // The underlying reader has ended
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
	space time.Time
}

// Stream delivers input bytes via a channel and tracks key and mouse state between frames.
type Stream struct {
	ch      chan byte
	state   keyState
	mouse   Mouse
	pending []byte // Unfinished escape sequence carried to the next frame
	buf     []byte
	closed  bool
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 256)}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.Reader) *Stream {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	s := newStream()
	go func() {
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// returns the input for this frame.
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

// ResetKeys forgets held keys, so the key that started a game does not also fire.
func (s *Stream) ResetKeys() {
	s.state = keyState{}
}

func (s *Stream) read(now time.Time) Input {
	buf := append(s.buf[:0], s.pending...)
	s.pending = s.pending[:0]
	fresh := 0

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
			fresh++
		default:
			break drain
		}
	}
	s.buf = buf

	in := Input{Active: fresh > 0, Closed: s.closed}
	for i := 0; i < len(buf); {
		n, complete := s.parse(buf[i:], now, &in)
		if complete {
			i += n
			continue
		}
		if fresh > 0 && !s.closed {
			s.pending = append(s.pending, buf[i:]...)
			break
		}
		// Nothing more is coming for this sequence: a lone ESC.
		i++
	}

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Up = now.Sub(s.state.up) < keyHoldDuration
	in.Down = now.Sub(s.state.down) < keyHoldDuration
	in.Fire = s.mouse.Held || now.Sub(s.state.space) < keyHoldDuration
	in.Mouse = s.mouse
	return in
}

// parse consumes one key or escape sequence from the front of b.
// Returns the bytes used, or complete=false if b ends inside a sequence.
func (s *Stream) parse(b []byte, now time.Time, in *Input) (n int, complete bool) {
	if b[0] != '\x1b' {
		s.applyByte(b[0], now, in)
		return 1, true
	}
	if len(b) < 3 {
		if len(b) == 2 && b[1] != '[' {
			return 1, true
		}
		return 0, false
	}
	if b[1] != '[' {
		return 1, true
	}

	switch b[2] {
	case 'A':
		s.state.up = now
		return 3, true
	case 'B':
		s.state.down = now
		return 3, true
	case 'C':
		s.state.right = now
		return 3, true
	case 'D':
		s.state.left = now
		return 3, true
	case '<':
		end := bytes.IndexAny(b[3:], "Mm")
		if end < 0 {
			if len(b) > maxSequenceLen {
				return 1, true
			}
			return 0, false
		}
		end += 3
		s.applyMouse(b[3:end], b[end], in)
		return end + 1, true
	}

	// Any other CSI sequence runs to its final byte.
	for i := 2; i < len(b); i++ {
		if b[i] >= 0x40 && b[i] <= 0x7e {
			return i + 1, true
		}
	}
	if len(b) > maxSequenceLen {
		return 1, true
	}
	return 0, false
}

// applyMouse handles the "Cb;Cx;Cy" body of an SGR mouse report.
// final is 'M' for press or motion and 'm' for release.
func (s *Stream) applyMouse(body []byte, final byte, in *Input) {
	fields := bytes.Split(body, []byte{';'})
	if len(fields) != 3 {
		return
	}
	var vals [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(string(f))
		if err != nil {
			return
		}
		vals[i] = v
	}
	cb, col, row := vals[0], vals[1], vals[2]

	s.mouse.Col, s.mouse.Row = col, row
	s.mouse.Seen = true
	in.MouseMoved = true

	if cb&64 != 0 { // Wheel
		return
	}
	button := cb & 3
	motion := cb&32 != 0
	switch {
	case final == 'm' && button == 0:
		s.mouse.Held = false
	case final == 'M' && button == 0:
		s.mouse.Held = true
	case motion && button == 3:
		s.mouse.Held = false
	}
}

// applyByte updates the input for a single key byte.
func (s *Stream) applyByte(b byte, now time.Time, in *Input) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'm', 'M':
		in.Music = true
	case 'r', 'R', '\r', '\n':
		in.Start = true
	case ' ':
		in.Start = true
		s.state.space = now
	case 'a', 'A':
		s.state.left = now
	case 'd', 'D':
		s.state.right = now
	case 'w', 'W':
		s.state.up = now
	case 's', 'S':
		s.state.down = now
	}
}
