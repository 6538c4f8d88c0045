package input

import (
	"strings"
	"testing"
	"time"
)

func feed(s *Stream, data string) {
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		check func(Input) bool
	}{
		{"quit", "q", func(in Input) bool { return in.Quit }},
		{"ctrl-c", "\x03", func(in Input) bool { return in.Quit }},
		{"music", "m", func(in Input) bool { return in.Music && !in.Start }},
		{"enter", "\r", func(in Input) bool { return in.Start && !in.Fire }},
		{"restart", "r", func(in Input) bool { return in.Start }},
		{"space starts and fires", " ", func(in Input) bool { return in.Start && in.Fire }},
		{"wasd", "wasd", func(in Input) bool { return in.Up && in.Left && in.Down && in.Right }},
		{"arrows", "\x1b[A\x1b[D", func(in Input) bool { return in.Up && in.Left && !in.Right }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream()
			feed(s, tt.data)
			in := s.read(time.Now())
			if !tt.check(in) {
				t.Fatalf("unexpected input %+v", in)
			}
			if !in.Active {
				t.Fatal("input should be marked active")
			}
		})
	}
}

func TestHeldKeysExpire(t *testing.T) {
	s := newStream()
	now := time.Now()
	feed(s, "a")
	if in := s.read(now); !in.Left {
		t.Fatal("left should be held")
	}
	if in := s.read(now.Add(10 * time.Millisecond)); !in.Left || in.Active {
		t.Fatalf("left should still be held without new bytes: %+v", in)
	}
	if in := s.read(now.Add(keyHoldDuration)); in.Left {
		t.Fatal("left should have expired")
	}
}

func TestResetKeys(t *testing.T) {
	s := newStream()
	now := time.Now()
	feed(s, " ")
	s.read(now)
	s.ResetKeys()
	if in := s.read(now); in.Fire {
		t.Fatal("fire should be cleared")
	}
}

func TestMouse(t *testing.T) {
	s := newStream()
	now := time.Now()

	feed(s, "\x1b[<35;10;5M")
	in := s.read(now)
	if !in.MouseMoved || in.Mouse.Col != 10 || in.Mouse.Row != 5 || in.Fire {
		t.Fatalf("motion: %+v", in)
	}

	feed(s, "\x1b[<0;12;6M")
	in = s.read(now)
	if !in.Fire || !in.Mouse.Held || in.Mouse.Col != 12 {
		t.Fatalf("press: %+v", in)
	}

	feed(s, "\x1b[<32;14;7M")
	in = s.read(now)
	if !in.Fire || in.Mouse.Col != 14 || in.Mouse.Row != 7 {
		t.Fatalf("drag: %+v", in)
	}

	in = s.read(now)
	if !in.Fire || in.MouseMoved {
		t.Fatalf("button should stay held between reports: %+v", in)
	}

	feed(s, "\x1b[<0;14;7m")
	in = s.read(now)
	if in.Fire || in.Mouse.Held {
		t.Fatalf("release: %+v", in)
	}
}

func TestMouseWheelDoesNotFire(t *testing.T) {
	s := newStream()
	feed(s, "\x1b[<64;3;4M")
	in := s.read(time.Now())
	if in.Fire || !in.Mouse.Seen {
		t.Fatalf("wheel: %+v", in)
	}
}

func TestSplitSequence(t *testing.T) {
	s := newStream()
	now := time.Now()

	feed(s, "\x1b[<0;2")
	in := s.read(now)
	if in.MouseMoved || in.Quit {
		t.Fatalf("partial sequence applied early: %+v", in)
	}

	feed(s, "0;9Mq")
	in = s.read(now)
	if !in.MouseMoved || in.Mouse.Col != 20 || in.Mouse.Row != 9 || !in.Quit {
		t.Fatalf("joined sequence: %+v", in)
	}
}

func TestLoneEscapeIsDropped(t *testing.T) {
	s := newStream()
	now := time.Now()
	feed(s, "\x1b")
	s.read(now)
	if len(s.pending) != 1 {
		t.Fatalf("pending = %q, want the escape byte", s.pending)
	}
	s.read(now)
	if len(s.pending) != 0 {
		t.Fatal("stale escape should be dropped")
	}
}

func TestUnknownSequencesAreSkipped(t *testing.T) {
	s := newStream()
	feed(s, "\x1b[1;5Hq")
	in := s.read(time.Now())
	if !in.Quit {
		t.Fatalf("key after sequence lost: %+v", in)
	}
}

func TestStartStreamCloses(t *testing.T) {
	s := StartStream(strings.NewReader("q"))
	deadline := time.Now().Add(time.Second)
	var sawQuit bool
	for time.Now().Before(deadline) {
		in := ReadInput(s)
		sawQuit = sawQuit || in.Quit
		if in.Closed {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !sawQuit {
		t.Fatal("quit key not delivered")
	}
	if !s.closed {
		t.Fatal("stream should report the closed reader")
	}
}
