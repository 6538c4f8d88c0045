package draw

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestCellStyle(t *testing.T) {
	tests := []struct {
		top, bottom Ink
		fg, bg      Ink
		ch          rune
	}{
		{InkNone, InkNone, InkNone, InkNone, ' '},
		{InkRed, InkRed, InkRed, InkNone, BlockFull},
		{InkRed, InkNone, InkRed, InkNone, BlockUpperHalf},
		{InkNone, InkCyan, InkCyan, InkNone, BlockLowerHalf},
		{InkRed, InkCyan, InkRed, InkCyan, BlockUpperHalf},
	}
	for _, tt := range tests {
		fg, bg, ch := cellStyle(tt.top, tt.bottom)
		if fg != tt.fg || bg != tt.bg || ch != tt.ch {
			t.Errorf("cellStyle(%d, %d) = %d, %d, %q; want %d, %d, %q",
				tt.top, tt.bottom, fg, bg, ch, tt.fg, tt.bg, tt.ch)
		}
	}
}

func TestRenderOnlyWritesChanges(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	var out bytes.Buffer

	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(out.String(), " "); got != 8 {
		t.Fatalf("first render wrote %d blank cells, want 8", got)
	}

	out.Reset()
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", out.String())
	}

	c.Plot(1, 1, InkRed)
	out.Reset()
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	want := "\033[1;2H\033[0;38;5;196m▄" + ColorReset
	if out.String() != want {
		t.Fatalf("render = %q, want %q", out.String(), want)
	}
}

func TestRenderRepaintsTextAndResize(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	var out bytes.Buffer
	_ = c.Render(&out)

	c.MarkTextDirty(2, 2, 2)
	out.Reset()
	_ = c.Render(&out)
	if got := strings.Count(out.String(), " "); got != 2 {
		t.Fatalf("repainted %d cells, want 2", got)
	}

	c.Resize(3, 1)
	out.Reset()
	_ = c.Render(&out)
	if got := strings.Count(out.String(), " "); got != 3 {
		t.Fatalf("after resize repainted %d cells, want 3", got)
	}
}

func TestRenderAppliesOffset(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	c.SetOffset(5, 3)
	c.Plot(0, 0, InkWhite)

	var out bytes.Buffer
	_ = c.Render(&out)
	if !strings.HasPrefix(out.String(), "\033[4;6H") {
		t.Fatalf("render = %q, want it to start at row 4 col 6", out.String())
	}
}

func TestFillCircle(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.FillCircle(10, 10, 4, InkGreen)

	if c.At(10, 10) != InkGreen {
		t.Fatal("center pixel not set")
	}
	if c.At(10, 7) != InkGreen || c.At(7, 10) != InkGreen {
		t.Fatal("interior pixels not set")
	}
	if c.At(10, 15) != InkNone || c.At(15, 10) != InkNone || c.At(13, 13) != InkNone {
		t.Fatal("pixels outside the radius were set")
	}

	c.Clear()
	c.FillCircle(3, 3, 0.1, InkGold)
	if c.At(3, 3) != InkGold {
		t.Fatal("sub-pixel circle should still set its center")
	}
}

func TestDrawCircleLeavesCenterEmpty(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.DrawCircle(10, 10, 5, InkViolet)

	if c.At(10, 10) != InkNone {
		t.Fatal("outline filled the center")
	}
	if c.At(15, 10) != InkViolet || c.At(10, 5) != InkViolet {
		t.Fatal("outline missing on the axes")
	}
}

func TestDrawPolygonFilled(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	pts := c.BorrowPoints(3)
	pts[0] = Point{X: 1, Y: 8}
	pts[1] = Point{X: 8, Y: 8}
	pts[2] = Point{X: 4, Y: 1}
	c.DrawPolygon(pts, InkRed, true)

	if c.At(4, 6) != InkRed {
		t.Fatal("interior not filled")
	}
	if c.At(9, 1) != InkNone {
		t.Fatal("exterior filled")
	}
}

func TestTerminalLogicalRoundTrip(t *testing.T) {
	c := NewScaledCanvas(96, 27, 960, 540)
	c.SetOffset(4, 2)

	x, y, inside := c.TerminalToLogical(5, 3)
	if !inside {
		t.Fatal("top-left cell should be inside")
	}
	if math.Abs(x) > 1e-9 || math.Abs(y-5) > 1e-9 {
		t.Fatalf("top-left cell maps to (%v, %v), want (0, 5)", x, y)
	}

	col, row := c.LogicalToTerminal(x, y)
	if col != 1 || row != 1 {
		t.Fatalf("round trip gave canvas cell (%d, %d), want (1, 1)", col, row)
	}

	x, y, inside = c.TerminalToLogical(1, 1)
	if inside || x != 0 {
		t.Fatalf("border cell = (%v, %v, %v), want clamped outside", x, y, inside)
	}
	_, y, inside = c.TerminalToLogical(50, 200)
	if inside || y != 540 {
		t.Fatalf("below canvas y = %v inside = %v", y, inside)
	}
}

func TestRenderBorder(t *testing.T) {
	c := NewScaledCanvas(3, 2, 3, 4)
	var out bytes.Buffer
	if err := c.RenderBorder(&out); err != nil || out.Len() != 0 {
		t.Fatalf("border without offset wrote %q, %v", out.String(), err)
	}

	c.SetOffset(1, 1)
	if err := c.RenderBorder(&out); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	for _, want := range []string{"┌───┐", "└───┘", "│"} {
		if !strings.Contains(s, want) {
			t.Errorf("border %q missing %q", s, want)
		}
	}
}

func TestChunkWriter(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)
	cw.WriteAt(1, 1, "hi")
	cw.WriteStyled(2, 2, ColorRed, "x")

	if out.Len() != 0 {
		t.Fatal("wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "\033[4;3Hhi\033[5;4H" + ColorRed + "x" + ColorReset
	if out.String() != want {
		t.Fatalf("flush = %q, want %q", out.String(), want)
	}
	if cw.Len() != 0 {
		t.Fatal("buffer not reset")
	}
}

func TestChunkWriterLargeFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	big := strings.Repeat("x", maxChunkSize*3+7)
	cw.WriteString(big)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != big {
		t.Fatal("chunked flush corrupted data")
	}
}

func TestEnterLeaveGame(t *testing.T) {
	var out bytes.Buffer
	_ = EnterGame(&out)
	if !strings.Contains(out.String(), seqMouseOn) {
		t.Fatal("mouse reporting not enabled")
	}
	out.Reset()
	_ = LeaveGame(&out)
	if !strings.Contains(out.String(), seqMouseOff) || !strings.HasSuffix(out.String(), seqShowCursor) {
		t.Fatalf("leave = %q", out.String())
	}
}

func TestInkRGB(t *testing.T) {
	tests := []struct {
		ink     Ink
		r, g, b uint8
	}{
		{InkNone, 0, 0, 0},
		{InkWhite, 255, 255, 255},
		{InkRed, 255, 0, 0},
		{InkCyan, 0, 255, 255},
		{InkGray, 88, 88, 88},
	}
	for _, tt := range tests {
		r, g, b := tt.ink.RGB()
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("Ink(%d).RGB() = %d, %d, %d; want %d, %d, %d", tt.ink, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestTitleLinesAligned(t *testing.T) {
	for _, block := range [][]string{TitleSanta, TitleVirus} {
		for _, line := range block {
			if TextWidth(line) != TextWidth(block[0]) {
				t.Errorf("title line %q has width %d, want %d", line, TextWidth(line), TextWidth(block[0]))
			}
		}
	}
}
