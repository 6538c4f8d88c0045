package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Half-block characters. Each terminal cell holds two vertically stacked pixels.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Ink is a pixel colour. InkNone is an unset pixel.
type Ink uint8

const (
	InkNone Ink = iota
	InkWhite
	InkSnow // Dim flakes
	InkRed
	InkGreen
	InkYellow
	InkGold
	InkCyan
	InkViolet
	InkGray
	InkPink
)

// xterm-256 palette index for each Ink.
var inkCodes = [...]int{
	InkNone:   0,
	InkWhite:  231,
	InkSnow:   250,
	InkRed:    196,
	InkGreen:  46,
	InkYellow: 226,
	InkGold:   214,
	InkCyan:   51,
	InkViolet: 171,
	InkGray:   240,
	InkPink:   213,
}

// RGB returns the colour of the ink's xterm-256 palette entry, for frontends
// that draw with true colour.
func (i Ink) RGB() (r, g, b uint8) {
	code := inkCodes[i]
	switch {
	case code >= 232:
		v := uint8(8 + 10*(code-232))
		return v, v, v
	case code >= 16:
		code -= 16
		return cubeLevel(code / 36), cubeLevel(code / 6 % 6), cubeLevel(code % 6)
	default:
		return 0, 0, 0
	}
}

func cubeLevel(v int) uint8 {
	if v == 0 {
		return 0
	}
	return uint8(55 + 40*v)
}

// Canvas is a colour drawing buffer with 2x vertical resolution using half-block characters.
// Coordinates passed to drawing methods are logical and get scaled to terminal pixels.
//
// Render only writes cells that changed since the previous Render, so the
// terminal does not need to be cleared between frames.
type Canvas struct {
	termWidth      int   // Terminal columns covered by the canvas
	termHeight     int   // Terminal rows covered by the canvas
	subPixelHeight int   // termHeight * 2
	pixels         []Ink // Flat slice: [y * termWidth + x]

	drawn      []uint16 // Per cell: top<<8 | bottom as last written to the terminal
	textDirty  []bool   // Per cell: overwritten by a text overlay since the last Render
	forceDraw  bool     // Rewrite every cell on the next Render
	primed     bool     // drawn holds what the terminal shows

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets of the canvas when it is centered in a larger terminal
	offsetCol int
	offsetRow int

	renderBuf       []byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the logical size.
// A size change forces a full redraw.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Ink, c.subPixelHeight*termWidth)
		c.drawn = make([]uint16, termHeight*termWidth)
		c.textDirty = make([]bool, termHeight*termWidth)
		c.forceDraw = true
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.forceDraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render rewrite every cell, e.g. after the screen was cleared.
func (c *Canvas) ForceRedraw() {
	c.forceDraw = true
}

// MarkTextDirty records that n cells starting at (col, row) were covered by text,
// so the next Render repaints them. col and row are 1-based canvas coordinates.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < col-1+n && x < c.termWidth; x++ {
		c.textDirty[r*c.termWidth+x] = true
	}
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at terminal pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, ink Ink) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = ink
	}
}

// At returns the pixel at terminal pixel coordinates.
func (c *Canvas) At(x, y int) Ink {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return InkNone
	}
	return c.pixels[y*c.termWidth+x]
}

func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Round(x * c.scaleX)), int(math.Round(y * c.scaleY))
}

// Plot sets the pixel at logical coordinates.
func (c *Canvas) Plot(x, y float64, ink Ink) {
	px, py := c.toPixel(x, y)
	c.setPixel(px, py, ink)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point, ink Ink) {
	x1, y1 := c.toPixel(p1.X, p1.Y)
	x2, y2 := c.toPixel(p2.X, p2.Y)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1, ink)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillCircle fills a circle of logical radius r centered at (cx, cy).
// Circles smaller than a pixel still set their center pixel.
func (c *Canvas) FillCircle(cx, cy, r float64, ink Ink) {
	px, py := cx*c.scaleX, cy*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY
	if rx < 0.5 || ry < 0.5 {
		c.setPixel(int(math.Round(px)), int(math.Round(py)), ink)
		return
	}

	yStart := int(math.Ceil(py - ry))
	yEnd := int(math.Floor(py + ry))
	for y := yStart; y <= yEnd; y++ {
		dy := (float64(y) - py) / ry
		half := rx * math.Sqrt(max(0, 1-dy*dy))
		for x := int(math.Ceil(px - half)); x <= int(math.Floor(px+half)); x++ {
			c.setPixel(x, y, ink)
		}
	}
	c.setPixel(int(math.Round(px)), int(math.Round(py)), ink)
}

// DrawCircle draws the outline of a circle of logical radius r centered at (cx, cy).
func (c *Canvas) DrawCircle(cx, cy, r float64, ink Ink) {
	rx, ry := r*c.scaleX, r*c.scaleY
	steps := max(12, int(2*math.Pi*math.Max(rx, ry)*1.5))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Plot(cx+math.Cos(a)*r, cy+math.Sin(a)*r, ink)
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using a scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, ink Ink, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points, ink)
	}
	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], ink)
	}
}

// fillPolygon fills a polygon in pixel space.
func (c *Canvas) fillPolygon(points []Point, ink Ink) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)
		for i := 0; i+1 < len(intersections); i += 2 {
			for x := int(math.Ceil(intersections[i])); x <= int(math.Floor(intersections[i+1])); x++ {
				c.setPixel(x, y, ink)
			}
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1400 bytes stays under a typical MTU for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render writes the cells that changed since the last Render using half-block characters.
func (c *Canvas) Render(w io.Writer) error {
	buf := c.renderBuf[:0]
	full := c.forceDraw || !c.primed
	curFg, curBg := InkNone, InkNone
	styled := false
	nextIdx := -1 // Cell the cursor sits on after the last write

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			key := uint16(top)<<8 | uint16(bottom)

			idx := row*c.termWidth + col
			if !full && !c.textDirty[idx] && c.drawn[idx] == key {
				continue
			}
			c.drawn[idx] = key
			c.textDirty[idx] = false

			if idx != nextIdx || col == 0 {
				buf = appendCursor(buf, col+1+c.offsetCol, row+1+c.offsetRow)
			}
			nextIdx = idx + 1

			fg, bg, ch := cellStyle(top, bottom)
			if !styled || fg != curFg || bg != curBg {
				buf = appendStyle(buf, fg, bg)
				curFg, curBg, styled = fg, bg, true
			}
			buf = appendRune(buf, ch)
		}
	}
	if styled {
		buf = append(buf, ColorReset...)
	}

	c.forceDraw = false
	c.primed = true
	c.renderBuf = buf

	for data := buf; len(data) > 0; {
		chunk := data[:min(len(data), maxChunkSize)]
		if _, err := w.Write(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// cellStyle picks the colours and character that show two stacked pixels.
func cellStyle(top, bottom Ink) (fg, bg Ink, ch rune) {
	switch {
	case top == InkNone && bottom == InkNone:
		return InkNone, InkNone, ' '
	case top == bottom:
		return top, InkNone, BlockFull
	case bottom == InkNone:
		return top, InkNone, BlockUpperHalf
	case top == InkNone:
		return bottom, InkNone, BlockLowerHalf
	default:
		return top, bottom, BlockUpperHalf
	}
}

func appendCursor(buf []byte, col, row int) []byte {
	buf = append(buf, "\033["...)
	buf = strconv.AppendInt(buf, int64(row), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(col), 10)
	return append(buf, 'H')
}

func appendStyle(buf []byte, fg, bg Ink) []byte {
	buf = append(buf, "\033[0"...)
	if fg != InkNone {
		buf = append(buf, ";38;5;"...)
		buf = strconv.AppendInt(buf, int64(inkCodes[fg]), 10)
	}
	if bg != InkNone {
		buf = append(buf, ";48;5;"...)
		buf = strconv.AppendInt(buf, int64(inkCodes[bg]), 10)
	}
	return append(buf, 'm')
}

func appendRune(buf []byte, r rune) []byte {
	return append(buf, string(r)...)
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1
	if !hasH && !hasV {
		return nil
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf []byte
	hline := func(row int, l, r string) {
		col := c.offsetCol + 1
		if hasH {
			col = left
		}
		buf = appendCursor(buf, col, row)
		if hasH {
			buf = append(buf, l...)
		}
		for i := 0; i < c.termWidth; i++ {
			buf = append(buf, "─"...)
		}
		if hasH {
			buf = append(buf, r...)
		}
	}

	buf = append(buf, ColorGray...)
	if hasV {
		hline(top, "┌", "┐")
		hline(bottom, "└", "┘")
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			buf = appendCursor(buf, left, row)
			buf = append(buf, "│"...)
			buf = appendCursor(buf, right, row)
			buf = append(buf, "│"...)
		}
	}
	buf = append(buf, ColorReset...)

	_, err := w.Write(buf)
	return err
}

// TerminalWidth returns the terminal column count covered by the canvas.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the terminal row count covered by the canvas.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas position (col, row).
// Used to place text overlays next to canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based absolute terminal position, as reported
// by mouse events, to the logical coordinates at the center of that cell.
// It is the inverse of LogicalToTerminal once the offset is removed.
// The result is clamped to the logical area; inside reports whether the
// position was on the canvas.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, inside bool) {
	cx := col - 1 - c.offsetCol
	cy := row - 1 - c.offsetRow
	inside = cx >= 0 && cx < c.termWidth && cy >= 0 && cy < c.termHeight

	x = float64(cx) / c.scaleX
	y = (float64(cy)*2 + 0.5) / c.scaleY
	x = math.Max(0, math.Min(x, c.logicalWidth))
	y = math.Max(0, math.Min(y, c.logicalHeight))
	return x, y, inside
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
