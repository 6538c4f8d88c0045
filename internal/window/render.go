package window

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/santavirus/internal/draw"
	"github.com/tomz197/santavirus/internal/loop/config"
	"github.com/tomz197/santavirus/internal/loop/sim"
	"github.com/tomz197/santavirus/internal/object"
)

// Debug font cell size in pixels.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

var background = color.NRGBA{R: 6, G: 10, B: 24, A: 255}

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Draw renders the current snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.world.Snapshot()
	screen.Fill(background)

	for _, s := range snap.Snow {
		vector.DrawFilledCircle(screen, float32(s.X), float32(s.Y), float32(s.Radius), inkColor(draw.InkWhite, s.Alpha), true)
	}

	if snap.Portal.Active {
		drawPortal(screen, snap.Portal, snap.Clock)
	}

	for _, o := range snap.Orbs {
		r := float32(o.Radius * o.Pulse())
		vector.DrawFilledCircle(screen, float32(o.X), float32(o.Y), r*1.6, inkColor(draw.InkCyan, 0.2), true)
		vector.DrawFilledCircle(screen, float32(o.X), float32(o.Y), r, inkColor(draw.InkCyan, 1), true)
	}

	for _, b := range snap.Bullets {
		vector.DrawFilledCircle(screen, float32(b.X), float32(b.Y), float32(b.Radius), inkColor(draw.InkWhite, 1), true)
	}

	for _, e := range snap.Enemies {
		drawEnemy(screen, e)
	}

	if object.ShouldRenderBlink(snap.Player.Invulnerable, config.PlayerBlinkRate) {
		drawPlayer(screen, snap.Player)
	}

	for _, b := range snap.Bursts {
		vector.DrawFilledCircle(screen, float32(b.X), float32(b.Y), 60, inkColor(draw.InkWhite, b.Alpha()*0.6), true)
	}
	for _, s := range snap.Sparks {
		vector.DrawFilledCircle(screen, float32(s.X), float32(s.Y), float32(s.Size), inkColor(sparkInk(s.Tone), s.Alpha()), true)
	}

	for i, line := range hudLines(snap, g.engine.Music()) {
		ebitenutil.DebugPrintAt(screen, line, 12, 8+i*glyphHeight)
	}

	lines := overlayLines(snap)
	top := (g.height - len(lines)*glyphHeight) / 2
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, centerX(line, g.width), top+i*glyphHeight)
	}
}

func drawPortal(screen *ebiten.Image, p object.Portal, clock float64) {
	pulse := 1 + math.Sin(clock*3)*0.10
	x, y := float32(p.X), float32(p.Y)
	r := float32(p.Radius * pulse)
	vector.DrawFilledCircle(screen, x, y, r*1.4, inkColor(draw.InkViolet, 0.25), true)
	vector.DrawFilledCircle(screen, x, y, r, inkColor(draw.InkCyan, 0.35), true)
	vector.StrokeCircle(screen, x, y, r, 3, inkColor(draw.InkCyan, 1), true)
	label := "PORTAL"
	ebitenutil.DebugPrintAt(screen, label, int(p.X)-len(label)*glyphWidth/2, int(p.Y+p.Radius)+8)
}

func drawEnemy(screen *ebiten.Image, e object.Enemy) {
	ink := draw.InkRed
	if e.HP < config.EnemyHP {
		ink = draw.InkPink
	}
	clr := inkColor(ink, 1)
	for i := 0; i < 10; i++ {
		a := float64(i)/10*2*math.Pi + e.Wobble*0.3
		cos, sin := math.Cos(a), math.Sin(a)
		vector.StrokeLine(screen,
			float32(e.X+cos*(e.Radius-2)), float32(e.Y+sin*(e.Radius-2)),
			float32(e.X+cos*(e.Radius+10)), float32(e.Y+sin*(e.Radius+10)),
			3, clr, true)
		vector.DrawFilledCircle(screen, float32(e.X+cos*(e.Radius+10)), float32(e.Y+sin*(e.Radius+10)), 3, clr, true)
	}
	vector.DrawFilledCircle(screen, float32(e.X), float32(e.Y), float32(e.Radius), clr, true)
}

func drawPlayer(screen *ebiten.Image, p object.Player) {
	x, y := float32(p.X), float32(p.Y)
	if p.Tier == config.TierTriple {
		vector.DrawFilledCircle(screen, x, y, 36, inkColor(draw.InkCyan, 0.18), true)
		vector.StrokeCircle(screen, x, y, 36, 2, inkColor(draw.InkCyan, 0.8), true)
	}

	vector.DrawFilledCircle(screen, x, y+6, float32(p.Radius*0.9), inkColor(draw.InkRed, 1), true)
	vector.DrawFilledRect(screen, x-float32(p.Radius*0.9), y+6, float32(p.Radius*1.8), 5, color.Black, true)
	vector.DrawFilledRect(screen, x-4, y+5, 8, 7, inkColor(draw.InkGold, 1), true)
	vector.DrawFilledCircle(screen, x, y-18, 11, inkColor(draw.InkPink, 1), true)
	vector.DrawFilledCircle(screen, x, y-12, 9, inkColor(draw.InkWhite, 1), true)

	fillTriangle(screen, x-12, y-26, x+10, y-38, x+10, y-24, inkColor(draw.InkRed, 1))
	vector.DrawFilledRect(screen, x-13, y-28, 25, 5, inkColor(draw.InkWhite, 1), true)
	vector.DrawFilledCircle(screen, x+12, y-38, 5, inkColor(draw.InkWhite, 1), true)
}

// fillTriangle fills the triangle with the given corners.
func fillTriangle(dst *ebiten.Image, x0, y0, x1, y1, x2, y2 float32, clr color.NRGBA) {
	r, g, b, a := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255
	vs := []ebiten.Vertex{
		{DstX: x0, DstY: y0, SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
		{DstX: x1, DstY: y1, SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
		{DstX: x2, DstY: y2, SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
	}
	op := &ebiten.DrawTrianglesOptions{ColorScaleMode: ebiten.ColorScaleModeStraightAlpha}
	dst.DrawTriangles(vs, []uint16{0, 1, 2}, whiteSubImage, op)
}

// inkColor returns the ink's colour at the given opacity.
func inkColor(ink draw.Ink, alpha float64) color.NRGBA {
	r, g, b := ink.RGB()
	a := math.Max(0, math.Min(alpha, 1))
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a * 255)}
}

func sparkInk(t object.Tone) draw.Ink {
	if t == object.ToneViolet {
		return draw.InkViolet
	}
	return draw.InkCyan
}

// hudLines returns the status lines shown in the top-left corner.
func hudLines(snap *sim.Snapshot, music bool) []string {
	musicState := "OFF"
	if music {
		musicState = "ON"
	}
	lines := []string{
		fmt.Sprintf("HP: %d   Orbs: %d/%d   Weapon: %s   Music: %s [M]",
			snap.Player.HP, snap.Pickups, config.PortalOrbs, snap.WeaponName(), musicState),
	}
	if snap.State == sim.StatePlaying {
		lines = append(lines, snap.Objective(), "Move: mouse   Shoot: click / hold   Music: M")
	}
	return lines
}

// overlayLines returns the centered text for the current screen.
func overlayLines(snap *sim.Snapshot) []string {
	switch snap.State {
	case sim.StateMenu:
		lines := append([]string{}, draw.TitleSanta...)
		lines = append(lines, "", "~ vs ~", "")
		lines = append(lines, draw.TitleVirus...)
		return append(lines,
			"",
			"Collect orbs, beat the viruses and open the portal!",
			"",
			"Click or press ENTER to start",
		)
	case sim.StateLose:
		reason := snap.LoseReason
		if reason == "" {
			reason = "You lost!"
		}
		return []string{
			"G A M E   O V E R",
			"",
			reason,
			fmt.Sprintf("Orbs collected: %d", snap.Pickups),
			"",
			"Click or press ENTER to try again",
		}
	case sim.StateWin:
		return []string{
			"M E R R Y   C H R I S T M A S",
			"AND A HAPPY NEW YEAR",
			"",
			"The gift was delivered!",
			"",
			"Click or press ENTER to play again",
		}
	default:
		return nil
	}
}

// centerX returns the x position that centers s on a screen of the given width.
func centerX(s string, width int) int {
	return (width - len(s)*glyphWidth) / 2
}
