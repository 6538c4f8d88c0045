package client

import (
	"fmt"
	"math"

	"github.com/tomz197/santavirus/internal/draw"
	"github.com/tomz197/santavirus/internal/loop/config"
	"github.com/tomz197/santavirus/internal/loop/sim"
	"github.com/tomz197/santavirus/internal/object"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	st := c.state
	snap := c.world.Snapshot()

	// On state, inactivity or shutdown transitions, do a full terminal clear
	// so overlays from the previous screen don't persist.
	if snap.State != st.prevGameState || st.isInactive != st.wasInactive || st.shuttingDown != st.wasShutdown {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		st.prevGameState = snap.State
		st.wasInactive = st.isInactive
		st.wasShutdown = st.shuttingDown
	}

	c.canvas.Clear()
	c.drawWorld(snap)

	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI(snap)
	return c.chunkWriter.Flush()
}

// drawWorld draws every entity of the snapshot onto the canvas, back to front.
func (c *Client) drawWorld(snap *sim.Snapshot) {
	cv := c.canvas

	for _, s := range snap.Snow {
		ink := draw.InkSnow
		if s.Alpha > 0.6 {
			ink = draw.InkWhite
		}
		cv.Plot(s.X, s.Y, ink)
	}

	if snap.Portal.Active {
		pulse := 1 + math.Sin(snap.Clock*3)*0.10
		cv.DrawCircle(snap.Portal.X, snap.Portal.Y, snap.Portal.Radius*1.4*pulse, draw.InkViolet)
		cv.DrawCircle(snap.Portal.X, snap.Portal.Y, snap.Portal.Radius*pulse, draw.InkCyan)
		cv.FillCircle(snap.Portal.X, snap.Portal.Y, snap.Portal.Radius*0.5*pulse, draw.InkCyan)
	}

	for _, o := range snap.Orbs {
		cv.FillCircle(o.X, o.Y, o.Radius*o.Pulse(), draw.InkCyan)
	}

	for _, b := range snap.Bullets {
		cv.FillCircle(b.X, b.Y, b.Radius, draw.InkWhite)
	}

	for _, e := range snap.Enemies {
		c.drawEnemy(e)
	}

	if object.ShouldRenderBlink(snap.Player.Invulnerable, config.PlayerBlinkRate) {
		c.drawPlayer(snap.Player)
	}

	for _, b := range snap.Bursts {
		cv.DrawCircle(b.X, b.Y, 20+60*(1-b.Alpha()), draw.InkWhite)
	}
	for _, s := range snap.Sparks {
		if s.Alpha() < 0.15 {
			continue
		}
		ink := draw.InkCyan
		if s.Tone == object.ToneViolet {
			ink = draw.InkViolet
		}
		cv.FillCircle(s.X, s.Y, s.Size, ink)
	}

	if snap.State == sim.StatePlaying && c.pointerVisible() {
		x, y := c.state.pointerX, c.state.pointerY
		cv.DrawLine(draw.Point{X: x - 10, Y: y}, draw.Point{X: x + 10, Y: y}, draw.InkGray)
		cv.DrawLine(draw.Point{X: x, Y: y - 10}, draw.Point{X: x, Y: y + 10}, draw.InkGray)
	}
}

// drawEnemy draws a virus: a body with ten spikes turning with its wobble.
func (c *Client) drawEnemy(e object.Enemy) {
	ink := draw.InkRed
	if e.HP < config.EnemyHP {
		ink = draw.InkPink
	}
	c.canvas.FillCircle(e.X, e.Y, e.Radius, ink)
	for i := 0; i < 10; i++ {
		a := float64(i)/10*2*math.Pi + e.Wobble*0.3
		cos, sin := math.Cos(a), math.Sin(a)
		c.canvas.DrawLine(
			draw.Point{X: e.X + cos*(e.Radius-2), Y: e.Y + sin*(e.Radius-2)},
			draw.Point{X: e.X + cos*(e.Radius+10), Y: e.Y + sin*(e.Radius+10)},
			ink,
		)
	}
}

// drawPlayer draws Santa: red coat, face, beard and hat with pompom.
func (c *Client) drawPlayer(p object.Player) {
	cv := c.canvas
	if p.Tier == config.TierTriple {
		cv.DrawCircle(p.X, p.Y, 36, draw.InkCyan)
	}

	cv.FillCircle(p.X, p.Y+6, p.Radius*0.9, draw.InkRed)
	cv.FillCircle(p.X, p.Y+8, 4, draw.InkGold) // Buckle
	cv.FillCircle(p.X, p.Y-18, 11, draw.InkPink)
	cv.FillCircle(p.X, p.Y-13, 8, draw.InkWhite)

	hat := cv.BorrowPoints(3)
	hat[0] = draw.Point{X: p.X - 12, Y: p.Y - 26}
	hat[1] = draw.Point{X: p.X + 10, Y: p.Y - 38}
	hat[2] = draw.Point{X: p.X + 10, Y: p.Y - 24}
	cv.DrawPolygon(hat, draw.InkRed, true)
	cv.FillCircle(p.X+12, p.Y-38, 5, draw.InkWhite)
}

// drawUI draws the text overlays.
func (c *Client) drawUI(snap *sim.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.shuttingDown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}
	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	c.drawHUD(termWidth, snap)

	switch snap.State {
	case sim.StateMenu:
		c.drawMenuScreen(centerX, centerY, snap)
	case sim.StateLose:
		c.drawLoseScreen(centerX, centerY, snap)
	case sim.StateWin:
		c.drawWinScreen(centerX, centerY, snap)
	}
}

// text writes s at a 1-based canvas position and marks the cells for repaint.
func (c *Client) text(col, row int, style, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() || col < 1 {
		return
	}
	if style == "" {
		c.chunkWriter.WriteAt(col, row, s)
	} else {
		c.chunkWriter.WriteStyled(col, row, style, s)
	}
	c.canvas.MarkTextDirty(col, row, draw.TextWidth(s))
}

// centered writes s centered on column centerX.
func (c *Client) centered(centerX, row int, style, s string) {
	c.text(centerX-draw.TextWidth(s)/2, row, style, s)
}

// drawHUD draws the status lines.
// Fields use fixed-width formatting so shrinking values don't leave residue.
func (c *Client) drawHUD(termWidth int, snap *sim.Snapshot) {
	hp := fmt.Sprintf("HP %-2d", snap.Player.HP)
	style := draw.ColorBold
	if snap.Player.HP <= 1 {
		style = draw.ColorRed
	}
	c.text(2, 1, style, hp)

	orbs := fmt.Sprintf("Orbs %2d/%d", snap.Pickups, config.PortalOrbs)
	c.text(9, 1, draw.ColorCyan, orbs)

	weapon := fmt.Sprintf("%-11s", snap.WeaponName())
	c.text(21, 1, "", weapon)

	music := "Music: OFF [M]"
	if c.audio.Music() {
		music = "Music: ON  [M]"
	}
	c.text(termWidth-draw.TextWidth(music), 1, draw.ColorGray, music)

	if snap.State == sim.StatePlaying {
		objective := fmt.Sprintf("%-52s", snap.Objective())
		style := ""
		if snap.Portal.Active {
			style = draw.ColorCyan
		}
		c.text(2, 2, style, objective)
	}
}

// drawMenuScreen draws the title screen.
func (c *Client) drawMenuScreen(centerX, centerY int, snap *sim.Snapshot) {
	top := centerY - 8
	for i, line := range draw.TitleSanta {
		c.centered(centerX, top+i, draw.ColorRed, line)
	}
	c.centered(centerX, top+len(draw.TitleSanta)+1, draw.ColorBold, "~ vs ~")
	for i, line := range draw.TitleVirus {
		c.centered(centerX, top+len(draw.TitleSanta)+3+i, draw.ColorGreen, line)
	}

	row := top + len(draw.TitleSanta) + len(draw.TitleVirus) + 4
	c.centered(centerX, row, "", "Collect orbs, beat the viruses and open the portal!")

	controls := []string{
		"Mouse / WASD  . .  Move Santa",
		"Click / SPACE  . . . . .  Shoot",
		"M  . . . . . . . . Music on/off",
		"Q  . . . . . . . . . . . . Quit",
	}
	for i, line := range controls {
		c.centered(centerX, row+2+i, draw.ColorGray, line)
	}

	if blinkOn(snap.Clock) {
		c.centered(centerX, row+len(controls)+3, draw.ColorBold, ">>  Click or press ENTER to start  <<")
	}
}

// drawLoseScreen draws the game over screen with the reason.
func (c *Client) drawLoseScreen(centerX, centerY int, snap *sim.Snapshot) {
	c.centered(centerX, centerY-3, draw.ColorRed, "G A M E   O V E R")
	reason := snap.LoseReason
	if reason == "" {
		reason = "You lost!"
	}
	c.centered(centerX, centerY-1, "", reason)
	c.centered(centerX, centerY, draw.ColorGray, fmt.Sprintf("Orbs collected: %d", snap.Pickups))
	if blinkOn(snap.Clock) {
		c.centered(centerX, centerY+2, draw.ColorBold, ">>  Click or press ENTER to try again  <<")
	}
}

// drawWinScreen draws the celebration screen.
func (c *Client) drawWinScreen(centerX, centerY int, snap *sim.Snapshot) {
	c.centered(centerX, centerY-3, draw.ColorGreen, "M E R R Y   C H R I S T M A S")
	c.centered(centerX, centerY-2, draw.ColorBold, "AND A HAPPY NEW YEAR")
	c.centered(centerX, centerY, "", "The gift was delivered!")
	if blinkOn(snap.Clock) {
		c.centered(centerX, centerY+2, draw.ColorBold, ">>  Click or press ENTER to play again  <<")
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.centered(centerX, centerY-2, draw.ColorYellow, "INACTIVITY WARNING")
	msg := "You have been inactive for too long and will be disconnected soon."
	c.centered(centerX, centerY, "", msg)
	c.centered(centerX, centerY+2, draw.ColorGray, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.centered(centerX, centerY-3, draw.ColorYellow, "SERVER SHUTTING DOWN")
	c.centered(centerX, centerY-1, "", "The server is restarting for maintenance.")
	c.centered(centerX, centerY, "", "Please reconnect in a moment.")

	remaining := int(math.Ceil(c.state.shutdownTimer))
	c.centered(centerX, centerY+2, "", fmt.Sprintf("Disconnecting in %2d seconds...", remaining))
	c.centered(centerX, centerY+4, draw.ColorGray, "Press Q to disconnect now")
}

// blinkOn toggles prompts at 600ms intervals.
func blinkOn(clock float64) bool {
	return int(clock/0.6)%2 == 0
}
