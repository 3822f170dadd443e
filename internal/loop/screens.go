package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/spacecatcher/internal/config"
	"github.com/tomz197/spacecatcher/internal/draw"
	"github.com/tomz197/spacecatcher/internal/object"
)

// HUD is the terminal UI: it remembers what the session asked to display
// and draws it as text over the canvas every frame.
type HUD struct {
	score      int
	finalScore int
	visible    map[string]bool
}

// Ensure HUD satisfies UI.
var _ UI = (*HUD)(nil)

// NewHUD creates a HUD with no screen visible.
func NewHUD() *HUD {
	return &HUD{visible: make(map[string]bool)}
}

// SetScoreDisplay updates the in-game score.
func (h *HUD) SetScoreDisplay(score int) {
	h.score = score
}

// SetFinalScoreDisplay updates the score shown on the game-over screen.
func (h *HUD) SetFinalScoreDisplay(score int) {
	h.finalScore = score
}

// ShowScreen makes a named screen visible.
func (h *HUD) ShowScreen(name string) {
	h.visible[name] = true
}

// HideScreen hides a named screen.
func (h *HUD) HideScreen(name string) {
	delete(h.visible, name)
}

// Visible reports whether a named screen is shown.
func (h *HUD) Visible(name string) bool {
	return h.visible[name]
}

// Score returns the displayed in-game score.
func (h *HUD) Score() int {
	return h.score
}

// FinalScore returns the displayed final score.
func (h *HUD) FinalScore() int {
	return h.finalScore
}

// drawUI draws the overlay for the current frame.
func (g *Game) drawUI() {
	termWidth := g.canvas.TerminalWidth()
	termHeight := g.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if g.shutdown {
		g.drawShutdownScreen(centerX, centerY)
		return
	}

	if g.inactive {
		g.drawInactivityScreen(centerX, centerY)
		return
	}

	if g.session.GameState == GameStatePlaying {
		g.drawPlayingHUD()
	}
	if g.hud.Visible(ScreenStart) {
		g.drawStartScreen(centerX, centerY)
	}
	if g.hud.Visible(ScreenGameOver) {
		g.drawGameOverScreen(centerX, centerY)
	}
}

// writeText draws t and marks its cells so the canvas repaints them next
// frame, in case the text is gone by then.
func (g *Game) writeText(t object.Text) {
	t.Draw(g.chunkWriter)
	g.canvas.MarkTextDirty(max(t.Col, 1), max(t.Row, 1), t.Width())
}

// drawPlayingHUD draws the score in the top-left corner.
// Fixed-width formatting so shrinking values don't leave residual characters.
func (g *Game) drawPlayingHUD() {
	g.writeText(object.Text{Col: 2, Row: 1, Value: fmt.Sprintf("Score: %-8d", g.hud.Score()), Color: object.ColorWhite})
}

// drawStartScreen draws the title and difficulty menu.
func (g *Game) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  ___ ___  _   ___ ___    ___   _ _____ ___ _  _ ___ ___  `,
		` / __| _ \/_\ / __| __|  / __| /_\_   _/ __| || | __| _ \ `,
		` \__ \  _/ _ \ (__| _|  | (__ / _ \| || (__| __ | _||   / `,
		` |___/_|/_/ \_\___|___|  \___/_/ \_\_| \___|_||_|___|_|_\ `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	titleStartY := centerY - 8
	for i, line := range titleArt {
		g.writeText(object.Text{Col: centerX - titleWidth/2, Row: titleStartY + i, Value: line, Color: object.ColorYellow})
	}

	subtitle := "Collect supplies. Dodge planets."
	g.writeText(object.CenteredText(centerX, titleStartY+len(titleArt)+1, subtitle, object.ColorCyan))

	optionsY := titleStartY + len(titleArt) + 3
	options := []struct {
		text  string
		color draw.Color
	}{
		{"1 / E  . . . . .  Easy", object.ColorGreen},
		{"2 / N  . . . . . Normal", object.ColorYellow},
		{"3 / H  . . . . . . Hard", object.ColorRed},
	}
	g.writeText(object.CenteredText(centerX, optionsY, "Select difficulty", object.ColorWhite))
	for i, o := range options {
		g.writeText(object.CenteredText(centerX, optionsY+1+i, o.text, o.color))
	}

	controlsY := optionsY + len(options) + 2
	g.writeText(object.CenteredText(centerX, controlsY, "A D / < >  move    Q  quit", object.ColorGray))

	if g.server != nil {
		g.drawLeaderboard(centerX, controlsY+2)
	}
}

// drawLeaderboard lists the best runs of this server.
func (g *Game) drawLeaderboard(centerX, startY int) {
	top := g.server.TopScores(3)
	players := fmt.Sprintf("Pilots online: %-4d", g.server.Players())
	g.writeText(object.CenteredText(centerX, startY, players, object.ColorGray))
	for i, e := range top {
		line := fmt.Sprintf("%d. %-16s %6d", i+1, truncate(e.Username, 16), e.Score)
		g.writeText(object.CenteredText(centerX, startY+1+i, line, object.ColorPurple))
	}
}

// drawGameOverScreen draws the crash screen with the final score.
func (g *Game) drawGameOverScreen(centerX, centerY int) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	titleStartY := centerY - 5
	for i, line := range titleArt {
		g.writeText(object.Text{Col: centerX - titleWidth/2, Row: titleStartY + i, Value: line, Color: object.ColorRed})
	}

	scoreText := fmt.Sprintf("Final Score: %d", g.hud.FinalScore())
	g.writeText(object.CenteredText(centerX, titleStartY+len(titleArt)+1, scoreText, object.ColorWhite))

	// Blinking restart prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		prompt := ">>  Press SPACE to Restart  <<"
		g.writeText(object.CenteredText(centerX, titleStartY+len(titleArt)+3, prompt, object.ColorYellow))
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (g *Game) drawInactivityScreen(centerX, centerY int) {
	g.writeText(object.CenteredText(centerX, centerY-2, "INACTIVITY WARNING", object.ColorYellow))

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(g.lastInput).Seconds()),
	)
	g.writeText(object.CenteredText(centerX, centerY, msg, object.ColorWhite))
	g.writeText(object.CenteredText(centerX, centerY+2, "Press any key to continue", object.ColorGray))
}

// drawShutdownScreen draws the server shutdown notification screen.
func (g *Game) drawShutdownScreen(centerX, centerY int) {
	g.writeText(object.CenteredText(centerX, centerY-3, "SERVER SHUTTING DOWN", object.ColorRed))
	g.writeText(object.CenteredText(centerX, centerY-1, "The server is restarting for maintenance.", object.ColorWhite))
	g.writeText(object.CenteredText(centerX, centerY, "Please reconnect in a moment.", object.ColorWhite))

	remaining := int(g.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", remaining)
	g.writeText(object.CenteredText(centerX, centerY+2, countdown, object.ColorWhite))
	g.writeText(object.CenteredText(centerX, centerY+4, "Press Q to disconnect now", object.ColorGray))
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
