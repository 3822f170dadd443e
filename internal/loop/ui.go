package loop

// Screen names understood by a UI.
const (
	ScreenStart    = "start-screen"
	ScreenGameOver = "game-over-screen"
)

// UI receives score updates and screen visibility changes. The game never
// reads anything back from it.
type UI interface {
	SetScoreDisplay(score int)
	SetFinalScoreDisplay(score int)
	ShowScreen(name string)
	HideScreen(name string)
}

// Audio plays named sound effects. Play must be a no-op for sounds that are
// not loaded or while output is inactive.
type Audio interface {
	Play(name string)
	Resume()
}

type nopUI struct{}

func (nopUI) SetScoreDisplay(int)      {}
func (nopUI) SetFinalScoreDisplay(int) {}
func (nopUI) ShowScreen(string)        {}
func (nopUI) HideScreen(string)        {}

type nopAudio struct{}

func (nopAudio) Play(string) {}
func (nopAudio) Resume()     {}
