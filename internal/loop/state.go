package loop

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/spacecatcher/internal/audio"
	"github.com/tomz197/spacecatcher/internal/config"
	"github.com/tomz197/spacecatcher/internal/object"
)

// GameState represents the current game phase.
type GameState int

const (
	GameStateMenu     GameState = iota // Difficulty selection, stars only
	GameStatePlaying                   // Active gameplay
	GameStateGameOver                  // Crashed, final score shown
)

// String returns the state name.
func (s GameState) String() string {
	switch s {
	case GameStateMenu:
		return "MENU"
	case GameStatePlaying:
		return "PLAYING"
	case GameStateGameOver:
		return "GAMEOVER"
	default:
		return fmt.Sprintf("GameState(%d)", int(s))
	}
}

// Session holds everything one playthrough needs. It is driven by a single
// goroutine: Tick, Select and Restart must not be called concurrently.
type Session struct {
	GameState  GameState
	Score      int
	FinalScore int
	Difficulty config.Difficulty
	Profile    config.Profile // Bound on difficulty selection, fixed until the next one

	Screen    object.Screen
	Player    *object.Player
	Stars     []*object.Star
	Supplies  []*object.Supply
	Planets   []*object.Planet
	Particles object.ParticleSystem

	input    object.Input    // Snapshot for the current tick
	sceneBuf []object.Entity // Reused by scene
	profiles config.Profiles
	audio    Audio
	ui       UI
	logger   *log.Logger
}

// SessionOptions configures a Session. Zero values select defaults.
type SessionOptions struct {
	Profiles config.Profiles
	Audio    Audio
	UI       UI
	Logger   *log.Logger
	Screen   object.Screen
}

// NewSession creates a session on the menu.
func NewSession(opts SessionOptions) *Session {
	s := &Session{
		GameState: GameStateMenu,
		Screen:    opts.Screen,
		profiles:  opts.Profiles,
		audio:     opts.Audio,
		ui:        opts.UI,
		logger:    opts.Logger,
	}
	if s.Screen == (object.Screen{}) {
		s.Screen = object.Field()
	}
	if s.profiles == nil {
		s.profiles = config.DefaultProfiles()
	}
	if s.audio == nil {
		s.audio = nopAudio{}
	}
	if s.ui == nil {
		s.ui = nopUI{}
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	s.ui.ShowScreen(ScreenStart)
	return s
}

// UpdateContext creates an UpdateContext from the current state.
func (s *Session) UpdateContext() object.UpdateContext {
	return object.UpdateContext{
		Input:   s.input,
		Profile: s.Profile,
		Screen:  s.Screen,
	}
}

// Select binds the profile for d and starts a playthrough. It is a no-op
// outside the menu. An unknown difficulty is rejected without any state
// change.
func (s *Session) Select(d config.Difficulty) error {
	if s.GameState != GameStateMenu {
		return nil
	}

	profile, err := s.profiles.Lookup(d)
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}

	s.Difficulty = d
	s.Profile = profile
	s.ui.HideScreen(ScreenStart)
	s.GameState = GameStatePlaying
	s.audio.Resume()
	s.audio.Play(audio.SoundSelect)
	s.populate()

	s.logger.Info("game started", "difficulty", d, "planets", profile.PlanetCount)
	return nil
}

// Restart returns from the game-over screen to the menu. It is a no-op in
// any other state. Rosters are left as they are; the menu only animates stars.
func (s *Session) Restart() {
	if s.GameState != GameStateGameOver {
		return
	}

	s.ui.HideScreen(ScreenGameOver)
	s.ui.ShowScreen(ScreenStart)
	s.GameState = GameStateMenu
}

// endGame freezes the score and shows the game-over screen.
func (s *Session) endGame() {
	s.GameState = GameStateGameOver
	s.FinalScore = s.Score
	s.ui.SetFinalScoreDisplay(s.FinalScore)
	s.ui.ShowScreen(ScreenGameOver)

	s.logger.Info("game over", "difficulty", s.Difficulty, "score", s.FinalScore)
}
