package loop

import (
	"github.com/tomz197/spacecatcher/internal/draw"
	"github.com/tomz197/spacecatcher/internal/object"
)

// Tick runs one frame for the current state, submitting the frame's draw
// commands to r. The state is checked on entry, so a tick arriving after
// the game ended never moves anything that affects the score.
func (s *Session) Tick(in object.Input, r draw.Renderer) {
	s.input = in

	switch s.GameState {
	case GameStateMenu:
		s.updateMenuState(r)
	case GameStatePlaying:
		s.updatePlayingState(r)
	case GameStateGameOver:
		s.updateGameOverState(r)
	}
}

// updateMenuState animates the starfield behind the menu.
func (s *Session) updateMenuState(r draw.Renderer) {
	ctx := s.UpdateContext()
	s.ensureStars(ctx)
	for _, star := range s.Stars {
		star.Update(ctx)
		star.Draw(r)
	}
}

// scene returns every roster entity in draw order: stars, player, supplies,
// planets. The slice is reused between frames.
func (s *Session) scene() []object.Entity {
	s.sceneBuf = s.sceneBuf[:0]
	for _, star := range s.Stars {
		s.sceneBuf = append(s.sceneBuf, star)
	}
	if s.Player != nil {
		s.sceneBuf = append(s.sceneBuf, s.Player)
	}
	for _, sup := range s.Supplies {
		s.sceneBuf = append(s.sceneBuf, sup)
	}
	for _, p := range s.Planets {
		s.sceneBuf = append(s.sceneBuf, p)
	}
	return s.sceneBuf
}

// updatePlayingState advances every entity in draw order, then the
// particles, and then resolves collisions once.
func (s *Session) updatePlayingState(r draw.Renderer) {
	ctx := s.UpdateContext()

	for _, e := range s.scene() {
		e.Update(ctx)
		e.Draw(r)
	}
	s.Particles.Step(ctx, r)

	s.checkCollisions()
}

// updateGameOverState redraws the crash scene without updating it. Unlike a
// fully frozen frame, the crash particles keep moving until they fade out.
// They carry no score, so the final score and every roster stay as they were
// at the crash.
func (s *Session) updateGameOverState(r draw.Renderer) {
	for _, e := range s.scene() {
		e.Draw(r)
	}
	s.Particles.Step(s.UpdateContext(), r)
}
