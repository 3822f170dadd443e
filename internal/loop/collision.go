package loop

import (
	"github.com/tomz197/spacecatcher/internal/audio"
	"github.com/tomz197/spacecatcher/internal/config"
	"github.com/tomz197/spacecatcher/internal/object"
)

// checkCollisions tests the player's hit region against every supply, then
// every planet, in roster order. At most one crash is handled per frame.
func (s *Session) checkCollisions() {
	hit := s.Player.HitRegion()

	for _, sup := range s.Supplies {
		if sup.Intersects(hit) {
			s.collect(sup)
		}
	}

	for _, p := range s.Planets {
		if p.Intersects(hit) {
			s.crash()
			break
		}
	}
}

// collect scores a supply and sends it back above the field.
func (s *Session) collect(sup *object.Supply) {
	s.audio.Play(audio.SoundCoin)
	s.Score += sup.Value()
	s.ui.SetScoreDisplay(s.Score)
	s.Particles.Burst(sup.Pos, sup.Color(), config.SupplyBurstSize)
	sup.Reset(s.UpdateContext())
}

// crash blows up the ship and ends the game.
func (s *Session) crash() {
	s.audio.Play(audio.SoundExplosion)
	s.Particles.Burst(s.Player.Center(), object.ColorOrange, config.CrashBurstSize)
	s.endGame()
}
