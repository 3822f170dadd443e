package loop

import (
	"github.com/tomz197/spacecatcher/internal/config"
	"github.com/tomz197/spacecatcher/internal/object"
)

// populate builds the rosters for a new playthrough. It is the only place
// roster lengths change.
func (s *Session) populate() {
	ctx := s.UpdateContext()

	s.Player = object.NewPlayer(s.Screen)
	s.ensureStars(ctx)

	s.Supplies = make([]*object.Supply, 0, config.SupplyCount)
	for i := 0; i < config.SupplyCount; i++ {
		s.Supplies = append(s.Supplies, object.NewSupply(ctx))
	}

	s.Planets = make([]*object.Planet, 0, s.Profile.PlanetCount)
	for i := 0; i < s.Profile.PlanetCount; i++ {
		s.Planets = append(s.Planets, object.NewPlanet(ctx))
	}

	s.Particles.Clear()
	s.Score = 0
	s.ui.SetScoreDisplay(s.Score)
}

// ensureStars creates the starfield if it does not exist yet.
func (s *Session) ensureStars(ctx object.UpdateContext) {
	if len(s.Stars) > 0 {
		return
	}
	s.Stars = make([]*object.Star, 0, config.StarCount)
	for i := 0; i < config.StarCount; i++ {
		s.Stars = append(s.Stars, object.NewStar(ctx))
	}
}
