package config

import "time"

// Game configuration constants.
// All tunable game parameters are centralized here for easy adjustment.

// Playfield - logical coordinates used by every entity.
// Actual rendering scales to fit terminal size.
const (
	FieldWidth  = 800
	FieldHeight = 600
)

// Rosters
const (
	StarCount   = 50
	SupplyCount = 3
)

// Collision and effects
const (
	HitInset           = 10.0 // Player hit-region is this much smaller on every side
	SupplyBurstSize    = 8
	CrashBurstSize     = 15
	ParticleShrinkRate = 0.95
)

// Frame pacing. Entity speeds are per frame, so the frame rate sets the
// game speed.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Terminal rendering
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Inactivity (SSH sessions)
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)
