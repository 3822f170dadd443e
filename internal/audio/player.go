// Package audio plays short sound effects through the system speaker.
//
// Sounds are WAV files decoded in the background into memory buffers. The
// game never waits for a load to finish: Play on a sound that is missing,
// still loading or failed to load is silently skipped.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// Sound names used by the game.
const (
	SoundCoin      = "coin"
	SoundExplosion = "explosion"
	SoundSelect    = "select"
)

const sampleRate = beep.SampleRate(44100)

// ErrNotLoaded is returned by Buffer for an unknown sound.
var ErrNotLoaded = errors.New("sound not loaded")

// Player mixes sound effects onto the speaker.
//
// It starts suspended, like a browser audio context before the first user
// gesture: nothing plays until Resume is called.
type Player struct {
	mu          sync.Mutex
	sounds      map[string]*beep.Buffer
	mixer       *beep.Mixer
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	initialized bool
	logger      *log.Logger
}

// NewPlayer creates a player. A nil logger discards log output.
func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	mixer := &beep.Mixer{}
	ctrl := &beep.Ctrl{Streamer: mixer, Paused: true}
	return &Player{
		sounds: make(map[string]*beep.Buffer),
		mixer:  mixer,
		ctrl:   ctrl,
		volume: &effects.Volume{Streamer: ctrl, Base: 2},
		logger: logger,
	}
}

// Init opens the speaker. Failure is not fatal: the game runs silently.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(p.volume)
	p.initialized = true
	return nil
}

// Close stops all sounds and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// LoadSound decodes the WAV file at path in the background and registers it
// under name. The returned channel receives the load result and is then
// closed; callers are free to ignore it.
func (p *Player) LoadSound(name, path string) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		err := p.load(name, path)
		if err != nil {
			p.logger.Warn("failed to load sound", "name", name, "path", path, "err", err)
		} else {
			p.logger.Debug("sound loaded", "name", name, "path", path)
		}
		done <- err
	}()
	return done
}

func (p *Player) load(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{
		SampleRate:  sampleRate,
		NumChannels: format.NumChannels,
		Precision:   format.Precision,
	})
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	p.mu.Lock()
	p.sounds[name] = buf
	p.mu.Unlock()
	return nil
}

// Loaded reports whether name is ready to play.
func (p *Player) Loaded(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.sounds[name]
	return ok
}

// Buffer returns the decoded samples for name.
func (p *Player) Buffer(name string) (*beep.Buffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	buf, ok := p.sounds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, name)
	}
	return buf, nil
}

// Play starts the named sound. It does nothing if the sound is not loaded,
// the speaker is unavailable or the player is suspended.
func (p *Player) Play(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.ctrl.Paused {
		return
	}
	buf, ok := p.sounds[name]
	if !ok {
		return
	}

	speaker.Lock()
	p.mixer.Add(buf.Streamer(0, buf.Len()))
	speaker.Unlock()
}

// Resume lets queued and future sounds reach the speaker.
func (p *Player) Resume() {
	p.setPaused(false)
}

// Suspend silences the player until Resume.
func (p *Player) Suspend() {
	p.setPaused(true)
}

// Suspended reports whether the player is suspended.
func (p *Player) Suspended() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl.Paused
}

func (p *Player) setPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.ctrl.Paused = paused
}

// SetVolume sets the gain in halvings/doublings (0 = unchanged, -1 = half).
func (p *Player) SetVolume(level float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.volume.Volume = level
	p.volume.Silent = false
}

// Mute silences output without suspending.
func (p *Player) Mute() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.volume.Silent = true
}
