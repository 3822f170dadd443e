package audio

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveNoise
)

// oscillator generates a wave whose frequency slides linearly from freq to
// freqEnd over its duration.
type oscillator struct {
	freq     float64
	freqEnd  float64
	volume   float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-frequency oscillator.
func NewOscillator(freq, volume float64, duration time.Duration, wave WaveType) beep.Streamer {
	return &oscillator{
		freq:     freq,
		freqEnd:  freq,
		volume:   volume,
		duration: sampleRate.N(duration),
		wave:     wave,
		rate:     sampleRate,
	}
}

// NewSweep creates a sine oscillator sliding from one frequency to another.
func NewSweep(from, to, volume float64, duration time.Duration) beep.Streamer {
	return &oscillator{
		freq:     from,
		freqEnd:  to,
		volume:   volume,
		duration: sampleRate.N(duration),
		wave:     WaveSine,
		rate:     sampleRate,
	}
}

// NewNoise creates a white noise burst.
func NewNoise(volume float64, duration time.Duration) beep.Streamer {
	return &oscillator{
		volume:   volume,
		duration: sampleRate.N(duration),
		wave:     WaveNoise,
		rate:     sampleRate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		val *= o.volume

		samples[i][0] = val
		samples[i][1] = val

		// Advance phase at the current point of the sweep
		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.freqEnd-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// Coin is the rising chirp played when a supply is collected.
func Coin() beep.Streamer {
	return NewSweep(400, 1000, 0.5, 200*time.Millisecond)
}

// Explosion is the noise burst played on a crash.
func Explosion() beep.Streamer {
	return NewNoise(0.5, 500*time.Millisecond)
}

// Select is the short beep played on a menu selection.
func Select() beep.Streamer {
	return NewOscillator(660, 0.5, 100*time.Millisecond, WaveSine)
}

// Effects returns the generator for every game sound, keyed by name.
func Effects() map[string]func() beep.Streamer {
	return map[string]func() beep.Streamer{
		SoundCoin:      Coin,
		SoundExplosion: Explosion,
		SoundSelect:    Select,
	}
}

// WriteWAV encodes s as 16-bit mono WAV at path.
func WriteWAV(path string, s beep.Streamer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	format := beep.Format{SampleRate: sampleRate, NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, s, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
