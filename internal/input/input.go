// Package input turns raw terminal bytes into per-frame input snapshots.
//
// Terminals only report key presses (with auto-repeat), never releases, so a
// key counts as held for keyHoldDuration after its last press. Discrete
// signals such as a difficulty pick or a restart are delivered as Commands,
// each exactly once.
package input

import (
	"io"
	"time"

	"github.com/tomz197/spacecatcher/internal/config"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// It has to bridge the terminal's auto-repeat interval.
const keyHoldDuration = 60 * time.Millisecond

// Key identifies a held key that can be queried from a snapshot.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
)

// CommandKind identifies a discrete signal.
type CommandKind int

const (
	CommandSelect  CommandKind = iota // Difficulty selection, see Command.Difficulty
	CommandRestart                    // Return from game over to the menu
	CommandQuit                       // Leave the program
)

// Command is a discrete signal consumed once by the game loop.
type Command struct {
	Kind       CommandKind
	Difficulty config.Difficulty
}

// Input represents the current frame's input state.
type Input struct {
	Left     bool
	Right    bool
	Commands []Command
	Pressed  []byte // Raw bytes received this frame (activity tracking)
}

// IsPressed reports whether key is held in this snapshot.
func (in Input) IsPressed(key Key) bool {
	switch key {
	case KeyLeft:
		return in.Left
	case KeyRight:
		return in.Right
	default:
		return false
	}
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
// The reader goroutine is the only writer to the channel; ReadInput is the only
// reader of the key state, so the two sides never share memory.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Start of an escape sequence cut off by the last drain
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.ByteReader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// returns the snapshot for this frame. closed is true once the underlying
// reader has failed (e.g. the SSH session went away).
func ReadInput(s *Stream) (in Input, closed bool) {
	var buf []byte

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return s.parse(buf, time.Now()), closed
}

// parse applies buf to the key state and builds the snapshot at time now.
// Handles CSI (ESC [) and SS3 (ESC O) arrow sequences. A sequence cut off at
// the end of buf is kept and completed by the next call.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}
	if len(s.pending) > 0 {
		buf = append(s.pending, buf...)
		s.pending = nil
	}

scan:
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			if i+1 == len(buf) || (i+2 == len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O')) {
				s.pending = append([]byte(nil), buf[i:]...)
				break scan
			}
			if buf[i+1] == '[' || buf[i+1] == 'O' {
				switch buf[i+2] {
				case 'C': // Right arrow
					s.state.right = now
				case 'D': // Left arrow
					s.state.left = now
				}
				// Up/down and other final bytes are unused
				i += 2
				continue
			}
		}

		switch b {
		case 'a', 'A':
			s.state.left = now
		case 'd', 'D':
			s.state.right = now
		case '1', 'e', 'E':
			in.Commands = append(in.Commands, Command{Kind: CommandSelect, Difficulty: config.Easy})
		case '2', 'n', 'N':
			in.Commands = append(in.Commands, Command{Kind: CommandSelect, Difficulty: config.Normal})
		case '3', 'h', 'H':
			in.Commands = append(in.Commands, Command{Kind: CommandSelect, Difficulty: config.Hard})
		case ' ', '\n', '\r', 'r', 'R':
			in.Commands = append(in.Commands, Command{Kind: CommandRestart})
		case 'q', 'Q', '\x03':
			in.Commands = append(in.Commands, Command{Kind: CommandQuit})
		}
	}

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	return in
}

// ResetKeyInput forgets held keys, so a key pressed on the menu does not
// leak into the first frames of a new game.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}
