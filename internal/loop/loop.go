// Package loop provides the game session state machine and the per-terminal
// frame loop that drives it.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/spacecatcher/internal/config"
	"github.com/tomz197/spacecatcher/internal/draw"
	"github.com/tomz197/spacecatcher/internal/input"
	"github.com/tomz197/spacecatcher/internal/loop/server"
	"github.com/tomz197/spacecatcher/internal/object"
)

// Options configures a Game. Zero values select defaults.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Audio        Audio
	Profiles     config.Profiles
	Logger       *log.Logger

	// Server, when set, registers the game for shutdown notices and the
	// leaderboard.
	Server   server.GameServer
	Username string

	// DisconnectIdle ends the game after a period without input.
	DisconnectIdle bool
}

// Game runs one session on one terminal: input, update, draw at a fixed
// frame rate. Entity speeds are per frame, so the frame rate is the game
// speed.
type Game struct {
	session      *Session
	hud          *HUD
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates frame output for chunked writes
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger

	server server.GameServer
	handle *server.ClientHandle

	running        bool
	input          object.Input
	lastInput      time.Time
	disconnectIdle bool
	inactive       bool
	shutdown       bool
	shutdownTimer  float64 // Seconds left on the shutdown screen
	delta          time.Duration

	prevState   GameState
	wasInactive bool
	wasShutdown bool
}

// NewGame creates a game reading key bytes from r and drawing to w.
func NewGame(r io.ByteReader, w io.Writer, opts Options) *Game {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	hud := NewHUD()
	session := NewSession(SessionOptions{
		Profiles: opts.Profiles,
		Audio:    opts.Audio,
		UI:       hud,
		Logger:   logger,
	})

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, session.Screen.Width, session.Screen.Height)
	canvas.SetOffset(offsetCol, offsetRow)
	canvas.SetBackground(object.ColorBackground)

	g := &Game{
		session:        session,
		hud:            hud,
		canvas:         canvas,
		chunkWriter:    draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:         w,
		inputStream:    input.StartStream(r),
		termSizeFunc:   termSizeFunc,
		logger:         logger,
		server:         opts.Server,
		running:        true,
		lastInput:      time.Now(),
		disconnectIdle: opts.DisconnectIdle,
		prevState:      session.GameState,
	}
	if g.server != nil {
		g.handle = g.server.RegisterClient(opts.Username)
	}
	return g
}

// Session returns the game's session.
func (g *Game) Session() *Session {
	return g.session
}

// Run starts the frame loop. Blocks until the player quits, the input
// stream closes, the context is cancelled or the server shuts down.
func (g *Game) Run(ctx context.Context) error {
	draw.HideCursor(g.writer)
	defer draw.ShowCursor(g.writer)
	draw.ClearScreen(g.writer)

	if g.handle != nil {
		defer g.server.UnregisterClient(g.handle.ID)
	}

	lastTime := time.Now()

	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
			continue
		default:
		}

		frameStart := time.Now()
		g.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		g.processInput()
		g.processServerEvents()

		// ===== UPDATE PHASE =====
		g.updateScreen()
		if g.shutdown {
			g.updateShutdownState()
		}

		prev := g.session.GameState
		g.canvas.Clear()
		g.session.Tick(g.input, g.canvas)
		if prev == GameStatePlaying && g.session.GameState == GameStateGameOver && g.handle != nil {
			g.server.ReportScore(g.handle.ID, g.session.FinalScore)
		}

		// ===== DRAW PHASE =====
		if err := g.drawFrame(); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(g.writer)
	return nil
}

// processInput reads this frame's input and applies its commands.
func (g *Game) processInput() {
	in, closed := input.ReadInput(g.inputStream)
	g.input = in
	if closed {
		g.running = false
	}

	if len(in.Pressed) > 0 {
		g.lastInput = time.Now()
		g.inactive = false
	} else if g.disconnectIdle {
		idle := time.Since(g.lastInput).Seconds()
		if idle > config.InactivityDisconnectUser {
			g.logger.Info("disconnecting idle session", "idle", idle)
			g.running = false
		} else if idle > config.InactivityWarnUser {
			g.inactive = true
		}
	}

	for _, cmd := range in.Commands {
		switch cmd.Kind {
		case input.CommandQuit:
			g.running = false
		case input.CommandSelect:
			if err := g.session.Select(cmd.Difficulty); err != nil {
				g.logger.Warn("difficulty rejected", "difficulty", cmd.Difficulty, "err", err)
				continue
			}
			// Keys held on the menu must not steer the new ship
			input.ResetKeyInput(g.inputStream)
			g.input.Left, g.input.Right = false, false
		case input.CommandRestart:
			g.session.Restart()
		}
	}
}

// processServerEvents handles events from the server.
func (g *Game) processServerEvents() {
	if g.handle == nil {
		return
	}
	for {
		select {
		case event, ok := <-g.handle.EventsCh:
			if !ok {
				// Server closed the channel
				g.running = false
				return
			}
			if event.Type == server.EventServerShutdown && !g.shutdown {
				g.shutdown = true
				g.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateShutdownState counts down the shutdown screen.
func (g *Game) updateShutdownState() {
	g.shutdownTimer -= g.delta.Seconds()
	if g.shutdownTimer <= 0 {
		g.running = false
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (g *Game) updateScreen() {
	termWidth, termHeight, err := g.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != g.canvas.TerminalWidth() || renderHeight != g.canvas.TerminalHeight() ||
		offsetCol != g.canvas.OffsetCol() || offsetRow != g.canvas.OffsetRow() {
		draw.ClearScreen(g.chunkWriter)
		g.canvas.ForceRedraw()
	}

	g.canvas.Resize(renderWidth, renderHeight)
	g.canvas.SetOffset(offsetCol, offsetRow)
	g.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and
// the field's 4:3 aspect, and computes the centering offset for the render
// area. A terminal cell holds two square-ish sub-pixels stacked vertically.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = max(min(termWidth, config.MaxTermWidth), 1)
	renderHeight = max(min(termHeight, config.MaxTermHeight), 1)

	aspect := float64(config.FieldWidth) / float64(config.FieldHeight)
	if w := int(float64(renderHeight*2) * aspect); renderWidth > w {
		renderWidth = max(w, 1)
	} else if h := int(float64(renderWidth) / aspect / 2); renderHeight > h {
		renderHeight = max(h, 1)
	}

	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

// drawFrame writes the rendered canvas and the UI overlay.
func (g *Game) drawFrame() error {
	// On game state, inactivity or shutdown transitions, do a full terminal
	// clear so UI elements from the previous state don't persist on screen.
	if g.session.GameState != g.prevState || g.inactive != g.wasInactive || g.shutdown != g.wasShutdown {
		draw.ClearScreen(g.chunkWriter)
		g.canvas.ForceRedraw()
		g.prevState = g.session.GameState
		g.wasInactive = g.inactive
		g.wasShutdown = g.shutdown
	}

	// Render canvas to terminal
	g.canvas.Render(g.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	g.canvas.RenderBorder(g.chunkWriter)

	// Draw UI overlay
	g.drawUI()

	return g.chunkWriter.Flush()
}

// Run creates a game on r and w and runs it until it ends.
func Run(ctx context.Context, r io.ByteReader, w io.Writer, opts Options) error {
	return NewGame(r, w, opts).Run(ctx)
}
