package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/spacecatcher/internal/config"
	"github.com/tomz197/spacecatcher/internal/draw"
	"github.com/tomz197/spacecatcher/internal/loop"
	"github.com/tomz197/spacecatcher/internal/loop/server"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ssh",
	})

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	profiles, err := config.LoadProfiles(config.GetEnv("SPACECATCHER_DIFFICULTY_FILE", ""))
	if err != nil {
		logger.Fatal("failed to load difficulties", "err", err)
	}

	// Shared by all SSH sessions
	ctx, cancelServer := context.WithCancel(context.Background())
	gameServer := server.NewServer(logger.WithPrefix("server"))
	go gameServer.Run(ctx)
	logger.Info("game server started")

	h := &handler{server: gameServer, profiles: profiles, logger: logger}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			h.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Notify players and wait for them to disconnect
	gameServer.Shutdown(15 * time.Second)
	cancelServer()
	logger.Info("game server stopped")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// handler runs one game per SSH session.
type handler struct {
	server   *server.Server
	profiles config.Profiles
	logger   *log.Logger
}

func (h *handler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := h.logger.With("user", sess.User())
		logger.Info("new game session", "terminal", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		// Sound stays on the server host, so SSH players get none
		game := loop.NewGame(bufio.NewReader(sess), sess, loop.Options{
			TermSizeFunc:   sizeTracker.getSize,
			Profiles:       h.profiles,
			Logger:         logger,
			Server:         h.server,
			Username:       sess.User(),
			DisconnectIdle: true,
		})
		if err := game.Run(sess.Context()); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended", "score", game.Session().FinalScore)
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
