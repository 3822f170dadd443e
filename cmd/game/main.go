package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/tomz197/spacecatcher/internal/audio"
	"github.com/tomz197/spacecatcher/internal/config"
	"github.com/tomz197/spacecatcher/internal/loop"
	"golang.org/x/term"
)

const defaultAssetsDir = "assets"

func main() {
	logger, closeLog, err := newLogger(config.GetEnv("SPACECATCHER_LOG_FILE", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	profiles, err := config.LoadProfiles(config.GetEnv("SPACECATCHER_DIFFICULTY_FILE", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load difficulties: %v\n", err)
		os.Exit(1)
	}

	player := newAudio(logger)
	defer player.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	opts := loop.Options{
		Audio:    player,
		Profiles: profiles,
		Logger:   logger,
	}
	if err := loop.Run(ctx, reader, os.Stdout, opts); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger logs to path, or nowhere when path is empty. Stdout belongs to
// the game.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "spacecatcher",
		Level:           log.DebugLevel,
	})
	return logger, func() { _ = f.Close() }, nil
}

// newAudio starts the speaker and loads the effects in the background. The
// game runs silent if the speaker or any file is unavailable.
func newAudio(logger *log.Logger) *audio.Player {
	player := audio.NewPlayer(logger)
	if config.GetEnvBool("SPACECATCHER_MUTE", false) {
		player.Mute()
	}
	if err := player.Init(); err != nil {
		logger.Warn("audio disabled", "err", err)
		return player
	}

	dir := config.GetEnv("SPACECATCHER_ASSETS", defaultAssetsDir)
	for _, name := range []string{audio.SoundCoin, audio.SoundExplosion, audio.SoundSelect} {
		player.LoadSound(name, filepath.Join(dir, name+".wav"))
	}
	return player
}
