// Command gensounds writes the game's sound effects as WAV files.
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/tomz197/spacecatcher/internal/audio"
	"github.com/tomz197/spacecatcher/internal/config"
)

func main() {
	dir := flag.String("out", config.GetEnv("SPACECATCHER_ASSETS", "assets"), "output directory")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "gensounds"})

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		logger.Fatal("failed to create output directory", "dir", *dir, "err", err)
	}

	for name, effect := range audio.Effects() {
		path := filepath.Join(*dir, name+".wav")
		if err := audio.WriteWAV(path, effect()); err != nil {
			logger.Fatal("failed to write sound", "name", name, "err", err)
		}
		logger.Info("wrote sound", "path", path)
	}
}
