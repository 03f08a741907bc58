package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcadeloop/internal/arcade"
	"github.com/vovakirdan/arcadeloop/internal/config"
	"github.com/vovakirdan/arcadeloop/internal/platform/tui"
	"github.com/vovakirdan/arcadeloop/internal/score"
	"github.com/vovakirdan/arcadeloop/internal/sound"
	"github.com/vovakirdan/arcadeloop/internal/sound/synth"
	"github.com/vovakirdan/arcadeloop/internal/storage"
)

// soundVolume is the linear synth volume used with --sound.
const soundVolume = 0.5

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return arcade.DefaultUser
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path[2:]
	}
	return filepath.Join(home, path[2:])
}

func parseLogLevel() log.Level {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		return log.InfoLevel
	}
	return level
}

// newFileLogger logs to --log-file; the terminal belongs to the game. The
// returned closer closes the file.
func newFileLogger() (*log.Logger, func()) {
	level := parseLogLevel()
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}

	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create log directory: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           level,
	})
	return logger, func() { f.Close() }
}

// openStore opens --pg or --db. A nil store with a nil error means scores
// stay in memory (--db "").
func openStore() (*storage.Store, error) {
	if flagPG != "" {
		return storage.OpenPostgres(context.Background(), flagPG)
	}
	if flagDBPath == "" {
		return nil, nil
	}
	return storage.Open(flagDBPath)
}

// openHost wires the collaborators shared by play and menu. The cleanup
// waits for pending score saves before closing the store.
func openHost(d config.Difficulty) (tui.Host, func()) {
	logger, closeLog := newFileLogger()

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores kept in memory", "err", err)
		store = nil
	}
	var svc score.Service = score.NewMemory()
	if store != nil {
		svc = store
	}
	recorder := score.NewRecorder(svc, logger)

	var player sound.Player = sound.Nop{}
	var speaker *synth.Synth
	if flagSound {
		speaker, err = synth.New(soundVolume)
		if err != nil {
			logger.Warn("audio unavailable, playing silently", "err", err)
		}
		player = speaker
	}

	host := tui.Host{
		Store:      store,
		Scores:     recorder,
		Sounds:     player,
		Logger:     logger,
		User:       flagUser,
		Difficulty: d,
	}
	cleanup := func() {
		recorder.Wait()
		if speaker != nil {
			speaker.Close()
		}
		if store != nil {
			if err := store.Close(); err != nil {
				logger.Warn("closing scores database", "err", err)
			}
		}
		closeLog()
	}
	return host, cleanup
}

func parseDifficulty() config.Difficulty {
	d, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return d
}
