package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/mat-arcade/internal/audio"
	"github.com/vovakirdan/mat-arcade/internal/config"
	"github.com/vovakirdan/mat-arcade/internal/core"
	"github.com/vovakirdan/mat-arcade/internal/games/monk"
	"github.com/vovakirdan/mat-arcade/internal/games/roach"
	"github.com/vovakirdan/mat-arcade/internal/matinput"
)

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// openLogger returns a logger writing to the log file. The terminal belongs
// to the game, so nothing is logged to stderr while playing.
func openLogger(path string) (*log.Logger, func()) {
	noop := func() {}
	if path == "" || path == "-" {
		return log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true}), noop
	}
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
		return log.New(io.Discard), noop
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), noop
	}
	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           log.InfoLevel,
	})
	if flagVerbose {
		l.SetLevel(log.DebugLevel)
	}
	return l, func() { _ = f.Close() }
}

// matSettings merges .env, environment and flags. Flags win when set.
func matSettings(logger *log.Logger) config.MatSettings {
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("dotenv", "error", err)
	}
	s := config.MatFromEnv()
	if flagMat != "" {
		s.Backend = flagMat
	}
	if flagMatURL != "" {
		s.URL = flagMatURL
		if flagMat == "" && s.Backend == "none" {
			s.Backend = "firebase"
		}
	}
	if flagMatAuth != "" {
		s.Auth = flagMatAuth
	}
	if flagMatGroup > 0 {
		s.Group = flagMatGroup
	}
	return s
}

// newMatSource builds the mat backend named by s. A nil source with a nil
// error means keyboard only.
func newMatSource(s config.MatSettings, logger *log.Logger) (matinput.Source, error) {
	switch s.Backend {
	case "", "none", "off":
		return nil, nil
	case "firebase":
		return matinput.NewFirebaseSource(matinput.FirebaseConfig{
			DatabaseURL: s.URL,
			Auth:        s.Auth,
		}, matinput.NewHTTPClient(), logger)
	case "ws", "relay":
		return matinput.NewWSSource(s.URL, 0, logger)
	default:
		return nil, fmt.Errorf("unknown mat backend %q (want none, firebase or ws)", s.Backend)
	}
}

// newRuntime assembles the runtime config shared by play and menu.
func newRuntime(logger *log.Logger) core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		PadGroup: matinput.DefaultGroup,
		Logger:   logger,
	}

	s := matSettings(logger)
	src, err := newMatSource(s, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: mat input disabled: %v\n", err)
		logger.Warn("mat input disabled", "error", err)
	} else if src != nil {
		cfg.Pads = src
		cfg.PadGroup = s.Group
		logger.Info("mat input", "backend", src.Name(), "group", s.Group)
	}
	return cfg
}

// applyGameFlags passes --config and --difficulty to the game about to start.
func applyGameFlags(gameID string) {
	switch gameID {
	case "monk":
		monk.SetConfigPath(flagConfig)
		monk.SetDifficultyPreset(flagDifficulty)
	case "roach":
		roach.SetConfigPath(flagConfig)
		roach.SetDifficultyPreset(flagDifficulty)
	}
}

// newSound opens the audio device unless --mute is set. A device failure
// leaves a silent player; the error is logged by Init.
func newSound(logger *log.Logger) *audio.Player {
	p := audio.NewPlayer(logger)
	if flagMute {
		p.SetMuted(true)
		return p
	}
	_ = p.Init()
	return p
}
