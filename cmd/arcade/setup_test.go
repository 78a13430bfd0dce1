package main

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mat-arcade/internal/config"
)

func TestNewMatSource(t *testing.T) {
	logger := log.New(io.Discard)

	tests := []struct {
		settings config.MatSettings
		wantName string
		wantErr  bool
	}{
		{config.MatSettings{Backend: "none"}, "", false},
		{config.MatSettings{Backend: ""}, "", false},
		{config.MatSettings{Backend: "firebase", URL: "https://demo.firebaseio.com"}, "firebase", false},
		{config.MatSettings{Backend: "firebase"}, "", true},
		{config.MatSettings{Backend: "ws", URL: "ws://localhost:8080/mat"}, "relay", false},
		{config.MatSettings{Backend: "ws", URL: "http://localhost:8080/mat"}, "", true},
		{config.MatSettings{Backend: "bluetooth"}, "", true},
	}

	for _, tt := range tests {
		src, err := newMatSource(tt.settings, logger)
		if (err != nil) != tt.wantErr {
			t.Errorf("newMatSource(%+v) error = %v, wantErr %v", tt.settings, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		name := ""
		if src != nil {
			name = src.Name()
		}
		if name != tt.wantName {
			t.Errorf("newMatSource(%+v) = %q, want %q", tt.settings, name, tt.wantName)
		}
	}
}

func TestMatSettingsFlagsOverrideEnv(t *testing.T) {
	t.Setenv(config.EnvMat, "ws")
	t.Setenv(config.EnvDatabaseURL, "ws://env-host/mat")
	t.Setenv(config.EnvGroup, "4")

	flagMat, flagMatURL, flagMatAuth, flagMatGroup = "", "", "", 0
	defer func() { flagMat, flagMatURL, flagMatAuth, flagMatGroup = "", "", "", 0 }()

	s := matSettings(log.New(io.Discard))
	if s.Backend != "ws" || s.URL != "ws://env-host/mat" || s.Group != 4 {
		t.Errorf("env settings = %+v", s)
	}

	flagMat = "firebase"
	flagMatURL = "https://flag.firebaseio.com"
	flagMatGroup = 2
	s = matSettings(log.New(io.Discard))
	if s.Backend != "firebase" || s.URL != "https://flag.firebaseio.com" || s.Group != 2 {
		t.Errorf("flag settings = %+v", s)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/player")

	if got := expandHome("~/.arcade/arcade.log"); got != "/home/player/.arcade/arcade.log" {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("./arcade.log"); got != "./arcade.log" {
		t.Errorf("expandHome changed a relative path: %q", got)
	}
}
