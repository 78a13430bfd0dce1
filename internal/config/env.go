package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read for mat input settings.
const (
	EnvMat         = "ARCADE_MAT"
	EnvDatabaseURL = "FIREBASE_DATABASE_URL"
	EnvAuth        = "FIREBASE_AUTH"
	EnvGroup       = "MAT_GROUP_ID"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are skipped; with no arguments ./.env is tried.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

// GetEnv returns the value of key, or fallback when it is unset or empty.
func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// GetEnvInt returns key parsed as an integer, or fallback when it is unset
// or not a number.
func GetEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// MatSettings selects and configures the mat input backend.
type MatSettings struct {
	Backend string // "none", "firebase" or "ws"
	URL     string // database URL or relay endpoint
	Auth    string
	Group   int
}

// MatFromEnv reads mat settings from the environment.
func MatFromEnv() MatSettings {
	s := MatSettings{
		Backend: GetEnv(EnvMat, "none"),
		URL:     GetEnv(EnvDatabaseURL, ""),
		Auth:    GetEnv(EnvAuth, ""),
		Group:   GetEnvInt(EnvGroup, 1),
	}
	if s.Backend == "none" && s.URL != "" {
		s.Backend = "firebase"
	}
	return s
}
