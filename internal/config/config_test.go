package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	monk, err := load("monk", "", defaultMonkYAML, func() MonkConfig { return MonkConfig{} })
	if err != nil {
		t.Fatalf("load monk: %v", err)
	}
	want := DefaultMonkConfig()
	if monk.Field != want.Field || monk.Player != want.Player || monk.Spawn.EnemyIntervalMs != want.Spawn.EnemyIntervalMs {
		t.Errorf("embedded monk.yaml differs from DefaultMonkConfig:\n%+v\n%+v", monk, want)
	}
	if len(monk.Spawn.EnemySkins) != 4 {
		t.Errorf("enemy skins = %v, expected 4", monk.Spawn.EnemySkins)
	}

	roach, err := load("roach", "", defaultRoachYAML, func() RoachConfig { return RoachConfig{} })
	if err != nil {
		t.Fatalf("load roach: %v", err)
	}
	wantRoach := DefaultRoachConfig()
	if roach.Grid != wantRoach.Grid || roach.Scoring != wantRoach.Scoring || roach.Round != wantRoach.Round {
		t.Errorf("embedded roach.yaml differs from DefaultRoachConfig:\n%+v\n%+v", roach, wantRoach)
	}
}

func TestLoadCustomPathOverridesPartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roach.yaml")
	if err := os.WriteFile(path, []byte("round:\n  duration_sec: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRoach(path)
	if err != nil {
		t.Fatalf("LoadRoach: %v", err)
	}
	if cfg.Round.DurationSec != 30 {
		t.Errorf("DurationSec = %d, expected 30", cfg.Round.DurationSec)
	}
	if cfg.Grid.Rows != 3 || cfg.Scoring.Base != 10 {
		t.Error("fields missing from the file should keep their defaults")
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadMonk(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("field: [not, a, map"), 0o644)
	if _, err := LoadMonk(bad); err == nil {
		t.Error("malformed custom file should fail")
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("empty preset = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("insane"); ok {
		t.Error("unknown preset should be rejected")
	}
}

func TestApplyPresets(t *testing.T) {
	monk := DefaultMonkConfig()
	ApplyMonkPreset(&monk, DifficultyHard)
	if monk.Player.Lives != 2 || monk.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard monk = lives %d level %v", monk.Player.Lives, monk.Difficulty.InitialLevel)
	}

	roach := DefaultRoachConfig()
	ApplyRoachPreset(&roach, DifficultyFixed)
	if roach.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestIntervalDecaysToFloor(t *testing.T) {
	d := NewDifficultyManager(DefaultMonkConfig().Difficulty)
	base, floor, decay := 1500*time.Millisecond, 450*time.Millisecond, 10*time.Millisecond

	tests := []struct {
		elapsed time.Duration
		want    time.Duration
	}{
		{0, 1500 * time.Millisecond},
		{1500 * time.Millisecond, 1490 * time.Millisecond}, // whole seconds only
		{30 * time.Second, 1200 * time.Millisecond},
		{10 * time.Minute, 450 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := d.Interval(base, floor, decay, tt.elapsed); got != tt.want {
			t.Errorf("Interval at %v = %v, expected %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestIntervalFixedPreset(t *testing.T) {
	cfg := DefaultRoachConfig()
	ApplyRoachPreset(&cfg, DifficultyFixed)
	d := NewDifficultyManager(cfg.Difficulty)

	if got := d.Interval(time.Second, 100*time.Millisecond, 50*time.Millisecond, time.Minute); got != time.Second {
		t.Errorf("fixed Interval = %v, expected constant base", got)
	}
}

func TestIntervalPresetShortensBase(t *testing.T) {
	cfg := DefaultRoachConfig()
	ApplyRoachPreset(&cfg, DifficultyHard)
	d := NewDifficultyManager(cfg.Difficulty)

	got := d.Interval(1200*time.Millisecond, 0, 0, 0)
	if got >= 1200*time.Millisecond {
		t.Errorf("hard Interval = %v, expected shorter than base", got)
	}
}

func TestLevelProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
	})

	if got := d.Level(0); got != 0.5 {
		t.Errorf("Level(0) = %v, expected 0.5", got)
	}
	if got := d.Level(50 * time.Second); got != 0.75 {
		t.Errorf("Level(50s) = %v, expected 0.75", got)
	}
	if got := d.Level(time.Hour); got != 1.0 {
		t.Errorf("Level(1h) = %v, expected 1.0", got)
	}

	d.SetEnabled(false)
	if got := d.Level(time.Hour); got != 0.5 {
		t.Errorf("disabled Level = %v, expected initial level", got)
	}
}

func TestSpeed(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 10},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0},
	})
	if got := d.Speed(2, 10*time.Second); got != 4 {
		t.Errorf("Speed at max = %v, expected 4", got)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ARCADE_TEST_VALUE", "x")
	t.Setenv("ARCADE_TEST_EMPTY", "")
	t.Setenv("ARCADE_TEST_INT", "7")
	t.Setenv("ARCADE_TEST_BADINT", "seven")

	if GetEnv("ARCADE_TEST_VALUE", "d") != "x" {
		t.Error("set variable should win")
	}
	if GetEnv("ARCADE_TEST_EMPTY", "d") != "d" || GetEnv("ARCADE_TEST_UNSET", "d") != "d" {
		t.Error("empty or unset variable should use fallback")
	}
	if GetEnvInt("ARCADE_TEST_INT", 1) != 7 || GetEnvInt("ARCADE_TEST_BADINT", 1) != 1 {
		t.Error("GetEnvInt mismatch")
	}
}

func TestMatFromEnvAndDotEnv(t *testing.T) {
	t.Setenv(EnvMat, "")
	t.Setenv(EnvAuth, "")
	t.Setenv(EnvGroup, "")
	t.Setenv(EnvDatabaseURL, "")
	os.Unsetenv(EnvDatabaseURL)
	os.Unsetenv(EnvGroup)

	path := filepath.Join(t.TempDir(), ".env")
	content := "FIREBASE_DATABASE_URL=https://demo.firebaseio.com\nMAT_GROUP_ID=3\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv(EnvDatabaseURL)
		os.Unsetenv(EnvGroup)
	})

	s := MatFromEnv()
	if s.Backend != "firebase" || s.URL != "https://demo.firebaseio.com" || s.Group != 3 {
		t.Errorf("MatFromEnv = %+v", s)
	}
}
