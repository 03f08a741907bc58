package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testTuning struct {
	Gravity float64 `yaml:"gravity" toml:"gravity"`
	Lives   int     `yaml:"lives" toml:"lives"`
	Name    string  `yaml:"name" toml:"name"`
}

func defaults() testTuning {
	return testTuning{Gravity: 0.4, Lives: 3, Name: "base"}
}

func TestLoadExplicitOverlay(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		file string
		body string
	}{
		{"yaml", "tuning.yaml", "gravity: 0.6\n"},
		{"yml", "tuning.yml", "gravity: 0.6\n"},
		{"toml", "tuning.toml", "gravity = 0.6\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("WriteFile() failed: %v", err)
			}
			cfg := defaults()
			src, err := Load("test", path, &cfg)
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if src != path {
				t.Errorf("source = %q, want %q", src, path)
			}
			if cfg.Gravity != 0.6 {
				t.Errorf("Gravity = %v, want 0.6", cfg.Gravity)
			}
			// Keys absent from the file keep their defaults.
			if cfg.Lives != 3 || cfg.Name != "base" {
				t.Errorf("defaults lost: %+v", cfg)
			}
		})
	}
}

func TestLoadExplicitErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("gravity: [oops"), 0o644)

	cfg := defaults()
	if _, err := Load("test", filepath.Join(dir, "missing.yaml"), &cfg); err == nil || !strings.Contains(err.Error(), "failed to read config") {
		t.Errorf("missing file error = %v", err)
	}
	if _, err := Load("test", bad, &cfg); err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("bad file error = %v", err)
	}
	if cfg != defaults() {
		t.Errorf("failed load should not change tuning, got %+v", cfg)
	}
}

func TestLoadSearchPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(wd) })
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir() failed: %v", err)
	}

	cfg := defaults()
	src, err := Load("search_game", "", &cfg)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if src != SourceDefaults || cfg != defaults() {
		t.Errorf("no files: source %q, cfg %+v", src, cfg)
	}

	os.MkdirAll("configs", 0o755)
	os.WriteFile(filepath.Join("configs", "search_game.yaml"), []byte("gravity: [broken"), 0o644)
	os.WriteFile(filepath.Join("configs", "search_game.toml"), []byte("lives = 7\n"), 0o644)

	cfg = defaults()
	src, err = Load("search_game", "", &cfg)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if src != filepath.Join("configs", "search_game.toml") {
		t.Errorf("broken yaml should be skipped, source = %q", src)
	}
	if cfg.Lives != 7 || cfg.Gravity != 0.4 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestDumpRoundTrip(t *testing.T) {
	for _, f := range []Format{YAML, TOML} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			want := testTuning{Gravity: 0.45, Lives: 5, Name: "dump"}
			if err := Dump(&buf, f, want); err != nil {
				t.Fatalf("Dump() failed: %v", err)
			}
			var got testTuning
			if err := Decode(f, buf.Bytes(), &got); err != nil {
				t.Fatalf("Decode() failed: %v", err)
			}
			if got != want {
				t.Errorf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"", Normal, false},
		{"easy", Easy, false},
		{"HARD", Hard, false},
		{" normal ", Normal, false},
		{"nightmare", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDifficulty(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDifficulty(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPresetScaling(t *testing.T) {
	normal := PresetFor(Normal)
	if normal.ScaleSpeed(4) != 4 || normal.ScaleFrames(60) != 60 || normal.ScaleLives(3) != 3 {
		t.Error("normal preset should be the identity")
	}

	easy, hard := PresetFor(Easy), PresetFor(Hard)
	if easy.ScaleSpeed(4) >= hard.ScaleSpeed(4) {
		t.Error("easy should be slower than hard")
	}
	if easy.ScaleFrames(60) <= hard.ScaleFrames(60) {
		t.Error("easy should spawn less often than hard")
	}
	if hard.ScaleLives(1) != 1 {
		t.Errorf("lives never drop below 1, got %d", hard.ScaleLives(1))
	}
	if hard.ScaleFrames(0.1) != 1 {
		t.Errorf("frames never drop below 1, got %v", hard.ScaleFrames(0.1))
	}
}
