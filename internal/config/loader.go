// Package config loads per-game tuning from YAML or TOML files and scales
// it by difficulty preset.
//
// A game owns its tuning struct and its built-in defaults; Load overlays
// the first file found on the search path onto those defaults, so a file
// only needs the keys it changes.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a tuning file encoding.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// SourceDefaults is reported by Load when no file was found.
const SourceDefaults = "defaults"

// FormatOf returns the encoding implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", fmt.Errorf("unknown config format %q", filepath.Ext(path))
}

// ParseFormat validates a format name given on the command line.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case YAML, "yml":
		return YAML, nil
	case TOML:
		return TOML, nil
	}
	return "", fmt.Errorf("unknown config format %q (want yaml or toml)", s)
}

// Load overlays tuning for key onto dst, which must already hold the
// defaults. It returns the file that was applied, or SourceDefaults.
//
// Search order: path -> ~/.arcade/configs/<key>.{yaml,yml,toml} ->
// ./configs/<key>.{yaml,yml,toml} -> defaults. An explicit path must exist
// and parse; files found on the search path are skipped when they don't.
func Load[T any](key, path string, dst *T) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := decodeFile(path, data, dst); err != nil {
			return "", fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return path, nil
	}

	for _, candidate := range SearchPath(key) {
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		// Decode into a copy so a broken file leaves the defaults intact.
		tmp := *dst
		if err := decodeFile(candidate, data, &tmp); err != nil {
			continue
		}
		*dst = tmp
		return candidate, nil
	}
	return SourceDefaults, nil
}

// SearchPath lists the implicit tuning files for key, in priority order.
func SearchPath(key string) []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".arcade", "configs"))
	}
	dirs = append(dirs, "configs")

	var paths []string
	for _, dir := range dirs {
		for _, ext := range []string{".yaml", ".yml", ".toml"} {
			paths = append(paths, filepath.Join(dir, key+ext))
		}
	}
	return paths
}

func decodeFile(path string, data []byte, dst any) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	return Decode(f, data, dst)
}

// Decode unmarshals data in the given format onto dst.
func Decode(f Format, data []byte, dst any) error {
	switch f {
	case YAML:
		return yaml.Unmarshal(data, dst)
	case TOML:
		_, err := toml.Decode(string(data), dst)
		return err
	}
	return fmt.Errorf("unknown config format %q", f)
}

// Dump writes v in the given format.
func Dump(w io.Writer, f Format, v any) error {
	switch f {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case TOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(v); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	}
	return fmt.Errorf("unknown config format %q", f)
}
