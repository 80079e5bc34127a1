// Package config loads frozenguard settings from .frozenguard.toml.
package config

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/phobologic/frozenguard/internal/discover"
	"github.com/phobologic/frozenguard/internal/model"
)

// FileName is the config file looked up in the project root.
const FileName = ".frozenguard.toml"

// DefaultMaxFileSize skips sources larger than 1 MB.
const DefaultMaxFileSize = 1 << 20

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatTOON = "toon"
)

var formats = []string{FormatText, FormatJSON, FormatTOON}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the effective configuration of one run.
type Config struct {
	// Native enables the implicit singleton freeze of Kotlin/Native.
	Native bool `toml:"native"`
	// NonNativeSourceSets never freeze singletons even when Native is set.
	NonNativeSourceSets []string `toml:"non_native_source_sets"`
	// Exclude holds extra ignore patterns in .gitignore syntax.
	Exclude     []string        `toml:"exclude"`
	MaxFileSize int64           `toml:"max_file_size"`
	Format      string          `toml:"format"`
	Inspections map[string]bool `toml:"inspections"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Native: true,
		NonNativeSourceSets: []string{
			"jvmMain", "jvmTest",
			"androidMain", "androidUnitTest",
			"jsMain", "jsTest",
			"wasmJsMain",
		},
		MaxFileSize: DefaultMaxFileSize,
		Format:      FormatText,
		Inspections: map[string]bool{
			model.ExplicitlyFrozenObjects: true,
			model.FrozenSingletonObject:   true,
		},
	}
}

// Load reads path on top of the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalid, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and inspection IDs.
func (c Config) Validate() error {
	if !slices.Contains(formats, c.Format) {
		return fmt.Errorf("%w: format %q (want one of %s)", ErrInvalid, c.Format, strings.Join(formats, ", "))
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("%w: max_file_size must be positive, got %d", ErrInvalid, c.MaxFileSize)
	}
	for id := range c.Inspections {
		if !slices.Contains(model.Inspections, id) {
			return fmt.Errorf("%w: unknown inspection %q", ErrInvalid, id)
		}
	}
	return nil
}

// Enabled reports whether the inspection id runs. Unlisted inspections run.
func (c Config) Enabled(id string) bool {
	on, ok := c.Inspections[id]
	return !ok || on
}

// Disable turns off the given inspections, rejecting unknown IDs.
func (c *Config) Disable(ids ...string) error {
	for _, id := range ids {
		if !slices.Contains(model.Inspections, id) {
			return fmt.Errorf("%w: unknown inspection %q", ErrInvalid, id)
		}
		if c.Inspections == nil {
			c.Inspections = make(map[string]bool)
		}
		c.Inspections[id] = false
	}
	return nil
}

// FreezesSingletons reports whether objects declared by decl's file are
// frozen at construction.
func (c Config) FreezesSingletons(decl *model.Declaration) bool {
	if !c.Native {
		return false
	}
	if decl == nil {
		return true
	}
	set := discover.SourceSet(decl.Span.File)
	return set == "" || !slices.Contains(c.NonNativeSourceSets, set)
}

// TOML renders c in config-file syntax.
func (c Config) TOML() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return buf.String(), nil
}

// Digest returns a stable hash of c for cache keys.
func (c Config) Digest() (string, error) {
	body, err := c.TOML()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:]), nil
}
