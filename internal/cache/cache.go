// Package cache stores the result of a run on disk, keyed by a digest of
// everything that can change it.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/phobologic/frozenguard/internal/model"
)

// Current schema version - increment when Payload format changes
const schemaVersion uint16 = 1

// ErrStale is returned by Load when the file exists but cannot be used.
var ErrStale = errors.New("stale cache")

// Payload is the cached result of one run.
type Payload struct {
	Schema     uint16            `msgpack:"schema"`
	Key        string            `msgpack:"key"`
	Files      []string          `msgpack:"files"`
	Violations []model.Violation `msgpack:"violations"`
	Suppressed int               `msgpack:"suppressed"`
}

// Source is one analyzed file as it enters the cache key.
type Source struct {
	Path    string
	Content []byte
}

// Key digests the tool version, the config digest and every source path and
// content. Sources must be passed in a stable order.
func Key(version, configDigest string, sources []Source) string {
	h := sha256.New()
	write := func(s string) {
		_, _ = fmt.Fprintf(h, "%d:%s", len(s), s)
	}
	write(version)
	write(configDigest)
	for _, src := range sources {
		sum := sha256.Sum256(src.Content)
		write(src.Path)
		write(hex.EncodeToString(sum[:]))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Load reads the payload at path. It returns (nil, nil) when the file does
// not exist and ErrStale when it cannot be decoded, was written by another
// schema, or holds a different key.
func Load(path, key string) (*Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	defer f.Close()

	var p Payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStale, err)
	}
	if p.Schema != schemaVersion {
		return nil, fmt.Errorf("%w: schema %d", ErrStale, p.Schema)
	}
	if p.Key != key {
		return nil, fmt.Errorf("%w: key mismatch", ErrStale)
	}
	return &p, nil
}

// Store writes p to path atomically, stamping the schema version.
func Store(path string, p *Payload) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	f, err := os.CreateTemp(dir, ".frozenguard-cache-*")
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	p.Schema = schemaVersion
	if err := msgpack.NewEncoder(f).Encode(p); err != nil {
		f.Close()
		return fmt.Errorf("encoding cache: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}
