package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/frozenguard/internal/model"
)

func samplePayload(key string) *Payload {
	return &Payload{
		Key:   key,
		Files: []string{"a.kt"},
		Violations: []model.Violation{{
			Span:          model.Span{File: "a.kt", Start: 10, End: 20, Line: 2, Column: 5, EndLine: 2, EndColumn: 15},
			Node:          model.NodeID{File: 0, Node: 42},
			Inspection:    model.FrozenSingletonObject,
			Message:       model.MsgFrozenSingleton,
			Severity:      model.GenericWarning,
			SuppressionID: model.FrozenSingletonObject,
			Declaration:   "S.y",
		}},
		Suppressed: 1,
	}
}

func TestStoreLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "cache.mp")
	require.NoError(t, Store(path, samplePayload("k1")))

	got, err := Load(path, "k1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"a.kt"}, got.Files)
	assert.Equal(t, 1, got.Suppressed)
	require.Len(t, got.Violations, 1)
	v := got.Violations[0]
	assert.Equal(t, "S.y", v.Declaration)
	assert.Equal(t, 2, v.Span.Line)
	// node ids are per-run and never cached
	assert.Equal(t, model.NodeID{}, v.Node)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()

	got, err := Load(filepath.Join(t.TempDir(), "none.mp"), "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoadStale(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cache.mp")
	require.NoError(t, Store(path, samplePayload("old")))

	_, err := Load(path, "new")
	require.ErrorIs(t, err, ErrStale)

	garbage := filepath.Join(dir, "garbage.mp")
	require.NoError(t, os.WriteFile(garbage, []byte{0xc1, 0x00, 0xff}, 0o644))
	_, err = Load(garbage, "new")
	require.ErrorIs(t, err, ErrStale)
}

func TestKey(t *testing.T) {
	t.Parallel()

	srcs := []Source{{Path: "a.kt", Content: []byte("object A")}}
	base := Key("1.0", "cfg", srcs)
	assert.Len(t, base, 64)
	assert.Equal(t, base, Key("1.0", "cfg", []Source{{Path: "a.kt", Content: []byte("object A")}}))

	assert.NotEqual(t, base, Key("1.1", "cfg", srcs))
	assert.NotEqual(t, base, Key("1.0", "cfg2", srcs))
	assert.NotEqual(t, base, Key("1.0", "cfg", []Source{{Path: "b.kt", Content: []byte("object A")}}))
	assert.NotEqual(t, base, Key("1.0", "cfg", []Source{{Path: "a.kt", Content: []byte("object B")}}))
}
