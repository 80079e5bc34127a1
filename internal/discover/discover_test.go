package discover

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverKotlinFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, dir, "Main.kt", "fun main() {}")
	writeFile(t, dir, "lib/Util.kt", "object Util")
	writeFile(t, dir, "build.gradle.kts", "plugins {}")
	// Non-Kotlin file should be ignored
	writeFile(t, dir, "readme.txt", "hello")
	// Hidden file should be ignored
	writeFile(t, dir, ".hidden.kt", "secret")

	entries, err := Files(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %v", len(entries), paths)
	}

	// Should be sorted
	want := []string{"Main.kt", "build.gradle.kts", "lib/Util.kt"}
	for i, w := range want {
		if entries[i].Path != w {
			t.Errorf("entry %d: got %q, want %q", i, entries[i].Path, w)
		}
	}

	for _, e := range entries {
		if e.Language != "kotlin" {
			t.Errorf("entry %q: language = %q, want kotlin", e.Path, e.Language)
		}
	}
	if entries[0].Size != int64(len("fun main() {}")) {
		t.Errorf("size = %d", entries[0].Size)
	}
}

func TestDiscoverSkipDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, dir, "Main.kt", "fun main() {}")
	writeFile(t, dir, "build/generated/Gen.kt", "object Gen")
	writeFile(t, dir, ".gradle/cache/C.kt", "object C")
	writeFile(t, dir, "out/production/O.kt", "object O")
	writeFile(t, dir, "node_modules/pkg/P.kt", "object P")
	writeFile(t, dir, ".hidden/Secret.kt", "object Secret")

	entries, err := Files(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Path != "Main.kt" {
		t.Errorf("expected Main.kt, got %q", entries[0].Path)
	}
}

func TestDiscoverExclude(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, dir, "src/main/kotlin/App.kt", "object App")
	writeFile(t, dir, "src/test/kotlin/AppTest.kt", "class AppTest")
	writeFile(t, dir, "samples/Demo.kt", "object Demo")

	entries, err := Files(context.Background(), dir, Options{Exclude: []string{"src/test/", "samples/*.kt"}})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d: %+v", len(entries), entries)
	}
	if entries[0].Path != "src/main/kotlin/App.kt" {
		t.Errorf("got %q", entries[0].Path)
	}
}

func TestDiscoverGitignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, dir, ".gitignore", "generated/\n")
	writeFile(t, dir, "App.kt", "object App")
	writeFile(t, dir, "generated/Gen.kt", "object Gen")

	entries, err := Files(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "App.kt" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := Files(context.Background(), filepath.Join(t.TempDir(), "missing"), Options{})
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestDiscoverCanceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "App.kt", "object App")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Files(ctx, dir, Options{}); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestDiscoverSymlinksSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "Real.kt", "object Real")

	// Create symlink
	err := os.Symlink(filepath.Join(dir, "Real.kt"), filepath.Join(dir, "Link.kt"))
	if err != nil {
		t.Skip("symlinks not supported")
	}

	entries, err := Files(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry (no symlink), got %d", len(entries))
	}
	if entries[0].Path != "Real.kt" {
		t.Errorf("expected Real.kt, got %q", entries[0].Path)
	}
}

func TestSourceSet(t *testing.T) {
	t.Parallel()
	cases := []struct {
		path string
		want string
	}{
		{"src/jvmMain/kotlin/Foo.kt", "jvmMain"},
		{"shared/src/iosMain/kotlin/a/B.kt", "iosMain"},
		{"app/src/main/kotlin/Main.kt", "main"},
		{"src/Foo.kt", ""},
		{"lib/Foo.kt", ""},
		{"Foo.kt", ""},
		{"src/commonMain/kotlin/src/nested/X.kt", "nested"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			if got := SourceSet(tc.path); got != tc.want {
				t.Errorf("SourceSet(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
