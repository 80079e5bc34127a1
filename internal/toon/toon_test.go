package toon

import (
	"strings"
	"testing"

	"github.com/phobologic/frozenguard/internal/model"
)

func TestEncodeValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", `""`},
		{"simple", "hello", "hello"},
		{"leading space", " hello", `" hello"`},
		{"trailing space", "hello ", `"hello "`},
		{"newline", "a\nb", `"a\nb"`},
		{"tab", "a\tb", `"a\tb"`},
		{"carriage return", "a\rb", `"a\rb"`},
		{"true keyword", "true", `"true"`},
		{"True keyword", "True", `"True"`},
		{"false keyword", "false", `"false"`},
		{"null keyword", "null", `"null"`},
		{"integer", "42", "42"},
		{"negative integer", "-1", "-1"},
		{"float", "3.14", "3.14"},
		{"zero", "0", "0"},
		{"leading zero invalid", "01", "01"},
		{"comma", "a,b", `"a,b"`},
		{"colon", "a:b", `"a:b"`},
		{"quote", `a"b`, `"a\"b"`},
		{"backslash", `a\b`, `"a\\b"`},
		{"bracket", "a[b", `"a[b"`},
		{"brace", "a{b", `"a{b"`},
		{"dash prefix", "-foo", `"-foo"`},
		{"path", "src/main/kotlin/App.kt", "src/main/kotlin/App.kt"},
		{"dotted name", "Registry.Companion", "Registry.Companion"},
		{"message", "object is frozen and cannot be mutated", "object is frozen and cannot be mutated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := encodeValue(tt.in)
			if got != tt.want {
				t.Errorf("encodeValue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	rep := &model.Report{
		Root:  "demo",
		Files: []string{"src/S.kt", "src/Use.kt"},
		Violations: []model.Violation{
			{
				Span:        model.Span{File: "src/Use.kt", Line: 4, Column: 5},
				Inspection:  model.FrozenSingletonObject,
				Declaration: "S.y",
				Message:     model.MsgFrozenSingleton,
			},
			{
				Span:        model.Span{File: "src/Use.kt", Line: 9, Column: 9},
				Inspection:  model.ExplicitlyFrozenObjects,
				Declaration: "box",
				Message:     model.MsgExplicitlyFrozen,
			},
		},
		Suppressed: 2,
	}

	got := Encode(rep)
	lines := strings.Split(got, "\n")

	want := []string{
		"root: demo",
		"suppressed: 2",
		"files[2]{path}:",
		"  src/S.kt",
		"  src/Use.kt",
		"violations[2]{file,line,column,inspection,declaration,message}:",
		"  src/Use.kt,4,5,FrozenSingletonObject,S.y,objects are frozen by default and its mutation causes exception",
		"  src/Use.kt,9,9,ExplicitlyFrozenObjects,box,object is frozen and cannot be mutated",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), got)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestEncodeEmpty(t *testing.T) {
	t.Parallel()

	rep := &model.Report{Root: "empty"}

	got := Encode(rep)
	if !strings.Contains(got, "files[0]{path}:") {
		t.Errorf("expected empty files section, got:\n%s", got)
	}
	if !strings.Contains(got, "violations[0]{file,line,column,inspection,declaration,message}:") {
		t.Errorf("expected empty violations section, got:\n%s", got)
	}
}
