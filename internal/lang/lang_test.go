package lang

import (
	"testing"
)

func TestForExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext  string
		want string
	}{
		{".kt", "kotlin"},
		{".kts", "kotlin"},
		{".java", ""},
		{".go", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()
			got := ForExtension(tt.ext)
			if got != tt.want {
				t.Errorf("ForExtension(%q) = %q, want %q", tt.ext, got, tt.want)
			}
		})
	}
}

func TestLanguagesRegistered(t *testing.T) {
	t.Parallel()

	kt, ok := Languages[Kotlin]
	if !ok {
		t.Fatal("kotlin language not registered")
	}
	if kt.GetLanguage() == nil {
		t.Error("kotlin language is nil")
	}
}

func TestNewParser(t *testing.T) {
	t.Parallel()

	p := Languages[Kotlin].NewParser()
	if p == nil {
		t.Fatal("NewParser returned nil")
	}
	p.Close()
}
