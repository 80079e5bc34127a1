// Package report renders a run result as text, JSON or TOON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/phobologic/frozenguard/internal/config"
	"github.com/phobologic/frozenguard/internal/model"
	"github.com/phobologic/frozenguard/internal/toon"
)

// Options controls rendering.
type Options struct {
	Format  string
	NoColor bool
	// SourceLine returns the text of a 1-based line of file, or "".
	SourceLine func(file string, line int) string
}

// Write renders rep to w.
func Write(w io.Writer, rep *model.Report, opts Options) error {
	switch opts.Format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jsonReport(rep)); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case config.FormatTOON:
		_, err := fmt.Fprintln(w, toon.Encode(rep))
		return err
	case config.FormatText, "":
		_, err := io.WriteString(w, newText(opts).render(rep))
		return err
	}
	return fmt.Errorf("unknown format %q", opts.Format)
}

// jsonReport replaces nil slices so empty results encode as [].
func jsonReport(rep *model.Report) *model.Report {
	out := *rep
	if out.Files == nil {
		out.Files = []string{}
	}
	if out.Violations == nil {
		out.Violations = []model.Violation{}
	}
	return &out
}

type text struct {
	warning func(a ...interface{}) string
	arrow   func(a ...interface{}) string
	gutter  func(a ...interface{}) string
	note    func(a ...interface{}) string
	source  func(file string, line int) string
}

func newText(opts Options) *text {
	styles := []*color.Color{
		color.New(color.FgYellow, color.Bold),
		color.New(color.FgBlue, color.Bold),
		color.New(color.FgBlue),
		color.New(color.Bold),
	}
	if opts.NoColor {
		for _, c := range styles {
			c.DisableColor()
		}
	}
	return &text{
		warning: styles[0].SprintFunc(),
		arrow:   styles[1].SprintFunc(),
		gutter:  styles[2].SprintFunc(),
		note:    styles[3].SprintFunc(),
		source:  opts.SourceLine,
	}
}

func (t *text) render(rep *model.Report) string {
	var sb strings.Builder
	for i := range rep.Violations {
		t.violation(&sb, &rep.Violations[i])
	}
	sb.WriteString(summary(rep))
	sb.WriteString("\n")
	return sb.String()
}

func (t *text) violation(sb *strings.Builder, v *model.Violation) {
	sb.WriteString(t.warning(string(v.Severity)+":") + " " + v.Message + "\n")
	sb.WriteString(fmt.Sprintf("  %s %s\n", t.arrow("-->"), v.Span))

	line := ""
	if t.source != nil {
		line = t.source(v.Span.File, v.Span.Line)
	}
	if line != "" {
		sb.WriteString(t.gutter("   |") + "\n")
		sb.WriteString(t.gutter(fmt.Sprintf("%4d |", v.Span.Line)) + " " + line + "\n")
		sb.WriteString(t.gutter("   |") + "\n")
	}

	sb.WriteString(fmt.Sprintf("   %s mutation of '%s' [%s]\n", t.note("= note:"), v.Declaration, v.Inspection))
	sb.WriteString(fmt.Sprintf("   %s suppress with @Suppress(\"%s\")\n\n", t.note("= note:"), v.SuppressionID))
}

func summary(rep *model.Report) string {
	files := plural(len(rep.Files), "file")
	var s string
	if len(rep.Violations) == 0 {
		s = fmt.Sprintf("no frozen-object mutations in %s", files)
	} else {
		s = fmt.Sprintf("%s in %s", plural(len(rep.Violations), "warning"), files)
	}
	if rep.Suppressed > 0 {
		s += fmt.Sprintf(" (%d suppressed)", rep.Suppressed)
	}
	if rep.Cached {
		s += " [cached]"
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
