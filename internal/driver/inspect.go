package driver

import (
	"log/slog"

	"github.com/phobologic/frozenguard/internal/config"
	"github.com/phobologic/frozenguard/internal/inspect"
	"github.com/phobologic/frozenguard/internal/kotlin"
	"github.com/phobologic/frozenguard/internal/model"
)

// suppressingSink drops suppressed violations and counts them.
type suppressingSink struct {
	project    *kotlin.Project
	kept       []model.Violation
	suppressed int
}

func (s *suppressingSink) Emit(v model.Violation) {
	if s.project.Suppressed(v) {
		s.suppressed++
		return
	}
	s.kept = append(s.kept, v)
}

// inspectProject runs the enabled inspections over every declaration in
// file order and returns the surviving violations sorted by position.
func inspectProject(p *kotlin.Project, cfg config.Config, log *slog.Logger) ([]model.Violation, int) {
	sink := &suppressingSink{project: p}
	reporter := inspect.Reporter{Sink: sink}

	explicit := &inspect.ExplicitFreezeScanner{Tree: p, Refs: p, Oracle: p}
	singleton := &inspect.SingletonScanner{Tree: p, Refs: p, Oracle: p, Env: cfg}

	for _, f := range p.Files {
		if cfg.Enabled(model.ExplicitlyFrozenObjects) {
			for _, d := range f.Bindings {
				reporter.ReportAll(explicit.Scan(d))
			}
		}
		if cfg.Enabled(model.FrozenSingletonObject) {
			for _, d := range f.Objects {
				reporter.ReportAll(singleton.Scan(d))
			}
		}
		log.Debug("inspected file",
			slog.String("file", f.Path()),
			slog.Int("bindings", len(f.Bindings)),
			slog.Int("objects", len(f.Objects)))
	}

	sortViolations(sink.kept)
	return sink.kept, sink.suppressed
}
