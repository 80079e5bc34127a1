package inspect

import "github.com/phobologic/frozenguard/internal/model"

// Reporter registers violations with a sink. It does not deduplicate.
type Reporter struct {
	Sink Sink
}

// Report forwards v with generic-warning severity.
func (r Reporter) Report(v model.Violation) {
	if r.Sink == nil {
		return
	}
	v.Severity = model.GenericWarning
	r.Sink.Emit(v)
}

// ReportAll reports every violation in order.
func (r Reporter) ReportAll(vs []model.Violation) {
	for _, v := range vs {
		r.Report(v)
	}
}
