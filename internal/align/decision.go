package align

// Decision is a validated alignment: an offset into the target that has
// passed the checks appropriate to its provenance. Construct one through
// Validator; the zero value is not meaningful.
type Decision struct {
	offset      float64
	refDuration float64
	manual      bool
}

// Offset returns the validated offset into the target, in seconds.
func (d Decision) Offset() float64 { return d.offset }

// ReferenceDuration returns the reference duration the decision was
// validated against, in seconds.
func (d Decision) ReferenceDuration() float64 { return d.refDuration }

// Manual reports whether the offset was supplied by the operator rather
// than measured.
func (d Decision) Manual() bool { return d.manual }
