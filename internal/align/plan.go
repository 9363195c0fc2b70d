package align

// Window is the slice of the target to keep: trim Start seconds from the
// front and retain Duration seconds.
type Window struct {
	Start    float64
	Duration float64
}

// End returns the window's end point in target time.
func (w Window) End() float64 { return w.Start + w.Duration }

// Planner turns a validated decision into a concrete trim window against a
// known target duration. The window starts at the decided offset and spans
// the reference duration; frame-rounding overrun up to Epsilon is absorbed
// by shortening the duration to fit, anything worse is a consistency
// failure.
type Planner struct {
	// Epsilon is the maximum end-overrun, in seconds, the planner will
	// absorb by clamping the duration.
	Epsilon float64
}

// Plan computes the trim window for decision within a target of
// targetDuration seconds. It returns *ConsistencyError when the decision
// and duration disagree by more than Epsilon, which indicates the inputs
// changed between validation and planning.
func (p Planner) Plan(decision Decision, targetDuration float64) (Window, error) {
	start := decision.Offset()
	duration := decision.ReferenceDuration()

	overrun := start + duration - targetDuration
	if overrun > p.Epsilon {
		return Window{}, &ConsistencyError{
			Offset:            start,
			ReferenceDuration: duration,
			TargetDuration:    targetDuration,
			Epsilon:           p.Epsilon,
		}
	}
	if overrun > 0 {
		duration = targetDuration - start
	}
	return Window{Start: start, Duration: duration}, nil
}
