package align

// Validator gates correlation results before they can drive a splice.
// A detected offset must clear both the confidence threshold and the range
// check; a manually supplied offset skips confidence entirely but is held
// to the same range rule.
type Validator struct {
	// ConfidenceThreshold is the minimum acceptable correlation peak.
	ConfidenceThreshold float64
	// Epsilon is the tolerance, in seconds, granted to offsets that
	// nominally fall just outside the valid range.
	Epsilon float64
}

// Validate checks a measured correlation result against the reference and
// target durations. Peaks at or below the confidence threshold are rejected
// with *LowConfidenceError; offsets outside [0, target-reference] beyond
// Epsilon with *RangeError. Offsets within Epsilon of a bound are accepted
// as-is and left for the planner to clamp.
func (v Validator) Validate(result Result, refDuration, targetDuration float64) (Decision, error) {
	if result.Peak <= v.ConfidenceThreshold {
		return Decision{}, &LowConfidenceError{
			Peak:       result.Peak,
			Threshold:  v.ConfidenceThreshold,
			LagSeconds: result.LagSeconds(),
		}
	}
	return v.checkRange(result.LagSeconds(), refDuration, targetDuration, false)
}

// ValidateManual checks an operator-supplied offset. Confidence does not
// apply; the range rule does, with the same Epsilon tolerance.
func (v Validator) ValidateManual(offset, refDuration, targetDuration float64) (Decision, error) {
	return v.checkRange(offset, refDuration, targetDuration, true)
}

func (v Validator) checkRange(offset, refDuration, targetDuration float64, manual bool) (Decision, error) {
	max := targetDuration - refDuration
	if offset < -v.Epsilon || offset > max+v.Epsilon {
		return Decision{}, &RangeError{
			Offset:            offset,
			ReferenceDuration: refDuration,
			TargetDuration:    targetDuration,
			Manual:            manual,
		}
	}
	// Tiny negatives are measurement slop, not a real pre-roll claim.
	if offset < 0 {
		offset = 0
	}
	return Decision{offset: offset, refDuration: refDuration, manual: manual}, nil
}
