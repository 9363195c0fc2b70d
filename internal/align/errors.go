package align

import "fmt"

// InsufficientTargetError reports a target recording shorter than the
// reference being placed inside it.
type InsufficientTargetError struct {
	ReferenceDuration float64
	TargetDuration    float64
}

func (e *InsufficientTargetError) Error() string {
	return fmt.Sprintf("target too short: reference runs %.2fs but target only %.2fs",
		e.ReferenceDuration, e.TargetDuration)
}

// LowConfidenceError reports that the best correlation peak is too weak to
// trust; the recordings likely do not share material.
type LowConfidenceError struct {
	Peak       float64
	Threshold  float64
	LagSeconds float64
}

func (e *LowConfidenceError) Error() string {
	return fmt.Sprintf("no credible alignment: peak correlation %.3f at %.2fs is below threshold %.3f",
		e.Peak, e.LagSeconds, e.Threshold)
}

// RangeError reports an offset, detected or manually supplied, that does
// not leave room for the reference within the target.
type RangeError struct {
	Offset            float64
	ReferenceDuration float64
	TargetDuration    float64
	Manual            bool
}

func (e *RangeError) Error() string {
	source := "detected"
	if e.Manual {
		source = "manual"
	}
	return fmt.Sprintf("%s offset %.2fs does not fit: reference %.2fs would end at %.2fs but target ends at %.2fs",
		source, e.Offset, e.ReferenceDuration, e.Offset+e.ReferenceDuration, e.TargetDuration)
}

// ConsistencyError reports a validated decision that no longer fits the
// target beyond tolerance. Validation should have made this impossible, so
// it indicates a defect upstream rather than bad input.
type ConsistencyError struct {
	Offset            float64
	ReferenceDuration float64
	TargetDuration    float64
	Epsilon           float64
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("planner consistency check failed: window %.3fs+%.3fs overruns target %.3fs by more than %.3fs",
		e.Offset, e.ReferenceDuration, e.TargetDuration, e.Epsilon)
}
