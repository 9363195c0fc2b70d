// Package align finds where a reference recording sits inside a longer
// target recording and turns that finding into a validated trim window.
//
// The pipeline is Correlate -> Validator -> Planner:
//
//  1. Correlate computes normalized cross-correlation of the two signals in
//     the Fourier domain and reports the best-supported lag.
//  2. Validator scores the peak against a confidence threshold and enforces
//     the fit invariant (offset >= 0, offset + reference duration within the
//     target, up to a tolerance epsilon). It is the only constructor of
//     Decision values, so an invalid Decision cannot exist.
//  3. Planner maps a Decision to the exact (start, duration) cut against
//     the target timeline, clamping frame-rounding overshoot and treating
//     anything larger as an internal-consistency defect.
//
// All failures are typed and deterministic for the same inputs; nothing in
// this package retries.
package align
