// Package syncer orchestrates a full synchronization run: load both audio
// signals, detect or validate the alignment offset, plan the trim window,
// and splice the output video. It owns sequencing and logging only; the
// domain decisions live in internal/audio and internal/align, and failures
// from any stage propagate to the caller unchanged.
package syncer
