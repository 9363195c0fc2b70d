// Package audio defines the in-memory signal representation and the loader
// that produces it from arbitrary media sources.
//
// A Signal is mono float64 PCM at a known sample rate, immutable once
// constructed; transformations return new signals. The Loader delegates
// container decoding to a collaborator (see internal/media/ffmpeg), then
// downmixes to mono and resamples to the caller's target rate so that
// correlation lag indices map one-to-one between any two loaded signals.
package audio
