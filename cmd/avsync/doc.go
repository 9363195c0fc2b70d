// Command avsync aligns a reference audio file with a video's audio track
// and produces a trimmed video carrying the reference audio. The sync
// subcommand runs the full pipeline; probe, deps, and config cover
// inspection and setup.
package main
