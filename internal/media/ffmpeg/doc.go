// Package ffmpeg wraps the two external media capabilities avsync depends
// on: decoding any audio-bearing source to PCM, and assembling the final
// synced video.
//
// Decoding goes through an intermediate WAV file so the container/codec
// zoo is ffmpeg's problem; avsync only ever parses RIFF/WAV. Sources that
// already are WAV files are parsed directly without shelling out.
//
// Assembly (Splice) writes to a hidden temp file in the destination
// directory and renames into place on success, so a failed run never
// leaves a truncated file at the requested output path. The output path is
// additionally guarded by a file lock against concurrent runs.
package ffmpeg
