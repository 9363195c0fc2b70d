package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"

	"avsync/internal/logging"
)

// MuxError reports a failure while assembling the synced output file.
type MuxError struct {
	Output string
	Err    error
}

func (e *MuxError) Error() string {
	return fmt.Sprintf("mux %s: %v", e.Output, e.Err)
}

func (e *MuxError) Unwrap() error { return e.Err }

// Splicer assembles the final video: the trim window of the source video's
// visual track paired with the reference audio.
type Splicer struct {
	// Binary is the ffmpeg executable; empty resolves "ffmpeg" from PATH.
	Binary string
	// AudioBitrate is the AAC bitrate for the replacement track, e.g. "192k".
	AudioBitrate string
	Logger       *slog.Logger
}

// Splice cuts startSeconds..startSeconds+durationSeconds from videoPath,
// replaces its audio with audioPath, and writes the result to outputPath.
// The video stream is copied, not re-encoded; the audio track is encoded to
// AAC. Neither input is modified.
func (s Splicer) Splice(ctx context.Context, videoPath, audioPath, outputPath string, startSeconds, durationSeconds float64) error {
	if strings.TrimSpace(outputPath) == "" {
		return &MuxError{Output: outputPath, Err: fmt.Errorf("empty output path")}
	}

	lock := flock.New(outputPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return &MuxError{Output: outputPath, Err: fmt.Errorf("acquire output lock: %w", err)}
	}
	if !locked {
		return &MuxError{Output: outputPath, Err: fmt.Errorf("another run is writing this output")}
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	dir := filepath.Dir(outputPath)
	base := filepath.Base(outputPath)
	ext := filepath.Ext(base)
	partial := filepath.Join(dir, "."+strings.TrimSuffix(base, ext)+".partial"+ext)

	bitrate := strings.TrimSpace(s.AudioBitrate)
	if bitrate == "" {
		bitrate = "192k"
	}
	binary := strings.TrimSpace(s.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}

	args := []string{
		"-hide_banner", "-v", "error",
		"-y",
		"-ss", formatSeconds(startSeconds),
		"-i", videoPath,
		"-i", audioPath,
		"-t", formatSeconds(durationSeconds),
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", bitrate,
		"-map", "0:v:0",
		"-map", "1:a:0",
		partial,
	}

	if s.Logger != nil {
		s.Logger.Info("assembling synced video",
			logging.String("video", videoPath),
			logging.String("audio", audioPath),
			logging.String("output", outputPath),
			logging.Float64("start_seconds", startSeconds),
			logging.Float64("duration_seconds", durationSeconds),
		)
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		_ = os.Remove(partial)
		return &MuxError{Output: outputPath, Err: fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))}
	}

	if err := os.Rename(partial, outputPath); err != nil {
		_ = os.Remove(partial)
		return &MuxError{Output: outputPath, Err: err}
	}
	return nil
}

// formatSeconds renders a timestamp with millisecond precision, the
// granularity ffmpeg's -ss/-t flags accept.
func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
