package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"avsync/internal/logging"
)

// Decoder extracts the audio track of any ffmpeg-decodable source as PCM.
type Decoder struct {
	// Binary is the ffmpeg executable; empty resolves "ffmpeg" from PATH.
	Binary string
	// WorkDir hosts per-call scratch directories; empty uses the system
	// temp dir.
	WorkDir string
	Logger  *slog.Logger
}

// Decode returns interleaved samples in [-1, 1], the channel count, and the
// native sample rate of the source's audio track. Video containers are
// handled the same way as plain audio files; ffmpeg drops the video track
// during extraction.
func (d Decoder) Decode(ctx context.Context, path string) ([]float64, int, int, error) {
	if strings.TrimSpace(path) == "" {
		return nil, 0, 0, fmt.Errorf("decode: empty path")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, 0, 0, err
	}

	if isWAV(path) {
		return parseWAV(path)
	}

	scratch, err := os.MkdirTemp(d.WorkDir, "avsync-extract-")
	if err != nil {
		return nil, 0, 0, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	wavPath, err := d.extract(ctx, path, scratch)
	if err != nil {
		return nil, 0, 0, err
	}
	return parseWAV(wavPath)
}

// extract shells out to ffmpeg, writing the source's audio track to a WAV
// file at its native sample rate and channel layout.
func (d Decoder) extract(ctx context.Context, sourcePath, destDir string) (string, error) {
	binary := strings.TrimSpace(d.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}

	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	outPath := filepath.Join(destDir, base+".wav")

	args := []string{
		"-hide_banner", "-v", "error",
		"-y",
		"-i", sourcePath,
		"-vn",
		"-acodec", "pcm_s16le",
		outPath,
	}

	if d.Logger != nil {
		d.Logger.Debug("extracting audio track",
			logging.String("source", sourcePath),
			logging.String("dest", outPath),
		)
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("ffmpeg extract %s: %w: %s", sourcePath, err, strings.TrimSpace(string(output)))
	}
	return outPath, nil
}
