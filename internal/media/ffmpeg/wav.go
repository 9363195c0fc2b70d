package ffmpeg

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"
)

// parseWAV reads a RIFF/WAV file into interleaved float64 samples scaled to
// [-1, 1], returning the channel count and sample rate from the header.
func parseWAV(path string) ([]float64, int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	decoder.ReadInfo()
	if !decoder.IsValidFile() {
		return nil, 0, 0, errors.New("not a valid WAV file")
	}

	bitDepth := int(decoder.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, 0, 0, fmt.Errorf("unsupported WAV bit depth %d", bitDepth)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("read PCM data: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels <= 0 || buf.Format.SampleRate <= 0 {
		return nil, 0, 0, errors.New("WAV header missing format information")
	}

	scale := float64(int64(1) << (bitDepth - 1))
	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / scale
	}
	return samples, buf.Format.NumChannels, buf.Format.SampleRate, nil
}

// isWAV sniffs the RIFF magic instead of trusting the file extension.
func isWAV(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	var magic [12]byte
	if _, err := io.ReadFull(file, magic[:]); err != nil {
		return false
	}
	return string(magic[0:4]) == "RIFF" && string(magic[8:12]) == "WAVE"
}
