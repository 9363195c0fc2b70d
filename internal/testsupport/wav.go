package testsupport

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV writes a 16-bit PCM WAV file from per-channel sample slices in
// [-1, 1]. All channels must have equal length.
func WriteWAV(t testing.TB, path string, rate int, channels ...[]float64) {
	t.Helper()

	if len(channels) == 0 {
		t.Fatal("WriteWAV requires at least one channel")
	}
	frames := len(channels[0])
	for i, ch := range channels {
		if len(ch) != frames {
			t.Fatalf("channel %d length %d differs from %d", i, len(ch), frames)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()

	encoder := wav.NewEncoder(file, rate, 16, len(channels), 1)
	data := make([]int, 0, frames*len(channels))
	for i := 0; i < frames; i++ {
		for _, ch := range channels {
			data = append(data, quantize16(ch[i]))
		}
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: len(channels), SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := encoder.Write(buf); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := encoder.Close(); err != nil {
		t.Fatalf("close %s: %v", path, err)
	}
}

func quantize16(v float64) int {
	clamped := math.Max(-1, math.Min(1, v))
	return int(math.Round(clamped * 32767))
}
