package audio

import (
	"context"
	"fmt"
	"log/slog"

	"avsync/internal/logging"
)

// DecodeError reports a source that could not be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decoder is the external media-decoding capability. Implementations return
// interleaved samples in [-1, 1], the channel count, and the native sample
// rate; format detection is theirs, never the loader's.
type Decoder interface {
	Decode(ctx context.Context, path string) (samples []float64, channels, rate int, err error)
}

// Loader turns audio-bearing sources into uniform mono signals.
type Loader struct {
	decoder Decoder
	logger  *slog.Logger
}

// NewLoader builds a Loader around the given decode collaborator.
func NewLoader(decoder Decoder, logger *slog.Logger) *Loader {
	return &Loader{decoder: decoder, logger: logging.WithComponent(logger, "loader")}
}

// Load decodes the source at path, downmixes to mono by channel averaging,
// and resamples to targetRate. The returned signal's rate always equals
// targetRate exactly. Any decode failure is reported as a *DecodeError
// naming the offending path.
func (l *Loader) Load(ctx context.Context, path string, targetRate int) (Signal, error) {
	if targetRate <= 0 {
		return Signal{}, fmt.Errorf("target sample rate must be positive, got %d", targetRate)
	}

	interleaved, channels, nativeRate, err := l.decoder.Decode(ctx, path)
	if err != nil {
		return Signal{}, &DecodeError{Path: path, Err: err}
	}
	if channels <= 0 || nativeRate <= 0 {
		return Signal{}, &DecodeError{Path: path, Err: fmt.Errorf("decoder reported channels=%d rate=%d", channels, nativeRate)}
	}
	if len(interleaved) == 0 {
		return Signal{}, &DecodeError{Path: path, Err: fmt.Errorf("source has no audio samples")}
	}

	mono := downmix(interleaved, channels)
	native := newOwnedSignal(mono, nativeRate)

	signal, err := native.Resampled(targetRate)
	if err != nil {
		return Signal{}, &DecodeError{Path: path, Err: err}
	}

	l.logger.Debug("loaded signal",
		logging.String("path", path),
		logging.Int("channels", channels),
		logging.Int("native_rate", nativeRate),
		logging.Int("rate", signal.Rate()),
		logging.Float64("duration_seconds", signal.Duration()),
	)
	return signal, nil
}
