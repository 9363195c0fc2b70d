package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"avsync/internal/align"
	"avsync/internal/audio"
	"avsync/internal/logging"
	"avsync/internal/media/ffprobe"
)

// Loader supplies decoded, mono, resampled audio for a file path.
type Loader interface {
	Load(ctx context.Context, path string, targetRate int) (audio.Signal, error)
}

// Prober inspects container metadata without decoding media.
type Prober interface {
	Inspect(ctx context.Context, path string) (ffprobe.Result, error)
}

// Splicer writes the final output: video trimmed to the window, audio
// replaced with the reference track.
type Splicer interface {
	Splice(ctx context.Context, videoPath, audioPath, outputPath string, startSeconds, durationSeconds float64) error
}

// Options configures a single synchronization run.
type Options struct {
	// SampleRate is the working rate both signals are resampled to before
	// correlation.
	SampleRate int
	// ConfidenceThreshold is the minimum correlation peak for a detected
	// offset to be trusted.
	ConfidenceThreshold float64
	// Epsilon is the tolerance, in seconds, for range and consistency
	// checks.
	Epsilon float64
	// ManualOffset, when non-nil, bypasses correlation entirely. The value
	// is still range-checked against the container durations.
	ManualOffset *float64
}

// Outcome reports what a run decided and, unless planning-only, produced.
type Outcome struct {
	Decision align.Decision
	Window   align.Window
	// Correlation holds the measured result for detected offsets. It is the
	// zero value when a manual offset was supplied.
	Correlation align.Result
}

// Assembler runs the synchronization pipeline end to end.
type Assembler struct {
	loader  Loader
	prober  Prober
	splicer Splicer
	logger  *slog.Logger
}

// NewAssembler wires an assembler from its collaborators. A nil logger
// disables logging.
func NewAssembler(loader Loader, prober Prober, splicer Splicer, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Assembler{
		loader:  loader,
		prober:  prober,
		splicer: splicer,
		logger:  logging.WithComponent(logger, "syncer"),
	}
}

// Plan resolves the alignment decision and trim window for referencePath
// inside videoPath without writing anything. Run calls it before splicing;
// callers can use it directly for a dry run.
func (a *Assembler) Plan(ctx context.Context, referencePath, videoPath string, opts Options) (Outcome, error) {
	logger := a.logger.With(logging.String(logging.FieldRunID, uuid.NewString()))
	return a.plan(ctx, logger, referencePath, videoPath, opts)
}

// Run executes the full pipeline and writes the synchronized video to
// outputPath. On any failure the output path is left untouched and the
// stage's error is returned as-is.
func (a *Assembler) Run(ctx context.Context, referencePath, videoPath, outputPath string, opts Options) (Outcome, error) {
	logger := a.logger.With(logging.String(logging.FieldRunID, uuid.NewString()))

	outcome, err := a.plan(ctx, logger, referencePath, videoPath, opts)
	if err != nil {
		return Outcome{}, err
	}

	logger.Info("splicing output",
		logging.String("output", outputPath),
		logging.Float64("start_seconds", outcome.Window.Start),
		logging.Float64("duration_seconds", outcome.Window.Duration),
		logging.Bool("manual_offset", outcome.Decision.Manual()))
	if err := a.splicer.Splice(ctx, videoPath, referencePath, outputPath, outcome.Window.Start, outcome.Window.Duration); err != nil {
		logger.Error("splice failed", logging.Error(err))
		return Outcome{}, err
	}
	logger.Info("synchronization complete", logging.String("output", outputPath))
	return outcome, nil
}

func (a *Assembler) plan(ctx context.Context, logger *slog.Logger, referencePath, videoPath string, opts Options) (Outcome, error) {
	probe, err := a.prober.Inspect(ctx, videoPath)
	if err != nil {
		return Outcome{}, &audio.DecodeError{Path: videoPath, Err: err}
	}
	if !probe.HasVideo() {
		return Outcome{}, &audio.DecodeError{Path: videoPath, Err: fmt.Errorf("no video stream")}
	}
	if probe.AudioStreamCount() == 0 {
		return Outcome{}, &audio.DecodeError{Path: videoPath, Err: fmt.Errorf("no audio stream")}
	}
	if probe.AudioStreamCount() > 1 {
		logger.Warn("multiple audio streams, correlating against the first",
			logging.Int("audio_streams", probe.AudioStreamCount()))
	}
	if stream, ok := probe.FirstAudioStream(); ok {
		logger.Debug("target audio stream",
			logging.Int("sample_rate", stream.SampleRateHz()),
			logging.Int("channels", stream.Channels))
	}

	reference, err := a.loader.Load(ctx, referencePath, opts.SampleRate)
	if err != nil {
		return Outcome{}, err
	}
	logger.Info("reference loaded",
		logging.String("path", referencePath),
		logging.Float64("duration_seconds", reference.Duration()))

	validator := align.Validator{ConfidenceThreshold: opts.ConfidenceThreshold, Epsilon: opts.Epsilon}
	planner := align.Planner{Epsilon: opts.Epsilon}

	if opts.ManualOffset != nil {
		// Manual offsets skip decoding the target track entirely; the
		// container duration is the only available range bound, so a
		// container that does not report one cannot be range-checked.
		targetDuration := probe.DurationSeconds()
		if math.IsNaN(targetDuration) {
			return Outcome{}, &audio.DecodeError{
				Path: videoPath,
				Err:  fmt.Errorf("container reports no duration; cannot range-check manual offset"),
			}
		}
		logger.Info("using manual offset",
			logging.Float64("offset_seconds", *opts.ManualOffset),
			logging.Float64("target_duration_seconds", targetDuration))

		decision, err := validator.ValidateManual(*opts.ManualOffset, reference.Duration(), targetDuration)
		if err != nil {
			return Outcome{}, err
		}
		window, err := planner.Plan(decision, targetDuration)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Decision: decision, Window: window}, nil
	}

	target, err := a.loader.Load(ctx, videoPath, opts.SampleRate)
	if err != nil {
		return Outcome{}, err
	}
	logger.Info("target loaded",
		logging.String("path", videoPath),
		logging.Float64("duration_seconds", target.Duration()))

	started := time.Now()
	result, err := align.Correlate(reference, target)
	if err != nil {
		return Outcome{}, err
	}
	logger.Info("offset detected",
		logging.Float64("offset_seconds", result.LagSeconds()),
		logging.Float64("peak", result.Peak),
		logging.Duration("elapsed", time.Since(started)))

	decision, err := validator.Validate(result, reference.Duration(), target.Duration())
	if err != nil {
		return Outcome{}, err
	}
	window, err := planner.Plan(decision, target.Duration())
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Decision: decision, Window: window, Correlation: result}, nil
}
