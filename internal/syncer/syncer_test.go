package syncer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"avsync/internal/align"
	"avsync/internal/audio"
	"avsync/internal/media/ffprobe"
	"avsync/internal/testsupport"
)

const testRate = 8000

type fakeLoader struct {
	signals map[string]audio.Signal
	errs    map[string]error
	calls   []string
}

func (l *fakeLoader) Load(ctx context.Context, path string, targetRate int) (audio.Signal, error) {
	l.calls = append(l.calls, path)
	if err, ok := l.errs[path]; ok {
		return audio.Signal{}, err
	}
	sig, ok := l.signals[path]
	if !ok {
		return audio.Signal{}, &audio.DecodeError{Path: path, Err: errors.New("no fixture")}
	}
	return sig, nil
}

type fakeProber struct {
	result ffprobe.Result
	err    error
}

func (p fakeProber) Inspect(ctx context.Context, path string) (ffprobe.Result, error) {
	return p.result, p.err
}

type spliceCall struct {
	video, audio, output string
	start, duration      float64
}

type fakeSplicer struct {
	calls []spliceCall
	err   error
}

func (s *fakeSplicer) Splice(ctx context.Context, videoPath, audioPath, outputPath string, startSeconds, durationSeconds float64) error {
	s.calls = append(s.calls, spliceCall{videoPath, audioPath, outputPath, startSeconds, durationSeconds})
	return s.err
}

func videoProbe(duration float64) ffprobe.Result {
	return ffprobe.Result{
		Streams: []ffprobe.Stream{
			{Index: 0, CodecType: "video", Width: 1920, Height: 1080},
			{Index: 1, CodecType: "audio", Channels: 2},
		},
		Format: ffprobe.Format{Duration: fmt.Sprintf("%.3f", duration)},
	}
}

func mustSignal(t *testing.T, samples []float64, rate int) audio.Signal {
	t.Helper()
	sig, err := audio.NewSignal(samples, rate)
	if err != nil {
		t.Fatalf("NewSignal: %v", err)
	}
	return sig
}

// testFixtures builds a 30 s reference embedded 12 s into a 60 s target.
func testFixtures(t *testing.T) (audio.Signal, audio.Signal) {
	t.Helper()
	ref := testsupport.Chirp(80, 3000, testRate, 30.0, 0.7)
	target := testsupport.Concat(
		testsupport.Noise(21, testRate*12, 0.02),
		ref,
		testsupport.Noise(22, testRate*18, 0.02),
	)
	return mustSignal(t, ref, testRate), mustSignal(t, target, testRate)
}

func defaultOptions() Options {
	return Options{SampleRate: testRate, ConfidenceThreshold: 0.25, Epsilon: 0.05}
}

func TestRunDetectedOffset(t *testing.T) {
	ref, target := testFixtures(t)
	loader := &fakeLoader{signals: map[string]audio.Signal{
		"ref.wav":   ref,
		"video.mov": target,
	}}
	splicer := &fakeSplicer{}
	assembler := NewAssembler(loader, fakeProber{result: videoProbe(60.0)}, splicer, nil)

	outcome, err := assembler.Run(context.Background(), "ref.wav", "video.mov", "out.mov", defaultOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if math.Abs(outcome.Window.Start-12.0) > 0.01 {
		t.Fatalf("window start = %v, want 12.0", outcome.Window.Start)
	}
	if math.Abs(outcome.Window.Duration-30.0) > 0.01 {
		t.Fatalf("window duration = %v, want 30.0", outcome.Window.Duration)
	}
	if outcome.Decision.Manual() {
		t.Fatal("detected decision flagged as manual")
	}
	if outcome.Correlation.Peak < 0.9 {
		t.Fatalf("correlation peak = %v, want a strong match", outcome.Correlation.Peak)
	}

	if len(splicer.calls) != 1 {
		t.Fatalf("splice calls = %d, want 1", len(splicer.calls))
	}
	call := splicer.calls[0]
	if call.video != "video.mov" || call.audio != "ref.wav" || call.output != "out.mov" {
		t.Fatalf("splice paths = %+v", call)
	}
	if math.Abs(call.start-outcome.Window.Start) > 1e-9 || math.Abs(call.duration-outcome.Window.Duration) > 1e-9 {
		t.Fatalf("splice window (%v, %v) disagrees with outcome %+v", call.start, call.duration, outcome.Window)
	}
}

func TestRunManualOffsetSkipsTargetDecode(t *testing.T) {
	ref, _ := testFixtures(t)
	loader := &fakeLoader{signals: map[string]audio.Signal{"ref.wav": ref}}
	splicer := &fakeSplicer{}
	assembler := NewAssembler(loader, fakeProber{result: videoProbe(60.0)}, splicer, nil)

	offset := 12.0
	opts := defaultOptions()
	opts.ManualOffset = &offset

	outcome, err := assembler.Run(context.Background(), "ref.wav", "video.mov", "out.mov", opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !outcome.Decision.Manual() {
		t.Fatal("manual decision not flagged as manual")
	}
	if outcome.Window.Start != 12.0 || outcome.Window.Duration != 30.0 {
		t.Fatalf("window = %+v, want (12, 30)", outcome.Window)
	}
	for _, path := range loader.calls {
		if path == "video.mov" {
			t.Fatal("manual offset must not decode the target track")
		}
	}
}

func TestRunManualOffsetOutOfRange(t *testing.T) {
	ref, _ := testFixtures(t)
	loader := &fakeLoader{signals: map[string]audio.Signal{"ref.wav": ref}}
	splicer := &fakeSplicer{}
	assembler := NewAssembler(loader, fakeProber{result: videoProbe(60.0)}, splicer, nil)

	offset := 45.0 // window would run to 75 s in a 60 s target
	opts := defaultOptions()
	opts.ManualOffset = &offset

	_, err := assembler.Run(context.Background(), "ref.wav", "video.mov", "out.mov", opts)
	var rangeErr *align.RangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("error = %v, want *align.RangeError", err)
	}
	if !rangeErr.Manual {
		t.Fatal("range error not flagged as manual")
	}
	if len(splicer.calls) != 0 {
		t.Fatal("splice attempted after validation failure")
	}
}

func TestRunManualOffsetRequiresKnownDuration(t *testing.T) {
	ref, _ := testFixtures(t)
	loader := &fakeLoader{signals: map[string]audio.Signal{"ref.wav": ref}}
	splicer := &fakeSplicer{}

	// Container with streams but no reported duration: there is no range
	// bound, so even an absurd manual offset would otherwise slip through.
	probe := videoProbe(0)
	probe.Format.Duration = ""
	assembler := NewAssembler(loader, fakeProber{result: probe}, splicer, nil)

	offset := 9999.0
	opts := defaultOptions()
	opts.ManualOffset = &offset

	_, err := assembler.Run(context.Background(), "ref.wav", "video.mov", "out.mov", opts)
	var decode *audio.DecodeError
	if !errors.As(err, &decode) {
		t.Fatalf("error = %v, want *audio.DecodeError", err)
	}
	if len(splicer.calls) != 0 {
		t.Fatal("splice attempted without a validated range")
	}
}

func TestRunLowConfidenceStopsBeforeSplice(t *testing.T) {
	ref := mustSignal(t, testsupport.Noise(1, testRate*5, 0.5), testRate)
	target := mustSignal(t, testsupport.Noise(2, testRate*20, 0.5), testRate)
	loader := &fakeLoader{signals: map[string]audio.Signal{
		"ref.wav":   ref,
		"video.mov": target,
	}}
	splicer := &fakeSplicer{}
	assembler := NewAssembler(loader, fakeProber{result: videoProbe(20.0)}, splicer, nil)

	_, err := assembler.Run(context.Background(), "ref.wav", "video.mov", "out.mov", defaultOptions())
	var low *align.LowConfidenceError
	if !errors.As(err, &low) {
		t.Fatalf("error = %v, want *align.LowConfidenceError", err)
	}
	if len(splicer.calls) != 0 {
		t.Fatal("splice attempted after low-confidence rejection")
	}
}

func TestRunReferenceLongerThanTarget(t *testing.T) {
	ref := mustSignal(t, testsupport.Sine(440, testRate, 10.0, 0.5), testRate)
	target := mustSignal(t, testsupport.Sine(440, testRate, 4.0, 0.5), testRate)
	loader := &fakeLoader{signals: map[string]audio.Signal{
		"ref.wav":   ref,
		"video.mov": target,
	}}
	assembler := NewAssembler(loader, fakeProber{result: videoProbe(4.0)}, &fakeSplicer{}, nil)

	_, err := assembler.Run(context.Background(), "ref.wav", "video.mov", "out.mov", defaultOptions())
	var insufficient *align.InsufficientTargetError
	if !errors.As(err, &insufficient) {
		t.Fatalf("error = %v, want *align.InsufficientTargetError", err)
	}
}

func TestRunLoaderErrorsPropagate(t *testing.T) {
	decodeErr := &audio.DecodeError{Path: "ref.wav", Err: errors.New("unreadable")}
	loader := &fakeLoader{errs: map[string]error{"ref.wav": decodeErr}}
	assembler := NewAssembler(loader, fakeProber{result: videoProbe(60.0)}, &fakeSplicer{}, nil)

	_, err := assembler.Run(context.Background(), "ref.wav", "video.mov", "out.mov", defaultOptions())
	if !errors.Is(err, decodeErr) {
		t.Fatalf("error = %v, want loader error unchanged", err)
	}
}

func TestRunProbeRejectsStreamlessContainers(t *testing.T) {
	ref, target := testFixtures(t)
	loader := &fakeLoader{signals: map[string]audio.Signal{
		"ref.wav":   ref,
		"video.mov": target,
	}}

	cases := []struct {
		name    string
		streams []ffprobe.Stream
	}{
		{name: "no video stream", streams: []ffprobe.Stream{{Index: 0, CodecType: "audio", Channels: 2}}},
		{name: "no audio stream", streams: []ffprobe.Stream{{Index: 0, CodecType: "video", Width: 1280, Height: 720}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			probe := fakeProber{result: ffprobe.Result{Streams: tc.streams}}
			assembler := NewAssembler(loader, probe, &fakeSplicer{}, nil)

			_, err := assembler.Run(context.Background(), "ref.wav", "video.mov", "out.mov", defaultOptions())
			var decode *audio.DecodeError
			if !errors.As(err, &decode) {
				t.Fatalf("error = %v, want *audio.DecodeError", err)
			}
		})
	}
}

func TestRunSplicerErrorsPropagate(t *testing.T) {
	ref, target := testFixtures(t)
	loader := &fakeLoader{signals: map[string]audio.Signal{
		"ref.wav":   ref,
		"video.mov": target,
	}}
	spliceErr := errors.New("mux failed")
	assembler := NewAssembler(loader, fakeProber{result: videoProbe(60.0)}, &fakeSplicer{err: spliceErr}, nil)

	_, err := assembler.Run(context.Background(), "ref.wav", "video.mov", "out.mov", defaultOptions())
	if !errors.Is(err, spliceErr) {
		t.Fatalf("error = %v, want splice error unchanged", err)
	}
}

func TestPlanDoesNotSplice(t *testing.T) {
	ref, target := testFixtures(t)
	loader := &fakeLoader{signals: map[string]audio.Signal{
		"ref.wav":   ref,
		"video.mov": target,
	}}
	splicer := &fakeSplicer{}
	assembler := NewAssembler(loader, fakeProber{result: videoProbe(60.0)}, splicer, nil)

	outcome, err := assembler.Plan(context.Background(), "ref.wav", "video.mov", defaultOptions())
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if math.Abs(outcome.Window.Start-12.0) > 0.01 {
		t.Fatalf("window start = %v, want 12.0", outcome.Window.Start)
	}
	if len(splicer.calls) != 0 {
		t.Fatal("Plan must not splice")
	}
}
