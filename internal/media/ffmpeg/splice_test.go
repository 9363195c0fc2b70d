package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeStub(t *testing.T, dir, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub scripts are not executable on windows")
	}
	stub := filepath.Join(dir, "ffmpeg-stub")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return stub
}

func TestSpliceRenamesPartialIntoPlace(t *testing.T) {
	dir := t.TempDir()
	stub := writeStub(t, dir, "for last; do :; done\necho synced > \"$last\"\n")
	output := filepath.Join(dir, "out.mov")

	splicer := Splicer{Binary: stub, AudioBitrate: "192k"}
	if err := splicer.Splice(context.Background(), "video.mov", "ref.aif", output, 12.0, 30.0); err != nil {
		t.Fatalf("Splice: %v", err)
	}

	if _, err := os.Stat(output); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".out.partial.mov")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected partial file to be gone, got %v", err)
	}
	if _, err := os.Stat(output + ".lock"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected lock file to be removed, got %v", err)
	}
}

func TestSpliceFailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	stub := writeStub(t, dir, "for last; do :; done\necho partial > \"$last\"\necho 'codec error' >&2\nexit 1\n")
	output := filepath.Join(dir, "out.mov")

	splicer := Splicer{Binary: stub}
	err := splicer.Splice(context.Background(), "video.mov", "ref.aif", output, 0, 10.0)
	if err == nil {
		t.Fatal("expected mux failure")
	}

	var muxErr *MuxError
	if !errors.As(err, &muxErr) {
		t.Fatalf("expected MuxError, got %T: %v", err, err)
	}
	if muxErr.Output != output {
		t.Fatalf("unexpected output in error: %q", muxErr.Output)
	}

	if _, statErr := os.Stat(output); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("expected no output file after failure, got %v", statErr)
	}
	entries, _ := os.ReadDir(dir)
	for _, entry := range entries {
		if entry.Name() != filepath.Base(stub) {
			t.Fatalf("unexpected leftover file: %s", entry.Name())
		}
	}
}

func TestSplicePassesTrimWindowToFFmpeg(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	stub := writeStub(t, dir, "echo \"$@\" > "+argsFile+"\nfor last; do :; done\n: > \"$last\"\n")
	output := filepath.Join(dir, "out.mov")

	splicer := Splicer{Binary: stub, AudioBitrate: "256k"}
	if err := splicer.Splice(context.Background(), "in.mov", "ref.wav", output, 12.5, 30.25); err != nil {
		t.Fatalf("Splice: %v", err)
	}

	content, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("read args: %v", err)
	}
	args := string(content)
	for _, want := range []string{"-ss 12.500", "-t 30.250", "-c:v copy", "-b:a 256k", "-map 0:v:0", "-map 1:a:0"} {
		if !strings.Contains(args, want) {
			t.Fatalf("expected args to contain %q, got %q", want, args)
		}
	}
}
