package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"avsync/internal/audio"
	"avsync/internal/media/ffmpeg"
	"avsync/internal/media/ffprobe"
	"avsync/internal/syncer"
)

type binaryProber struct {
	binary string
}

func (p binaryProber) Inspect(ctx context.Context, path string) (ffprobe.Result, error) {
	return ffprobe.Inspect(ctx, p.binary, path)
}

func newSyncCommand(cmdCtx *commandContext) *cobra.Command {
	var outputPath string
	var offset float64
	var sampleRate int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sync <reference_audio> <video>",
		Short: "Align a video to a reference audio track and splice the result",
		Long: `Sync detects where the reference audio occurs inside the video's audio
track, trims the video to that window, and writes a new video carrying the
reference audio. Pass --offset to skip detection when the alignment is
already known; the value is still checked against the container durations.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logger, err := cmdCtx.newLogger(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			referencePath := strings.TrimSpace(args[0])
			videoPath := strings.TrimSpace(args[1])
			output := strings.TrimSpace(outputPath)
			if output == "" {
				output = cfg.Sync.DefaultOutput
			}
			rate := sampleRate
			if rate <= 0 {
				rate = cfg.Sync.SampleRate
			}

			opts := syncer.Options{
				SampleRate:          rate,
				ConfidenceThreshold: cfg.Sync.ConfidenceThreshold,
				Epsilon:             cfg.Sync.EpsilonSeconds,
			}
			if cmd.Flags().Changed("offset") {
				manual := offset
				opts.ManualOffset = &manual
			}

			decoder := ffmpeg.Decoder{
				Binary:  cfg.FFmpegBinary(),
				WorkDir: cfg.Paths.WorkDir,
				Logger:  logger,
			}
			assembler := syncer.NewAssembler(
				audio.NewLoader(decoder, logger),
				binaryProber{binary: cfg.FFprobeBinary()},
				ffmpeg.Splicer{
					Binary:       cfg.FFmpegBinary(),
					AudioBitrate: cfg.Sync.AudioBitrate,
					Logger:       logger,
				},
				logger,
			)

			out := cmd.OutOrStdout()
			if dryRun {
				outcome, err := assembler.Plan(cmd.Context(), referencePath, videoPath, opts)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, renderOutcome(outcome, "(dry run, nothing written)"))
				return nil
			}

			outcome, err := assembler.Run(cmd.Context(), referencePath, videoPath, output, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, renderOutcome(outcome, output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output video path (default from config)")
	cmd.Flags().Float64Var(&offset, "offset", 0, "Skip detection and use this offset in seconds")
	cmd.Flags().IntVar(&sampleRate, "sample-rate", 0, "Working sample rate in Hz (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Detect and validate the offset without writing output")

	return cmd
}

func renderOutcome(outcome syncer.Outcome, output string) string {
	rows := [][2]string{
		{"Offset", fmt.Sprintf("%.3f s", outcome.Decision.Offset())},
		{"Source", offsetSource(outcome)},
	}
	if !outcome.Decision.Manual() {
		rows = append(rows, [2]string{"Confidence", fmt.Sprintf("%.3f", outcome.Correlation.Peak)})
	}
	rows = append(rows,
		[2]string{"Trim start", fmt.Sprintf("%.3f s", outcome.Window.Start)},
		[2]string{"Duration", fmt.Sprintf("%.3f s", outcome.Window.Duration)},
		[2]string{"Output", output},
	)
	return renderFields(rows)
}

func offsetSource(outcome syncer.Outcome) string {
	if outcome.Decision.Manual() {
		return "manual"
	}
	return "detected"
}
