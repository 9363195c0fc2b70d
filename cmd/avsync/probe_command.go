package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"avsync/internal/media/ffprobe"
)

func newProbeCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <media_file>",
		Short: "Show container and stream details for a media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			path := strings.TrimSpace(args[0])
			result, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Container: %s\n", valueOr(result.Format.FormatName, "unknown"))
			if duration := result.DurationSeconds(); !math.IsNaN(duration) {
				fmt.Fprintf(out, "Duration:  %.3f s\n", duration)
			} else {
				fmt.Fprintln(out, "Duration:  unknown")
			}

			rows := make([][]string, 0, len(result.Streams))
			for _, stream := range result.Streams {
				rows = append(rows, []string{
					fmt.Sprintf("%d", stream.Index),
					stream.CodecType,
					valueOr(stream.CodecName, "-"),
					streamDetail(stream),
				})
			}
			fmt.Fprintln(out, renderList(
				[]string{"Stream", "Type", "Codec", "Detail"},
				rows,
				1,
			))
			return nil
		},
	}
}

func streamDetail(stream ffprobe.Stream) string {
	switch stream.CodecType {
	case "video":
		if stream.Width > 0 && stream.Height > 0 {
			return fmt.Sprintf("%dx%d", stream.Width, stream.Height)
		}
	case "audio":
		parts := make([]string, 0, 2)
		if rate := stream.SampleRateHz(); rate > 0 {
			parts = append(parts, fmt.Sprintf("%d Hz", rate))
		}
		if stream.Channels > 0 {
			parts = append(parts, fmt.Sprintf("%d ch", stream.Channels))
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}
	return "-"
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
