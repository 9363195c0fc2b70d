package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"avsync/internal/config"
)

func newConfigCommand(cmdCtx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(cmdCtx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

// resolveInitTarget picks the destination for a sample config: an explicit
// path expanded, or the default config location.
func resolveInitTarget(targetPath string) (string, error) {
	target := strings.TrimSpace(targetPath)
	if target == "" {
		return config.DefaultConfigPath()
	}
	return config.ExpandPath(target)
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := resolveInitTarget(targetPath)
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}

			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and show the effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			var flagPath string
			if cmdCtx.configFlag != nil {
				flagPath = strings.TrimSpace(*cmdCtx.configFlag)
			}
			cfg, path, exists, err := config.Load(flagPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file not found; defaults in effect")
			}
			fmt.Fprintln(out, renderFields([][2]string{
				{"Sample rate", fmt.Sprintf("%d Hz", cfg.Sync.SampleRate)},
				{"Confidence threshold", fmt.Sprintf("%.2f", cfg.Sync.ConfidenceThreshold)},
				{"Epsilon", fmt.Sprintf("%.3f s", cfg.Sync.EpsilonSeconds)},
				{"Audio bitrate", cfg.Sync.AudioBitrate},
				{"Default output", cfg.Sync.DefaultOutput},
				{"ffmpeg", cfg.FFmpegBinary()},
				{"ffprobe", cfg.FFprobeBinary()},
				{"Work dir", cfg.Paths.WorkDir},
				{"Log dir", cfg.Paths.LogDir},
			}))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
