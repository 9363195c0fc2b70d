// Package deps reports availability of the external binaries avsync shells
// out to. Decode, extract, probe, and mux all go through ffmpeg/ffprobe, so
// a missing binary fails every run; the CLI exposes these checks up front.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"avsync/internal/config"
)

// Requirement defines an external dependency avsync relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Resolved    string
	Detail      string
}

// Requirements returns the binaries a sync run needs, honoring any
// configured overrides.
func Requirements(cfg *config.Config) []Requirement {
	ffmpeg := "ffmpeg"
	ffprobe := "ffprobe"
	if cfg != nil {
		ffmpeg = cfg.FFmpegBinary()
		ffprobe = cfg.FFprobeBinary()
	}
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpeg, Description: "Audio extraction and video assembly"},
		{Name: "FFprobe", Command: ffprobe, Description: "Container inspection"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Resolved = resolved
		results = append(results, status)
	}
	return results
}

// Missing filters statuses down to unavailable dependencies.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available {
			missing = append(missing, status)
		}
	}
	return missing
}
