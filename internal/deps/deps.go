package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"skelreview/internal/config"
)

// Requirement defines an external binary a review depends on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string `json:"name" yaml:"name"`
	Command     string `json:"command" yaml:"command"`
	Path        string `json:"path,omitempty" yaml:"path,omitempty"`
	Description string `json:"description" yaml:"description"`
	Optional    bool   `json:"optional" yaml:"optional"`
	Available   bool   `json:"available" yaml:"available"`
	Detail      string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// MediaRequirements lists the binaries the media layer runs.
func MediaRequirements(media config.Media) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     media.FFmpegBinary,
			Description: "Decodes clip videos into frames",
		},
		{
			Name:        "FFprobe",
			Command:     media.FFprobeBinary,
			Description: "Reads video geometry and frame rate",
		},
		{
			Name:        "FFplay",
			Command:     media.FFplayBinary,
			Description: "Shows frames with the skeleton overlay",
		},
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
			Optional:    req.Optional,
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
		status.Path = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Missing returns the names of required binaries that are unavailable.
func Missing(statuses []Status) []string {
	var missing []string
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s.Name)
		}
	}
	return missing
}
