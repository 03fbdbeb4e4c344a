package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"skelreview/internal/config"
	"skelreview/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckDirectoryReadable verifies that the directory exists and can be listed.
func CheckDirectoryReadable(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.X_OK, "readable")
}

func checkDirectory(name, path string, mode uint32, ok string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, ok)}
}

// CheckSystemDeps evaluates the media binaries for the given config.
func CheckSystemDeps(cfg *config.Config) []Result {
	statuses := deps.CheckBinaries(deps.MediaRequirements(cfg.Media))
	results := make([]Result, 0, len(statuses))
	for _, s := range statuses {
		detail := s.Path
		if !s.Available {
			detail = s.Detail
		}
		results = append(results, Result{Name: s.Name, Passed: s.Available, Optional: s.Optional, Detail: detail})
	}
	return results
}
