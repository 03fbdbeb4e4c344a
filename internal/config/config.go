package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DatasetRoot string `toml:"dataset_root"`
	LedgerDir   string `toml:"ledger_dir"`
	LogDir      string `toml:"log_dir"`
}

// Dataset selects which action class directory is reviewed.
type Dataset struct {
	Category    string `toml:"category"`
	Action      string `toml:"action"`
	VideoExt    string `toml:"video_ext"`
	SkeletonExt string `toml:"skeleton_ext"`
}

// Keys maps operator actions to key names. Single characters name
// themselves; "esc", "space", "enter" and "tab" are also accepted.
type Keys struct {
	Backward string `toml:"backward"`
	Forward  string `toml:"forward"`
	Exclude  string `toml:"exclude"`
	Include  string `toml:"include"`
	Quit     string `toml:"quit"`
}

// Review contains configuration for the interactive review loop.
type Review struct {
	// Mode is one of "all", "good" or "bad".
	Mode    string `toml:"mode"`
	Persist bool   `toml:"persist"`
	// FrameRate is the capture rate in Hz; the key poll period derives from it.
	FrameRate int `toml:"frame_rate"`
	// DocumentCacheTTL keeps parsed skeleton documents for this many seconds
	// so stepping back does not re-parse. 0 disables retention.
	DocumentCacheTTL int  `toml:"document_cache_ttl"`
	Keys             Keys `toml:"keys"`
}

// Media contains the external decoder/presenter settings.
type Media struct {
	FFmpegBinary  string `toml:"ffmpeg_binary"`
	FFprobeBinary string `toml:"ffprobe_binary"`
	FFplayBinary  string `toml:"ffplay_binary"`
	WindowTitle   string `toml:"window_title"`
	MarkerRadius  int    `toml:"marker_radius"`
	LineWidth     int    `toml:"line_width"`
}

// Journal contains configuration for the SQLite review journal.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for skelreview.
//
// Configuration sections by subsystem:
//   - Paths: dataset root, ledger and log directories
//   - Dataset: category/action class and clip file extensions
//   - Review: display mode, persistence, frame rate, key bindings
//   - Media: ffmpeg/ffprobe/ffplay binaries and overlay geometry
//   - Journal: SQLite record of review sessions and decisions
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Dataset Dataset `toml:"dataset"`
	Review  Review  `toml:"review"`
	Media   Media   `toml:"media"`
	Journal Journal `toml:"journal"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("skelreview.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the ledger and log directories. The dataset root
// is never created; it must already hold the clips.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LedgerDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.Journal.Enabled {
		if err := os.MkdirAll(filepath.Dir(c.Journal.Path), 0o755); err != nil {
			return fmt.Errorf("create journal directory: %w", err)
		}
	}
	return nil
}

// ClipDir returns the directory holding the configured action class clips.
func (c *Config) ClipDir() string {
	return filepath.Join(c.Paths.DatasetRoot, c.Dataset.Category, c.Dataset.Action)
}

// PollPeriod returns how long the review loop waits for a key per frame.
func (c *Config) PollPeriod() time.Duration {
	rate := c.Review.FrameRate
	if rate <= 0 {
		rate = defaultFrameRate
	}
	return time.Duration(1000/rate) * time.Millisecond
}

// DocumentCacheTTL returns the retention for parsed documents.
func (c *Config) DocumentCacheTTL() time.Duration {
	return time.Duration(c.Review.DocumentCacheTTL) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
