package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDataset()
	c.normalizeReview()
	c.normalizeMedia()
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DatasetRoot) == "" {
		c.Paths.DatasetRoot = defaultDatasetRoot
	}
	if c.Paths.DatasetRoot, err = expandPath(strings.TrimSpace(c.Paths.DatasetRoot)); err != nil {
		return fmt.Errorf("paths.dataset_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.LedgerDir) == "" {
		c.Paths.LedgerDir = defaultLedgerDir
	}
	if c.Paths.LedgerDir, err = expandPath(strings.TrimSpace(c.Paths.LedgerDir)); err != nil {
		return fmt.Errorf("paths.ledger_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDataset() {
	category := strings.TrimSpace(c.Dataset.Category)
	for _, known := range Categories {
		if strings.EqualFold(category, known) {
			category = known
			break
		}
	}
	if category == "" {
		category = defaultCategory
	}
	c.Dataset.Category = category

	c.Dataset.Action = NormalizeAction(c.Dataset.Action)
	if c.Dataset.Action == "" {
		c.Dataset.Action = defaultAction
	}
	c.Dataset.VideoExt = normalizeExt(c.Dataset.VideoExt, defaultVideoExt)
	c.Dataset.SkeletonExt = normalizeExt(c.Dataset.SkeletonExt, defaultSkeletonExt)
}

func (c *Config) normalizeReview() {
	c.Review.Mode = strings.ToLower(strings.TrimSpace(c.Review.Mode))
	if c.Review.Mode == "" {
		c.Review.Mode = defaultMode
	}
	if c.Review.FrameRate == 0 {
		c.Review.FrameRate = defaultFrameRate
	}
	if c.Review.DocumentCacheTTL < 0 {
		c.Review.DocumentCacheTTL = 0
	}
	keys := &c.Review.Keys
	for _, key := range []*string{&keys.Backward, &keys.Forward, &keys.Exclude, &keys.Include, &keys.Quit} {
		*key = NormalizeKey(*key)
	}
}

func (c *Config) normalizeMedia() {
	trimOr := func(value, fallback string) string {
		value = strings.TrimSpace(value)
		if value == "" {
			return fallback
		}
		return value
	}
	c.Media.FFmpegBinary = trimOr(c.Media.FFmpegBinary, defaultFFmpegBinary)
	c.Media.FFprobeBinary = trimOr(c.Media.FFprobeBinary, defaultFFprobeBinary)
	c.Media.FFplayBinary = trimOr(c.Media.FFplayBinary, defaultFFplayBinary)
	c.Media.WindowTitle = trimOr(c.Media.WindowTitle, defaultWindowTitle)
	if c.Media.MarkerRadius <= 0 {
		c.Media.MarkerRadius = defaultMarkerRadius
	}
	if c.Media.LineWidth <= 0 {
		c.Media.LineWidth = defaultLineWidth
	}
}

func (c *Config) normalizeJournal() error {
	path := strings.TrimSpace(c.Journal.Path)
	if path == "" {
		c.Journal.Path = filepath.Join(c.Paths.LogDir, defaultJournalFile)
		return nil
	}
	var err error
	if c.Journal.Path, err = expandPath(path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

var actionPattern = regexp.MustCompile(`^[Aa]?(\d{1,3})$`)

// NormalizeAction canonicalizes an action class label: "22", "a22" and
// "A022" all become "A022". Values that do not look like a label are
// returned trimmed so Validate can report them.
func NormalizeAction(value string) string {
	value = strings.TrimSpace(value)
	m := actionPattern.FindStringSubmatch(value)
	if m == nil {
		return value
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return value
	}
	return fmt.Sprintf("A%03d", n)
}

// NormalizeKey lowercases named keys and leaves single characters as typed.
func NormalizeKey(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" && value != "" {
		return "space"
	}
	if len([]rune(trimmed)) == 1 {
		return trimmed
	}
	return strings.ToLower(trimmed)
}

func normalizeExt(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if !strings.HasPrefix(value, ".") {
		value = "." + value
	}
	return value
}
