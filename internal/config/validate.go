package config

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var actionLabelPattern = regexp.MustCompile(`^A\d{3}$`)

var namedKeys = []string{"esc", "space", "enter", "tab", "ctrl+c"}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateReview(); err != nil {
		return err
	}
	if err := c.validateMedia(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDataset() error {
	if !slices.Contains(Categories, c.Dataset.Category) {
		return fmt.Errorf("dataset.category must be one of %s, got %q", strings.Join(Categories, ", "), c.Dataset.Category)
	}
	if !actionLabelPattern.MatchString(c.Dataset.Action) {
		return fmt.Errorf("dataset.action must look like A022, got %q", c.Dataset.Action)
	}
	if c.Dataset.VideoExt == c.Dataset.SkeletonExt {
		return errors.New("dataset.video_ext and dataset.skeleton_ext must differ")
	}
	return nil
}

func (c *Config) validateReview() error {
	switch c.Review.Mode {
	case ModeAll, ModeGood, ModeBad:
	default:
		return fmt.Errorf("review.mode must be all, good, or bad, got %q", c.Review.Mode)
	}
	if c.Review.FrameRate < 1 || c.Review.FrameRate > maxFrameRate {
		return fmt.Errorf("review.frame_rate must be between 1 and %d", maxFrameRate)
	}
	return ValidateKeys(c.Review.Keys)
}

// ValidateKeys checks that every binding is set, recognised and distinct.
func ValidateKeys(keys Keys) error {
	bindings := []struct {
		name  string
		value string
	}{
		{"backward", keys.Backward},
		{"forward", keys.Forward},
		{"exclude", keys.Exclude},
		{"include", keys.Include},
		{"quit", keys.Quit},
	}
	seen := make(map[string]string, len(bindings))
	for _, b := range bindings {
		if b.value == "" {
			return fmt.Errorf("review.keys.%s must be set", b.name)
		}
		if len([]rune(b.value)) != 1 && !slices.Contains(namedKeys, b.value) {
			return fmt.Errorf("review.keys.%s: unknown key %q (use a single character or one of %s)", b.name, b.value, strings.Join(namedKeys, ", "))
		}
		if other, ok := seen[b.value]; ok {
			return fmt.Errorf("review.keys.%s and review.keys.%s both use %q", other, b.name, b.value)
		}
		seen[b.value] = b.name
	}
	return nil
}

func (c *Config) validateMedia() error {
	if c.Media.MarkerRadius > 64 {
		return errors.New("media.marker_radius must be at most 64")
	}
	if c.Media.LineWidth > 32 {
		return errors.New("media.line_width must be at most 32")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
}
