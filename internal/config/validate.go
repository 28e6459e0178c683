package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateConfirm(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateMatching() error {
	if c.Matching.DurationFloorSeconds < 0 {
		return errors.New("matching.duration_floor_seconds must be >= 0")
	}
	if c.Matching.DurationFraction < 0 || c.Matching.DurationFraction >= 1 {
		return errors.New("matching.duration_fraction must be in [0, 1)")
	}
	if c.Matching.FuzzyThreshold < 1 || c.Matching.FuzzyThreshold > 100 {
		return errors.New("matching.fuzzy_threshold must be between 1 and 100")
	}
	return nil
}

func (c *Config) validateConfirm() error {
	if c.Confirm.ReadBudget < 0 {
		return errors.New("confirm.read_budget must be >= 0")
	}
	if c.Confirm.Parallelism < 1 || c.Confirm.Parallelism > 64 {
		return errors.New("confirm.parallelism must be between 1 and 64")
	}
	if c.Confirm.PerRowCap < 0 {
		return errors.New("confirm.per_row_cap must be >= 0 (0 means unbounded)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
