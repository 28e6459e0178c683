package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		name     string
		value    *string
		fallback string
	}{
		{"paths.library_xml", &c.Paths.LibraryXML, defaultLibraryXML},
		{"paths.csv_dir", &c.Paths.CSVDir, defaultCSVDir},
		{"paths.output_dir", &c.Paths.OutputDir, defaultOutputDir},
		{"paths.cache_path", &c.Paths.CachePath, defaultCachePath()},
	}
	for _, field := range fields {
		if strings.TrimSpace(*field.value) == "" {
			*field.value = field.fallback
		}
		expanded, err := expandPath(strings.TrimSpace(*field.value))
		if err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
		*field.value = expanded
	}

	// An empty log_dir disables the log file.
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		expanded, err := expandPath(strings.TrimSpace(c.Paths.LogDir))
		if err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
		c.Paths.LogDir = expanded
	} else {
		c.Paths.LogDir = ""
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
