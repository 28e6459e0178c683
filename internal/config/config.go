package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// ConfigEnv names the environment variable consulted when no --config flag is given.
const ConfigEnv = "TRACKLINK_CONFIG"

// Paths contains input, output, and state locations.
type Paths struct {
	LibraryXML string `toml:"library_xml"`
	CSVDir     string `toml:"csv_dir"`
	OutputDir  string `toml:"output_dir"`
	CachePath  string `toml:"cache_path"`
	LogDir     string `toml:"log_dir"`
}

// Matching tunes the resolver cascade.
type Matching struct {
	DurationFloorSeconds int     `toml:"duration_floor_seconds"`
	DurationFraction     float64 `toml:"duration_fraction"`
	FuzzyThreshold       int     `toml:"fuzzy_threshold"`
	UseAlbum             bool    `toml:"use_album"`
}

// Confirm controls deep inspection of library files for ISRCs.
type Confirm struct {
	Enabled            bool `toml:"enabled"`
	ReadBudget         int  `toml:"read_budget"`
	Parallelism        int  `toml:"parallelism"`
	PerRowCap          int  `toml:"per_row_cap"`
	RevalidateOnChange bool `toml:"revalidate_on_change"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for tracklink.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Matching Matching `toml:"matching"`
	Confirm  Confirm  `toml:"confirm"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/tracklink/config.toml")
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
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
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
	if path == "" {
		path = strings.TrimSpace(os.Getenv(ConfigEnv))
	}
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

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tracklink.toml")
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

// EnsureDirectories creates the output, cache, and log directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.OutputDir, filepath.Dir(c.Paths.CachePath)}
	if c.Paths.LogDir != "" {
		dirs = append(dirs, c.Paths.LogDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
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

func defaultCachePath() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "tracklink", "confirmations.db")
	}
	return defaultCacheFile
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

// ErrConfigExists reports that WriteSample found a file at the target path.
var ErrConfigExists = errors.New("config file already exists")

// WriteSample resolves path (the default location when blank), writes the
// sample there and returns the resolved path. An existing file is left in
// place unless overwrite is set.
func WriteSample(path string, overwrite bool) (string, error) {
	var (
		target string
		err    error
	)
	if strings.TrimSpace(path) == "" {
		target, err = DefaultConfigPath()
	} else {
		target, err = expandPath(path)
	}
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			return target, fmt.Errorf("%w at %s", ErrConfigExists, target)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("check config path: %w", err)
		}
	}
	if err := CreateSample(target); err != nil {
		return "", err
	}
	return target, nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() (string, error) {
	var sb strings.Builder
	encoder := toml.NewEncoder(&sb)
	if err := encoder.Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return sb.String(), nil
}
