package config

const (
	defaultLibraryXML           = "MusicLibrary.xml"
	defaultCSVDir               = "spotify_csv"
	defaultOutputDir            = "music_playlists_xml"
	defaultCacheFile            = "~/.cache/tracklink/confirmations.db"
	defaultLogDir               = "~/.local/share/tracklink/logs"
	defaultDurationFloorSeconds = 3
	defaultDurationFraction     = 0.02
	defaultFuzzyThreshold       = 95
	defaultUseAlbum             = true
	defaultConfirmEnabled       = true
	defaultReadBudget           = 500
	defaultParallelism          = 4
	defaultPerRowCap            = 64
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryXML: defaultLibraryXML,
			CSVDir:     defaultCSVDir,
			OutputDir:  defaultOutputDir,
			CachePath:  defaultCachePath(),
			LogDir:     defaultLogDir,
		},
		Matching: Matching{
			DurationFloorSeconds: defaultDurationFloorSeconds,
			DurationFraction:     defaultDurationFraction,
			FuzzyThreshold:       defaultFuzzyThreshold,
			UseAlbum:             defaultUseAlbum,
		},
		Confirm: Confirm{
			Enabled:     defaultConfirmEnabled,
			ReadBudget:  defaultReadBudget,
			Parallelism: defaultParallelism,
			PerRowCap:   defaultPerRowCap,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
