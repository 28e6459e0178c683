package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tracklink/internal/catalog"
	"tracklink/internal/config"
	"tracklink/internal/confirmcache"
	"tracklink/internal/library"
	"tracklink/internal/logging"
	"tracklink/internal/matcher"
	"tracklink/internal/musiclib"
	"tracklink/internal/playlist"
	"tracklink/internal/probe"
)

type convertFlags struct {
	libraryXML string
	csvDir     string
	outputDir  string
	noConfirm  bool
	budget     int
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert catalog CSV playlists into Music.app playlist files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}
			return runConvert(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVar(&flags.libraryXML, "library", "", "Music.app library export (overrides paths.library_xml)")
	cmd.Flags().StringVar(&flags.csvDir, "csv-dir", "", "Directory of Exportify CSV files (overrides paths.csv_dir)")
	cmd.Flags().StringVarP(&flags.outputDir, "out", "o", "", "Output directory for playlist XML (overrides paths.output_dir)")
	cmd.Flags().BoolVar(&flags.noConfirm, "no-confirm", false, "Skip reading ISRCs from library files")
	cmd.Flags().IntVar(&flags.budget, "budget", 0, "Maximum number of library files to read for ISRCs")
	return cmd
}

func (f convertFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	overrides := []struct {
		value  string
		target *string
	}{
		{f.libraryXML, &cfg.Paths.LibraryXML},
		{f.csvDir, &cfg.Paths.CSVDir},
		{f.outputDir, &cfg.Paths.OutputDir},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		expanded, err := config.ExpandPath(o.value)
		if err != nil {
			return fmt.Errorf("resolve path %q: %w", o.value, err)
		}
		*o.target = expanded
	}
	if f.noConfirm {
		cfg.Confirm.Enabled = false
	}
	if cmd.Flags().Changed("budget") {
		if f.budget < 0 {
			return fmt.Errorf("--budget must be >= 0, got %d", f.budget)
		}
		cfg.Confirm.ReadBudget = f.budget
	}
	return nil
}

func runConvert(ctx context.Context, out io.Writer, cfg *config.Config) error {
	start := time.Now()
	ctx = logging.WithRunID(ctx, uuid.NewString())
	baseLogger, closeLog, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()
	logger := logging.WithContext(ctx, baseLogger)

	snapshot, err := musiclib.LoadFile(cfg.Paths.LibraryXML)
	if err != nil {
		return libraryLoadError(cfg.Paths.LibraryXML, err)
	}
	logger.Info("library loaded",
		logging.String("path", cfg.Paths.LibraryXML),
		logging.Int("tracks", len(snapshot.Records)),
		logging.Int("local", snapshot.Local()))

	playlists, err := catalog.Discover(cfg.Paths.CSVDir)
	if err != nil {
		return catalogDiscoverError(cfg.Paths.CSVDir, err)
	}
	logger.Info("catalog discovered",
		logging.String("dir", cfg.Paths.CSVDir),
		logging.Int("playlists", len(playlists)))

	store, err := confirmcache.Open(cfg.Paths.CachePath)
	if err != nil {
		if errors.Is(err, confirmcache.ErrLocked) {
			return fmt.Errorf("confirmation cache %s is in use by another tracklink run", cfg.Paths.CachePath)
		}
		return fmt.Errorf("open confirmation cache: %w", err)
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load confirmation cache: %w", err)
	}
	index := library.Build(snapshot.Records, confirmcache.ConfirmedCodes(entries))
	logger.Info("library indexed",
		logging.Int("indexed", index.Len()),
		logging.Int("cached_verdicts", len(entries)),
		logging.Bool("confirm_enabled", cfg.Confirm.Enabled))

	var confirmer *matcher.Confirmer
	if cfg.Confirm.Enabled {
		confirmer = matcher.NewConfirmer(
			index,
			matcher.NewCacheView(entries, store),
			probe.NewFileProbe(),
			matcher.NewBudget(cfg.Confirm.ReadBudget),
			matcher.ConfirmOptions{
				Parallelism: cfg.Confirm.Parallelism,
				Revalidate:  cfg.Confirm.RevalidateOnChange,
				Logger:      logger,
			},
		)
	} else {
		logger.Info("deep inspection disabled",
			logging.Args(logging.DecisionAttrs("confirm", "skip", "disabled by configuration")...)...)
	}

	resolver := matcher.New(index, confirmer, matcher.Options{
		Tolerance: matcher.Tolerance{
			FloorSeconds: cfg.Matching.DurationFloorSeconds,
			Fraction:     cfg.Matching.DurationFraction,
		},
		FuzzyThreshold: cfg.Matching.FuzzyThreshold,
		UseAlbum:       cfg.Matching.UseAlbum,
		PerRowCap:      cfg.Confirm.PerRowCap,
		Logger:         logger,
	})

	summary, err := playlist.NewConverter(resolver, cfg.Paths.OutputDir, logger).Run(ctx, playlists)
	if err != nil {
		logging.ErrorWithContext(logger, "conversion aborted", "conversion_failed",
			logging.Error(err),
			logging.Int("playlists_done", len(summary.Playlists)),
			logging.String(logging.FieldErrorHint, "check that the confirmation cache is writable"))
		return fmt.Errorf("convert playlists: %w", err)
	}

	report := conversionReport{
		Summary:   summary,
		Library:   snapshot,
		Indexed:   index.Len(),
		OutputDir: cfg.Paths.OutputDir,
	}
	if confirmer != nil {
		stats := confirmer.Stats()
		report.Confirm = &stats
	}
	logger.Info("conversion complete",
		logging.Int("playlists", summary.Written()),
		logging.Int("rows", summary.Rows()),
		logging.Int("matched", summary.Matched()),
		logging.Duration("elapsed", time.Since(start)))

	renderConversionReport(out, report, shouldColorize(out))
	return nil
}

func libraryLoadError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(`library export %s not found

To export your Music library:
  1. Open Music.app
  2. Choose File > Library > Export Library...
  3. Save it as %s (or set paths.library_xml)`, path, path)
	}
	if errors.Is(err, musiclib.ErrNoTracks) {
		return fmt.Errorf("library export %s contains no tracks; export the library again", path)
	}
	return fmt.Errorf("load library export: %w", err)
}

func catalogDiscoverError(dir string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf(`CSV directory %s not found

To export your Spotify playlists:
  1. Go to https://exportify.net
  2. Log in with Spotify
  3. Click "Export All"
  4. Extract the ZIP into %s (or set paths.csv_dir)`, dir, dir)
	case errors.Is(err, catalog.ErrNoPlaylists):
		return fmt.Errorf("no CSV files found in %s; extract your Exportify export into this directory", dir)
	default:
		return fmt.Errorf("discover playlists: %w", err)
	}
}
