package playlist

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"tracklink/internal/catalog"
	"tracklink/internal/logging"
	"tracklink/internal/matcher"
	"tracklink/internal/musiclib"
	"tracklink/internal/textutil"
)

// UnmatchedReportName is the report written next to the playlists.
const UnmatchedReportName = "_unmatched.tsv"

// Resolver maps one catalog row to a library record.
type Resolver interface {
	Resolve(ctx context.Context, rec catalog.Record) (matcher.Result, error)
}

// Converter turns catalog playlists into Music.app playlist files.
type Converter struct {
	resolver  Resolver
	outputDir string
	logger    *slog.Logger
}

// NewConverter writes into outputDir using resolver for every row.
func NewConverter(resolver Resolver, outputDir string, logger *slog.Logger) *Converter {
	return &Converter{
		resolver:  resolver,
		outputDir: outputDir,
		logger:    logging.NewComponentLogger(logger, "playlist"),
	}
}

// Run converts every playlist in order and writes the unmatched report.
func (c *Converter) Run(ctx context.Context, playlists []catalog.Playlist) (Summary, error) {
	summary := Summary{Tiers: TierCounts{}}
	logger := logging.WithContext(ctx, c.logger)

	for _, pl := range playlists {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		result, unmatched, err := c.Convert(ctx, pl)
		if err != nil {
			return summary, err
		}
		summary.Playlists = append(summary.Playlists, result)
		summary.Unmatched = append(summary.Unmatched, unmatched...)
		summary.Tiers.Add(result.Tiers)
	}

	if len(summary.Unmatched) > 0 {
		path := filepath.Join(c.outputDir, UnmatchedReportName)
		if err := WriteUnmatchedReport(path, summary.Unmatched); err != nil {
			return summary, err
		}
		summary.ReportPath = path
		logger.Info("unmatched report written",
			logging.String("path", path),
			logging.Int("rows", len(summary.Unmatched)))
	}
	return summary, nil
}

// Convert resolves one playlist. A CSV that cannot be read is reported in the
// summary rather than returned as an error.
func (c *Converter) Convert(ctx context.Context, pl catalog.Playlist) (PlaylistSummary, []Unmatched, error) {
	logger := logging.WithContext(ctx, c.logger).With(logging.String(logging.FieldPlaylist, pl.Name))
	result := PlaylistSummary{Name: pl.Name, Source: pl.Path, Tiers: TierCounts{}}

	rows, err := catalog.ReadFile(pl.Path)
	if err != nil {
		logging.WarnWithContext(logger, "playlist skipped", "playlist_read_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "re-export the playlist CSV"),
			logging.String(logging.FieldImpact, "no playlist file written for this CSV"))
		result.Err = err
		return result, nil, nil
	}

	var (
		trackIDs  []int
		unmatched []Unmatched
	)
	for _, row := range rows {
		res, err := c.resolver.Resolve(ctx, row)
		if err != nil {
			return result, unmatched, fmt.Errorf("resolve %s row %d: %w", pl.Name, row.Row, err)
		}
		result.Rows++
		if !res.Matched() {
			unmatched = append(unmatched, Unmatched{Playlist: pl.Name, Artist: row.Artist, Title: row.Title})
			logger.Debug("row unresolved",
				logging.Int("row", row.Row),
				logging.String("track", row.Label()))
			continue
		}
		result.Matched++
		result.Tiers[res.Tier]++
		trackIDs = append(trackIDs, res.Record.TrackID)
	}

	if len(trackIDs) == 0 {
		logging.WarnWithContext(logger, "no matches found", "playlist_empty",
			logging.Int("rows", result.Rows),
			logging.String(logging.FieldErrorHint, "check that the tracks exist in the exported library"),
			logging.String(logging.FieldImpact, "playlist not written"))
		return result, unmatched, nil
	}

	path := filepath.Join(c.outputDir, textutil.SanitizeFileName(pl.Name)+".xml")
	if err := musiclib.WritePlaylist(path, musiclib.Playlist{Name: pl.Name, TrackIDs: trackIDs}); err != nil {
		return result, unmatched, err
	}
	result.Output = path

	logger.Info("playlist converted",
		logging.Int("matched", result.Matched),
		logging.Int("unmatched", result.Unresolved()),
		logging.String("output", path))
	return result, unmatched, nil
}
