package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"tracklink/internal/confirmcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the ISRC confirmation cache",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func withCacheStore(ctx *commandContext, fn func(*confirmcache.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := confirmcache.Open(cfg.Paths.CachePath)
	if err != nil {
		if errors.Is(err, confirmcache.ErrLocked) {
			return fmt.Errorf("confirmation cache %s is in use by another tracklink run", cfg.Paths.CachePath)
		}
		return fmt.Errorf("open confirmation cache: %w", err)
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show confirmation cache counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCacheStore(ctx, func(store *confirmcache.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				entries, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				printCacheStats(cmd.OutOrStdout(), store.Path(), stats, latestUpdate(entries))
				return nil
			})
		},
	}
}

func printCacheStats(out io.Writer, path string, stats confirmcache.Stats, latest time.Time) {
	size := "unknown"
	if info, err := os.Stat(path); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}
	updated := "never"
	if !latest.IsZero() {
		updated = humanize.Time(latest)
	}
	fmt.Fprintf(out, "Cache:   %s (%s)\n", path, size)
	fmt.Fprintf(out, "Updated: %s\n", updated)
	fmt.Fprintln(out, renderTable(tableSpec{
		headers: []string{"Status", "Entries"},
		rows: [][]string{
			{string(confirmcache.StatusPresent), humanize.Comma(int64(stats.Present))},
			{string(confirmcache.StatusAbsent), humanize.Comma(int64(stats.Absent))},
			{string(confirmcache.StatusError), humanize.Comma(int64(stats.Error))},
		},
		footer: []string{"total", humanize.Comma(int64(stats.Total))},
		aligns: []columnAlignment{alignLeft, alignRight},
	}))
}

func latestUpdate(entries []confirmcache.Entry) time.Time {
	var latest time.Time
	for _, entry := range entries {
		if entry.UpdatedAt.After(latest) {
			latest = entry.UpdatedAt
		}
	}
	return latest
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached confirmation verdicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := confirmcache.Status(strings.ToLower(strings.TrimSpace(statusFilter)))
			if filter != "" && !filter.Known() && filter != confirmcache.StatusError {
				return fmt.Errorf("unknown status %q (want present, absent, or error)", statusFilter)
			}
			return withCacheStore(ctx, func(store *confirmcache.Store) error {
				entries, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				printCacheEntries(cmd.OutOrStdout(), filterEntries(entries, filter, limit))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show entries with this status (present, absent, error)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of entries to show (0 shows all)")
	return cmd
}

func filterEntries(entries []confirmcache.Entry, status confirmcache.Status, limit int) []confirmcache.Entry {
	var filtered []confirmcache.Entry
	for _, entry := range entries {
		if status != "" && entry.Status != status {
			continue
		}
		filtered = append(filtered, entry)
		if limit > 0 && len(filtered) == limit {
			break
		}
	}
	return filtered
}

func printCacheEntries(out io.Writer, entries []confirmcache.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No cached verdicts")
		return
	}
	const stampLayout = "2006-01-02 15:04"
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		updated := "unknown"
		if !entry.UpdatedAt.IsZero() {
			updated = entry.UpdatedAt.Local().Format(stampLayout)
		}
		rows = append(rows, []string{
			entry.PersistentID,
			string(entry.Status),
			entry.ISRC,
			entry.Reason,
			updated,
		})
	}
	fmt.Fprintln(out, renderTable(tableSpec{
		headers: []string{"Persistent ID", "Status", "ISRC", "Reason", "Updated"},
		rows:    rows,
	}))
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached verdict",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCacheStore(ctx, func(store *confirmcache.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				if removed == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Cache already empty")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s cached verdicts\n", humanize.Comma(removed))
				return nil
			})
		},
	}
}
