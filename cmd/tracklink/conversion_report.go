package main

import (
	"fmt"
	"io"
	"strconv"

	"tracklink/internal/matcher"
	"tracklink/internal/musiclib"
	"tracklink/internal/playlist"
)

type conversionReport struct {
	Summary   playlist.Summary
	Library   musiclib.Snapshot
	Indexed   int
	OutputDir string
	// Confirm is nil when deep inspection was disabled.
	Confirm *matcher.ConfirmStats
}

func renderConversionReport(out io.Writer, report conversionReport, colorize bool) {
	summary := report.Summary

	writeSection(out, "Playlists", colorize)
	rows := make([][]string, 0, len(summary.Playlists))
	for _, pl := range summary.Playlists {
		rows = append(rows, []string{
			pl.Name,
			strconv.Itoa(pl.Rows),
			strconv.Itoa(pl.Matched),
			strconv.Itoa(pl.Unresolved()),
			playlistOutcome(pl),
		})
	}
	fmt.Fprintln(out, renderTable(tableSpec{
		headers: []string{"Playlist", "Rows", "Matched", "Unmatched", "Result"},
		rows:    rows,
		footer: []string{
			"Total",
			strconv.Itoa(summary.Rows()),
			strconv.Itoa(summary.Matched()),
			strconv.Itoa(summary.Rows() - summary.Matched()),
			fmt.Sprintf("%d/%d written", summary.Written(), len(summary.Playlists)),
		},
		aligns: []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft},
	}))

	fmt.Fprintln(out)
	writeSection(out, "Match tiers", colorize)
	tierRows := make([][]string, 0, len(matcher.Tiers))
	for _, tier := range matcher.Tiers {
		tierRows = append(tierRows, []string{tier.String(), strconv.Itoa(summary.Tiers[tier])})
	}
	fmt.Fprintln(out, renderTable(tableSpec{
		headers: []string{"Tier", "Matches"},
		rows:    tierRows,
		aligns:  []columnAlignment{alignLeft, alignRight},
	}))

	fmt.Fprintln(out)
	writeSection(out, "Run", colorize)
	library := summaryLine{
		label:  "Library",
		grade:  outcomeGood,
		detail: fmt.Sprintf("%d local tracks indexed (%d in export)", report.Indexed, len(report.Library.Records)),
	}
	if report.Indexed == 0 {
		library.grade = outcomeFailed
	}
	writeSummaryLines(out, []summaryLine{
		library,
		coverageLine(summary.Matched(), summary.Rows()),
		tierMixLine(summary.Tiers),
		confirmLine(report.Confirm),
		unmatchedLine(len(summary.Unmatched), summary.ReportPath),
		{label: "Output", detail: report.OutputDir},
	}, colorize)

	if summary.Written() == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Open Music.app")
	fmt.Fprintln(out, "  2. Choose File > Library > Import Playlist...")
	fmt.Fprintf(out, "  3. Select every XML file in %s\n", report.OutputDir)
	fmt.Fprintln(out, "  4. Click Open")
	fmt.Fprintln(out, "Only tracks already in your Music library are added.")
}

func playlistOutcome(pl playlist.PlaylistSummary) string {
	switch {
	case pl.Err != nil:
		return "read failed"
	case pl.Output == "":
		return "no matches"
	default:
		return "written"
	}
}
