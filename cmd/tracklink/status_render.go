package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"tracklink/internal/matcher"
	"tracklink/internal/playlist"
)

// outcome grades one line of the run summary.
type outcome int

const (
	outcomeNeutral outcome = iota
	outcomeGood
	outcomeDegraded
	outcomeFailed
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// Coverage at or above goodCoverage is reported as healthy; below
// weakCoverage most of the playlist is missing.
const (
	goodCoverage = 0.9
	weakCoverage = 0.5
)

const summaryLabelWidth = 10

func (o outcome) marker() string {
	switch o {
	case outcomeGood:
		return "ok"
	case outcomeDegraded:
		return "!!"
	case outcomeFailed:
		return "xx"
	default:
		return "--"
	}
}

func (o outcome) color() string {
	switch o {
	case outcomeGood:
		return ansiGreen
	case outcomeDegraded:
		return ansiYellow
	case outcomeFailed:
		return ansiRed
	default:
		return ""
	}
}

type summaryLine struct {
	label  string
	grade  outcome
	detail string
}

func (l summaryLine) render(colorize bool) string {
	text := strings.TrimRight(fmt.Sprintf("  %s %-*s %s", l.grade.marker(), summaryLabelWidth, l.label+":", l.detail), " ")
	if colorize && l.grade.color() != "" {
		return l.grade.color() + text + ansiReset
	}
	return text
}

func writeSection(out io.Writer, title string, colorize bool) {
	heading := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(heading))
	if colorize {
		heading = ansiBlue + heading + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	fmt.Fprintln(out, heading)
	fmt.Fprintln(out, rule)
}

func writeSummaryLines(out io.Writer, lines []summaryLine, colorize bool) {
	for _, line := range lines {
		fmt.Fprintln(out, line.render(colorize))
	}
}

func coverageLine(matched, rows int) summaryLine {
	line := summaryLine{label: "Matched"}
	if rows == 0 {
		line.detail = "no catalog rows"
		return line
	}
	ratio := float64(matched) / float64(rows)
	line.detail = fmt.Sprintf("%d of %d rows (%.0f%%)", matched, rows, ratio*100)
	switch {
	case ratio >= goodCoverage:
		line.grade = outcomeGood
	case ratio >= weakCoverage:
		line.grade = outcomeDegraded
	default:
		line.grade = outcomeFailed
	}
	return line
}

// tierMixLine splits matches into those backed by codes or exact keys and
// those that needed fuzzy scoring or a file read.
func tierMixLine(tiers playlist.TierCounts) summaryLine {
	exact := tiers[matcher.TierCode] + tiers[matcher.TierAlbum] + tiers[matcher.TierKey]
	loose := tiers[matcher.TierFuzzy] + tiers[matcher.TierConfirm]
	line := summaryLine{
		label:  "Tiers",
		detail: fmt.Sprintf("%d exact, %d fuzzy, %d confirmed by file", exact, tiers[matcher.TierFuzzy], tiers[matcher.TierConfirm]),
	}
	if exact+loose > 0 && loose == 0 {
		line.grade = outcomeGood
	}
	return line
}

// confirmLine reports deep inspection; stats is nil when it was disabled.
func confirmLine(stats *matcher.ConfirmStats) summaryLine {
	if stats == nil {
		return summaryLine{label: "Confirm", detail: "disabled"}
	}
	line := summaryLine{
		label:  "Confirm",
		grade:  outcomeGood,
		detail: fmt.Sprintf("%d files read, %d confirmed, %d reads left", stats.Probed, stats.Hits, stats.BudgetRemaining),
	}
	if stats.BudgetRemaining == 0 {
		line.grade = outcomeDegraded
	}
	return line
}

func unmatchedLine(count int, reportPath string) summaryLine {
	if reportPath == "" {
		return summaryLine{label: "Unmatched", grade: outcomeGood, detail: "none"}
	}
	return summaryLine{
		label:  "Unmatched",
		grade:  outcomeDegraded,
		detail: fmt.Sprintf("%d tracks listed in %s", count, reportPath),
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
