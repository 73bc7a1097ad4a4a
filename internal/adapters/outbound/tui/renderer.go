package tui

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/abdidvp/qcresult/internal/domain"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	nameStyle     = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats a summary for the terminal.
func RenderReport(summary *domain.Summary) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("qcresult")
	subtitle := dimStyle.Render(filepath.Base(summary.File))
	if rev := shortHash(summary.Revision); rev != "" {
		subtitle += "  " + faintStyle.Render(rev)
	}
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict(summary)))
	b.WriteString("\n\n")

	// ── Bundles ──
	for i, bundle := range summary.Bundles {
		renderBundle(&b, bundle)
		if i < len(summary.Bundles)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Issues ──
	if len(summary.Issues) > 0 {
		b.WriteString("  ")
		b.WriteString(titleStyle.Render("Issues"))
		b.WriteString("  ")
		b.WriteString(levelCounts(summary))
		b.WriteString("\n\n")

		for _, issue := range sortByLevel(summary.Issues) {
			renderIssue(&b, issue)
		}
	} else {
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n")
	}

	// ── Skipped ──
	if len(summary.Skipped) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n",
			warnTagStyle.Render("Skipped malformed issues"),
			dimStyle.Render(fmt.Sprintf("(%d)", len(summary.Skipped))),
		)
		for _, s := range summary.Skipped {
			fmt.Fprintf(&b, "    %s %s\n", warnStyle.Render("●"), faintStyle.Render(s))
		}
	}

	b.WriteString("\n")
	return b.String()
}

func verdict(summary *domain.Summary) string {
	counts := fmt.Sprintf("%d of %d issues reported", summary.Reported, summary.Total)
	if summary.Passed() {
		return lipgloss.NewStyle().Bold(true).Foreground(success).Render("PASSED") + "  " + dimStyle.Render(counts)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(danger).Render("FAILED") + "  " + dimStyle.Render(counts)
}

func levelCounts(summary *domain.Summary) string {
	var parts []string
	if summary.Errors > 0 {
		parts = append(parts, errorTagStyle.Render(fmt.Sprintf("%d errors", summary.Errors)))
	}
	if summary.Warnings > 0 {
		parts = append(parts, warnTagStyle.Render(fmt.Sprintf("%d warnings", summary.Warnings)))
	}
	if summary.Infos > 0 {
		parts = append(parts, infoTagStyle.Render(fmt.Sprintf("%d info", summary.Infos)))
	}
	return strings.Join(parts, "  ")
}

func renderBundle(b *strings.Builder, bundle domain.BundleView) {
	name := nameStyle.Render(bundle.Name)
	if bundle.Version != "" {
		name += " " + dimStyle.Render(bundle.Version)
	}
	if bundle.InputFile != "" {
		name += "  " + fileStyle.Render(bundle.InputFile)
	}
	fmt.Fprintf(b, "  %s\n", name)

	for _, c := range bundle.Checkers {
		renderChecker(b, c)
	}
}

func renderChecker(b *strings.Builder, c domain.CheckerView) {
	label := padRight(Humanize(c.ID), 34)

	if c.Status == string(domain.CheckerStatusSkipped) {
		fmt.Fprintf(b, "    %s %s %s\n",
			skipStyle.Render("○"),
			skipStyle.Render(label),
			skipStyle.Render("skipped"),
		)
		return
	}

	var icon string
	switch {
	case c.Status == string(domain.CheckerStatusError):
		icon = failStyle.Render("●")
	case c.IssueCount > 0:
		icon = warnStyle.Render("●")
	default:
		icon = passStyle.Render("●")
	}

	count := dimStyle.Render(plural(c.IssueCount, "issue"))
	if c.Description != "" {
		fmt.Fprintf(b, "    %s %s %s  %s\n", icon, label, count, faintStyle.Render(c.Description))
	} else {
		fmt.Fprintf(b, "    %s %s %s\n", icon, label, count)
	}
}

func renderIssue(b *strings.Builder, issue domain.IssueView) {
	tag := levelTag(issue.Level)
	if !issue.Enabled {
		tag = skipStyle.Render("off  ")
	}
	id := faintStyle.Render(fmt.Sprintf("#%-3d", issue.ID))
	rule := fileStyle.Render(issue.RuleUID)

	fmt.Fprintf(b, "    %s %s %s\n", tag, id, rule)
	fmt.Fprintf(b, "              %s\n", dimStyle.Render(issue.Description))
	for _, loc := range issue.Locations {
		fmt.Fprintf(b, "              %s %s\n",
			faintStyle.Render("at"),
			faintStyle.Render(strings.Join(loc.Points, "; ")),
		)
	}
}

// RenderIssue formats one issue with all of its evidence.
func RenderIssue(issue domain.IssueView) string {
	var b strings.Builder

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s  %s\n",
		titleStyle.Render(fmt.Sprintf("Issue #%d", issue.ID)),
		levelTag(issue.Level),
		fileStyle.Render(issue.RuleUID),
	)
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")
	fmt.Fprintf(&b, "  %s\n\n", issue.Description)

	if issue.Checker != "" {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("checker", 10)), Humanize(issue.Checker))
	}
	if issue.Bundle != "" {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("bundle", 10)), issue.Bundle)
	}
	if issue.InputFile != "" {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("input", 10)), issue.InputFile)
	}
	if !issue.Enabled {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight("state", 10)), skipStyle.Render("disabled"))
	}

	for _, loc := range issue.Locations {
		b.WriteString("\n")
		desc := loc.Description
		if desc == "" {
			desc = "location"
		}
		fmt.Fprintf(&b, "  %s\n", nameStyle.Render(desc))
		for _, p := range loc.Points {
			fmt.Fprintf(&b, "    %s %s\n", warnStyle.Render("●"), p)
		}
	}

	if len(issue.DomainSpecificInfo) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n", nameStyle.Render("Domain info"), dimStyle.Render(strings.Join(issue.DomainSpecificInfo, ", ")))
	}

	b.WriteString("\n")
	return b.String()
}

func levelTag(level string) string {
	switch level {
	case domain.LevelError.String():
		return errorTagStyle.Render("error")
	case domain.LevelWarning.String():
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

// sortByLevel returns a copy of issues ordered error → warning → info,
// keeping document order within a level.
func sortByLevel(issues []domain.IssueView) []domain.IssueView {
	sorted := slices.Clone(issues)
	slices.SortStableFunc(sorted, func(a, b domain.IssueView) int {
		return levelRank(a.Level) - levelRank(b.Level)
	})
	return sorted
}

func levelRank(level string) int {
	l, err := domain.ParseIssueLevel(level)
	if err != nil {
		return int(domain.LevelInfo) + 1
	}
	return int(l)
}

// Humanize turns a checker id such as laneLinkChecker into "Lane Link Checker".
func Humanize(id string) string {
	words := camelcase.Split(id)
	if len(words) == 0 {
		return id
	}
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Trim(w, "_- ")
		if w == "" {
			continue
		}
		out = append(out, strings.ToUpper(w[:1])+w[1:])
	}
	return strings.Join(out, " ")
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats report history for terminal output.
func RenderHistory(entries []domain.SummaryEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No report history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Report History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := shortHash(e.Revision)
		if hash == "" {
			hash = "·······"
		}

		errStyle := passStyle
		if e.Errors > 0 {
			errStyle = failStyle
		}

		line := fmt.Sprintf("  %s  %s  %s  %s  %s  %s",
			dimStyle.Render(e.Timestamp.Format("2006-01-02")),
			faintStyle.Render(hash),
			errStyle.Render(fmt.Sprintf("%3d E", e.Errors)),
			warnStyle.Render(fmt.Sprintf("%3d W", e.Warnings)),
			infoTagStyle.Render(fmt.Sprintf("%3d I", e.Infos)),
			fileStyle.Render(filepath.Base(e.File)),
		)

		if i > 0 {
			diff := e.Errors - entries[i-1].Errors
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
