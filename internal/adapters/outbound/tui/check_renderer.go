package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/qcresult/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	problemStyle       = lipgloss.NewStyle().Foreground(warning)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderValidation renders the outcome of checking a result document.
func RenderValidation(v *domain.DocumentValidation) string {
	var b strings.Builder

	// Header
	status := passStyle.Bold(true).Render("valid")
	if !v.Valid {
		status = failStyle.Bold(true).Render("invalid")
	}
	fileLine := titleStyle.Render(filepath.Base(v.File)) + "  " + status
	countLine := dimStyle.Render(fmt.Sprintf("%s parsed, %d without id", plural(v.Issues, "issue"), v.Unnumbered))

	b.WriteString(boxStyle.Render(fileLine + "\n" + countLine))
	b.WriteString("\n")

	if len(v.Problems) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n",
			sectionHeaderStyle.Render("Malformed Issues"),
			dimStyle.Render(fmt.Sprintf("(%d)", len(v.Problems))),
		)
		for _, p := range v.Problems {
			fmt.Fprintf(&b, "    %s %s\n", problemStyle.Render("●"), p)
		}
	}

	// Footer
	if v.Unnumbered > 0 {
		b.WriteString("\n")
		b.WriteString("  " + hintStyle.Render("Run qcresult renumber to assign the missing ids."))
		b.WriteString("\n")
	}

	return b.String()
}
