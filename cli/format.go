package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"bookkeeper/library"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false).
			PaddingLeft(4)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// bordered frames msg between two horizontal rules.
func bordered(msg string) string {
	return boxStyle.Render(strings.TrimRight(msg, "\n"))
}

func formatBooks(heading string, books []*library.Book) string {
	var sb strings.Builder
	sb.WriteString(heading)
	for i, b := range books {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, b)
	}
	return sb.String()
}

func formatLoans(loans []*library.Loan, today time.Time) string {
	var sb strings.Builder
	sb.WriteString("Here are the active loans:")
	for i, l := range loans {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, l)
		if l.Overdue(today) {
			sb.WriteString("\n    " + errorStyle.Render("OVERDUE"))
		}
	}
	return sb.String()
}

func formatHistory(title string, records []*library.LoanRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Loan history for %s:", title)
	for i, r := range records {
		status := "on loan"
		if !r.Open() {
			status = fmt.Sprintf("closed %s (%s)", r.ClosedAt.Time.Format(library.DateLayout), r.CloseReason)
		}
		fmt.Fprintf(&sb, "\n%d. %-20s lent %s, due %s, %s",
			i+1, r.Borrower, r.OpenedAt.Format(library.DateLayout), r.DueDate, status)
	}
	return sb.String()
}

func formatHelp(cmds []*Command) string {
	width := 0
	for _, c := range cmds {
		width = max(width, len(c.Name()))
	}
	var sb strings.Builder
	sb.WriteString("Available commands:")
	for _, c := range cmds {
		fmt.Fprintf(&sb, "\n  %-*s  %s", width, c.Name(), c.Short)
		fmt.Fprintf(&sb, "\n  %-*s  %s", width, "", hintStyle.Render(c.Usage))
	}
	return sb.String()
}
