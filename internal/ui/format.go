package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/korbo/claude-chats/internal/project"
	"github.com/korbo/claude-chats/internal/session"
)

var (
	dimStyle     = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	whiteBold    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	cyanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	greenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	yellowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	redStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	magentaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

var chatCountSuffixRe = regexp.MustCompile(`\s+\d+\s+chats\s*$`)

// FormatSize renders a byte count the way ls -h would, but terser.
func FormatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%dB", size)
	case size < 1024*1024:
		return fmt.Sprintf("%dK", size/1024)
	default:
		return fmt.Sprintf("%dM", size/(1024*1024))
	}
}

// ProjectLine renders one project row for the finder.
func ProjectLine(p project.Project, maxNameLen int) string {
	name := p.Name
	padTo := maxNameLen
	if Compact() {
		maxName := TermWidth() - 16
		name = runewidth.Truncate(name, maxName, "~")
		if padTo > maxName {
			padTo = maxName
		}
	}
	padding := strings.Repeat(" ", max(padTo-runewidth.StringWidth(name)+2, 1))

	if p.Missing {
		return "  " + magentaStyle.Render(fmt.Sprintf("%s%s%3d chats", name, padding, p.ChatCount))
	}
	if p.ChatCount == 0 {
		return "  " + dimStyle.Render(fmt.Sprintf("%s%s  0 chats", name, padding))
	}

	countStyle := greenStyle
	switch {
	case p.ChatCount >= 30:
		countStyle = redStyle
	case p.ChatCount >= 10:
		countStyle = yellowStyle
	}
	return "  " + whiteBold.Render(name) + padding +
		countStyle.Render(fmt.Sprintf("%3d", p.ChatCount)) + " " + dimStyle.Render("chats")
}

// ProjectNameFromLine recovers the project display name from a selected line.
func ProjectNameFromLine(line string) string {
	clean := strings.TrimSpace(session.StripANSI(line))
	return strings.TrimSpace(chatCountSuffixRe.ReplaceAllString(clean, ""))
}

// ChatLine renders one conversation row for the finder. summary, when
// non-empty, replaces the raw first-message text.
func ChatLine(idx int, chat session.Chat, idxWidth int, summary string) string {
	date := ""
	if !chat.Timestamp.IsZero() {
		date = chat.Timestamp.Local().Format("2006-01-02 15:04")
	}
	size := FormatSize(chat.Size)
	msg := chat.DisplayMessage()
	placeholder := chat.FirstMessage == ""

	if Compact() {
		maxMsg := TermWidth() - idxWidth - 12
		if placeholder {
			return " " + dimStyle.Render(fmt.Sprintf("%*d %4s %s", idxWidth, idx, size, msg))
		}
		display := msg
		if summary != "" {
			display = summary
		}
		display = runewidth.Truncate(display, maxMsg, "~")
		if summary != "" {
			display = cyanStyle.Render(display)
		}
		return fmt.Sprintf(" %*d %s %s", idxWidth, idx, yellowStyle.Render(fmt.Sprintf("%4s", size)), display)
	}

	if placeholder {
		return "  " + dimStyle.Render(fmt.Sprintf("%*d  %-16s  %4s  %s", idxWidth, idx, date, size, msg))
	}
	display := msg
	if summary != "" {
		display = cyanStyle.Render(summary)
	}
	return fmt.Sprintf("  %*d  %s  %s  %s",
		idxWidth, idx,
		dimStyle.Render(fmt.Sprintf("%-16s", date)),
		yellowStyle.Render(fmt.Sprintf("%4s", size)),
		display)
}

// ChatIndexFromLine recovers the list index from a selected chat line.
func ChatIndexFromLine(line string) (int, bool) {
	clean := strings.TrimSpace(session.StripANSI(line))
	if clean == "" {
		return 0, false
	}
	var idx int
	if _, err := fmt.Sscanf(clean, "%d", &idx); err != nil {
		return 0, false
	}
	return idx, true
}
