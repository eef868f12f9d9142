package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/korbo/claude-chats/internal/session"
)

// RenderDeleteConfirm builds the full-screen summary shown before deleting
// conversations.
func RenderDeleteConfirm(projectName string, chats []session.Chat, totalSize int64) string {
	width := TermWidth()
	rule := "  " + redStyle.Render(strings.Repeat("~", max(width-4, 10)))

	label := "conversations"
	if len(chats) == 1 {
		label = "conversation"
	}

	var b strings.Builder
	b.WriteString("\n" + rule + "\n\n")
	fmt.Fprintf(&b, "  %s  %s\n",
		redStyle.Bold(true).Render(fmt.Sprintf("  Delete %d %s", len(chats), label)),
		dimStyle.Render("("+FormatSize(totalSize)+")"))
	fmt.Fprintf(&b, "  %s%s\n", dimStyle.Render("  from "), boldStyle.Render(projectName))
	b.WriteString("\n" + rule + "\n\n")

	for _, chat := range chats {
		date := strings.Repeat(" ", 16)
		if !chat.Timestamp.IsZero() {
			date = chat.Timestamp.Local().Format("2006-01-02 15:04")
		}
		msg := runewidth.Truncate(chat.DisplayMessage(), 65, "")
		fmt.Fprintf(&b, "    %s  %s  %s  %s\n",
			redStyle.Render("x"),
			dimStyle.Render(fmt.Sprintf("%-16s", date)),
			yellowStyle.Render(fmt.Sprintf("%4s", FormatSize(chat.Size))),
			msg)
	}

	b.WriteString("\n" + rule + "\n\n")
	return b.String()
}
