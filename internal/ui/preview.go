package ui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/korbo/claude-chats/internal/session"
)

const (
	previewHeadCount = 3
	previewTailCount = 4
	previewMaxLines  = 5
	previewMaxChars  = 300
)

// RenderPreview builds the preview pane for one transcript: the opening
// messages, a skip marker, and the closing messages.
func RenderPreview(path string, width int) string {
	head, tail, err := session.ReadPreview(path)
	if err != nil {
		return "  " + dimStyle.Render("File not found")
	}
	if len(head) == 0 && len(tail) == 0 {
		return "\n  " + dimStyle.Render("No messages")
	}

	if width < 24 {
		width = 24
	}
	sep := "  " + cyanStyle.Faint(true).Render(strings.Repeat("~", width-3))

	var b strings.Builder
	b.WriteString("\n")

	if tail == nil {
		if len(head) <= previewHeadCount+previewTailCount {
			writeSection(&b, head, sep, width)
		} else {
			writeSection(&b, head[:previewHeadCount], sep, width)
			skipped := len(head) - previewHeadCount - previewTailCount
			fmt.Fprintf(&b, "\n  %s\n\n", dimStyle.Render(yellowStyle.Render(fmt.Sprintf("        ~ %d skipped", skipped))))
			writeSection(&b, head[len(head)-previewTailCount:], sep, width)
		}
	} else {
		first := head
		if len(first) > previewHeadCount {
			first = first[:previewHeadCount]
		}
		writeSection(&b, first, sep, width)
		b.WriteString("\n  " + dimStyle.Render(yellowStyle.Render("        ~  ...  ")) + "\n\n")
		last := tail
		if len(last) > previewTailCount {
			last = last[len(last)-previewTailCount:]
		}
		writeSection(&b, last, sep, width)
	}

	b.WriteString("\n")
	return b.String()
}

func writeSection(b *strings.Builder, messages []session.Message, sep string, width int) {
	for i, msg := range messages {
		b.WriteString(renderMessage(msg, width))
		if i < len(messages)-1 {
			b.WriteString(sep + "\n")
		}
	}
}

func renderMessage(msg session.Message, width int) string {
	label := magentaStyle.Bold(true).Render("Claude")
	if msg.Role == "user" {
		label = greenStyle.Bold(true).Render("You   ")
	}

	timeStr := strings.Repeat(" ", 12)
	if !msg.Timestamp.IsZero() {
		timeStr = msg.Timestamp.Local().Format("Jan 02 15:04")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s  %s\n", label, dimStyle.Render(timeStr))

	text := truncateBlock(msg.Text)
	text = wordwrap.String(text, width-6)
	for _, line := range strings.Split(text, "\n") {
		b.WriteString("    " + line + "\n")
	}
	return b.String()
}

func truncateBlock(text string) string {
	lines := strings.Split(text, "\n")
	remaining := 0
	if len(lines) > previewMaxLines {
		remaining = len(lines) - previewMaxLines
		lines = lines[:previewMaxLines]
	}
	text = strings.Join(lines, "\n")
	if len(text) > previewMaxChars {
		text = text[:previewMaxChars]
	}
	if remaining > 0 {
		text += "\n" + dimStyle.Render(fmt.Sprintf("+%d more lines", remaining))
	}
	return text
}
