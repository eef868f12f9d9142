package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/korbo/claude-chats/internal/project"
	"github.com/korbo/claude-chats/internal/session"
)

func TestFormatSize(t *testing.T) {
	cases := map[int64]string{
		0:           "0B",
		512:         "512B",
		2048:        "2K",
		3 * 1 << 20: "3M",
	}
	for in, want := range cases {
		if got := FormatSize(in); got != want {
			t.Errorf("FormatSize(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestProjectNameFromLine(t *testing.T) {
	p := project.Project{Name: "~/work/api", ChatCount: 12}
	line := ProjectLine(p, 20)

	if got := ProjectNameFromLine(line); got != "~/work/api" {
		t.Errorf("round-trip name = %q, want %q", got, "~/work/api")
	}
}

func TestProjectNameFromLineMissing(t *testing.T) {
	p := project.Project{Name: "~/gone", ChatCount: 3, Missing: true}
	line := ProjectLine(p, 10)

	if got := ProjectNameFromLine(line); got != "~/gone" {
		t.Errorf("round-trip name = %q, want %q", got, "~/gone")
	}
}

func TestChatIndexFromLine(t *testing.T) {
	chat := session.Chat{
		ID:           "abc",
		FirstMessage: "fix the tests",
		Timestamp:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Size:         2048,
	}
	line := ChatLine(7, chat, 2, "")

	idx, ok := ChatIndexFromLine(line)
	if !ok || idx != 7 {
		t.Errorf("ChatIndexFromLine = %d, %v; want 7, true", idx, ok)
	}
}

func TestChatIndexFromLineWithSummary(t *testing.T) {
	chat := session.Chat{ID: "abc", FirstMessage: "long raw text", Size: 100}
	line := ChatLine(3, chat, 1, "Test suite fix")

	if !strings.Contains(session.StripANSI(line), "Test suite fix") {
		t.Errorf("summary missing from line: %q", line)
	}
	idx, ok := ChatIndexFromLine(line)
	if !ok || idx != 3 {
		t.Errorf("ChatIndexFromLine = %d, %v; want 3, true", idx, ok)
	}
}

func TestChatLinePlaceholder(t *testing.T) {
	chat := session.Chat{ID: "abc", Size: 10}
	line := session.StripANSI(ChatLine(0, chat, 1, ""))

	if !strings.Contains(line, session.PlaceholderEmpty) {
		t.Errorf("placeholder missing: %q", line)
	}
}

func TestChatIndexFromLineGarbage(t *testing.T) {
	if _, ok := ChatIndexFromLine("   "); ok {
		t.Error("blank line should not parse")
	}
	if _, ok := ChatIndexFromLine("no digits here"); ok {
		t.Error("non-numeric line should not parse")
	}
}
