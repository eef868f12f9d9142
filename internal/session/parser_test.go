package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeChat(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFileStringContent(t *testing.T) {
	path := writeChat(t, t.TempDir(), "abc.jsonl",
		`{"type":"user","timestamp":"2024-05-01T10:00:00Z","cwd":"/work/proj","message":{"content":"fix the login bug"}}`,
		`{"type":"assistant","timestamp":"2024-05-01T10:00:05Z","message":{"content":"Sure."}}`,
	)

	chat, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if chat.ID != "abc" {
		t.Errorf("ID = %q, want %q", chat.ID, "abc")
	}
	if chat.FirstMessage != "fix the login bug" {
		t.Errorf("FirstMessage = %q", chat.FirstMessage)
	}
	if chat.Timestamp.IsZero() {
		t.Error("timestamp not parsed")
	}
	if chat.SubagentDir != strings.TrimSuffix(path, ".jsonl") {
		t.Errorf("SubagentDir = %q", chat.SubagentDir)
	}
}

func TestParseFileArrayContent(t *testing.T) {
	path := writeChat(t, t.TempDir(), "arr.jsonl",
		`{"type":"user","timestamp":"2024-05-01T10:00:00Z","message":{"content":[{"type":"tool_result","text":"ignored"},{"type":"text","text":"review this diff"}]}}`,
	)

	chat, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if chat.FirstMessage != "review this diff" {
		t.Errorf("FirstMessage = %q", chat.FirstMessage)
	}
}

func TestParseFileSkipsSystemContent(t *testing.T) {
	path := writeChat(t, t.TempDir(), "sys.jsonl",
		`{"type":"user","timestamp":"2024-05-01T10:00:00Z","message":{"content":"<command-name>/clear</command-name>"}}`,
		`{"type":"user","timestamp":"2024-05-01T10:00:01Z","message":{"content":"<system-reminder>noise</system-reminder>"}}`,
		`{"type":"user","timestamp":"2024-05-01T10:00:02Z","message":{"content":"the real question"}}`,
	)

	chat, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if chat.FirstMessage != "the real question" {
		t.Errorf("FirstMessage = %q, want the non-system message", chat.FirstMessage)
	}
}

func TestParseFileTruncatesLongMessage(t *testing.T) {
	long := strings.Repeat("words and more ", 30)
	path := writeChat(t, t.TempDir(), "long.jsonl",
		fmt.Sprintf(`{"type":"user","timestamp":"2024-05-01T10:00:00Z","message":{"content":%q}}`, long),
	)

	chat, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(chat.FirstMessage) > firstMessageMax {
		t.Errorf("message not truncated, len = %d", len(chat.FirstMessage))
	}
	if !strings.HasSuffix(chat.FirstMessage, "...") {
		t.Errorf("truncated message should end in ellipsis: %q", chat.FirstMessage)
	}
}

func TestChatPlaceholders(t *testing.T) {
	dir := t.TempDir()

	resumed := writeChat(t, dir, "resumed.jsonl",
		`{"type":"assistant","timestamp":"2024-05-01T10:00:00Z","message":{"content":"continuing"}}`,
	)
	chat, err := ParseFile(resumed)
	if err != nil {
		t.Fatal(err)
	}
	if chat.DisplayMessage() != PlaceholderResumed {
		t.Errorf("DisplayMessage = %q, want %q", chat.DisplayMessage(), PlaceholderResumed)
	}
	if chat.TrulyEmpty() {
		t.Error("chat with assistant output is not truly empty")
	}

	empty := writeChat(t, dir, "empty.jsonl", `{"type":"something-else"}`)
	chat, err = ParseFile(empty)
	if err != nil {
		t.Fatal(err)
	}
	if chat.DisplayMessage() != PlaceholderEmpty {
		t.Errorf("DisplayMessage = %q, want %q", chat.DisplayMessage(), PlaceholderEmpty)
	}
	if !chat.TrulyEmpty() {
		t.Error("chat with no text and no assistant should be truly empty")
	}
}

func TestParseFileMalformedLines(t *testing.T) {
	path := writeChat(t, t.TempDir(), "bad.jsonl",
		`{{{{not json`,
		``,
		`{"type":"user","timestamp":"2024-05-01T10:00:00Z","message":{"content":"still works"}}`,
	)

	chat, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if chat.FirstMessage != "still works" {
		t.Errorf("FirstMessage = %q", chat.FirstMessage)
	}
}

func TestReadCwd(t *testing.T) {
	path := writeChat(t, t.TempDir(), "cwd.jsonl",
		`{"type":"summary","summary":"whatever"}`,
		`{"type":"user","cwd":"/real/working/dir","timestamp":"2024-05-01T10:00:00Z","message":{"content":"hi"}}`,
	)

	if got := ReadCwd(path); got != "/real/working/dir" {
		t.Errorf("ReadCwd = %q", got)
	}
}

func TestReadCwdAbsent(t *testing.T) {
	path := writeChat(t, t.TempDir(), "nocwd.jsonl",
		`{"type":"user","timestamp":"2024-05-01T10:00:00Z","message":{"content":"hi"}}`,
	)

	if got := ReadCwd(path); got != "" {
		t.Errorf("ReadCwd = %q, want empty", got)
	}
}
