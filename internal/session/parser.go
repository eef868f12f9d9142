package session

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// parseReadLimit caps how much of a transcript is scanned for preview
// metadata. Long sessions front-load everything we need.
const parseReadLimit = 200 * 1024

// firstMessageMax is the display cap for the first-message text.
const firstMessageMax = 120

// systemTags mark injected command/system content that never counts as a
// user message.
var systemTags = []string{"<local-command-", "<command-name>", "<system-reminder>"}

// jsonLine is one record of a transcript file.
type jsonLine struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Cwd       string `json:"cwd"`
	Message   struct {
		Content json.RawMessage `json:"content"`
	} `json:"message"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// IsSystemText reports whether text is injected command/system content.
func IsSystemText(text string) bool {
	for _, tag := range systemTags {
		if strings.Contains(text, tag) {
			return true
		}
	}
	return false
}

// ExtractUserText pulls display text from a user message content field,
// which is either a plain string or an array of typed parts. System
// content yields "".
func ExtractUserText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" || IsSystemText(s) {
			return ""
		}
		return s
	}

	var parts []contentPart
	if err := json.Unmarshal(raw, &parts); err != nil {
		return ""
	}
	for _, part := range parts {
		if part.Type != "text" {
			continue
		}
		text := strings.TrimSpace(part.Text)
		if text != "" && !IsSystemText(text) {
			return text
		}
	}
	return ""
}

// ExtractText joins all text parts of a content field without the system
// filter, for preview rendering.
func ExtractText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var parts []contentPart
	if err := json.Unmarshal(raw, &parts); err != nil {
		return ""
	}
	var texts []string
	for _, part := range parts {
		if part.Type == "text" && part.Text != "" {
			texts = append(texts, part.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// ParseFile extracts chat preview metadata from a transcript file.
func ParseFile(path string) (Chat, error) {
	f, err := os.Open(path)
	if err != nil {
		return Chat{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Chat{}, err
	}

	stem := strings.TrimSuffix(path, filepath.Ext(path))
	chat := Chat{
		ID:          filepath.Base(stem),
		FilePath:    path,
		SubagentDir: stem,
		Size:        info.Size(),
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	bytesRead := 0
	for scanner.Scan() {
		bytesRead += len(scanner.Bytes()) + 1
		if bytesRead > parseReadLimit {
			break
		}

		var line jsonLine
		if json.Unmarshal(scanner.Bytes(), &line) != nil {
			continue
		}

		if chat.Timestamp.IsZero() && line.Timestamp != "" {
			if ts, err := time.Parse(time.RFC3339, line.Timestamp); err == nil {
				chat.Timestamp = ts
			}
		}
		switch line.Type {
		case "assistant":
			chat.HasAssistant = true
		case "user":
			if chat.FirstMessage == "" {
				if text := ExtractUserText(line.Message.Content); text != "" {
					chat.FirstMessage = flatten(text)
					return chat, nil
				}
			}
		}
	}

	return chat, nil
}

func flatten(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	if len(text) > firstMessageMax {
		text = text[:firstMessageMax-3] + "..."
	}
	return text
}

// ReadCwd extracts the working directory recorded inside a transcript, the
// ground truth for where a session should resume.
func ReadCwd(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for scanner.Scan() {
		if !strings.Contains(scanner.Text(), `"cwd"`) {
			continue
		}
		var line jsonLine
		if json.Unmarshal(scanner.Bytes(), &line) != nil {
			continue
		}
		return line.Cwd
	}
	return ""
}
