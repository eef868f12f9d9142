package session

import (
	"bufio"
	"encoding/json"
	"os"
	"regexp"
	"strings"
	"time"
)

// Message is one rendered-preview message.
type Message struct {
	Role      string // "user" or "assistant"
	Text      string
	Timestamp time.Time
}

const (
	previewHeadBytes = 100 * 1024
	previewTailBytes = 200 * 1024
)

var (
	xmlTagRe     = regexp.MustCompile(`<[^>]+>`)
	ansiRe       = regexp.MustCompile(`\x1b\[[^m]*m`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
	trailingWsRe = regexp.MustCompile(`[ \t]+\n`)
)

// CleanText strips markup noise from transcript text for display.
func CleanText(text string) string {
	text = xmlTagRe.ReplaceAllString(text, "")
	text = ansiRe.ReplaceAllString(text, "")
	text = trailingWsRe.ReplaceAllString(text, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// StripANSI removes terminal escape sequences.
func StripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// ReadPreview reads the messages shown in the preview pane: the head of the
// transcript and, for large files, its tail. tail is nil when the head read
// already covered the whole file.
func ReadPreview(path string) (head, tail []Message, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}

	head, err = readMessages(path, 0, previewHeadBytes)
	if err != nil {
		return nil, nil, err
	}

	if from := info.Size() - previewTailBytes; from > 0 {
		tail, err = readMessages(path, from, previewTailBytes)
		if err != nil {
			return head, nil, nil
		}
	}
	return head, tail, nil
}

func readMessages(path string, seekFrom, maxBytes int64) ([]Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	if seekFrom > 0 {
		if _, err := f.Seek(seekFrom, 0); err != nil {
			return nil, err
		}
		reader.Reset(f)
		// Discard the partial line the seek landed in.
		if _, err := reader.ReadString('\n'); err != nil {
			return nil, nil
		}
	}

	var messages []Message
	var bytesRead int64

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for scanner.Scan() {
		bytesRead += int64(len(scanner.Bytes())) + 1
		if bytesRead > maxBytes {
			break
		}

		var line jsonLine
		if json.Unmarshal(scanner.Bytes(), &line) != nil {
			continue
		}
		if line.Type != "user" && line.Type != "assistant" {
			continue
		}

		raw := ExtractText(line.Message.Content)
		if line.Type == "user" && IsSystemText(raw) {
			continue
		}
		text := CleanText(raw)
		if text == "" {
			continue
		}

		ts, _ := time.Parse(time.RFC3339, line.Timestamp)
		messages = append(messages, Message{Role: line.Type, Text: text, Timestamp: ts})
	}

	return messages, nil
}
