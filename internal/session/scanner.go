package session

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/korbo/claude-chats/internal/log"
)

// LoadChats parses every transcript of one project directory in parallel
// and returns them newest first. Malformed files are skipped.
func LoadChats(projectDir string) ([]Chat, error) {
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jsonl") {
			continue
		}
		if strings.HasPrefix(e.Name(), "agent-") {
			continue
		}
		files = append(files, filepath.Join(projectDir, e.Name()))
	}

	var wg sync.WaitGroup
	results := make(chan Chat, len(files))

	for _, f := range files {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			chat, err := ParseFile(path)
			if err != nil {
				log.Warn().Err(err).Str("file", path).Msg("skipping unreadable transcript")
				return
			}
			results <- chat
		}(f)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var chats []Chat
	for chat := range results {
		chats = append(chats, chat)
	}

	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].Timestamp.After(chats[j].Timestamp)
	})
	return chats, nil
}
