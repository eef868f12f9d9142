package browser

import (
	"os"

	"github.com/korbo/claude-chats/internal/log"
	"github.com/korbo/claude-chats/internal/session"
)

// DeleteChats removes the given transcript files along with their subagent
// directories. A failing item is reported and skipped; the rest proceed.
func DeleteChats(chats []session.Chat) (deleted int, errs []error) {
	for _, chat := range chats {
		if err := os.Remove(chat.FilePath); err != nil {
			log.Error().Err(err).Str("file", chat.FilePath).Msg("delete failed")
			errs = append(errs, err)
			continue
		}
		deleted++
		if info, err := os.Stat(chat.SubagentDir); err == nil && info.IsDir() {
			os.RemoveAll(chat.SubagentDir)
		}
	}
	return deleted, errs
}

// EmptyChats returns the subset with no substantive content, the purge
// targets.
func EmptyChats(chats []session.Chat) []session.Chat {
	var empty []session.Chat
	for _, chat := range chats {
		if chat.TrulyEmpty() {
			empty = append(empty, chat)
		}
	}
	return empty
}

// TotalSize sums the on-disk sizes of the given chats.
func TotalSize(chats []session.Chat) int64 {
	var total int64
	for _, chat := range chats {
		total += chat.Size
	}
	return total
}
