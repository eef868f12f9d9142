package browser

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/korbo/claude-chats/internal/config"
	"github.com/korbo/claude-chats/internal/project"
	"github.com/korbo/claude-chats/internal/session"
	"github.com/korbo/claude-chats/internal/summary"
	"github.com/korbo/claude-chats/internal/ui"
)

// chatView browses one project's conversations until the user resumes one,
// goes back, or quits. quit means leave the whole tool.
func (b *Browser) chatView(p project.Project) (quit bool, err error) {
	for {
		chats, err := session.LoadChats(p.Dir)
		if err != nil {
			return false, fmt.Errorf("loading chats: %w", err)
		}
		if len(chats) == 0 {
			return false, nil
		}

		mapPath, err := writeMapFile(chats)
		if err != nil {
			return false, err
		}

		idxWidth := len(fmt.Sprint(len(chats) - 1))
		summariesOn := b.state.AISummaries
		var cache *summary.Cache
		if summariesOn {
			cache = summary.LoadCache(config.SummaryCachePath())
		}

		buildLines := func() []string {
			lines := make([]string, 0, len(chats))
			for i, chat := range chats {
				label := ""
				if summariesOn && cache != nil {
					label, _ = cache.Get(chat.ID)
				}
				lines = append(lines, ui.ChatLine(i, chat, idxWidth, label))
			}
			return lines
		}

		previewCmd := ""
		if exe, err := os.Executable(); err == nil {
			previewCmd = fmt.Sprintf("%q preview --index {n} %q", exe, mapPath)
		}

		empty := EmptyChats(chats)
		var toDelete []session.Chat

		lines := buildLines()
		leave := false
		for {
			ui.ClearScreen()
			key, selected, err := b.finder.Run(lines, ui.Options{
				Header:     b.chatHeader(p.Name, len(chats), len(empty)),
				Prompt:     " ",
				Multi:      true,
				PreviewCmd: previewCmd,
				ExpectKeys: []string{"bs", "ctrl-d", "ctrl-x", "ctrl-p", "ctrl-s", "ctrl-n"},
			})
			if err != nil {
				os.Remove(mapPath)
				return false, err
			}

			switch key {
			case ui.KeyEsc:
				os.Remove(mapPath)
				return true, nil
			case "ctrl-p":
				b.state.SkipPermissions = !b.state.SkipPermissions
				b.saveState()
				continue
			case "ctrl-s":
				summariesOn, cache = b.toggleSummaries(summariesOn, chats)
				lines = buildLines()
				continue
			case "ctrl-n":
				os.Remove(mapPath)
				dir := p.RealPath
				return true, b.launch.NewSession(dir)
			}

			if key == "bs" || (len(selected) == 0 && key != "ctrl-d" && key != "ctrl-x") {
				leave = true
				break
			}

			if key == "" && len(selected) > 0 {
				if idx, ok := ui.ChatIndexFromLine(selected[0]); ok && idx < len(chats) {
					os.Remove(mapPath)
					return true, b.launch.Resume(p.Dir, chats[idx].FilePath)
				}
				continue
			}

			switch key {
			case "ctrl-d":
				if len(empty) == 0 {
					continue
				}
				toDelete = empty
			case "ctrl-x":
				toDelete = nil
				for _, line := range selected {
					if idx, ok := ui.ChatIndexFromLine(line); ok && idx < len(chats) {
						toDelete = append(toDelete, chats[idx])
					}
				}
				if len(toDelete) == 0 {
					continue
				}
			default:
				continue
			}
			break
		}

		os.Remove(mapPath)
		if leave {
			return false, nil
		}

		b.confirmAndDelete(p.Name, toDelete)
		// Reload the chat list and stay in this project.
	}
}

func (b *Browser) chatHeader(name string, chatCount, emptyCount int) string {
	perms := "perms off"
	if b.state.SkipPermissions {
		perms = "perms ON"
	}
	ai := "ai off"
	if b.state.AISummaries {
		ai = "ai ON"
	}
	header := fmt.Sprintf("  %s  %d chats\n  ret go ^n new ^p %s ^s %s ^x del bs back",
		name, chatCount, perms, ai)
	if emptyCount > 0 {
		header += fmt.Sprintf(" ^d purge %d empty", emptyCount)
	}
	return header
}

func (b *Browser) confirmAndDelete(projectName string, chats []session.Chat) {
	ui.ClearScreen()
	fmt.Print(ui.RenderDeleteConfirm(projectName, chats, TotalSize(chats)))

	if !ui.Confirm("Confirm delete?") {
		fmt.Println("\n  Cancelled.")
		ui.Pause()
		return
	}

	deleted, errs := DeleteChats(chats)
	for _, err := range errs {
		fmt.Printf("  Error: %v\n", err)
	}
	label := "conversations"
	if deleted == 1 {
		label = "conversation"
	}
	fmt.Printf("\n  Deleted %d %s.\n", deleted, label)
	ui.Pause()
}

// toggleSummaries flips the summaries flag, prompting for an API key and
// generating the missing batch when turning on.
func (b *Browser) toggleSummaries(on bool, chats []session.Chat) (bool, *summary.Cache) {
	on = !on
	b.state.AISummaries = on
	b.saveState()
	if !on {
		return false, nil
	}

	key, err := loadAPIKey()
	if err != nil || key == "" {
		key = b.promptAPIKey()
	}
	if key == "" {
		b.state.AISummaries = false
		b.saveState()
		return false, nil
	}

	cache := summary.LoadCache(config.SummaryCachePath())
	client := summary.NewClient(key, b.cfg.Summary)
	_, err = summary.Generate(context.Background(), client, chats, cache, b.cfg.Summary.Workers,
		func(done, total int) {
			fmt.Printf("\r  Summarizing %d/%d...", done, total)
		})
	fmt.Print("\r" + strings.Repeat(" ", 40) + "\r")
	if err != nil {
		fmt.Printf("  Error saving summaries: %v\n", err)
	}
	return true, cache
}

func loadAPIKey() (string, error) {
	data, err := os.ReadFile(config.KeyFilePath())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (b *Browser) promptAPIKey() string {
	ui.ClearScreen()
	key, err := ui.PromptInput("Paste Gemini API key", "", "")
	if err != nil || key == "" {
		return ""
	}
	if err := os.WriteFile(config.KeyFilePath(), []byte(key+"\n"), 0600); err != nil {
		fmt.Printf("  Error saving key: %v\n", err)
	}
	return key
}

func writeMapFile(chats []session.Chat) (string, error) {
	f, err := os.CreateTemp("", "claude-chats-*.txt")
	if err != nil {
		return "", err
	}
	defer f.Close()
	for _, chat := range chats {
		fmt.Fprintln(f, chat.FilePath)
	}
	return f.Name(), nil
}
