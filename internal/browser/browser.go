// Package browser runs the interactive project and chat views on top of
// the external fuzzy finder.
package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/korbo/claude-chats/internal/config"
	"github.com/korbo/claude-chats/internal/launcher"
	"github.com/korbo/claude-chats/internal/log"
	"github.com/korbo/claude-chats/internal/project"
	"github.com/korbo/claude-chats/internal/ui"
)

// Browser holds everything the interactive views need.
type Browser struct {
	cfg    *config.Config
	state  *config.State
	finder *ui.Finder
	launch *launcher.Launcher
}

// New wires up a Browser.
func New(cfg *config.Config, state *config.State, finder *ui.Finder) *Browser {
	return &Browser{
		cfg:    cfg,
		state:  state,
		finder: finder,
		launch: launcher.New(cfg, state),
	}
}

// Run enters the project view and loops until the user quits or control is
// handed to the claude CLI.
func (b *Browser) Run() error {
	for {
		projects, err := project.List(b.cfg.ProjectsDir)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Println("No Claude Code projects found.")
				fmt.Printf("Expected: %s\n", b.cfg.ProjectsDir)
				return nil
			}
			return fmt.Errorf("scanning projects: %w", err)
		}
		if len(projects) == 0 {
			fmt.Println("No chats found.")
			return nil
		}

		project.Sort(projects, b.state.Sort)

		totalChats := 0
		maxNameLen := 0
		for _, p := range projects {
			totalChats += p.ChatCount
			if n := len(p.Name); n > maxNameLen {
				maxNameLen = n
			}
		}

		lines := make([]string, 0, len(projects))
		byName := make(map[string]project.Project, len(projects))
		for _, p := range projects {
			lines = append(lines, ui.ProjectLine(p, maxNameLen))
			byName[p.Name] = p
		}

		ui.ClearScreen()
		key, selected, err := b.finder.Run(lines, ui.Options{
			Header:      b.projectHeader(totalChats, len(projects)),
			Prompt:      " Projects > ",
			BorderLabel: cwdDisplay(),
			ExpectKeys:  []string{"tab", "ctrl-n", "ctrl-f", "ctrl-p", "ctrl-e"},
		})
		if err != nil {
			return err
		}

		switch key {
		case ui.KeyEsc:
			return nil
		case "tab":
			b.state.CycleSort()
			b.saveState()
			continue
		case "ctrl-p":
			b.state.SkipPermissions = !b.state.SkipPermissions
			b.saveState()
			continue
		case "ctrl-e":
			if len(selected) > 0 {
				if p, ok := byName[ui.ProjectNameFromLine(selected[0])]; ok {
					launcher.OpenFileManager(p.RealPath)
				}
			}
			continue
		case "ctrl-n":
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			return b.launch.NewSession(cwd)
		case "ctrl-f":
			done, err := b.newFolder()
			if done || err != nil {
				return err
			}
			continue
		}

		if len(selected) == 0 {
			return nil
		}
		p, ok := byName[ui.ProjectNameFromLine(selected[0])]
		if !ok {
			continue
		}

		if p.ChatCount == 0 {
			b.offerDeleteEmptyProject(p)
			continue
		}

		quit, err := b.chatView(p)
		if quit || err != nil {
			return err
		}
	}
}

func (b *Browser) projectHeader(totalChats, projectCount int) string {
	perms := "perms off"
	if b.state.SkipPermissions {
		perms = "perms ON"
	}
	return fmt.Sprintf("  %d chats, %d projects\n"+
		"  enter open  ^n new  ^f folder  ^e explorer  ^p %s  tab %s  esc quit",
		totalChats, projectCount, perms, config.SortLabels[b.state.Sort])
}

func (b *Browser) newFolder() (launched bool, err error) {
	ui.ClearScreen()
	folder, err := ui.PromptInput("New project folder", "~/projects/my-app", "")
	if err != nil || folder == "" {
		return false, err
	}

	folder = expandHome(folder)
	folder, err = filepath.Abs(folder)
	if err != nil {
		return false, err
	}
	return true, b.launch.NewFolder(folder)
}

func (b *Browser) offerDeleteEmptyProject(p project.Project) {
	ui.ClearScreen()
	fmt.Printf("\n  %s has no conversations.\n\n", p.Name)
	if ui.Confirm("Delete empty folder?") {
		if err := os.RemoveAll(p.Dir); err != nil {
			fmt.Printf("\n  Error: %v\n", err)
		} else {
			fmt.Println("\n  Deleted folder.")
		}
	} else {
		fmt.Println("\n  Skipped.")
	}
	ui.Pause()
}

func (b *Browser) saveState() {
	if err := b.state.Save(); err != nil {
		log.Error().Err(err).Msg("saving preference state")
	}
}

func cwdDisplay() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	home, _ := os.UserHomeDir()
	if cwd == home {
		return "~"
	}
	if strings.HasPrefix(cwd, home+string(os.PathSeparator)) {
		return "~" + cwd[len(home):]
	}
	return cwd
}

func expandHome(path string) string {
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
