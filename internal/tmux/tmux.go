// Package tmux integrates session resume with a running tmux server.
package tmux

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/GianlucaP106/gotmux/gotmux"

	"github.com/korbo/claude-chats/internal/config"
)

// Manager handles tmux operations
type Manager struct {
	tmux *gotmux.Tmux
}

// New creates a tmux manager
func New() (*Manager, error) {
	t, err := gotmux.DefaultTmux()
	if err != nil {
		return nil, err
	}
	return &Manager{tmux: t}, nil
}

// IsInsideTmux checks if we're running inside tmux
func IsInsideTmux() bool {
	return os.Getenv("TMUX") != ""
}

// SessionExists checks if a tmux session exists
func (m *Manager) SessionExists(name string) bool {
	return m.tmux.HasSession(name)
}

// CreateProjectSession creates a tmux session for a project: a "claude"
// window first, then the windows configured for the layout.
func (m *Manager) CreateProjectSession(name, projectPath string, windows []config.Window) error {
	sess, err := m.tmux.NewSession(&gotmux.SessionOptions{
		Name:           name,
		StartDirectory: projectPath,
	})
	if err != nil {
		return err
	}

	if existing, err := sess.ListWindows(); err == nil && len(existing) > 0 {
		existing[0].Rename("claude")
	}

	for _, win := range windows {
		_, err := sess.NewWindow(&gotmux.NewWindowOptions{
			WindowName:     win.Name,
			StartDirectory: projectPath,
		})
		if err != nil {
			return err
		}
		if win.Command != "" {
			if err := m.sendKeys(name, win.Name, win.Command); err != nil {
				return err
			}
		}
	}

	if w, err := sess.GetWindowByName("claude"); err == nil {
		w.Select()
	}
	return nil
}

// SwitchToSession switches the client to a session
func (m *Manager) SwitchToSession(name string) error {
	return m.tmux.SwitchClient(&gotmux.SwitchClientOptions{
		TargetSession: name,
	})
}

// RespawnWindow kills the current process in a window and runs a new
// command, without visible typing.
func (m *Manager) RespawnWindow(sessionName, windowName, command string) error {
	target := fmt.Sprintf("%s:%s", sessionName, windowName)
	_, err := m.tmux.Command("respawn-pane", "-k", "-t", target, command)
	return err
}

func (m *Manager) sendKeys(sessionName, windowName, keys string) error {
	sess, err := m.tmux.GetSessionByName(sessionName)
	if err != nil {
		return err
	}
	w, err := sess.GetWindowByName(windowName)
	if err != nil {
		return fmt.Errorf("window not found: %s", windowName)
	}
	panes, err := w.ListPanes()
	if err != nil || len(panes) == 0 {
		return fmt.Errorf("no panes in window: %s", windowName)
	}
	if err := panes[0].SendKeys(keys); err != nil {
		return err
	}
	return panes[0].SendKeys("Enter")
}

// SessionName converts a project path to a tmux session name
func SessionName(projectPath string) string {
	name := filepath.Base(projectPath)
	if name == "" || name == "." {
		return "claude"
	}
	return name
}
