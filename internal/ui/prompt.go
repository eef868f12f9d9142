package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// promptModel is a minimal bubbletea model around a single text input.
type promptModel struct {
	title     string
	input     textinput.Model
	cancelled bool
	done      bool
}

func newPromptModel(title, placeholder, initial string) promptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(initial)
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	return promptModel{title: title, input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return fmt.Sprintf("\n  %s\n\n  %s\n\n  %s\n",
		boldStyle.Render(m.title),
		m.input.View(),
		dimStyle.Render("enter: accept • esc: cancel"))
}

// PromptInput asks for one line of text. Returns "" when the user cancels.
func PromptInput(title, placeholder, initial string) (string, error) {
	p := tea.NewProgram(newPromptModel(title, placeholder, initial))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("input prompt: %w", err)
	}

	m := final.(promptModel)
	if m.cancelled {
		return "", nil
	}
	return strings.TrimSpace(m.input.Value()), nil
}

// Confirm asks a y/N question on the plain terminal.
func Confirm(question string) bool {
	fmt.Printf("  %s %s%s%s ",
		boldStyle.Render(question),
		redStyle.Render("y"),
		dimStyle.Render("/"),
		greenStyle.Render("N"))

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

// Pause waits for enter so the user can read a result screen.
func Pause() {
	fmt.Print("\n  " + dimStyle.Render("Press Enter..."))
	bufio.NewReader(os.Stdin).ReadString('\n')
}

// ClearScreen wipes the terminal between finder runs.
func ClearScreen() {
	fmt.Print("\033[2J\033[H")
}
