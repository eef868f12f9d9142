package ui

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/korbo/claude-chats/internal/log"
)

// KeyEsc is the pseudo-key reported when the finder is cancelled.
const KeyEsc = "esc"

// fzfColors is a Tokyo Night palette for the finder chrome.
var fzfColors = strings.Join([]string{
	"fg:#c0caf5",
	"bg:#1a1b26",
	"hl:#bb9af7",
	"fg+:#c0caf5",
	"bg+:#292e42",
	"hl+:#7dcfff",
	"info:#7aa2f7",
	"prompt:#7dcfff",
	"pointer:#ff007c",
	"marker:#9ece6a",
	"spinner:#9ece6a",
	"header:#565f89",
	"border:#27a1b9",
	"gutter:#1a1b26",
}, ",")

var versionRe = regexp.MustCompile(`^(\d+\.\d+)`)

// Finder drives the external fzf binary: lines in on stdin, the pressed
// key and selection back on stdout.
type Finder struct {
	version float64
}

// NewFinder verifies fzf is installed and probes its version once, so newer
// flags are only passed to builds that know them.
func NewFinder() (*Finder, error) {
	if _, err := exec.LookPath("fzf"); err != nil {
		return nil, fmt.Errorf("fzf not found; install it first (apt install fzf / brew install fzf)")
	}

	f := &Finder{}
	out, err := exec.Command("fzf", "--version").Output()
	if err == nil {
		if m := versionRe.FindString(strings.TrimSpace(string(out))); m != "" {
			f.version, _ = strconv.ParseFloat(m, 64)
		}
	}
	log.Debug().Float64("version", f.version).Msg("fzf detected")
	return f, nil
}

// Options configures one finder invocation.
type Options struct {
	Header      string
	Prompt      string
	BorderLabel string
	Multi       bool
	ExpectKeys  []string // keys reported back alongside the selection
	PreviewCmd  string   // command for the preview pane; empty disables it
}

// TermWidth returns the terminal width, defaulting to 80.
func TermWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// Compact reports whether the terminal is too narrow for the full layout.
func Compact() bool {
	return TermWidth() < 70
}

// Run feeds lines to fzf and blocks until the user picks or cancels.
// key is the expect-key that closed the finder ("" for plain enter, KeyEsc
// on cancel); selections holds the chosen lines, styling stripped away by
// the caller.
func (f *Finder) Run(lines []string, opts Options) (key string, selections []string, err error) {
	args := f.buildArgs(opts, TermWidth())

	cmd := exec.Command("fzf", args...)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n"))
	cmd.Stderr = os.Stderr

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			// Non-zero exit is escape/ctrl-c, or no match; all mean cancel.
			return KeyEsc, nil, nil
		}
		return "", nil, fmt.Errorf("running fzf: %w", err)
	}

	out := strings.Split(stdout.String(), "\n")
	if len(opts.ExpectKeys) > 0 {
		key = strings.TrimSpace(out[0])
		out = out[1:]
	}
	for _, line := range out {
		if strings.TrimSpace(line) != "" {
			selections = append(selections, line)
		}
	}
	return key, selections, nil
}

func (f *Finder) buildArgs(opts Options, width int) []string {
	compact := width < 70

	margin := "1,2"
	if compact {
		margin = "0,1"
	}
	border := "sharp"
	if f.version >= 0.35 {
		border = "rounded"
	}
	info := "inline"
	if f.version >= 0.39 {
		info = "inline-right"
	}

	args := []string{
		"--header", opts.Header,
		"--header-first",
		"--reverse",
		"--no-sort",
		"--prompt", opts.Prompt,
		"--pointer", ">",
		"--marker", "*",
		"--border", border,
		"--margin", margin,
		"--padding", "0,1",
		"--info", info,
		"--color", fzfColors,
		"--ansi",
	}
	if f.version >= 0.35 {
		args = append(args, "--border-label-pos", "3")
		if opts.BorderLabel != "" {
			args = append(args, "--border-label", " "+opts.BorderLabel+" ")
		}
	}

	binds := []string{"ctrl-a:select-all"}
	if opts.Multi {
		args = append(args, "--multi")
		binds = append(binds, "space:toggle+down")
	}
	if len(opts.ExpectKeys) > 0 {
		args = append(args, "--expect", strings.Join(opts.ExpectKeys, ","))
	}
	args = append(args, "--bind", strings.Join(binds, ","))

	if opts.PreviewCmd != "" && !compact {
		pos := "right:50%:wrap:border-left"
		if width < 100 {
			pos = "bottom:40%:wrap:border-top"
		}
		args = append(args, "--preview", opts.PreviewCmd, "--preview-window", pos)
	}
	return args
}
