package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/korbo/claude-chats/internal/browser"
	"github.com/korbo/claude-chats/internal/config"
	"github.com/korbo/claude-chats/internal/launcher"
	"github.com/korbo/claude-chats/internal/log"
	"github.com/korbo/claude-chats/internal/project"
	"github.com/korbo/claude-chats/internal/ui"
)

func main() {
	log.Init()
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	setKey := false

	rootCmd := &cobra.Command{
		Use:           "claude-chats",
		Short:         "Browse, resume and clean up Claude Code chats",
		Long:          "claude-chats is an interactive fzf-based browser for Claude Code projects and their chat transcripts.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if setKey {
				return promptAndSaveKey()
			}
			return runBrowser(cmd, args)
		},
	}

	rootCmd.Flags().BoolVar(&setKey, "set-key", false, "prompt for the summarization API key and exit")
	rootCmd.AddCommand(newSetKeyCommand())
	rootCmd.AddCommand(newPreviewCommand())
	rootCmd.AddCommand(newListCommand())
	return rootCmd
}

func runBrowser(cmd *cobra.Command, args []string) error {
	if err := launcher.CheckClaude(); err != nil {
		return err
	}
	finder, err := ui.NewFinder()
	if err != nil {
		return err
	}

	cfg := config.Load()
	state := config.LoadState(config.StatePath())
	return browser.New(cfg, state, finder).Run()
}

func newSetKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key",
		Short: "Save the Gemini API key used for chat summaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return promptAndSaveKey()
		},
	}
}

func promptAndSaveKey() error {
	key, err := ui.PromptInput("Gemini API key", "paste key", "")
	if err != nil {
		return err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		fmt.Println("No key entered, nothing saved.")
		return nil
	}
	path := config.KeyFilePath()
	if err := os.WriteFile(path, []byte(key+"\n"), 0600); err != nil {
		return fmt.Errorf("writing key file: %w", err)
	}
	fmt.Printf("Key saved to %s\n", path)
	return nil
}

// newPreviewCommand renders a chat transcript for fzf's preview pane. It is
// self-invoked by the browser and hidden from help output.
func newPreviewCommand() *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:    "preview <file>",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if index >= 0 {
				mapped, err := lookupMapLine(args[0], index)
				if err != nil {
					return err
				}
				path = mapped
			}
			fmt.Print(ui.RenderPreview(path, previewWidth()))
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "index", -1, "treat the argument as a map file and preview line N")
	return cmd
}

// lookupMapLine returns line n (zero-based) of the map file written by the
// chat view, one transcript path per line.
func lookupMapLine(mapPath string, n int) (string, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return "", fmt.Errorf("reading map file: %w", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if n >= len(lines) {
		return "", fmt.Errorf("map index %d out of range (%d entries)", n, len(lines))
	}
	return lines[n], nil
}

// previewWidth prefers the width fzf reports for its preview pane.
func previewWidth() int {
	if cols := os.Getenv("FZF_PREVIEW_COLUMNS"); cols != "" {
		if w, err := strconv.Atoi(cols); err == nil && w > 0 {
			return w
		}
	}
	return ui.TermWidth() / 2
}

func newListCommand() *cobra.Command {
	showAll := false

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print all projects with chat counts (for scripting)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			state := config.LoadState(config.StatePath())

			projects, err := project.List(cfg.ProjectsDir)
			if err != nil {
				if os.IsNotExist(err) {
					fmt.Println("No Claude projects found.")
					return nil
				}
				return fmt.Errorf("scanning projects: %w", err)
			}
			project.Sort(projects, state.Sort)

			for _, p := range projects {
				if p.ChatCount == 0 && !showAll {
					continue
				}
				activity := ""
				if !p.LastActivity.IsZero() {
					activity = p.LastActivity.Format("2006-01-02 15:04")
				}
				fmt.Printf("%s|%d|%s\n", p.Name, p.ChatCount, activity)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "include projects with no chats")
	return cmd
}
