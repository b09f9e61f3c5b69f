package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/task-cli/internal/app"
	"github.com/runoshun/task-cli/internal/tui"
	"github.com/spf13/cobra"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// newTUICommand creates the tui command for launching the full-screen task browser.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive TUI",
		Long:  `Launch the full-screen terminal user interface for browsing and editing tasks.`,
		Args:  cobra.ArbitraryArgs,
		RunE: withArgs(0, 0, func(cmd *cobra.Command, _ []string) error {
			if err := openStore(cmd, c); err != nil {
				return err
			}
			return launchTUIFunc(cmd.Context(), c)
		}),
	}
}

func launchTUI(ctx context.Context, c *app.Container) error {
	p := tea.NewProgram(tui.New(c), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
