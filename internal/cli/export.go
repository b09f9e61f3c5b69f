package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/runoshun/task-cli/internal/app"
	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/infra/export"
	"github.com/runoshun/task-cli/internal/usecase"
	"github.com/spf13/cobra"
)

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format string
		Output string
	}

	cmd := &cobra.Command{
		Use:   "export [done|todo|in-progress]",
		Short: "Export tasks as JSON, YAML, CSV or PDF",
		Long: `Export tasks, optionally filtered by status.

Output goes to stdout unless --output is given.

Examples:
  task-cli export --format yaml
  task-cli export done --format pdf --output done.pdf`,
		Args: cobra.ArbitraryArgs,
		RunE: withArgs(0, 1, func(cmd *cobra.Command, args []string) error {
			var filter *domain.Status
			if len(args) == 1 {
				status, err := domain.ParseStatus(args[0])
				if err != nil {
					printUsage(cmd.OutOrStdout())
					return nil
				}
				filter = &status
			}

			format := strings.ToLower(opts.Format)
			if _, ok := c.Exporters[format]; !ok {
				return fmt.Errorf("%w: %q (expected one of %s)", domain.ErrUnknownFormat, opts.Format, strings.Join(export.Formats(), ", "))
			}

			if err := openStore(cmd, c); err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if opts.Output != "" {
				f, err := os.Create(opts.Output)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			out, err := c.ExportTasksUseCase().Execute(cmd.Context(), usecase.ExportTasksInput{
				Writer: w,
				Status: filter,
				Format: format,
			})
			if err != nil {
				return err
			}

			if opts.Output != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d task(s) to %s\n", out.Count, opts.Output)
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", export.FormatJSON, "Output format: "+strings.Join(export.Formats(), ", "))
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}
