package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"pokefinder/internal/output"
)

func newLinkCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "link [link or query string]",
		Short: "Print the share link of a search",
		Long: `Print the normalised share link of a search.

Without an argument the link of the saved search is printed. Keys that are
unknown or malformed are dropped, so this also cleans up a pasted link.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context(), opts, queryArg(opts, args), false)
			if err != nil {
				return err
			}
			defer app.Close()

			formatter := output.NewFormatter(output.FormatTable, false)
			formatter.Writer = cmd.OutOrStdout()
			formatter.PrintLine(app.ShareLink())
			return nil
		},
	}
}

// withTimeout derives a request context from the command's context
func withTimeout(cmd *cobra.Command, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}
