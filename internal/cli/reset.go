package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pokefinder/internal/persist"
)

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved search",
		Long: `Erase the search kept between runs. The next start shows the
default search.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			// --no-persist only stops the app from using storage; reset
			// still clears it
			port, err := persist.OpenStorage(cmd.Context(), cfg.Storage.Driver, cfg.DataDir(), zerolog.Nop())
			if err != nil {
				return fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
			}
			if c, ok := port.(persist.Closer); ok {
				defer c.Close()
			}

			if c, ok := port.(persist.Clearer); ok {
				if err := c.Clear(); err != nil {
					return fmt.Errorf("failed to clear saved search: %w", err)
				}
			}
			link := filepath.Join(cfg.DataDir(), lastLinkFile)
			if err := os.Remove(link); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to remove %s: %w", link, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved search cleared (%s storage in %s)\n", cfg.Storage.Driver, cfg.DataDir())
			return nil
		},
	}
}
