// Package cli provides the cobra commands for pokefinder.
package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pokefinder/internal/ui"
)

var (
	// Version information (set via ldflags during build)
	Version = "dev"
	Commit  = "unknown"
)

// rootOptions are the flags shared by every command
type rootOptions struct {
	configFile    string
	query         string
	noPersist     bool
	storageDriver string
	endpoint      string
	logLevel      string

	env *viper.Viper
}

// NewRootCmd builds the command tree. Running the root command starts the
// interactive finder.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{env: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "pokefinder [link or query string]",
		Short: "Find Pokémon from the terminal",
		Long: `pokefinder searches the Pokémon GraphQL API with a set of filters,
a sort order and a choice of columns.

The search is kept between runs and can be shared as a link. Pass a link or
a query string to open that search:

  pokefinder 'color=purple&type=all_of~poison&sort=-weight'

Other commands:
  pokefinder query    Print the results of a search
  pokefinder link     Print the share link of a search
  pokefinder reset    Forget the saved search`,
		Version:      fmt.Sprintf("%s (%s)", Version, Commit),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts, queryArg(opts, args))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "",
		"config file (default is the user config dir's pokefinder/config.toml)")
	flags.StringVar(&opts.query, "query", "",
		"search to open, as a link or query string")
	flags.BoolVar(&opts.noPersist, "no-persist", false,
		"do not read or write the saved search")
	flags.StringVar(&opts.storageDriver, "storage-driver", "",
		"where the search is saved: file, badger or sqlite")
	flags.StringVar(&opts.endpoint, "endpoint", "",
		"GraphQL endpoint")
	flags.StringVar(&opts.logLevel, "log-level", "",
		"log level: trace, debug, info, warn, error or disabled")

	// POKEFINDER_ENDPOINT, POKEFINDER_STORAGE_DRIVER, POKEFINDER_LOG_LEVEL
	opts.env.SetEnvPrefix("pokefinder")
	opts.env.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	opts.env.AutomaticEnv()
	for _, name := range []string{"endpoint", "storage-driver", "log-level"} {
		_ = opts.env.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(newQueryCmd(opts))
	rootCmd.AddCommand(newLinkCmd(opts))
	rootCmd.AddCommand(newResetCmd(opts))
	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// queryArg returns the positional query, falling back to --query
func queryArg(opts *rootOptions, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return opts.query
}

func runTUI(ctx context.Context, opts *rootOptions, query string) error {
	app, err := openApp(ctx, opts, query, true)
	if err != nil {
		return err
	}
	defer app.Close()

	model := ui.NewModel(app.Store, app.Client, app.Config,
		ui.WithLogger(app.Log),
		ui.WithShareLink(app.ShareLink),
	)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Forward failures reported on the bus to the status line
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case e := <-app.Events:
				p.Send(ui.EventMsg{Event: e})
			case <-done:
				return
			}
		}
	}()

	app.Log.Info().Str("query", app.Query.String()).Msg("starting ui")
	if _, err := p.Run(); err != nil {
		app.Log.Error().Err(err).Msg("ui exited with error")
		return fmt.Errorf("error running program: %w", err)
	}
	app.Log.Info().Msg("ui exited normally")
	return nil
}
