package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pokefinder/internal/domain"
	"pokefinder/internal/output"
	"pokefinder/internal/pokeapi"
)

func newQueryCmd(opts *rootOptions) *cobra.Command {
	var (
		outputFmt string
		noHeaders bool
		fields    string
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "query [link or query string]",
		Short: "Print the results of a search",
		Long: `Run a search and print the results.

Without an argument the saved search is used. The saved search is not
changed.

Examples:
  # Results of the saved search
  pokefinder query

  # Heavy purple pokémon as JSON
  pokefinder query 'color=purple&weight=greater_than~100' -o json

  # Only names and weights
  pokefinder query --fields idName,weight`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(outputFmt)
			if err != nil {
				return err
			}

			app, err := openApp(cmd.Context(), opts, queryArg(opts, args), false)
			if err != nil {
				return err
			}
			defer app.Close()

			columns := app.Store.State().Search.Current.Fields
			if fields != "" {
				if columns, err = parseColumns(fields); err != nil {
					return err
				}
			}

			policy := pokeapi.CacheFirst
			if refresh {
				policy = pokeapi.NetworkOnly
			}
			ctx, cancel := withTimeout(cmd, app.Config.RequestTimeout())
			defer cancel()

			result, err := app.Client.Search(ctx, app.Variables(), policy)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			formatter := output.NewFormatter(format, noHeaders)
			formatter.Writer = cmd.OutOrStdout()
			return formatter.PrintTable(output.TableData{
				Keys:    columns,
				Headers: pokeapi.Headers(columns),
				Rows:    result.Table(columns),
			})
		},
	}

	cmd.Flags().StringVarP(&outputFmt, "output", "o", "table", "output format: table, json, yaml")
	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "hide table headers")
	cmd.Flags().StringVar(&fields, "fields", "", "comma separated columns to print instead of the search's fields")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "skip the response cache")
	return cmd
}

// parseColumns splits a comma separated column list, rejecting unknown ids
func parseColumns(list string) ([]string, error) {
	var out []string
	for _, id := range strings.Split(list, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if !domain.KnownColumn(id) {
			return nil, fmt.Errorf("unknown field %q", id)
		}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no fields given")
	}
	return out, nil
}
