package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/steam-dilemma/filter"
	"github.com/s0up4200/steam-dilemma/model"
	"github.com/s0up4200/steam-dilemma/steam"
)

var (
	filterExpr  string
	jsonOutput  bool
	showDetails bool
)

// libraryCmd represents the library command
var libraryCmd = &cobra.Command{
	Use:   "library <steam-id>",
	Short: "Print the games a Steam user owns",
	Long: `Fetch and print the library of a Steam user.

The Steam ID may be a SteamID64, a SteamID, a SteamID3, a profile URL or a
custom URL name.

Filter examples:
  --filter 'PlaytimeHours > 10'
  --filter 'contains(Name, "counter") && played()'
  --filter '!HasIcon'`,
	Args: cobra.ExactArgs(1),
	RunE: runLibrary,
}

func init() {
	libraryCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	libraryCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the customer JSON the server would return")
	libraryCmd.Flags().BoolVar(&showDetails, "details", false, "show store and icon links")
}

func runLibrary(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	steamID := args[0]

	var gameFilter filter.Filter
	if filterExpr != "" {
		compiled, err := filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		gameFilter = compiled
	}

	logger.Debug().Str("steam_id", steamID).Str("filter", filterExpr).Msg("Fetching library")

	library, err := newSteamClient().GetUserLibrary(ctx, steamID)
	if err != nil {
		return fmt.Errorf("failed to fetch library: %w", err)
	}

	games := library.Games
	if gameFilter != nil {
		games, err = filter.Apply(ctx, gameFilter, games)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()

	if jsonOutput {
		customer := model.Customer{
			SteamName: steamID,
			Games:     (&steam.UserLibrary{GameCount: len(games), Games: games}).ToModel(),
		}
		if id, ok := steam.ParseID(steamID); ok {
			customer.SteamID = &id
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(customer)
	}

	formatter := steam.NewConsoleFormatter()
	fmt.Fprint(out, formatter.FormatGameList(games, steam.FormatOptions{ShowDetails: showDetails}))
	if gameFilter != nil {
		fmt.Fprintf(out, "%d of %d games matched\n", len(games), len(library.Games))
	}

	return nil
}
