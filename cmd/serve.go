package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/steam-dilemma/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Serve the JSON API under /api and the web client from server.static_dir.

The server stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	srv := server.New(cfg.Server, newSteamClient(), logger)
	return srv.Run(cmd.Context())
}
