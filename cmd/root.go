package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/steam-dilemma/config"
	"github.com/s0up4200/steam-dilemma/steam"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
	logger   zerolog.Logger

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "steam-dilemma",
	Short: "Look up Steam game libraries from the command line or over HTTP",
	Long: `steam-dilemma fetches the games a Steam user owns through the Steam Web API.

It can print a library directly, or run a small HTTP server that the web
client uses to compare libraries of everyone in a room.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// SetVersion records build information for the version and update commands
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads .env.local and the configuration, then sets up logging
func initializeApp(cmd *cobra.Command, args []string) error {
	// A missing .env.local is fine
	_ = godotenv.Load(".env.local")

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger = setupLogger(cfg.Logging, os.Stderr, isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))

	if cfg.Steam.APIKey == "" {
		logger.Warn().Msgf("No Steam API key configured, set steam.api_key or %s", config.EnvAPIKey)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer, isTTY bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTTY,
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// newSteamClient builds a client from the loaded configuration
func newSteamClient() *steam.Client {
	return steam.NewClient(cfg.Steam.APIKey, logger,
		steam.WithBaseURL(cfg.Steam.BaseURL),
		steam.WithTimeout(cfg.Steam.Timeout),
		steam.WithUserAgent("steam-dilemma/"+version),
	)
}
