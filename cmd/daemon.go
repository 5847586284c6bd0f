package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jfmyers9/chorus/internal/config"
	"github.com/jfmyers9/chorus/internal/daemon"
	"github.com/jfmyers9/chorus/internal/discord"
	"github.com/jfmyers9/chorus/internal/playback"
)

var (
	daemonLogFile  string
	daemonLogLevel string
	daemonDataDir  string
)

// daemonCmd represents the daemon command
var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the play-recording daemon",
	Long: `Run the daemon that records your Spotify listening history.

The daemon will:
- Poll the Spotify Web API every few seconds to detect track changes
- Track playback time and handle pause/resume correctly
- Record plays to the local history database when they meet the play
  threshold (50% or 4 minutes)
- Reconcile against the recently-played feed to catch plays from other
  devices or while the daemon was down
- Publish the current track to Discord Rich Presence when enabled
- Handle graceful shutdown on SIGINT/SIGTERM

The daemon runs in the foreground and logs to stderr by default.
Use the --log-file flag to log to a file (useful for launchd).`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)

	// Command-line flags
	daemonCmd.Flags().StringVar(&daemonLogFile, "log-file", "", "Log file path (default: stderr)")
	daemonCmd.Flags().StringVar(&daemonLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	daemonCmd.Flags().StringVar(&daemonDataDir, "data-dir", "", "Data directory for state and history (default: ~/.local/share/chorus)")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up logging
	logger := setupLogger(daemonLogFile, daemonLogLevel)

	logger.Info().
		Str("version", version).
		Msg("Starting chorus daemon")

	// Validate Spotify credentials and the cached token
	client, err := newSpotifyClient(cfg)
	if err != nil {
		return err
	}

	// Determine data directory
	dataDir := daemonDataDir
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share", "chorus")
	}

	// Ensure data directory exists
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	logger.Info().Str("data_dir", dataDir).Msg("Using data directory")

	// Create playback source backed by the Web API
	source := playback.NewSpotifySource(client)

	// Create the presence publisher if enabled
	var pres daemon.Presence
	if cfg.Discord.Enabled {
		if cfg.Discord.AppID == "" {
			logger.Warn().Msg("Discord presence enabled but discord.app_id is not set, skipping")
		} else {
			pres = discord.New(cfg.Discord.AppID, logger)
		}
	}

	// Create daemon config
	daemonCfg := daemon.Config{
		PollInterval:     time.Duration(cfg.PollInterval) * time.Second,
		StateFile:        filepath.Join(dataDir, "state.json"),
		HistoryDB:        filepath.Join(dataDir, "history.db"),
		BackfillInterval: time.Duration(cfg.BackfillInterval) * time.Second,
		RetentionMaxAge:  time.Duration(cfg.RetentionDays) * 24 * time.Hour,
	}

	// Create daemon
	d, err := daemon.New(daemonCfg, source, client, pres, logger)
	if err != nil {
		return fmt.Errorf("failed to create daemon: %w", err)
	}

	// Run daemon (blocks until shutdown signal)
	if err := d.Run(); err != nil {
		return fmt.Errorf("daemon error: %w", err)
	}

	// Graceful shutdown
	if err := d.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("Error during shutdown")
		return err
	}

	logger.Info().Msg("Daemon stopped")
	return nil
}

// setupLogger creates a logger with the specified configuration
func setupLogger(logFile, logLevel string) zerolog.Logger {
	// Parse log level
	level := zerolog.InfoLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Set up output
	var output *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			output = os.Stderr
		} else {
			output = f
		}
	} else {
		output = os.Stderr
	}

	// Create logger
	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	// Use pretty console output if logging to stderr
	if output == os.Stderr {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return logger
}
