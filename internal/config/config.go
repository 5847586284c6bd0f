package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Output format template for the now command
	// Default: "{{.Artist}} - {{.Name}}"
	OutputFormat string

	// Fixed display width for the now command output, 0 disables padding
	OutputWidth int

	// Marquee scrolling for now output longer than OutputWidth
	MarqueeEnabled   bool
	MarqueeSpeed     int    // Scroll speed in columns per second
	MarqueeSeparator string // Text between the end and the restart of the loop

	// Poll interval for the daemon (in seconds)
	PollInterval int

	// Recently-played reconcile interval for the daemon (in seconds)
	BackfillInterval int

	// History retention window in days, 0 keeps everything
	RetentionDays int

	// Spotify application credentials and client settings
	Spotify SpotifyConfig

	// Discord rich presence settings
	Discord DiscordConfig

	// Mood era clustering settings
	Moods MoodsConfig
}

// SpotifyConfig holds Spotify specific configuration
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string

	// Port for the local OAuth callback server
	RedirectPort int

	// Optional ISO 3166-1 market filter for lookups
	Market string

	// Outbound request pacing; zero values fall back to the client defaults
	RateLimitWindowSeconds int
	RateLimitMaxCalls      int
}

// DiscordConfig holds Discord rich presence configuration
type DiscordConfig struct {
	Enabled bool
	AppID   string
}

// MoodsConfig holds mood clustering configuration
type MoodsConfig struct {
	// Number of mood groups to split a track set into
	Groups int

	// Clusters smaller than this are reported as outliers
	MinSize int
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	// Load .env file if present (for local dev)
	_ = godotenv.Load()

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("output_format", "{{.Artist}} - {{.Name}}")
	v.SetDefault("output_width", 0)
	v.SetDefault("marquee", false)
	v.SetDefault("marquee_speed", 2)
	v.SetDefault("marquee_separator", "   ")
	v.SetDefault("poll_interval", 5)
	v.SetDefault("backfill_interval", 600)
	v.SetDefault("retention_days", 0)
	v.SetDefault("spotify.redirect_port", 8888)
	v.SetDefault("discord.enabled", false)
	v.SetDefault("moods.groups", 4)
	v.SetDefault("moods.min_size", 3)

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables (CHORUS_SPOTIFY_CLIENT_ID etc.)
	v.SetEnvPrefix("CHORUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Map config to struct
	cfg := &Config{
		OutputFormat:     v.GetString("output_format"),
		OutputWidth:      v.GetInt("output_width"),
		MarqueeEnabled:   v.GetBool("marquee"),
		MarqueeSpeed:     v.GetInt("marquee_speed"),
		MarqueeSeparator: v.GetString("marquee_separator"),
		PollInterval:     v.GetInt("poll_interval"),
		BackfillInterval: v.GetInt("backfill_interval"),
		RetentionDays:    v.GetInt("retention_days"),
		Spotify: SpotifyConfig{
			ClientID:               v.GetString("spotify.client_id"),
			ClientSecret:           v.GetString("spotify.client_secret"),
			RedirectPort:           v.GetInt("spotify.redirect_port"),
			Market:                 v.GetString("spotify.market"),
			RateLimitWindowSeconds: v.GetInt("spotify.rate_limit_window_seconds"),
			RateLimitMaxCalls:      v.GetInt("spotify.rate_limit_max_calls"),
		},
		Discord: DiscordConfig{
			Enabled: v.GetBool("discord.enabled"),
			AppID:   v.GetString("discord.app_id"),
		},
		Moods: MoodsConfig{
			Groups:  v.GetInt("moods.groups"),
			MinSize: v.GetInt("moods.min_size"),
		},
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "chorus")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// getDataDir returns the data directory path for the history database and
// daemon state. Creates the directory if it doesn't exist
func getDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	dataDir := filepath.Join(homeDir, ".local", "share", "chorus")
	_ = os.MkdirAll(dataDir, 0755)

	return dataDir
}

// TokenFile returns the path of the cached OAuth token
func TokenFile() string {
	return filepath.Join(getConfigDir(), "token.json")
}

// HistoryFile returns the path of the listening history database
func HistoryFile() string {
	return filepath.Join(getDataDir(), "history.db")
}

// StateFile returns the path of the daemon's persisted playback state
func StateFile() string {
	return filepath.Join(getDataDir(), "state.json")
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	// Set config file path
	configDir := getConfigDir()
	configFile := filepath.Join(configDir, "config.yaml")

	// Set values in viper
	v.Set("output_format", c.OutputFormat)
	v.Set("output_width", c.OutputWidth)
	v.Set("marquee", c.MarqueeEnabled)
	v.Set("marquee_speed", c.MarqueeSpeed)
	v.Set("marquee_separator", c.MarqueeSeparator)
	v.Set("poll_interval", c.PollInterval)
	v.Set("backfill_interval", c.BackfillInterval)
	v.Set("retention_days", c.RetentionDays)
	v.Set("spotify.client_id", c.Spotify.ClientID)
	v.Set("spotify.client_secret", c.Spotify.ClientSecret)
	v.Set("spotify.redirect_port", c.Spotify.RedirectPort)
	v.Set("spotify.market", c.Spotify.Market)
	v.Set("spotify.rate_limit_window_seconds", c.Spotify.RateLimitWindowSeconds)
	v.Set("spotify.rate_limit_max_calls", c.Spotify.RateLimitMaxCalls)
	v.Set("discord.enabled", c.Discord.Enabled)
	v.Set("discord.app_id", c.Discord.AppID)
	v.Set("moods.groups", c.Moods.Groups)
	v.Set("moods.min_size", c.Moods.MinSize)

	// Write to file
	return v.WriteConfigAs(configFile)
}
