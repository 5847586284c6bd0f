/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chorus",
	Short: "Spotify listening history recorder",
	Long: `chorus records your Spotify listening history.

It runs as a background daemon that polls the Spotify Web API for the
currently playing track, records plays to a local history database, and
optionally publishes the track to Discord Rich Presence.

It also provides CLI commands to query the currently playing track
(useful for tmux status lines), browse the Spotify catalog, inspect your
listening history, and cluster playlists into mood groups.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags can be added here if needed
}
