package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/chorus/internal/authflow"
	"github.com/jfmyers9/chorus/internal/config"
)

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the cached Spotify token",
	Long: `Remove the cached Spotify token.

The application credentials in the config file are kept, so 'chorus auth'
can re-authorize without re-entering them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authflow.RemoveToken(config.TokenFile()); err != nil {
			return fmt.Errorf("failed to remove token: %w", err)
		}

		fmt.Println("✓ Token removed")
		fmt.Println("\nRun 'chorus auth' to authorize again.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
