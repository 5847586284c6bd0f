package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/chorus/internal/config"
)

// meCmd represents the me command
var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the authenticated user's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		client, err := newSpotifyClient(cfg)
		if err != nil {
			return err
		}

		user, err := client.Users().Me(ctx)
		if err != nil {
			return fmt.Errorf("failed to get profile: %w", err)
		}

		name := user.DisplayName
		if name == "" {
			name = user.ID
		}
		fmt.Println(name)
		fmt.Println()

		fmt.Printf("ID:        %s\n", user.ID)
		if user.Email != "" {
			fmt.Printf("Email:     %s\n", user.Email)
		}
		if user.Country != "" {
			fmt.Printf("Country:   %s\n", user.Country)
		}
		if user.Product != "" {
			fmt.Printf("Product:   %s\n", user.Product)
		}
		fmt.Printf("Followers: %d\n", user.Followers)
		fmt.Printf("URI:       %s\n", user.URI)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(meCmd)
}
