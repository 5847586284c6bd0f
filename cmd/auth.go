package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jfmyers9/chorus/internal/authflow"
	"github.com/jfmyers9/chorus/internal/config"
	"github.com/jfmyers9/chorus/pkg/spotify"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with Spotify",
	Long: `Authenticate with Spotify to enable API access.

This command will guide you through the Spotify authorization process:
1. You'll be prompted to enter your Spotify application client ID and secret
2. A browser URL will be provided for you to authorize the application
3. After authorization, a token is cached for all other commands

You can create an application at: https://developer.spotify.com/dashboard
The app must list http://127.0.0.1:<redirect_port>/callback as a redirect URI.`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Step 1: Get application credentials
	fmt.Println("Spotify Authentication")
	fmt.Println("======================")
	fmt.Println()
	fmt.Println("You can create an application at: https://developer.spotify.com/dashboard")
	fmt.Printf("Register http://127.0.0.1:%d/callback as a redirect URI.\n", cfg.Spotify.RedirectPort)
	fmt.Println()

	// Check if we already have credentials
	if cfg.Spotify.ClientID != "" && cfg.Spotify.ClientSecret != "" {
		fmt.Printf("Found existing application credentials.\n")
		fmt.Printf("Client ID: %s\n", cfg.Spotify.ClientID)
		fmt.Print("\nUse existing credentials? [Y/n]: ")
		response, err := reader.ReadString('\n')
		if err != nil {
			response = "y"
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "" && response != "y" && response != "yes" {
			// User wants to enter new credentials
			cfg.Spotify.ClientID = ""
			cfg.Spotify.ClientSecret = ""
		}
	}

	// Prompt for client ID if not set
	if cfg.Spotify.ClientID == "" {
		fmt.Print("Enter your Spotify Client ID: ")
		clientID, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read client ID: %w", err)
		}
		cfg.Spotify.ClientID = strings.TrimSpace(clientID)
	}

	// Prompt for client secret if not set, without echoing it
	if cfg.Spotify.ClientSecret == "" {
		fmt.Print("Enter your Spotify Client Secret: ")
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read client secret: %w", err)
		}
		cfg.Spotify.ClientSecret = strings.TrimSpace(string(secret))
	}

	// Validate inputs
	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		return fmt.Errorf("client ID and secret are required")
	}

	// Step 2: Start the local callback server
	flow, err := authflow.New(authflow.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		Port:         cfg.Spotify.RedirectPort,
	})
	if err != nil {
		return fmt.Errorf("failed to start auth flow: %w", err)
	}

	// Step 3: Direct user to authorize
	fmt.Println("\nPlease visit this URL to authorize chorus:")
	fmt.Printf("\n  %s\n\n", flow.AuthURL())
	fmt.Println("Waiting for authorization in the browser...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	token, err := flow.Wait(ctx)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	// Step 4: Cache the token and persist the credentials
	if err := authflow.SaveToken(config.TokenFile(), token); err != nil {
		return fmt.Errorf("failed to cache token: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	// Step 5: Verify the token by fetching the profile
	client, err := spotify.NewClient(spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		Token:        token,
	})
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	user, err := client.Users().Me(ctx)
	if err != nil {
		return fmt.Errorf("token verification failed: %w", err)
	}

	name := user.DisplayName
	if name == "" {
		name = user.ID
	}

	configPath := config.GetConfigDir()
	fmt.Printf("\n✓ Authenticated as %s\n", name)
	fmt.Printf("✓ Token cached at %s\n", config.TokenFile())
	fmt.Printf("✓ Credentials saved to %s/config.yaml\n", configPath)
	fmt.Println("\nYou can now use 'chorus daemon' to start recording plays.")

	return nil
}
