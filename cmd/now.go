/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/jfmyers9/chorus/internal/config"
	"github.com/jfmyers9/chorus/internal/playback"
)

// nowCmd represents the now command
var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Display the currently playing track",
	Long: `Query the Spotify Web API and display the currently playing track.

The output format can be customized in ~/.config/chorus/config.yaml
using a Go template. Available fields: .Name, .Artist, .Album, .Duration, .Position

Exit codes:
  0 - Track is currently playing
  1 - No track playing, paused, or no active device`,
	RunE: runNow,
}

func init() {
	rootCmd.AddCommand(nowCmd)

	// Add format flag to override config
	nowCmd.Flags().StringP("format", "f", "", "Output format template (overrides config)")
	// Add width flag to set fixed output width
	nowCmd.Flags().IntP("width", "w", 0, "Fixed output width (0=disabled, overrides config)")
	// Add marquee flag to enable scrolling
	nowCmd.Flags().Bool("marquee", false, "Enable marquee scrolling for long text (overrides config)")
	// Add json flag for machine-readable output
	nowCmd.Flags().Bool("json", false, "Print the track as JSON instead of the template")
}

func runNow(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Check for format flag override
	formatFlag, _ := cmd.Flags().GetString("format")
	if formatFlag != "" {
		cfg.OutputFormat = formatFlag
	}

	// Create the Spotify-backed playback source
	client, err := newSpotifyClient(cfg)
	if err != nil {
		return err
	}
	source := playback.NewSpotifySource(client)

	// Get current track
	track, err := source.Current(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current track: %w", err)
	}

	// If not playing, exit with code 1
	if track == nil || track.State != playback.StatePlaying {
		os.Exit(1)
		return nil
	}

	// Machine-readable output short-circuits the template
	if jsonFlag, _ := cmd.Flags().GetBool("json"); jsonFlag {
		return printTrackJSON(track)
	}

	// Format and print output
	output, err := formatTrack(track, cfg.OutputFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	// Apply width padding/marquee if requested
	width, _ := cmd.Flags().GetInt("width")
	if width == 0 {
		width = cfg.OutputWidth
	}

	marquee, _ := cmd.Flags().GetBool("marquee")
	if !marquee && !cmd.Flags().Changed("marquee") {
		// Flag not set, use config default
		marquee = cfg.MarqueeEnabled
	}

	if width > 0 {
		if marquee {
			output = marqueeText(output, width, cfg.MarqueeSpeed, cfg.MarqueeSeparator)
		} else {
			output = padToWidth(output, width)
		}
	}

	fmt.Println(output)
	return nil
}

// formatTrack applies the template to the track data
func formatTrack(track *playback.Track, templateStr string) (string, error) {
	tmpl, err := template.New("output").Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, track); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return buf.String(), nil
}

// printTrackJSON writes the track to stdout in the API's millisecond idiom
func printTrackJSON(track *playback.Track) error {
	out := struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Artist     string `json:"artist"`
		Album      string `json:"album"`
		URI        string `json:"uri"`
		DurationMS int64  `json:"duration_ms"`
		PositionMS int64  `json:"position_ms"`
		State      string `json:"state"`
	}{
		ID:         track.ID,
		Name:       track.Name,
		Artist:     track.Artist,
		Album:      track.Album,
		URI:        track.URI,
		DurationMS: track.Duration.Milliseconds(),
		PositionMS: track.Position.Milliseconds(),
		State:      track.State.String(),
	}

	encoder := json.NewEncoder(os.Stdout)
	return encoder.Encode(out)
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
// If text is shorter than width, pads with spaces.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text // no padding requested
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		// Truncate with "..." suffix
		// We need to manually truncate and add "..." then pad if needed
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			// If width is too small, just return ellipsis truncated to width
			return runewidth.Truncate(ellipsis, width, "")
		}

		// Truncate to (width - ellipsisWidth) and add ellipsis
		truncated := runewidth.Truncate(text, width-ellipsisWidth, "")
		result := truncated + ellipsis

		// Ensure we're exactly at the target width (in case truncate was imprecise)
		resultWidth := runewidth.StringWidth(result)
		if resultWidth < width {
			padding := strings.Repeat(" ", width-resultWidth)
			return result + padding
		} else if resultWidth > width {
			// Shouldn't happen, but handle it just in case
			return runewidth.Truncate(result, width, "")
		}
		return result
	} else if currentWidth < width {
		// Pad with spaces
		padding := strings.Repeat(" ", width-currentWidth)
		return text + padding
	}

	return text // exactly the right width
}

// marqueeText creates a scrolling marquee effect for text that exceeds the
// target width. If text fits within width, returns static padded text.
// If text is longer, creates a scrolling window using timestamp-based
// positioning:
//
//  1. Create extended text: "original{separator}original" for continuous looping
//  2. Calculate scroll position: time.Now().Unix() * speed % len(extended),
//     where speed is in characters per second. The position wraps around to
//     create an infinite loop, and the same timestamp gives the same output.
//  3. Extract a window of exactly 'width' display columns starting at position
//  4. Pad with spaces if needed to ensure exact width
//
// tmux refreshes the status bar at discrete intervals (status-interval,
// typically 5s) and each refresh calls this function with a new timestamp,
// so the result is a step animation rather than smooth scrolling. With
// speed=2 and a 5s interval the window advances 10 columns per visual
// update; tune speed to the tmux interval for readability.
//
// Unicode and emoji are handled using display column widths throughout.
func marqueeText(text string, width int, speed int, separator string) string {
	if width <= 0 {
		return text
	}

	textWidth := runewidth.StringWidth(text)

	// If text fits, just pad normally (no scrolling needed)
	if textWidth <= width {
		return padToWidth(text, width)
	}

	// Extended text loops back into itself
	extended := text + separator + text
	extendedRunes := []rune(extended)

	// Stateless scroll position: derived from the clock, nothing persists
	// between invocations.
	now := time.Now().Unix()
	totalChars := len(extendedRunes)
	position := int(now*int64(speed)) % totalChars

	// Build the window starting at position
	var result []rune
	resultWidth := 0

	for i := 0; i < totalChars && resultWidth < width; i++ {
		idx := (position + i) % totalChars
		r := extendedRunes[idx]
		rw := runewidth.RuneWidth(r)

		// Don't exceed target width
		if resultWidth+rw <= width {
			result = append(result, r)
			resultWidth += rw
		} else {
			break
		}
	}

	// Pad with spaces if needed to reach exact width
	if resultWidth < width {
		padding := strings.Repeat(" ", width-resultWidth)
		return string(result) + padding
	}

	return string(result)
}
