package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// PlayerService reports playback state. It is read-only: controlling
// playback is out of scope for this client.
type PlayerService struct {
	client *Client
}

// Current fetches the currently-playing state for the token's user.
// Requires the user-read-currently-playing or user-read-playback-state
// scope.
//
// Returns nil when nothing is playing (the API answers 204).
func (s *PlayerService) Current(ctx context.Context) (*Activity, error) {
	body, err := s.client.get(ctx, "/me/player/currently-playing", nil)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}

	var p activityPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("spotify: failed to parse player response: %w", err)
	}

	activity := newActivity(p)
	return &activity, nil
}

// maxRecentlyPlayed is the item cap on the recently-played endpoint.
const maxRecentlyPlayed = 50

// RecentlyPlayed fetches up to limit recently finished tracks, newest
// first. Requires the user-read-recently-played scope.
//
// The API only reports completed plays and keeps a shallow history, so
// this is a backfill aid, not a full listening record.
func (s *PlayerService) RecentlyPlayed(ctx context.Context, limit int) ([]RecentlyPlayedItem, error) {
	if limit <= 0 || limit > maxRecentlyPlayed {
		limit = maxRecentlyPlayed
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	body, err := s.client.get(ctx, "/me/player/recently-played", query)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}

	var p struct {
		Items []recentlyPlayedPayload `json:"items"`
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("spotify: failed to parse recently played response: %w", err)
	}

	items := make([]RecentlyPlayedItem, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, newRecentlyPlayedItem(item))
	}
	return items, nil
}
