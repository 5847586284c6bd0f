package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// PlaylistsService provides playlist lookup operations.
type PlaylistsService struct {
	client *Client
}

// Get fetches a playlist, including the first page of its items.
func (s *PlaylistsService) Get(ctx context.Context, id string) (*Playlist, error) {
	body, err := s.client.get(ctx, "/playlists/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var p playlistPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("spotify: failed to parse playlist response: %w", err)
	}

	playlist := newPlaylist(p)
	return &playlist, nil
}

// Tracks fetches one page of a playlist's items.
func (s *PlaylistsService) Tracks(ctx context.Context, id string, opts PageOptions) (*PlaylistItemPage, error) {
	body, err := s.client.get(ctx, "/playlists/"+url.PathEscape(id)+"/tracks", opts.values())
	if err != nil {
		return nil, err
	}

	var p playlistItemPagePayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("spotify: failed to parse playlist tracks response: %w", err)
	}

	page := newPlaylistItemPage(p)
	return &page, nil
}

// AllTracks follows the playlist's pages to exhaustion and returns every
// item. Each page is one rate-limited API call.
func (s *PlaylistsService) AllTracks(ctx context.Context, id string) ([]PlaylistItem, error) {
	var items []PlaylistItem
	opts := PageOptions{Limit: 100}

	for {
		page, err := s.Tracks(ctx, id, opts)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)

		if page.Next == "" || len(page.Items) == 0 {
			return items, nil
		}
		opts.Offset += len(page.Items)
	}
}
