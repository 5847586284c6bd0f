package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// AlbumsService provides album lookup operations.
type AlbumsService struct {
	client *Client
}

// maxAlbumsPerRequest is the id cap on the several-albums endpoint.
const maxAlbumsPerRequest = 20

// Get fetches a single album, including the first page of its tracks.
func (s *AlbumsService) Get(ctx context.Context, id string) (*Album, error) {
	body, err := s.client.get(ctx, "/albums/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var p albumPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("spotify: failed to parse album response: %w", err)
	}

	album := newAlbum(p)
	return &album, nil
}

// GetSeveral fetches albums by id, batching requests in groups of 20.
// Unknown ids are skipped in the result.
func (s *AlbumsService) GetSeveral(ctx context.Context, ids []string) ([]Album, error) {
	var albums []Album
	for _, batch := range chunk(ids, maxAlbumsPerRequest) {
		query := url.Values{}
		query.Set("ids", strings.Join(batch, ","))

		body, err := s.client.get(ctx, "/albums", query)
		if err != nil {
			return nil, err
		}

		var p struct {
			Albums []*albumPayload `json:"albums"`
		}
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("spotify: failed to parse albums response: %w", err)
		}

		for _, ap := range p.Albums {
			if ap != nil {
				albums = append(albums, newAlbum(*ap))
			}
		}
	}
	return albums, nil
}

// Tracks fetches one page of an album's tracks. The returned tracks carry
// no album of their own; they belong to the one being listed.
func (s *AlbumsService) Tracks(ctx context.Context, id string, opts PageOptions) (*TrackPage, error) {
	body, err := s.client.get(ctx, "/albums/"+url.PathEscape(id)+"/tracks", opts.values())
	if err != nil {
		return nil, err
	}

	var p trackPagePayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("spotify: failed to parse album tracks response: %w", err)
	}

	page := newTrackPage(p)
	return &page, nil
}
