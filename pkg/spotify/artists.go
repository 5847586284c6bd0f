package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// ArtistsService provides artist lookup operations.
type ArtistsService struct {
	client *Client
}

// maxArtistsPerRequest is the id cap on the several-artists endpoint.
const maxArtistsPerRequest = 50

// Get fetches a single artist. Use it to upgrade a PartialArtist taken
// from a track or album.
func (s *ArtistsService) Get(ctx context.Context, id string) (*Artist, error) {
	body, err := s.client.get(ctx, "/artists/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var p artistPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("spotify: failed to parse artist response: %w", err)
	}

	artist := newArtist(p)
	return &artist, nil
}

// GetSeveral fetches artists by id, batching requests in groups of 50.
// Unknown ids are skipped in the result.
func (s *ArtistsService) GetSeveral(ctx context.Context, ids []string) ([]Artist, error) {
	var artists []Artist
	for _, batch := range chunk(ids, maxArtistsPerRequest) {
		query := url.Values{}
		query.Set("ids", strings.Join(batch, ","))

		body, err := s.client.get(ctx, "/artists", query)
		if err != nil {
			return nil, err
		}

		var p struct {
			Artists []*artistPayload `json:"artists"`
		}
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("spotify: failed to parse artists response: %w", err)
		}

		for _, ap := range p.Artists {
			if ap != nil {
				artists = append(artists, newArtist(*ap))
			}
		}
	}
	return artists, nil
}

// Albums fetches one page of an artist's albums.
func (s *ArtistsService) Albums(ctx context.Context, id string, opts PageOptions) (*AlbumPage, error) {
	body, err := s.client.get(ctx, "/artists/"+url.PathEscape(id)+"/albums", opts.values())
	if err != nil {
		return nil, err
	}

	var p albumPagePayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("spotify: failed to parse artist albums response: %w", err)
	}

	page := newAlbumPage(p)
	return &page, nil
}

// TopTracks fetches an artist's most popular tracks in the given market
// (an ISO 3166-1 alpha-2 country code, or "from_token" with a user token).
func (s *ArtistsService) TopTracks(ctx context.Context, id, market string) ([]Track, error) {
	if market == "" {
		market = "from_token"
	}
	query := url.Values{}
	query.Set("market", market)

	body, err := s.client.get(ctx, "/artists/"+url.PathEscape(id)+"/top-tracks", query)
	if err != nil {
		return nil, err
	}

	var p struct {
		Tracks []trackPayload `json:"tracks"`
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("spotify: failed to parse top tracks response: %w", err)
	}

	tracks := make([]Track, len(p.Tracks))
	for i, tp := range p.Tracks {
		tracks[i] = newTrack(tp)
	}
	return tracks, nil
}
