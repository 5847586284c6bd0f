package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// TracksService provides track lookup operations.
type TracksService struct {
	client *Client
}

const (
	// maxTracksPerRequest is the id cap on the several-tracks endpoint.
	maxTracksPerRequest = 50

	// maxAudioFeaturesPerRequest is the id cap on the audio-features
	// endpoint.
	maxAudioFeaturesPerRequest = 100
)

// Get fetches a single track.
//
// Example:
//
//	track, err := client.Tracks().Get(ctx, "6rqhFgbbKwnb9MLmUQDhG6")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s (%s)\n", track.Name, track.Duration)
func (s *TracksService) Get(ctx context.Context, id string) (*Track, error) {
	body, err := s.client.get(ctx, "/tracks/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var p trackPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("spotify: failed to parse track response: %w", err)
	}

	track := newTrack(p)
	return &track, nil
}

// GetSeveral fetches up to any number of tracks by id, batching requests in
// groups of 50. Unknown ids are skipped in the result.
func (s *TracksService) GetSeveral(ctx context.Context, ids []string) ([]Track, error) {
	var tracks []Track
	for _, batch := range chunk(ids, maxTracksPerRequest) {
		query := url.Values{}
		query.Set("ids", strings.Join(batch, ","))

		body, err := s.client.get(ctx, "/tracks", query)
		if err != nil {
			return nil, err
		}

		var p struct {
			Tracks []*trackPayload `json:"tracks"`
		}
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("spotify: failed to parse tracks response: %w", err)
		}

		// The API returns null entries for ids it does not know.
		for _, tp := range p.Tracks {
			if tp != nil {
				tracks = append(tracks, newTrack(*tp))
			}
		}
	}
	return tracks, nil
}

// AudioFeatures fetches the audio analysis summary for each id, batching
// requests in groups of 100. Tracks without features are skipped.
func (s *TracksService) AudioFeatures(ctx context.Context, ids []string) ([]AudioFeatures, error) {
	var features []AudioFeatures
	for _, batch := range chunk(ids, maxAudioFeaturesPerRequest) {
		query := url.Values{}
		query.Set("ids", strings.Join(batch, ","))

		body, err := s.client.get(ctx, "/audio-features", query)
		if err != nil {
			return nil, err
		}

		var p struct {
			AudioFeatures []*audioFeaturesPayload `json:"audio_features"`
		}
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("spotify: failed to parse audio features response: %w", err)
		}

		for _, fp := range p.AudioFeatures {
			if fp != nil {
				features = append(features, newAudioFeatures(*fp))
			}
		}
	}
	return features, nil
}
