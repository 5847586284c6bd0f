package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SearchType selects which catalogs a search covers.
type SearchType string

// Search types accepted by the search endpoint.
const (
	SearchTypeTrack    SearchType = "track"
	SearchTypeAlbum    SearchType = "album"
	SearchTypeArtist   SearchType = "artist"
	SearchTypePlaylist SearchType = "playlist"
)

// SearchOptions refines a search. A zero value searches tracks with the
// API's default page size.
type SearchOptions struct {
	Types  []SearchType // Catalogs to search (defaults to track)
	Limit  int          // Page size, 0 for the API default
	Offset int          // Index of the first result
	Market string       // Optional ISO 3166-1 country filter
}

// Search queries the catalog. Only the result pages for the requested
// types are non-nil.
//
// Example:
//
//	result, err := client.Search(ctx, "kate bush", spotify.SearchOptions{
//	    Types: []spotify.SearchType{spotify.SearchTypeTrack, spotify.SearchTypeArtist},
//	    Limit: 5,
//	})
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("spotify: search query must not be empty")
	}

	types := opts.Types
	if len(types) == 0 {
		types = []SearchType{SearchTypeTrack}
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("type", strings.Join(names, ","))
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.Market != "" {
		q.Set("market", opts.Market)
	}

	body, err := c.get(ctx, "/search", q)
	if err != nil {
		return nil, err
	}

	var p searchPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("spotify: failed to parse search response: %w", err)
	}

	result := newSearchResult(p)
	return &result, nil
}
