package spotify

import (
	"context"
	"fmt"
	"net/http"
	"testing"
)

func TestPlaylistsGet(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/playlists/37i9dQZF1DXcBWIGoYBM5M" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"id": "37i9dQZF1DXcBWIGoYBM5M",
			"name": "Mellow Evenings",
			"snapshot_id": "MTk4LGFiYzQ1",
			"owner": {"id": "user-1", "display_name": "Jamie"},
			"tracks": {"total": 42, "items": []}
		}`))
	})

	playlist, err := client.Playlists().Get(context.Background(), "37i9dQZF1DXcBWIGoYBM5M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if playlist.SnapshotID != "MTk4LGFiYzQ1" {
		t.Errorf("unexpected snapshot id %s", playlist.SnapshotID)
	}
	if playlist.TotalTracks != 42 {
		t.Errorf("expected 42 total tracks, got %d", playlist.TotalTracks)
	}
	if playlist.Items != nil {
		t.Errorf("expected no embedded items for an empty page, got %+v", playlist.Items)
	}
}

// TestPlaylistsAllTracks verifies pagination is followed to exhaustion
// with the offset advanced per page.
func TestPlaylistsAllTracks(t *testing.T) {
	var offsets []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/playlists/pl-1/tracks" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		offset := r.URL.Query().Get("offset")
		offsets = append(offsets, offset)

		if offset == "" {
			_, _ = w.Write([]byte(`{
				"items": [
					{"track": {"id": "t1", "name": "First"}},
					{"track": {"id": "t2", "name": "Second"}}
				],
				"limit": 100, "offset": 0, "total": 3,
				"next": "https://api.spotify.com/v1/playlists/pl-1/tracks?offset=2&limit=100"
			}`))
			return
		}
		_, _ = w.Write([]byte(`{
			"items": [{"track": {"id": "t3", "name": "Third"}}],
			"limit": 100, "offset": 2, "total": 3,
			"next": null
		}`))
	})

	items, err := client.Playlists().AllTracks(context.Background(), "pl-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[2].Track.Name != "Third" {
		t.Errorf("unexpected final item %+v", items[2])
	}
	if len(offsets) != 2 || offsets[0] != "" || offsets[1] != "2" {
		t.Errorf("expected offsets [\"\" \"2\"], got %v", offsets)
	}
}

func TestPlaylistsTracksPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if limit := r.URL.Query().Get("limit"); limit != "1" {
			t.Errorf("expected limit 1, got %s", limit)
		}
		_, _ = fmt.Fprint(w, `{
			"items": [{"added_at": "2024-06-01T10:30:00Z", "track": {"id": "t1", "name": "First"}}],
			"limit": 1, "offset": 0, "total": 3,
			"next": "https://api.spotify.com/v1/playlists/pl-1/tracks?offset=1&limit=1"
		}`)
	})

	page, err := client.Playlists().Tracks(context.Background(), "pl-1", PageOptions{Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 1 {
		t.Errorf("unexpected page %+v", page)
	}
	if page.Items[0].AddedAt.IsZero() {
		t.Error("expected added_at to be parsed")
	}
}
