package spotify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestTracksGet(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tracks/6rqhFgbbKwnb9MLmUQDhG6" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("unexpected authorization header %s", auth)
		}
		if accept := r.Header.Get("Accept"); accept != "application/json" {
			t.Errorf("unexpected accept header %s", accept)
		}
		_, _ = w.Write([]byte(breatheTrackJSON))
	})

	track, err := client.Tracks().Get(context.Background(), "6rqhFgbbKwnb9MLmUQDhG6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if track.Name != "Breathe (In the Air)" {
		t.Errorf("unexpected track name %s", track.Name)
	}
}

func TestTracksGetSeveral(t *testing.T) {
	ids := make([]string, 0, 60)
	for i := 0; i < 60; i++ {
		ids = append(ids, fmt.Sprintf("track-%d", i))
	}

	var batchSizes []int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tracks" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		batch := strings.Split(r.URL.Query().Get("ids"), ",")
		batchSizes = append(batchSizes, len(batch))

		// One null entry per batch, as for an unknown id.
		entries := []string{"null"}
		for _, id := range batch[1:] {
			entries = append(entries, fmt.Sprintf(`{"id":%q,"name":"Track"}`, id))
		}
		_, _ = fmt.Fprintf(w, `{"tracks":[%s]}`, strings.Join(entries, ","))
	})

	tracks, err := client.Tracks().GetSeveral(context.Background(), ids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(batchSizes) != 2 || batchSizes[0] != 50 || batchSizes[1] != 10 {
		t.Errorf("expected batches of 50 and 10, got %v", batchSizes)
	}
	// One null skipped per batch.
	if len(tracks) != 58 {
		t.Errorf("expected 58 tracks, got %d", len(tracks))
	}
	if tracks[0].ID != "track-1" {
		t.Errorf("unexpected first track %s", tracks[0].ID)
	}
}

func TestTracksGetSeveralEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("expected no request for an empty id list")
	})

	tracks, err := client.Tracks().GetSeveral(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tracks) != 0 {
		t.Errorf("expected no tracks, got %d", len(tracks))
	}
}

func TestTracksAudioFeatures(t *testing.T) {
	ids := make([]string, 0, 120)
	for i := 0; i < 120; i++ {
		ids = append(ids, fmt.Sprintf("track-%d", i))
	}

	var requests int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio-features" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		requests++
		batch := strings.Split(r.URL.Query().Get("ids"), ",")
		entries := make([]string, 0, len(batch))
		for _, id := range batch {
			entries = append(entries, fmt.Sprintf(`{"id":%q,"energy":0.5,"valence":0.4,"duration_ms":200000}`, id))
		}
		_, _ = fmt.Fprintf(w, `{"audio_features":[%s]}`, strings.Join(entries, ","))
	})

	features, err := client.Tracks().AudioFeatures(context.Background(), ids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if requests != 2 {
		t.Errorf("expected 2 batched requests, got %d", requests)
	}
	if len(features) != 120 {
		t.Errorf("expected 120 feature sets, got %d", len(features))
	}
	if features[0].Energy != 0.5 {
		t.Errorf("unexpected energy %f", features[0].Energy)
	}
}
