package moods

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jfmyers9/chorus/pkg/spotify"
)

func TestMoodName(t *testing.T) {
	tests := []struct {
		name     string
		centroid map[string]float64
		want     string
	}{
		{
			name: "high energy high valence",
			centroid: map[string]float64{
				"energy":       0.8,
				"valence":      0.7,
				"danceability": 0.6,
				"acousticness": 0.2,
			},
			want: "Upbeat Party",
		},
		{
			name: "high energy low valence",
			centroid: map[string]float64{
				"energy":       0.8,
				"valence":      0.3,
				"danceability": 0.6,
				"acousticness": 0.2,
			},
			want: "Intense & Dark",
		},
		{
			name: "low energy high valence",
			centroid: map[string]float64{
				"energy":       0.4,
				"valence":      0.7,
				"danceability": 0.5,
				"acousticness": 0.3,
			},
			want: "Chill & Happy",
		},
		{
			name: "low energy low valence",
			centroid: map[string]float64{
				"energy":       0.3,
				"valence":      0.3,
				"danceability": 0.4,
				"acousticness": 0.4,
			},
			want: "Reflective & Melancholy",
		},
		{
			name: "high acousticness adds modifier",
			centroid: map[string]float64{
				"energy":       0.4,
				"valence":      0.7,
				"danceability": 0.5,
				"acousticness": 0.8,
			},
			want: "Chill & Happy (Acoustic)",
		},
		{
			name: "boundary energy exactly 0.6 is low",
			centroid: map[string]float64{
				"energy":       0.6,
				"valence":      0.7,
				"danceability": 0.5,
				"acousticness": 0.2,
			},
			want: "Chill & Happy",
		},
		{
			name: "boundary valence exactly 0.5 is low",
			centroid: map[string]float64{
				"energy":       0.8,
				"valence":      0.5,
				"danceability": 0.6,
				"acousticness": 0.2,
			},
			want: "Intense & Dark",
		},
		{
			name: "boundary acousticness exactly 0.6 no modifier",
			centroid: map[string]float64{
				"energy":       0.8,
				"valence":      0.7,
				"danceability": 0.6,
				"acousticness": 0.6,
			},
			want: "Upbeat Party",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := moodName(tt.centroid)
			if got != tt.want {
				t.Errorf("moodName() = %q, want %q", got, tt.want)
			}
		})
	}
}

// upbeatTrack and mellowTrack build tracks in two tight, well-separated
// feature corners so k-means has an unambiguous partition to find.
func upbeatTrack(i int) Track {
	return Track{
		ID:   fmt.Sprintf("up-%d", i),
		Name: fmt.Sprintf("Upbeat %d", i),
		Features: &spotify.AudioFeatures{
			Energy:       0.88 + float64(i%4)*0.02,
			Valence:      0.82 + float64(i%4)*0.02,
			Danceability: 0.8,
			Acousticness: 0.05 + float64(i%4)*0.01,
		},
	}
}

func mellowTrack(i int) Track {
	return Track{
		ID:   fmt.Sprintf("down-%d", i),
		Name: fmt.Sprintf("Mellow %d", i),
		Features: &spotify.AudioFeatures{
			Energy:       0.1 + float64(i%4)*0.02,
			Valence:      0.12 + float64(i%4)*0.02,
			Danceability: 0.2,
			Acousticness: 0.88 + float64(i%4)*0.02,
		},
	}
}

func TestDetectSeparatesCorners(t *testing.T) {
	var tracks []Track
	for i := 0; i < 6; i++ {
		tracks = append(tracks, upbeatTrack(i))
	}
	for i := 0; i < 6; i++ {
		tracks = append(tracks, mellowTrack(i))
	}

	groups, outliers, err := Detect(tracks, Config{Groups: 2, MinSize: 3})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(outliers) != 0 {
		t.Errorf("expected no outliers, got %d", len(outliers))
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	for _, g := range groups {
		if len(g.Tracks) != 6 {
			t.Errorf("group %q has %d tracks, want 6", g.Name, len(g.Tracks))
		}
		// Each group must be homogeneous
		prefix := strings.Split(g.Tracks[0].ID, "-")[0]
		for _, tr := range g.Tracks {
			if !strings.HasPrefix(tr.ID, prefix) {
				t.Errorf("group %q mixes corners: %q among %q tracks", g.Name, tr.ID, prefix)
			}
		}
		switch prefix {
		case "up":
			if g.Name != "Upbeat Party" {
				t.Errorf("upbeat corner named %q", g.Name)
			}
		case "down":
			if g.Name != "Reflective & Melancholy (Acoustic)" {
				t.Errorf("mellow corner named %q", g.Name)
			}
		}
		if g.Description == "" {
			t.Errorf("group %q has no description", g.Name)
		}
	}
}

func TestDetectMissingFeaturesAreOutliers(t *testing.T) {
	var tracks []Track
	for i := 0; i < 4; i++ {
		tracks = append(tracks, upbeatTrack(i))
	}
	for i := 0; i < 4; i++ {
		tracks = append(tracks, mellowTrack(i))
	}
	tracks = append(tracks, Track{ID: "local-1", Name: "No Analysis"})

	groups, outliers, err := Detect(tracks, Config{Groups: 2, MinSize: 3})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(outliers) != 1 || outliers[0].ID != "local-1" {
		t.Fatalf("expected the featureless track as sole outlier, got %+v", outliers)
	}
}

func TestDetectTooFewTracks(t *testing.T) {
	tracks := []Track{upbeatTrack(0), mellowTrack(0)}

	groups, outliers, err := Detect(tracks, Config{Groups: 4, MinSize: 3})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if groups != nil {
		t.Errorf("expected no groups with too few tracks, got %d", len(groups))
	}
	if len(outliers) != 2 {
		t.Errorf("expected both tracks as outliers, got %d", len(outliers))
	}
}

func TestDetectEmpty(t *testing.T) {
	groups, outliers, err := Detect(nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if groups != nil || outliers != nil {
		t.Errorf("expected nil results for empty input, got %v / %v", groups, outliers)
	}
}
