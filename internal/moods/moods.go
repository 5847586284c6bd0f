// Package moods groups tracks into named mood clusters by their audio
// features.
package moods

import (
	"fmt"
	"slices"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/jfmyers9/chorus/pkg/spotify"
)

// Config holds clustering parameters.
type Config struct {
	Groups  int // Number of mood groups to create (default: 4)
	MinSize int // Clusters smaller than this become outliers (default: 3)
}

// DefaultConfig returns the recommended default configuration.
func DefaultConfig() Config {
	return Config{
		Groups:  4,
		MinSize: 3,
	}
}

// Track pairs a track with the audio analysis used for clustering.
// Features may be nil when the analysis is unavailable.
type Track struct {
	ID       string
	Name     string
	Artist   string
	Features *spotify.AudioFeatures
}

// Group is a cluster of tracks that share a mood.
type Group struct {
	Name        string             // Descriptive name: "Upbeat Party"
	Description string             // One-line characterisation of the mood
	Tracks      []Track            // Tracks in this group
	Centroid    map[string]float64 // Average feature values for this cluster
}

// featureNames defines the audio features used for clustering.
var featureNames = []string{"energy", "valence", "danceability", "acousticness"}

// trackObservation wraps a Track to implement the clusters.Observation
// interface.
type trackObservation struct {
	track  *Track
	coords clusters.Coordinates
}

func (o trackObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o trackObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// Detect groups tracks by audio feature similarity using k-means
// clustering. Returns the mood groups and the outlier tracks that fit in
// none of them. Tracks without audio features are always outliers.
func Detect(tracks []Track, cfg Config) ([]Group, []Track, error) {
	if len(tracks) == 0 {
		return nil, nil, nil
	}

	if cfg.Groups <= 0 {
		cfg.Groups = DefaultConfig().Groups
	}
	if cfg.MinSize <= 0 {
		cfg.MinSize = DefaultConfig().MinSize
	}

	// Separate tracks with and without audio features
	var validTracks []*Track
	var missingFeatures []Track

	for i := range tracks {
		t := &tracks[i]
		if t.Features != nil {
			validTracks = append(validTracks, t)
		} else {
			missingFeatures = append(missingFeatures, *t)
		}
	}

	// If fewer valid tracks than groups, everything is an outlier
	if len(validTracks) < cfg.Groups {
		var outliers []Track
		for _, t := range validTracks {
			outliers = append(outliers, *t)
		}
		outliers = append(outliers, missingFeatures...)
		return nil, outliers, nil
	}

	// Build observations for k-means
	obs := make(clusters.Observations, len(validTracks))
	for i, t := range validTracks {
		obs[i] = trackObservation{
			track:  t,
			coords: featureCoordinates(t.Features),
		}
	}

	km := kmeans.New()
	result, err := km.Partition(obs, cfg.Groups)
	if err != nil {
		return nil, nil, fmt.Errorf("k-means clustering failed: %w", err)
	}

	// Build groups from clusters
	var groups []Group
	var outliers []Track

	for _, cluster := range result {
		var clusterTracks []Track
		for _, o := range cluster.Observations {
			if to, ok := o.(trackObservation); ok {
				clusterTracks = append(clusterTracks, *to.track)
			}
		}

		// Check minimum size
		if len(clusterTracks) < cfg.MinSize {
			outliers = append(outliers, clusterTracks...)
			continue
		}

		centroid := make(map[string]float64)
		for i, name := range featureNames {
			centroid[name] = cluster.Center[i]
		}

		groups = append(groups, Group{
			Name:        moodName(centroid),
			Description: describeMood(centroid),
			Tracks:      clusterTracks,
			Centroid:    centroid,
		})
	}

	// Tracks with missing features join the outliers
	outliers = append(outliers, missingFeatures...)

	// Sort groups by size (largest first)
	slices.SortFunc(groups, func(a, b Group) int {
		return len(b.Tracks) - len(a.Tracks)
	})

	return groups, outliers, nil
}

// featureCoordinates extracts the clustering features as a coordinate
// vector in featureNames order.
func featureCoordinates(f *spotify.AudioFeatures) clusters.Coordinates {
	return clusters.Coordinates{
		f.Energy,
		f.Valence,
		f.Danceability,
		f.Acousticness,
	}
}
