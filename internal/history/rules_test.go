package history

import (
	"testing"
	"time"
)

func TestCountsAsPlay(t *testing.T) {
	tests := []struct {
		name           string
		trackDuration  time.Duration
		playedDuration time.Duration
		counts         bool
	}{
		{
			name:           "track too short (29 seconds)",
			trackDuration:  29 * time.Second,
			playedDuration: 29 * time.Second,
			counts:         false,
		},
		{
			name:           "30 second track fully heard",
			trackDuration:  30 * time.Second,
			playedDuration: 30 * time.Second,
			counts:         true,
		},
		{
			name:           "30 second track heard to exactly half",
			trackDuration:  30 * time.Second,
			playedDuration: 15 * time.Second,
			counts:         true,
		},
		{
			name:           "30 second track heard just under half",
			trackDuration:  30 * time.Second,
			playedDuration: 14 * time.Second,
			counts:         false,
		},
		{
			name:           "3 minute track heard for 90 seconds",
			trackDuration:  3 * time.Minute,
			playedDuration: 90 * time.Second,
			counts:         true,
		},
		{
			name:           "3 minute track heard for 89 seconds",
			trackDuration:  3 * time.Minute,
			playedDuration: 89 * time.Second,
			counts:         false,
		},
		{
			name:           "8 minute track heard for 4 minutes hits the cap",
			trackDuration:  8 * time.Minute,
			playedDuration: 4 * time.Minute,
			counts:         true,
		},
		{
			name:           "8 minute track just under 4 minutes",
			trackDuration:  8 * time.Minute,
			playedDuration: 3*time.Minute + 59*time.Second,
			counts:         false,
		},
		{
			name:           "10 minute track heard for 4 minutes (40%)",
			trackDuration:  10 * time.Minute,
			playedDuration: 4 * time.Minute,
			counts:         true,
		},
		{
			name:           "nothing heard",
			trackDuration:  3 * time.Minute,
			playedDuration: 0,
			counts:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountsAsPlay(tt.trackDuration, tt.playedDuration); got != tt.counts {
				t.Errorf("CountsAsPlay(%s, %s) = %v, want %v",
					tt.trackDuration, tt.playedDuration, got, tt.counts)
			}
		})
	}
}

func TestPlayThreshold(t *testing.T) {
	tests := []struct {
		name          string
		trackDuration time.Duration
		want          time.Duration
	}{
		{
			name:          "too short can never count",
			trackDuration: 20 * time.Second,
			want:          -1,
		},
		{
			name:          "short track uses half its duration",
			trackDuration: 3 * time.Minute,
			want:          90 * time.Second,
		},
		{
			name:          "long track capped at 4 minutes",
			trackDuration: 12 * time.Minute,
			want:          4 * time.Minute,
		},
		{
			name:          "8 minute track lands exactly on the cap",
			trackDuration: 8 * time.Minute,
			want:          4 * time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlayThreshold(tt.trackDuration); got != tt.want {
				t.Errorf("PlayThreshold(%s) = %s, want %s", tt.trackDuration, got, tt.want)
			}
		})
	}
}

func TestIsEligible(t *testing.T) {
	if IsEligible(29 * time.Second) {
		t.Error("29 second track should not be eligible")
	}
	if !IsEligible(30 * time.Second) {
		t.Error("30 second track should be eligible")
	}
	if !IsEligible(5 * time.Minute) {
		t.Error("5 minute track should be eligible")
	}
}
