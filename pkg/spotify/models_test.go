package spotify

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

const breatheTrackJSON = `{
	"id": "6rqhFgbbKwnb9MLmUQDhG6",
	"name": "Breathe (In the Air)",
	"uri": "spotify:track:6rqhFgbbKwnb9MLmUQDhG6",
	"href": "https://api.spotify.com/v1/tracks/6rqhFgbbKwnb9MLmUQDhG6",
	"duration_ms": 169333,
	"explicit": false,
	"popularity": 71,
	"track_number": 2,
	"disc_number": 1,
	"preview_url": "https://p.scdn.co/mp3-preview/6rqhFgbb",
	"is_local": false,
	"artists": [
		{
			"id": "0k17h0D3J5VfsdmQ1iZtE9",
			"name": "Pink Floyd",
			"uri": "spotify:artist:0k17h0D3J5VfsdmQ1iZtE9",
			"href": "https://api.spotify.com/v1/artists/0k17h0D3J5VfsdmQ1iZtE9"
		}
	],
	"album": {
		"id": "4LH4d3cOWNNsVw41Gqt2kv",
		"name": "The Dark Side of the Moon",
		"uri": "spotify:album:4LH4d3cOWNNsVw41Gqt2kv",
		"album_type": "album",
		"release_date": "1973-03-01",
		"release_date_precision": "day",
		"total_tracks": 10,
		"artists": [
			{"id": "0k17h0D3J5VfsdmQ1iZtE9", "name": "Pink Floyd"}
		],
		"images": [
			{"url": "https://i.scdn.co/image/ab67616d0000b273ea7c", "height": 640, "width": 640},
			{"url": "https://i.scdn.co/image/ab67616d00001e02ea7c", "height": 300, "width": 300}
		]
	}
}`

func parseTrack(t *testing.T, raw string) Track {
	t.Helper()
	var payload trackPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("failed to parse track fixture: %v", err)
	}
	return newTrack(payload)
}

func TestTrackFromJSON(t *testing.T) {
	track := parseTrack(t, breatheTrackJSON)

	if track.ID != "6rqhFgbbKwnb9MLmUQDhG6" {
		t.Errorf("unexpected id %s", track.ID)
	}
	if track.Name != "Breathe (In the Air)" {
		t.Errorf("unexpected name %s", track.Name)
	}
	if want := 169333 * time.Millisecond; track.Duration != want {
		t.Errorf("expected duration %s, got %s", want, track.Duration)
	}
	if len(track.Artists) != 1 || track.Artists[0].Name != "Pink Floyd" {
		t.Errorf("unexpected artists %+v", track.Artists)
	}

	if track.Album == nil {
		t.Fatal("expected album to be mapped")
	}
	if track.Album.AlbumType != AlbumTypeAlbum {
		t.Errorf("unexpected album type %s", track.Album.AlbumType)
	}
	if want := time.Date(1973, 3, 1, 0, 0, 0, 0, time.UTC); !track.Album.ReleaseDate.Equal(want) {
		t.Errorf("expected release date %s, got %s", want, track.Album.ReleaseDate)
	}
	if track.Album.ReleasePrecision != PrecisionDay {
		t.Errorf("unexpected release precision %s", track.Album.ReleasePrecision)
	}
	if len(track.Album.Images) != 2 || track.Album.Images[1].Height != 300 {
		t.Errorf("unexpected album images %+v", track.Album.Images)
	}
}

// TestTrackValueSemantics verifies two parses of the same payload are
// value-equal and fully independent.
func TestTrackValueSemantics(t *testing.T) {
	first := parseTrack(t, breatheTrackJSON)
	second := parseTrack(t, breatheTrackJSON)

	if !first.Equal(second) {
		t.Error("expected tracks from the same payload to be equal")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("expected tracks from the same payload to be deeply equal")
	}

	// Mutating one copy must not bleed into the other.
	second.Artists[0].Name = "Someone Else"
	second.Album.Name = "Another Record"
	if first.Artists[0].Name != "Pink Floyd" {
		t.Error("artist mutation leaked between copies")
	}
	if first.Album.Name != "The Dark Side of the Moon" {
		t.Error("album mutation leaked between copies")
	}

	other := first
	other.ID = "different-id"
	if first.Equal(other) {
		t.Error("expected tracks with different ids to differ")
	}

	var a, b Track
	if a.Equal(b) {
		t.Error("expected tracks without ids to never be equal")
	}
}

// TestPartialArtistMatchesFullArtist verifies the identity of a partial
// carries over to the full object fetched for the same id.
func TestPartialArtistMatchesFullArtist(t *testing.T) {
	track := parseTrack(t, breatheTrackJSON)

	var payload artistPayload
	full := `{
		"id": "0k17h0D3J5VfsdmQ1iZtE9",
		"name": "Pink Floyd",
		"uri": "spotify:artist:0k17h0D3J5VfsdmQ1iZtE9",
		"genres": ["progressive rock", "psychedelic rock"],
		"popularity": 82,
		"followers": {"total": 24313120},
		"images": [{"url": "https://i.scdn.co/image/artist", "height": 640, "width": 640}]
	}`
	if err := json.Unmarshal([]byte(full), &payload); err != nil {
		t.Fatalf("failed to parse artist fixture: %v", err)
	}
	artist := newArtist(payload)

	partial := track.Artists[0]
	if partial.ID != artist.ID {
		t.Errorf("expected matching ids, got %s and %s", partial.ID, artist.ID)
	}
	if artist.Followers != 24313120 {
		t.Errorf("unexpected follower count %d", artist.Followers)
	}
	if len(artist.Genres) != 2 {
		t.Errorf("unexpected genres %v", artist.Genres)
	}
}

func TestParseReleaseDate(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		precision ReleaseDatePrecision
		want      time.Time
		wantErr   bool
	}{
		{
			name:      "day precision",
			value:     "1973-03-01",
			precision: PrecisionDay,
			want:      time.Date(1973, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "month precision",
			value:     "1971-11",
			precision: PrecisionMonth,
			want:      time.Date(1971, 11, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "year precision",
			value:     "1968",
			precision: PrecisionYear,
			want:      time.Date(1968, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "precision inferred from shape",
			value: "1977-01",
			want:  time.Date(1977, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "empty value",
			value:   "",
			wantErr: true,
		},
		{
			name:      "garbage value",
			value:     "sometime in the seventies",
			precision: PrecisionDay,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseReleaseDate(tt.value, tt.precision)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestActivityFromJSON(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		wantType    PlayingType
		wantItem    bool
		wantPlaying bool
	}{
		{
			name: "playing a track",
			payload: `{
				"item": {"id": "6rqhFgbbKwnb9MLmUQDhG6", "name": "Breathe (In the Air)", "duration_ms": 169333},
				"currently_playing_type": "track",
				"is_playing": true,
				"progress_ms": 32000,
				"timestamp": 1677000000000,
				"device": {"id": "dev-1", "name": "Kitchen", "type": "Speaker", "is_active": true, "volume_percent": 40},
				"context": {"type": "album", "uri": "spotify:album:4LH4d3cOWNNsVw41Gqt2kv"}
			}`,
			wantType:    PlayingTypeTrack,
			wantItem:    true,
			wantPlaying: true,
		},
		{
			name:        "playing an episode",
			payload:     `{"item": null, "currently_playing_type": "episode", "is_playing": true, "progress_ms": 900000, "timestamp": 1677000000000}`,
			wantType:    PlayingTypeEpisode,
			wantPlaying: true,
		},
		{
			name:     "ad break",
			payload:  `{"item": null, "currently_playing_type": "ad", "is_playing": true, "timestamp": 1677000000000}`,
			wantType: PlayingTypeAd,
			// Ads report is_playing but carry nothing worth showing.
			wantPlaying: true,
		},
		{
			name:     "missing type",
			payload:  `{"is_playing": false, "timestamp": 1677000000000}`,
			wantType: PlayingTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload activityPayload
			if err := json.Unmarshal([]byte(tt.payload), &payload); err != nil {
				t.Fatalf("failed to parse activity fixture: %v", err)
			}
			activity := newActivity(payload)

			if activity.PlayingType != tt.wantType {
				t.Errorf("expected playing type %s, got %s", tt.wantType, activity.PlayingType)
			}
			if (activity.Item != nil) != tt.wantItem {
				t.Errorf("expected item mapped=%v, got %+v", tt.wantItem, activity.Item)
			}
			if activity.IsPlaying != tt.wantPlaying {
				t.Errorf("expected is_playing=%v, got %v", tt.wantPlaying, activity.IsPlaying)
			}
			if want := time.UnixMilli(1677000000000).UTC(); !activity.Timestamp.Equal(want) {
				t.Errorf("expected timestamp %s, got %s", want, activity.Timestamp)
			}
		})
	}
}

func TestActivityDeviceAndContext(t *testing.T) {
	raw := `{
		"item": {"id": "t1", "name": "Song"},
		"currently_playing_type": "track",
		"is_playing": true,
		"progress_ms": 5000,
		"timestamp": 1677000000000,
		"device": {"id": "dev-1", "name": "Kitchen", "type": "Speaker", "is_active": true, "volume_percent": 40},
		"context": {"type": "playlist", "uri": "spotify:playlist:37i9dQZF1DXcBWIGoYBM5M"}
	}`

	var payload activityPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("failed to parse activity fixture: %v", err)
	}
	activity := newActivity(payload)

	if activity.Device == nil || activity.Device.Name != "Kitchen" {
		t.Errorf("unexpected device %+v", activity.Device)
	}
	if !activity.Device.Active || activity.Device.VolumePercent != 40 {
		t.Errorf("unexpected device state %+v", activity.Device)
	}
	if activity.Context == nil || activity.Context.Type != "playlist" {
		t.Errorf("unexpected context %+v", activity.Context)
	}
	if want := 5 * time.Second; activity.Progress != want {
		t.Errorf("expected progress %s, got %s", want, activity.Progress)
	}
}

func TestPlaylistFromJSON(t *testing.T) {
	raw := `{
		"id": "37i9dQZF1DXcBWIGoYBM5M",
		"name": "Mellow Evenings",
		"uri": "spotify:playlist:37i9dQZF1DXcBWIGoYBM5M",
		"description": "Songs for winding down",
		"snapshot_id": "MTk4LGFiYzQ1",
		"collaborative": false,
		"public": true,
		"owner": {"id": "user-1", "display_name": "Jamie"},
		"tracks": {
			"total": 3,
			"limit": 100,
			"offset": 0,
			"items": [
				{
					"added_at": "2024-06-01T10:30:00Z",
					"added_by": {"id": "user-1"},
					"is_local": false,
					"track": {"id": "t1", "name": "First", "duration_ms": 200000}
				},
				{
					"added_at": "2024-06-02T08:00:00Z",
					"added_by": {"id": "user-2"},
					"is_local": false,
					"track": {"id": "t2", "name": "Second", "duration_ms": 180000}
				}
			]
		}
	}`

	var payload playlistPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("failed to parse playlist fixture: %v", err)
	}
	playlist := newPlaylist(payload)

	if playlist.Name != "Mellow Evenings" {
		t.Errorf("unexpected name %s", playlist.Name)
	}
	if playlist.Owner.ID != "user-1" || playlist.Owner.DisplayName != "Jamie" {
		t.Errorf("unexpected owner %+v", playlist.Owner)
	}
	if playlist.TotalTracks != 3 {
		t.Errorf("expected 3 total tracks, got %d", playlist.TotalTracks)
	}
	if playlist.Items == nil || len(playlist.Items.Items) != 2 {
		t.Fatalf("expected 2 embedded items, got %+v", playlist.Items)
	}

	first := playlist.Items.Items[0]
	if want := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC); !first.AddedAt.Equal(want) {
		t.Errorf("expected added_at %s, got %s", want, first.AddedAt)
	}
	if first.Track.Name != "First" {
		t.Errorf("unexpected first track %+v", first.Track)
	}
}

func TestUserFromJSON(t *testing.T) {
	raw := `{
		"id": "user-1",
		"display_name": "Jamie",
		"uri": "spotify:user:user-1",
		"country": "NL",
		"email": "jamie@example.com",
		"product": "premium",
		"followers": {"total": 12},
		"images": [{"url": "https://i.scdn.co/image/profile", "height": 300, "width": 300}]
	}`

	var payload userPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("failed to parse user fixture: %v", err)
	}
	user := newUser(payload)

	if user.DisplayName != "Jamie" || user.Country != "NL" {
		t.Errorf("unexpected user %+v", user)
	}
	if user.Followers != 12 {
		t.Errorf("expected 12 followers, got %d", user.Followers)
	}
	if user.Product != "premium" {
		t.Errorf("unexpected product %s", user.Product)
	}

	partial := PartialUser{ID: "user-1"}
	if partial.ID != user.ID {
		t.Errorf("expected partial id to match full user, got %s and %s", partial.ID, user.ID)
	}
}

func TestAudioFeaturesFromJSON(t *testing.T) {
	raw := `{
		"id": "6rqhFgbbKwnb9MLmUQDhG6",
		"uri": "spotify:track:6rqhFgbbKwnb9MLmUQDhG6",
		"acousticness": 0.163,
		"danceability": 0.274,
		"energy": 0.453,
		"instrumentalness": 0.0956,
		"liveness": 0.151,
		"loudness": -11.244,
		"speechiness": 0.0329,
		"tempo": 129.868,
		"valence": 0.236,
		"key": 4,
		"mode": 1,
		"time_signature": 4,
		"duration_ms": 169333
	}`

	var payload audioFeaturesPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("failed to parse audio features fixture: %v", err)
	}
	features := newAudioFeatures(payload)

	if features.Energy != 0.453 || features.Valence != 0.236 {
		t.Errorf("unexpected features %+v", features)
	}
	if features.Loudness != -11.244 {
		t.Errorf("unexpected loudness %f", features.Loudness)
	}
	if want := 169333 * time.Millisecond; features.Duration != want {
		t.Errorf("expected duration %s, got %s", want, features.Duration)
	}
	if features.Key != 4 || features.Mode != 1 || features.TimeSignature != 4 {
		t.Errorf("unexpected key/mode/signature %d/%d/%d", features.Key, features.Mode, features.TimeSignature)
	}
}

// TestEqualRequiresIdentity spot-checks id-based equality across the
// identity-carrying types.
func TestEqualRequiresIdentity(t *testing.T) {
	if !(Artist{ID: "a", Name: "First"}).Equal(Artist{ID: "a", Name: "Renamed"}) {
		t.Error("expected artists with the same id to be equal")
	}
	if (Album{ID: "a"}).Equal(Album{ID: "b"}) {
		t.Error("expected albums with different ids to differ")
	}
	if (Playlist{}).Equal(Playlist{}) {
		t.Error("expected playlists without ids to never be equal")
	}
	if !(PartialUser{ID: "u"}).Equal(PartialUser{ID: "u"}) {
		t.Error("expected users with the same id to be equal")
	}
}
