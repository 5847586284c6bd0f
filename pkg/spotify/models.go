package spotify

import (
	"fmt"
	"time"
)

// Model values are built only from API responses, by the mapping functions
// in this file. They are plain value objects: the client never retains a
// reference to what it returns, and mutating a returned value has no effect
// on the client or on later fetches. Identity is the Spotify ID; two values
// of the same type with the same ID compare equal via their Equal method.

// AlbumType classifies an album release.
type AlbumType string

// Album types returned by the API.
const (
	AlbumTypeAlbum       AlbumType = "album"
	AlbumTypeSingle      AlbumType = "single"
	AlbumTypeCompilation AlbumType = "compilation"
)

// ReleaseDatePrecision indicates how much of an album's release date is
// meaningful.
type ReleaseDatePrecision string

// Release date precisions returned by the API.
const (
	PrecisionDay   ReleaseDatePrecision = "day"
	PrecisionMonth ReleaseDatePrecision = "month"
	PrecisionYear  ReleaseDatePrecision = "year"
)

// PlayingType describes what kind of item is currently playing.
type PlayingType string

// Playing types returned by the player endpoint.
const (
	PlayingTypeTrack   PlayingType = "track"
	PlayingTypeEpisode PlayingType = "episode"
	PlayingTypeAd      PlayingType = "ad"
	PlayingTypeUnknown PlayingType = "unknown"
)

// Image is a cover or profile image in one of the sizes Spotify serves.
type Image struct {
	URL    string // Required: Source URL
	Height int    // Optional: Height in pixels (0 if unknown)
	Width  int    // Optional: Width in pixels (0 if unknown)
}

// PartialArtist is the artist reference embedded in tracks and albums.
//
// It carries identity only; fetch the full Artist with Artists().Get.
type PartialArtist struct {
	ID   string // Required: Spotify ID
	Name string // Required: Artist name
	URI  string // Required: Spotify URI
	Href string // Required: API endpoint for the full artist
}

// Equal reports whether both values identify the same artist.
func (a PartialArtist) Equal(other PartialArtist) bool {
	return a.ID != "" && a.ID == other.ID
}

// Artist is a full artist object.
type Artist struct {
	ID         string   // Required: Spotify ID
	Name       string   // Required: Artist name
	URI        string   // Required: Spotify URI
	Href       string   // Required: API endpoint for this artist
	Genres     []string // Optional: Genres the artist is associated with
	Images     []Image  // Optional: Artist images, widest first
	Popularity int      // Optional: 0-100
	Followers  int      // Optional: Total follower count
}

// Equal reports whether both values identify the same artist.
func (a Artist) Equal(other Artist) bool {
	return a.ID != "" && a.ID == other.ID
}

// Album is an album object. When returned by Albums().Get the Tracks page
// is populated; when embedded in a Track it is not.
type Album struct {
	ID               string               // Required: Spotify ID
	Name             string               // Required: Album name
	URI              string               // Required: Spotify URI
	Href             string               // Required: API endpoint for this album
	AlbumType        AlbumType            // Required: album, single or compilation
	Artists          []PartialArtist      // Required: Album artists
	Images           []Image              // Optional: Cover art, widest first
	ReleaseDate      time.Time            // Optional: Release date (zero if unparseable)
	ReleasePrecision ReleaseDatePrecision // Optional: How much of ReleaseDate is meaningful
	TotalTracks      int                  // Optional: Number of tracks on the album
	Genres           []string             // Optional: Full album only
	Label            string               // Optional: Full album only
	Popularity       int                  // Optional: Full album only, 0-100
	Tracks           *TrackPage           // Optional: Full album only
}

// Equal reports whether both values identify the same album.
func (a Album) Equal(other Album) bool {
	return a.ID != "" && a.ID == other.ID
}

// Track is a track object. Album is nil when the track arrived inside an
// album listing; Artists are partial and upgradeable via Artists().Get.
type Track struct {
	ID          string          // Required: Spotify ID
	Name        string          // Required: Track name
	URI         string          // Required: Spotify URI
	Href        string          // Required: API endpoint for this track
	Artists     []PartialArtist // Required: Performing artists
	Album       *Album          // Optional: Containing album
	Duration    time.Duration   // Required: Track length
	Explicit    bool            // Optional: Explicit lyrics flag
	Popularity  int             // Optional: 0-100
	TrackNumber int             // Optional: Position within the disc
	DiscNumber  int             // Optional: Disc number, usually 1
	PreviewURL  string          // Optional: 30 second preview MP3
	IsLocal     bool            // Optional: Local file placeholder
}

// Equal reports whether both values identify the same track.
func (t Track) Equal(other Track) bool {
	return t.ID != "" && t.ID == other.ID
}

// PartialUser is the user reference embedded in playlists.
//
// It carries identity only; fetch the full User with Users().Get.
type PartialUser struct {
	ID          string // Required: Spotify user ID
	DisplayName string // Optional: Profile name (may be empty)
	URI         string // Required: Spotify URI
	Href        string // Required: API endpoint for the full profile
}

// Equal reports whether both values identify the same user.
func (u PartialUser) Equal(other PartialUser) bool {
	return u.ID != "" && u.ID == other.ID
}

// User is a full user profile. Country, Email and Product are only present
// on Users().Me and only with the matching scopes granted.
type User struct {
	ID          string  // Required: Spotify user ID
	DisplayName string  // Optional: Profile name (may be empty)
	URI         string  // Required: Spotify URI
	Href        string  // Required: API endpoint for this profile
	Followers   int     // Optional: Total follower count
	Images      []Image // Optional: Profile images
	Country     string  // Optional: Requires user-read-private
	Email       string  // Optional: Requires user-read-email
	Product     string  // Optional: premium/free, requires user-read-private
}

// Equal reports whether both values identify the same user.
func (u User) Equal(other User) bool {
	return u.ID != "" && u.ID == other.ID
}

// Playlist is a playlist object. Items holds the first page of tracks when
// the playlist was fetched directly; use Playlists().Tracks for the rest.
type Playlist struct {
	ID            string            // Required: Spotify ID
	Name          string            // Required: Playlist name
	URI           string            // Required: Spotify URI
	Href          string            // Required: API endpoint for this playlist
	Description   string            // Optional: Owner-provided description
	Owner         PartialUser       // Required: Owning user
	SnapshotID    string            // Required: Version identifier
	Collaborative bool              // Optional: Collaborative flag
	Public        bool              // Optional: Public flag
	Images        []Image           // Optional: Cover art
	TotalTracks   int               // Required: Number of items in the playlist
	Items         *PlaylistItemPage // Optional: First page of items
}

// Equal reports whether both values identify the same playlist.
func (p Playlist) Equal(other Playlist) bool {
	return p.ID != "" && p.ID == other.ID
}

// PlaylistItem is one entry of a playlist.
type PlaylistItem struct {
	AddedAt time.Time   // Optional: When the track was added (zero for very old playlists)
	AddedBy PartialUser // Optional: Who added it
	IsLocal bool        // Optional: Local file placeholder
	Track   Track       // Required: The track itself
}

// PlaybackContext describes where playback originated (playlist, album, ...).
type PlaybackContext struct {
	Type string // Context type: album, artist, playlist
	URI  string // Spotify URI of the context
	Href string // API endpoint for the context
}

// Device is the playback device reported by the player endpoint.
type Device struct {
	ID            string // Device ID (may be empty for restricted devices)
	Name          string // Human-readable device name
	Type          string // Device type: Computer, Smartphone, Speaker, ...
	Active        bool   // Whether this is the active device
	Restricted    bool   // Whether the device rejects remote control
	VolumePercent int    // Current volume, 0-100
}

// Activity is the player's currently-playing state.
//
// Item is set only when PlayingType is PlayingTypeTrack; episodes and ads
// carry no track payload.
type Activity struct {
	Item        *Track           // Optional: Currently playing track
	PlayingType PlayingType      // Required: track, episode, ad or unknown
	IsPlaying   bool             // Required: Whether playback is active
	Progress    time.Duration    // Optional: Position within the item
	Timestamp   time.Time        // Required: Server-side timestamp of this state
	Device      *Device          // Optional: Active device, if requested
	Context     *PlaybackContext // Optional: Playback context
}

// RecentlyPlayedItem is one entry of the listening history.
type RecentlyPlayedItem struct {
	Track    Track            // Required: The track that was played
	PlayedAt time.Time        // Required: When playback of the track finished
	Context  *PlaybackContext // Optional: Where playback originated
}

// AudioFeatures holds the audio analysis summary for one track.
type AudioFeatures struct {
	ID               string        // Required: Spotify track ID
	URI              string        // Required: Spotify URI
	Acousticness     float64       // 0.0-1.0 confidence the track is acoustic
	Danceability     float64       // 0.0-1.0 danceability
	Energy           float64       // 0.0-1.0 perceptual intensity
	Instrumentalness float64       // 0.0-1.0 likelihood of no vocals
	Liveness         float64       // 0.0-1.0 likelihood of a live audience
	Loudness         float64       // Overall loudness in dB
	Speechiness      float64       // 0.0-1.0 presence of spoken words
	Tempo            float64       // Estimated BPM
	Valence          float64       // 0.0-1.0 musical positiveness
	Key              int           // Pitch class, -1 if undetected
	Mode             int           // 1 major, 0 minor
	TimeSignature    int           // Estimated meter
	Duration         time.Duration // Track length per the analysis
}

// TrackPage is one page of tracks.
type TrackPage struct {
	Items    []Track
	Href     string // Endpoint that produced this page
	Limit    int    // Page size
	Offset   int    // Offset of the first item
	Total    int    // Total items across all pages
	Next     string // URL of the next page, empty on the last page
	Previous string // URL of the previous page, empty on the first page
}

// AlbumPage is one page of albums.
type AlbumPage struct {
	Items    []Album
	Href     string
	Limit    int
	Offset   int
	Total    int
	Next     string
	Previous string
}

// ArtistPage is one page of artists.
type ArtistPage struct {
	Items    []Artist
	Href     string
	Limit    int
	Offset   int
	Total    int
	Next     string
	Previous string
}

// PlaylistPage is one page of playlists.
type PlaylistPage struct {
	Items    []Playlist
	Href     string
	Limit    int
	Offset   int
	Total    int
	Next     string
	Previous string
}

// PlaylistItemPage is one page of playlist entries.
type PlaylistItemPage struct {
	Items    []PlaylistItem
	Href     string
	Limit    int
	Offset   int
	Total    int
	Next     string
	Previous string
}

// SearchResult holds the per-kind pages of a search. Only the pages for the
// requested types are non-nil.
type SearchResult struct {
	Tracks    *TrackPage
	Albums    *AlbumPage
	Artists   *ArtistPage
	Playlists *PlaylistPage
}

// Payload types mirror the wire JSON; the constructors below them map
// payloads into models. Nothing in this section performs I/O.

type imagePayload struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type partialArtistPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
	Href string `json:"href"`
}

type artistPayload struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	URI        string         `json:"uri"`
	Href       string         `json:"href"`
	Genres     []string       `json:"genres"`
	Images     []imagePayload `json:"images"`
	Popularity int            `json:"popularity"`
	Followers  struct {
		Total int `json:"total"`
	} `json:"followers"`
}

type albumPayload struct {
	ID                   string                 `json:"id"`
	Name                 string                 `json:"name"`
	URI                  string                 `json:"uri"`
	Href                 string                 `json:"href"`
	AlbumType            string                 `json:"album_type"`
	Artists              []partialArtistPayload `json:"artists"`
	Images               []imagePayload         `json:"images"`
	ReleaseDate          string                 `json:"release_date"`
	ReleaseDatePrecision string                 `json:"release_date_precision"`
	TotalTracks          int                    `json:"total_tracks"`
	Genres               []string               `json:"genres"`
	Label                string                 `json:"label"`
	Popularity           int                    `json:"popularity"`
	Tracks               *trackPagePayload      `json:"tracks"`
}

type trackPayload struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	URI         string                 `json:"uri"`
	Href        string                 `json:"href"`
	Artists     []partialArtistPayload `json:"artists"`
	Album       *albumPayload          `json:"album"`
	DurationMS  int64                  `json:"duration_ms"`
	Explicit    bool                   `json:"explicit"`
	Popularity  int                    `json:"popularity"`
	TrackNumber int                    `json:"track_number"`
	DiscNumber  int                    `json:"disc_number"`
	PreviewURL  string                 `json:"preview_url"`
	IsLocal     bool                   `json:"is_local"`
}

type partialUserPayload struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	URI         string `json:"uri"`
	Href        string `json:"href"`
}

type userPayload struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	URI         string         `json:"uri"`
	Href        string         `json:"href"`
	Images      []imagePayload `json:"images"`
	Country     string         `json:"country"`
	Email       string         `json:"email"`
	Product     string         `json:"product"`
	Followers   struct {
		Total int `json:"total"`
	} `json:"followers"`
}

type playlistPayload struct {
	ID            string                   `json:"id"`
	Name          string                   `json:"name"`
	URI           string                   `json:"uri"`
	Href          string                   `json:"href"`
	Description   string                   `json:"description"`
	Owner         partialUserPayload       `json:"owner"`
	SnapshotID    string                   `json:"snapshot_id"`
	Collaborative bool                     `json:"collaborative"`
	Public        bool                     `json:"public"`
	Images        []imagePayload           `json:"images"`
	Tracks        *playlistItemPagePayload `json:"tracks"`
}

type playlistItemPayload struct {
	AddedAt string             `json:"added_at"`
	AddedBy partialUserPayload `json:"added_by"`
	IsLocal bool               `json:"is_local"`
	Track   trackPayload       `json:"track"`
}

type contextPayload struct {
	Type string `json:"type"`
	URI  string `json:"uri"`
	Href string `json:"href"`
}

type devicePayload struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	IsActive      bool   `json:"is_active"`
	IsRestricted  bool   `json:"is_restricted"`
	VolumePercent int    `json:"volume_percent"`
}

type activityPayload struct {
	Item                 *trackPayload   `json:"item"`
	CurrentlyPlayingType string          `json:"currently_playing_type"`
	IsPlaying            bool            `json:"is_playing"`
	ProgressMS           int64           `json:"progress_ms"`
	Timestamp            int64           `json:"timestamp"`
	Device               *devicePayload  `json:"device"`
	Context              *contextPayload `json:"context"`
}

type recentlyPlayedPayload struct {
	Track    trackPayload    `json:"track"`
	PlayedAt string          `json:"played_at"`
	Context  *contextPayload `json:"context"`
}

type audioFeaturesPayload struct {
	ID               string  `json:"id"`
	URI              string  `json:"uri"`
	Acousticness     float64 `json:"acousticness"`
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Loudness         float64 `json:"loudness"`
	Speechiness      float64 `json:"speechiness"`
	Tempo            float64 `json:"tempo"`
	Valence          float64 `json:"valence"`
	Key              int     `json:"key"`
	Mode             int     `json:"mode"`
	TimeSignature    int     `json:"time_signature"`
	DurationMS       int64   `json:"duration_ms"`
}

type trackPagePayload struct {
	Items    []trackPayload `json:"items"`
	Href     string         `json:"href"`
	Limit    int            `json:"limit"`
	Offset   int            `json:"offset"`
	Total    int            `json:"total"`
	Next     string         `json:"next"`
	Previous string         `json:"previous"`
}

type albumPagePayload struct {
	Items    []albumPayload `json:"items"`
	Href     string         `json:"href"`
	Limit    int            `json:"limit"`
	Offset   int            `json:"offset"`
	Total    int            `json:"total"`
	Next     string         `json:"next"`
	Previous string         `json:"previous"`
}

type artistPagePayload struct {
	Items    []artistPayload `json:"items"`
	Href     string          `json:"href"`
	Limit    int             `json:"limit"`
	Offset   int             `json:"offset"`
	Total    int             `json:"total"`
	Next     string          `json:"next"`
	Previous string          `json:"previous"`
}

type playlistPagePayload struct {
	Items    []playlistPayload `json:"items"`
	Href     string            `json:"href"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
	Total    int               `json:"total"`
	Next     string            `json:"next"`
	Previous string            `json:"previous"`
}

type playlistItemPagePayload struct {
	Items    []playlistItemPayload `json:"items"`
	Href     string                `json:"href"`
	Limit    int                   `json:"limit"`
	Offset   int                   `json:"offset"`
	Total    int                   `json:"total"`
	Next     string                `json:"next"`
	Previous string                `json:"previous"`
}

type searchPayload struct {
	Tracks    *trackPagePayload    `json:"tracks"`
	Albums    *albumPagePayload    `json:"albums"`
	Artists   *artistPagePayload   `json:"artists"`
	Playlists *playlistPagePayload `json:"playlists"`
}

func newImage(p imagePayload) Image {
	return Image{URL: p.URL, Height: p.Height, Width: p.Width}
}

func newImages(ps []imagePayload) []Image {
	if len(ps) == 0 {
		return nil
	}
	images := make([]Image, len(ps))
	for i, p := range ps {
		images[i] = newImage(p)
	}
	return images
}

func newPartialArtist(p partialArtistPayload) PartialArtist {
	return PartialArtist{ID: p.ID, Name: p.Name, URI: p.URI, Href: p.Href}
}

func newPartialArtists(ps []partialArtistPayload) []PartialArtist {
	if len(ps) == 0 {
		return nil
	}
	artists := make([]PartialArtist, len(ps))
	for i, p := range ps {
		artists[i] = newPartialArtist(p)
	}
	return artists
}

func newArtist(p artistPayload) Artist {
	return Artist{
		ID:         p.ID,
		Name:       p.Name,
		URI:        p.URI,
		Href:       p.Href,
		Genres:     p.Genres,
		Images:     newImages(p.Images),
		Popularity: p.Popularity,
		Followers:  p.Followers.Total,
	}
}

func newAlbum(p albumPayload) Album {
	a := Album{
		ID:               p.ID,
		Name:             p.Name,
		URI:              p.URI,
		Href:             p.Href,
		AlbumType:        AlbumType(p.AlbumType),
		Artists:          newPartialArtists(p.Artists),
		Images:           newImages(p.Images),
		ReleasePrecision: ReleaseDatePrecision(p.ReleaseDatePrecision),
		TotalTracks:      p.TotalTracks,
		Genres:           p.Genres,
		Label:            p.Label,
		Popularity:       p.Popularity,
	}
	if date, err := parseReleaseDate(p.ReleaseDate, a.ReleasePrecision); err == nil {
		a.ReleaseDate = date
	}
	if p.Tracks != nil {
		page := newTrackPage(*p.Tracks)
		a.Tracks = &page
	}
	return a
}

func newTrack(p trackPayload) Track {
	t := Track{
		ID:          p.ID,
		Name:        p.Name,
		URI:         p.URI,
		Href:        p.Href,
		Artists:     newPartialArtists(p.Artists),
		Duration:    time.Duration(p.DurationMS) * time.Millisecond,
		Explicit:    p.Explicit,
		Popularity:  p.Popularity,
		TrackNumber: p.TrackNumber,
		DiscNumber:  p.DiscNumber,
		PreviewURL:  p.PreviewURL,
		IsLocal:     p.IsLocal,
	}
	if p.Album != nil {
		album := newAlbum(*p.Album)
		t.Album = &album
	}
	return t
}

func newPartialUser(p partialUserPayload) PartialUser {
	return PartialUser{ID: p.ID, DisplayName: p.DisplayName, URI: p.URI, Href: p.Href}
}

func newUser(p userPayload) User {
	return User{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		URI:         p.URI,
		Href:        p.Href,
		Images:      newImages(p.Images),
		Country:     p.Country,
		Email:       p.Email,
		Product:     p.Product,
		Followers:   p.Followers.Total,
	}
}

func newPlaylist(p playlistPayload) Playlist {
	pl := Playlist{
		ID:            p.ID,
		Name:          p.Name,
		URI:           p.URI,
		Href:          p.Href,
		Description:   p.Description,
		Owner:         newPartialUser(p.Owner),
		SnapshotID:    p.SnapshotID,
		Collaborative: p.Collaborative,
		Public:        p.Public,
		Images:        newImages(p.Images),
	}
	if p.Tracks != nil {
		pl.TotalTracks = p.Tracks.Total
		if len(p.Tracks.Items) > 0 {
			page := newPlaylistItemPage(*p.Tracks)
			pl.Items = &page
		}
	}
	return pl
}

func newPlaylistItem(p playlistItemPayload) PlaylistItem {
	item := PlaylistItem{
		AddedBy: newPartialUser(p.AddedBy),
		IsLocal: p.IsLocal,
		Track:   newTrack(p.Track),
	}
	if p.AddedAt != "" {
		if t, err := time.Parse(time.RFC3339, p.AddedAt); err == nil {
			item.AddedAt = t
		}
	}
	return item
}

func newActivity(p activityPayload) Activity {
	a := Activity{
		PlayingType: PlayingType(p.CurrentlyPlayingType),
		IsPlaying:   p.IsPlaying,
		Progress:    time.Duration(p.ProgressMS) * time.Millisecond,
		Timestamp:   time.UnixMilli(p.Timestamp).UTC(),
	}
	if a.PlayingType == "" {
		a.PlayingType = PlayingTypeUnknown
	}
	// Episodes and ads carry no track payload worth mapping.
	if p.Item != nil && a.PlayingType == PlayingTypeTrack {
		track := newTrack(*p.Item)
		a.Item = &track
	}
	if p.Device != nil {
		a.Device = &Device{
			ID:            p.Device.ID,
			Name:          p.Device.Name,
			Type:          p.Device.Type,
			Active:        p.Device.IsActive,
			Restricted:    p.Device.IsRestricted,
			VolumePercent: p.Device.VolumePercent,
		}
	}
	if p.Context != nil {
		a.Context = &PlaybackContext{Type: p.Context.Type, URI: p.Context.URI, Href: p.Context.Href}
	}
	return a
}

func newRecentlyPlayedItem(p recentlyPlayedPayload) RecentlyPlayedItem {
	item := RecentlyPlayedItem{Track: newTrack(p.Track)}
	if t, err := time.Parse(time.RFC3339, p.PlayedAt); err == nil {
		item.PlayedAt = t.UTC()
	}
	if p.Context != nil {
		item.Context = &PlaybackContext{Type: p.Context.Type, URI: p.Context.URI, Href: p.Context.Href}
	}
	return item
}

func newAudioFeatures(p audioFeaturesPayload) AudioFeatures {
	return AudioFeatures{
		ID:               p.ID,
		URI:              p.URI,
		Acousticness:     p.Acousticness,
		Danceability:     p.Danceability,
		Energy:           p.Energy,
		Instrumentalness: p.Instrumentalness,
		Liveness:         p.Liveness,
		Loudness:         p.Loudness,
		Speechiness:      p.Speechiness,
		Tempo:            p.Tempo,
		Valence:          p.Valence,
		Key:              p.Key,
		Mode:             p.Mode,
		TimeSignature:    p.TimeSignature,
		Duration:         time.Duration(p.DurationMS) * time.Millisecond,
	}
}

func newTrackPage(p trackPagePayload) TrackPage {
	page := TrackPage{
		Href:     p.Href,
		Limit:    p.Limit,
		Offset:   p.Offset,
		Total:    p.Total,
		Next:     p.Next,
		Previous: p.Previous,
	}
	if len(p.Items) > 0 {
		page.Items = make([]Track, len(p.Items))
		for i, item := range p.Items {
			page.Items[i] = newTrack(item)
		}
	}
	return page
}

func newAlbumPage(p albumPagePayload) AlbumPage {
	page := AlbumPage{
		Href:     p.Href,
		Limit:    p.Limit,
		Offset:   p.Offset,
		Total:    p.Total,
		Next:     p.Next,
		Previous: p.Previous,
	}
	if len(p.Items) > 0 {
		page.Items = make([]Album, len(p.Items))
		for i, item := range p.Items {
			page.Items[i] = newAlbum(item)
		}
	}
	return page
}

func newArtistPage(p artistPagePayload) ArtistPage {
	page := ArtistPage{
		Href:     p.Href,
		Limit:    p.Limit,
		Offset:   p.Offset,
		Total:    p.Total,
		Next:     p.Next,
		Previous: p.Previous,
	}
	if len(p.Items) > 0 {
		page.Items = make([]Artist, len(p.Items))
		for i, item := range p.Items {
			page.Items[i] = newArtist(item)
		}
	}
	return page
}

func newPlaylistPage(p playlistPagePayload) PlaylistPage {
	page := PlaylistPage{
		Href:     p.Href,
		Limit:    p.Limit,
		Offset:   p.Offset,
		Total:    p.Total,
		Next:     p.Next,
		Previous: p.Previous,
	}
	if len(p.Items) > 0 {
		page.Items = make([]Playlist, len(p.Items))
		for i, item := range p.Items {
			page.Items[i] = newPlaylist(item)
		}
	}
	return page
}

func newPlaylistItemPage(p playlistItemPagePayload) PlaylistItemPage {
	page := PlaylistItemPage{
		Href:     p.Href,
		Limit:    p.Limit,
		Offset:   p.Offset,
		Total:    p.Total,
		Next:     p.Next,
		Previous: p.Previous,
	}
	if len(p.Items) > 0 {
		page.Items = make([]PlaylistItem, len(p.Items))
		for i, item := range p.Items {
			page.Items[i] = newPlaylistItem(item)
		}
	}
	return page
}

func newSearchResult(p searchPayload) SearchResult {
	var result SearchResult
	if p.Tracks != nil {
		page := newTrackPage(*p.Tracks)
		result.Tracks = &page
	}
	if p.Albums != nil {
		page := newAlbumPage(*p.Albums)
		result.Albums = &page
	}
	if p.Artists != nil {
		page := newArtistPage(*p.Artists)
		result.Artists = &page
	}
	if p.Playlists != nil {
		page := newPlaylistPage(*p.Playlists)
		result.Playlists = &page
	}
	return result
}

// parseReleaseDate parses an album release date according to its precision.
// Spotify truncates the date string to the precision: "2010", "2010-06" or
// "2010-06-21".
func parseReleaseDate(value string, precision ReleaseDatePrecision) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty release date")
	}
	var layout string
	switch precision {
	case PrecisionDay:
		layout = "2006-01-02"
	case PrecisionMonth:
		layout = "2006-01"
	case PrecisionYear:
		layout = "2006"
	default:
		// Precision missing on some older payloads; infer from the value.
		switch len(value) {
		case len("2006-01-02"):
			layout = "2006-01-02"
		case len("2006-01"):
			layout = "2006-01"
		default:
			layout = "2006"
		}
	}
	return time.Parse(layout, value)
}
