package spotify

// Authorization scopes for the accounts service. Request only what the
// application needs; users see the full list on the consent screen.
const (
	ScopeUGCImageUpload            = "ugc-image-upload"
	ScopeUserReadPlaybackState     = "user-read-playback-state"
	ScopeUserModifyPlaybackState   = "user-modify-playback-state"
	ScopeUserReadCurrentlyPlaying  = "user-read-currently-playing"
	ScopeStreaming                 = "streaming"
	ScopeAppRemoteControl          = "app-remote-control"
	ScopeUserReadEmail             = "user-read-email"
	ScopeUserReadPrivate           = "user-read-private"
	ScopePlaylistReadCollaborative = "playlist-read-collaborative"
	ScopePlaylistModifyPublic      = "playlist-modify-public"
	ScopePlaylistReadPrivate       = "playlist-read-private"
	ScopePlaylistModifyPrivate     = "playlist-modify-private"
	ScopeUserLibraryModify         = "user-library-modify"
	ScopeUserLibraryRead           = "user-library-read"
	ScopeUserTopRead               = "user-top-read"
	ScopeUserReadPlaybackPosition  = "user-read-playback-position"
	ScopeUserReadRecentlyPlayed    = "user-read-recently-played"
	ScopeUserFollowRead            = "user-follow-read"
	ScopeUserFollowModify          = "user-follow-modify"
)
