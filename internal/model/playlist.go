package model

// PlaylistEntry is one video listed in a playlist
type PlaylistEntry struct {
	VideoID string
	Title   string
	URL     string
}
