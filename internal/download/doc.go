// Package download fetches video, subtitles or thumbnails for a URL through
// yt-dlp (via github.com/lrstanley/go-ytdlp). It builds the yt-dlp options for
// each content type, runs requests on background goroutines under a parallel
// limit and reports progress and completion through an event sink.
package download
