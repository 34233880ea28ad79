// Command yt-grabber is the headless front-end: it downloads video, subtitles
// or thumbnails through yt-dlp and translates .srt files from the terminal.
package main
