// Package platform contains OS integration used by the grabber: default
// directories, revealing files in the system file manager, locked output
// writes and playlist expansion through the ytdlp library.
package platform
