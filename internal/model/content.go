package model

import (
	"fmt"
	"strings"
)

// ContentType selects what a download run fetches for a URL
type ContentType string

const (
	ContentVideo     ContentType = "video"
	ContentSubtitles ContentType = "subtitles"
	ContentThumbnail ContentType = "thumbnail"
)

// ContentTypes lists the supported content types in UI order
var ContentTypes = []ContentType{ContentVideo, ContentSubtitles, ContentThumbnail}

// ParseContentType converts user input into a ContentType
func ParseContentType(s string) (ContentType, error) {
	ct := ContentType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ContentTypes {
		if ct == known {
			return ct, nil
		}
	}
	return "", fmt.Errorf("unsupported content type: %q", s)
}

// Label returns the capitalized name used in completion messages ("Video")
func (ct ContentType) Label() string {
	if ct == "" {
		return ""
	}
	return strings.ToUpper(string(ct[:1])) + string(ct[1:])
}

// CompletionMessage returns the message shown when a download of this type finishes
func (ct ContentType) CompletionMessage() string {
	return ct.Label() + " Download Complete"
}
