package subtitle

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Output naming defaults
const (
	DefaultOutputSuffix = "-ru_translated"
	DefaultOutputExt    = "srt"
	LanguageTagLength   = 2
)

// ErrNoLanguageTag is returned when a file name has no penultimate dot-delimited segment
var ErrNoLanguageTag = errors.New("file name has no language segment")

// LanguageTag extracts the language tag from a subtitle file name: the
// penultimate dot-delimited segment of the base name, cut to two characters.
// "movie.en.srt" yields "en", "en.srt" yields "en".
func LanguageTag(path string) (string, error) {
	base := filepath.Base(path)
	parts := strings.Split(base, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("%s: %w", base, ErrNoLanguageTag)
	}
	segment := parts[len(parts)-2]
	runes := []rune(segment)
	if len(runes) > LanguageTagLength {
		runes = runes[:LanguageTagLength]
	}
	return string(runes), nil
}

// OutputName builds "{tag}{suffix}.{ext}", falling back to the defaults for
// empty suffix or extension.
func OutputName(tag, suffix, ext string) string {
	if suffix == "" {
		suffix = DefaultOutputSuffix
	}
	if ext == "" {
		ext = DefaultOutputExt
	}
	return tag + suffix + "." + strings.TrimPrefix(ext, ".")
}

// OutputPath places the translated file next to the input file
func OutputPath(inputPath, tag, suffix, ext string) string {
	return filepath.Join(filepath.Dir(inputPath), OutputName(tag, suffix, ext))
}
