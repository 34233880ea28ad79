package subtitle

import (
	"strings"
	"unicode"
)

// Line separator and classification markers
const (
	LineSeparator = "\n"
	TimingMarker  = "-->"
)

// Kind classifies a subtitle line
type Kind int

const (
	// Structural lines (index numbers, timing ranges, blanks) are copied verbatim
	Structural Kind = iota
	// Translatable lines carry caption text
	Translatable
)

// String returns a readable name for the kind
func (k Kind) String() string {
	switch k {
	case Structural:
		return "structural"
	case Translatable:
		return "translatable"
	default:
		return "unknown"
	}
}

// Line is one raw line of a subtitle document together with its classification
type Line struct {
	Raw  string
	Kind Kind
}

// Document is an ordered sequence of subtitle lines
type Document struct {
	Lines []Line
}

// Parse splits text on "\n" and classifies every line.
// The result always has exactly strings.Count(text, "\n")+1 lines.
func Parse(text string) Document {
	raw := strings.Split(text, LineSeparator)
	lines := make([]Line, len(raw))
	for i, r := range raw {
		lines[i] = Line{Raw: r, Kind: Classify(r)}
	}
	return Document{Lines: lines}
}

// Classify returns Structural for blank lines, all-digit lines and timing ranges,
// Translatable otherwise. The test is done on the trimmed text.
func Classify(raw string) Kind {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || isDigits(trimmed) || strings.Contains(raw, TimingMarker) {
		return Structural
	}
	return Translatable
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// Len returns the number of lines in the document
func (d Document) Len() int {
	return len(d.Lines)
}

// Translatable returns the number of translatable lines
func (d Document) Translatable() int {
	n := 0
	for _, l := range d.Lines {
		if l.Kind == Translatable {
			n++
		}
	}
	return n
}

// String joins the document back into text with the original separator
func (d Document) String() string {
	var b strings.Builder
	for i, l := range d.Lines {
		if i > 0 {
			b.WriteString(LineSeparator)
		}
		b.WriteString(l.Raw)
	}
	return b.String()
}

// Text returns the caption text to send for translation. A trailing carriage
// return left over from CRLF files is not part of the caption.
func (l Line) Text() string {
	return strings.TrimSuffix(l.Raw, "\r")
}

// lineBreaks folds line breaks inside replacement text into spaces
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// WithText returns a copy of the line carrying replacement caption text,
// keeping a trailing carriage return if the original had one. Line breaks in
// text become spaces so the line stays a single line.
func (l Line) WithText(text string) Line {
	text = lineBreaks.Replace(strings.TrimRight(text, "\r\n"))
	if strings.HasSuffix(l.Raw, "\r") {
		text += "\r"
	}
	return Line{Raw: text, Kind: l.Kind}
}
