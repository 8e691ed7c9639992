package interpolate

import (
	"iter"
	"strings"
)

const (
	tokenOpen  = "${"
	tokenClose = '}'
)

// SegmentKind tells literal text apart from ${...} tokens.
type SegmentKind int

const (
	SegmentLiteral SegmentKind = iota
	SegmentToken
)

// Segment is one piece of a template. For tokens, Text holds the full
// delimited form and Name the body between the delimiters.
type Segment struct {
	Kind SegmentKind
	Text string
	Name string
}

// Scanner splits a template into segments on demand.
type Scanner struct {
	src string
	pos int
}

// NewScanner returns a scanner positioned at the start of template.
func NewScanner(template string) *Scanner {
	return &Scanner{src: template}
}

// Reset restarts the scan over template.
func (s *Scanner) Reset(template string) {
	s.src = template
	s.pos = 0
}

// Next returns the next segment, or false once the template is exhausted.
// An unterminated ${ is returned as literal text.
func (s *Scanner) Next() (Segment, bool) {
	if s.pos >= len(s.src) {
		return Segment{}, false
	}
	rest := s.src[s.pos:]

	open := strings.Index(rest, tokenOpen)
	switch {
	case open < 0:
		return s.literal(len(rest)), true
	case open > 0:
		return s.literal(open), true
	}

	end := strings.IndexByte(rest[len(tokenOpen):], tokenClose)
	if end < 0 {
		return s.literal(len(rest)), true
	}
	name := rest[len(tokenOpen) : len(tokenOpen)+end]

	// "${a${b}" keeps "${a" literal so the inner token still resolves.
	if inner := strings.LastIndex(name, tokenOpen); inner >= 0 {
		return s.literal(len(tokenOpen) + inner), true
	}

	size := len(tokenOpen) + end + 1
	seg := Segment{Kind: SegmentToken, Text: rest[:size], Name: name}
	s.pos += size
	return seg, true
}

func (s *Scanner) literal(size int) Segment {
	seg := Segment{Kind: SegmentLiteral, Text: s.src[s.pos : s.pos+size]}
	s.pos += size
	return seg
}

// Segments yields the segments of template lazily.
func Segments(template string) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		scanner := NewScanner(template)
		for seg, ok := scanner.Next(); ok; seg, ok = scanner.Next() {
			if !yield(seg) {
				return
			}
		}
	}
}
