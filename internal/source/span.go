package source

import "fmt"

// Span covers the bytes [Start, End) of File.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool    { return s.End == s.Start }
func (s Span) Len() uint32    { return s.End - s.Start }
func (s Span) String() string { return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End) }

// Cover widens s to include other. A span of another file leaves s as is.
func (s Span) Cover(other Span) Span {
	if other.File == s.File {
		s.Start = min(s.Start, other.Start)
		s.End = max(s.End, other.End)
	}
	return s
}

// Contains reports whether other lies inside s.
func (s Span) Contains(other Span) bool {
	if s.File != other.File {
		return false
	}
	return s.Start <= other.Start && other.End <= s.End
}
