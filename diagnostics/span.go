// Package diagnostics collects the errors and warnings produced while
// validating a schema, and renders them against the original source text.
package diagnostics

// FileID identifies a source file within a multi-file schema. A single
// schema.prisma-style file validated on its own always carries FileIDZero.
type FileID uint32

// FileIDZero is the identifier of the first (or only) source file.
const FileIDZero FileID = 0

// Span is a half-open byte range [Start, End) into a source file's text.
type Span struct {
	Start  int
	End    int
	FileID FileID
}

// NewSpan builds a span over the given file.
func NewSpan(start, end int, fileID FileID) Span {
	return Span{Start: start, End: end, FileID: fileID}
}

// EmptySpan is the zero-width span at the start of the default file, used
// when no more precise location is available.
func EmptySpan() Span {
	return Span{}
}

// Contains reports whether position lies within the span, bounds included.
func (s Span) Contains(position int) bool {
	return position >= s.Start && position <= s.End
}
