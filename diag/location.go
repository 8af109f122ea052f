package diag

// SourceLocation is a (bufferID, offset) pair identifying a single point in
// some source buffer. The preprocessor/lexer owns the mapping from offsets
// to human-readable file/line/column; this core only ever carries the pair
// around and hands it back to a SourceManager for rendering.
type SourceLocation struct {
	Buffer uint32
	Offset int
}

// NoLocation is the sentinel used by diagnostics that are not anchored to
// any specific source position (e.g. CLI configuration errors).
var NoLocation = SourceLocation{}

// IsValid reports whether the location refers to an actual buffer.
func (l SourceLocation) IsValid() bool {
	return l.Buffer != 0 || l.Offset != 0
}

// SourceRange is a half-open span of source text, used to underline the
// erroneous construct in rendered diagnostics.
type SourceRange struct {
	Start, End SourceLocation
}

// ResolvedPosition is the human-readable form of a SourceLocation, as
// produced by an external SourceManager.
type ResolvedPosition struct {
	File      string
	Line, Col int
}

// SourceManager is the external collaborator that maps locations back to
// file/line/column text and source lines, and tracks macro expansion. The
// lexer/preprocessor supplies the real implementation; this core only
// depends on the interface so it can be exercised standalone in tests.
type SourceManager interface {
	// Resolve returns the human-readable position of loc.
	Resolve(loc SourceLocation) ResolvedPosition

	// Line returns the raw text of a single line (1-indexed) of the buffer
	// that owns loc, for code-frame rendering.
	Line(loc SourceLocation, lineNumber int) (string, bool)
}
