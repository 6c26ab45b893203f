// Package source provides the immutable view over one source file's text
// and the spans every syntax node is tagged with.
package source

import "sort"

// File is an immutable view of one named source file.
type File struct {
	// Name is the file name (may be synthetic for in-memory content).
	Name string

	// Text is the full file text.
	Text string

	lines []LineInfo
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFile creates a File and builds its line index.
func NewFile(name, text string) *File {
	return &File{
		Name:  name,
		Text:  text,
		lines: buildLines(text),
	}
}

// buildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func buildLines(text string) []LineInfo {
	if len(text) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx := range len(text) {
		if text[idx] != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && text[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	// Last line (may not have trailing newline).
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(text),
		EndOffset:    len(text),
	})

	return lines
}

// Len returns the length of the text in bytes.
func (f *File) Len() int {
	return len(f.Text)
}

// Span returns the span covering the whole file.
func (f *File) Span() Span {
	return Span{Start: 0, End: len(f.Text)}
}

// Slice returns the literal text covered by span.
// Out-of-range spans are clamped to the file.
func (f *File) Slice(span Span) string {
	start, end := span.Start, span.End
	if start < 0 {
		start = 0
	}
	if end > len(f.Text) {
		end = len(f.Text)
	}
	if start >= end {
		return ""
	}
	return f.Text[start:end]
}

// Position converts a byte offset to a 1-based line and column.
// Returns the zero Position if the offset is out of range.
func (f *File) Position(offset int) Position {
	if offset < 0 || len(f.lines) == 0 {
		return Position{}
	}

	if offset >= len(f.Text) {
		last := f.lines[len(f.lines)-1]
		return Position{Line: len(f.lines), Column: offset - last.StartOffset + 1}
	}

	lineIdx := sort.Search(len(f.lines), func(i int) bool {
		return f.lines[i].EndOffset > offset
	})
	if lineIdx >= len(f.lines) {
		lineIdx = len(f.lines) - 1
	}

	info := f.lines[lineIdx]
	if offset < info.StartOffset {
		return Position{}
	}

	return Position{Line: lineIdx + 1, Column: offset - info.StartOffset + 1}
}

// Range converts a span to its line/column range.
func (f *File) Range(span Span) Range {
	return Range{Start: f.Position(span.Start), End: f.Position(span.End)}
}

// Line returns the content of a 1-based line number, excluding the newline.
// Returns "" if the line number is out of range.
func (f *File) Line(line int) string {
	if line < 1 || line > len(f.lines) {
		return ""
	}
	info := f.lines[line-1]
	return f.Text[info.StartOffset:info.NewlineStart]
}

// LineStart returns the byte offset at which a 1-based line begins.
func (f *File) LineStart(line int) (int, bool) {
	if line < 1 || line > len(f.lines) {
		return 0, false
	}
	return f.lines[line-1].StartOffset, true
}
