package emitter

import "strings"

// DefaultIndent is the number of spaces per indentation level.
const DefaultIndent = 4

// Writer accumulates the output of one unit. The current depth's indent is
// written only at the start of a line. A Writer is not safe for concurrent
// use.
type Writer struct {
	buf         strings.Builder
	indent      string
	depth       int
	atLineStart bool
}

// NewWriter returns a Writer indenting by width spaces per level; a width
// below one selects DefaultIndent.
func NewWriter(width int) *Writer {
	if width < 1 {
		width = DefaultIndent
	}

	return &Writer{indent: strings.Repeat(" ", width), atLineStart: true}
}

// Enter increases the depth by one level.
func (w *Writer) Enter() { w.depth++ }

// Leave decreases the depth by one level.
func (w *Writer) Leave() {
	if w.depth > 0 {
		w.depth--
	}
}

// Depth returns the current depth.
func (w *Writer) Depth() int { return w.depth }

// Write appends text, indenting it when it starts a line. Text must not
// contain newlines; use Raw for multi-line text.
func (w *Writer) Write(text string) {
	if text == "" {
		return
	}

	if w.atLineStart {
		w.buf.WriteString(strings.Repeat(w.indent, w.depth))
		w.atLineStart = false
	}

	w.buf.WriteString(text)
}

// Line appends text and ends the line.
func (w *Writer) Line(text string) {
	w.Write(text)
	w.buf.WriteByte('\n')
	w.atLineStart = true
}

// Raw appends text that may span lines; only its first line is indented.
func (w *Writer) Raw(text string) {
	if text == "" {
		return
	}

	w.Write(text)
	w.atLineStart = strings.HasSuffix(text, "\n")
}

// Inline appends text that may span lines as part of the current line,
// such as the body of a raw string. No indent follows its newlines.
func (w *Writer) Inline(text string) {
	w.Write(text)
}

// AtLineStart reports whether the next write begins a new line.
func (w *Writer) AtLineStart() bool { return w.atLineStart }

// Mark is a position in the output that Truncate can return to.
type Mark struct {
	size        int
	depth       int
	atLineStart bool
}

// Mark returns the current position.
func (w *Writer) Mark() Mark {
	return Mark{size: w.buf.Len(), depth: w.depth, atLineStart: w.atLineStart}
}

// Truncate discards everything written after m.
func (w *Writer) Truncate(m Mark) {
	if m.size < w.buf.Len() {
		kept := w.buf.String()[:m.size]
		w.buf.Reset()
		w.buf.WriteString(kept)
	}

	w.depth = m.depth
	w.atLineStart = m.atLineStart
}

// String returns the accumulated output.
func (w *Writer) String() string { return w.buf.String() }
