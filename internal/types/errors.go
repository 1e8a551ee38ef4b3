package types

import "fmt"

// CorruptedFileError is returned when a tag container's structure is
// invalid and cannot be walked further.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted tag data at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// UnsupportedFormatError is returned when a file's magic bytes match no
// tag container a scanner knows how to read.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// Warning represents a non-fatal issue encountered while parsing a cue
// sheet. Warnings never abort the parse; they record what was skipped or
// defaulted so callers can surface it if they care.
type Warning struct {
	// Line number within the cue sheet (1-based), 0 if not applicable.
	Line int

	// Warning message.
	Message string
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return w.Message
}
