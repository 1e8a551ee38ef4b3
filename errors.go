package embcue

import (
	"errors"

	"github.com/simonhull/embcue/internal/types"
)

// ErrNotLocal reports that a URI is not a local absolute file path.
// Remote URIs are outside this package's scope and are declined before
// any tag reader runs.
var ErrNotLocal = errors.New("not a local file path")

// ErrNoCueSheet reports that no tag container in the file holds a
// CUESHEET field. This is the expected outcome for most audio files,
// not a failure; dispatchers should move on to another handler.
var ErrNoCueSheet = errors.New("no embedded cue sheet")

// CorruptedFileError is an alias to types.CorruptedFileError, returned
// by tag scanners when a container's structure is invalid.
type CorruptedFileError = types.CorruptedFileError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError,
// returned by tag scanners for files they do not recognize.
type UnsupportedFormatError = types.UnsupportedFormatError

// Warning is an alias to types.Warning, a non-fatal problem recorded
// while parsing a cue sheet.
type Warning = types.Warning
