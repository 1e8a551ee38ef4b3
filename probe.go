package embcue

import (
	"path/filepath"
	"strings"

	"github.com/simonhull/embcue/internal/tags"
)

// TagScanner is an alias to tags.Scanner, the interface a tag container
// reader exposes to the probe. Custom scanners can be injected with
// WithScanners.
type TagScanner = tags.Scanner

// TagFunc is an alias to tags.Func, the callback a scanner invokes once
// per text field found.
type TagFunc = tags.Func

// cueSheetField is the tag field holding an embedded cue sheet, matched
// case-insensitively.
const cueSheetField = "cuesheet"

// defaultScanners returns the probe order: native container first, then
// APE, then ID3. The order is significant; the first scanner yielding a
// non-empty CUESHEET value wins and the rest are never consulted.
func defaultScanners() []TagScanner {
	return []TagScanner{
		tags.FileScanner{},
		tags.APEScanner{},
		tags.ID3Scanner{},
	}
}

// ProbeCueSheet looks for an embedded cue sheet in the file's tag
// containers and returns its text. ok is false when no container holds
// a non-empty CUESHEET field.
func ProbeCueSheet(path string) (sheet string, ok bool) {
	return probeCueSheet(path, defaultScanners())
}

func probeCueSheet(path string, scanners []TagScanner) (string, bool) {
	for _, scanner := range scanners {
		var sheet string
		var found bool

		// Only the first CUESHEET field within a container counts;
		// duplicates are ignored. Scanner errors mean "no fields
		// here", never a failed probe.
		_ = scanner.Scan(path, func(name, value string) {
			if !found && strings.EqualFold(name, cueSheetField) {
				sheet, found = value, true
			}
		})

		if found && sheet != "" {
			return sheet, true
		}
	}

	return "", false
}

// isLocalPath reports whether uri names a local file: an absolute path
// with no URI scheme.
func isLocalPath(uri string) bool {
	if uri == "" {
		return false
	}
	if i := strings.Index(uri, "://"); i > 0 {
		return false
	}
	return filepath.IsAbs(uri)
}
