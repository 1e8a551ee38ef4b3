// Package tags implements the tag container readers consulted by the
// cue sheet probe: the generic file scanner (FLAC, Ogg, ID3-prefixed
// files), the APEv2 scanner, and the ID3v2 scanner.
//
// Every reader reports name/value text fields through a callback and
// ignores everything else a container may hold (pictures, binary items,
// technical properties). Absence of a tag is not an error.
package tags

import (
	"fmt"
	"os"

	"github.com/simonhull/embcue/internal/binary"
)

// Func receives one text field from a tag container.
type Func func(name, value string)

// Scanner reads one family of tag containers.
type Scanner interface {
	// Scan opens path, walks the container, and invokes fn once per
	// text field found, in container order. A scan error means the
	// container structure could not be read; a file simply lacking
	// this kind of tag returns an error too, and callers are expected
	// to treat any error as "no fields here".
	Scan(path string, fn Func) error
}

// withReader opens path read-only and hands a bounds-checked reader to
// fn, closing the file afterwards.
func withReader(path string, fn func(sr *binary.SafeReader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	return fn(binary.NewSafeReader(f, stat.Size(), path))
}
