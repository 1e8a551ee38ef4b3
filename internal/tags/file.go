package tags

import (
	"github.com/simonhull/embcue/internal/binary"
	"github.com/simonhull/embcue/internal/types"
)

// FileScanner reads the file's native tag container, detected by magic
// bytes: FLAC metadata blocks, Ogg comment headers, or a leading ID3v2
// tag on otherwise untyped files.
type FileScanner struct{}

// Scan implements Scanner.
func (FileScanner) Scan(path string, fn Func) error {
	return withReader(path, func(sr *binary.SafeReader) error {
		magic := make([]byte, 4)
		if err := sr.ReadAt(magic, 0, "magic bytes"); err != nil {
			return err
		}

		switch {
		case string(magic) == "fLaC":
			return scanFLAC(sr, fn)
		case string(magic) == "OggS":
			return scanOgg(sr, fn)
		case string(magic[:3]) == "ID3":
			return scanID3v2(sr, fn)
		}

		return &types.UnsupportedFormatError{
			Path:   sr.Path(),
			Reason: "no recognized native tag container",
		}
	})
}
