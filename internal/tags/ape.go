package tags

import (
	"bytes"
	"fmt"

	"github.com/simonhull/embcue/internal/binary"
	"github.com/simonhull/embcue/internal/types"
)

// APEScanner reads an APEv1/v2 tag from the end of a file, including
// files that also carry a trailing ID3v1 tag after it.
//
// Only UTF-8 text items are emitted; binary and locator items are
// skipped.
type APEScanner struct{}

const (
	apeFooterSize = 32
	id3v1Size     = 128
)

// Scan implements Scanner.
func (APEScanner) Scan(path string, fn Func) error {
	return withReader(path, func(sr *binary.SafeReader) error {
		return scanAPE(sr, fn)
	})
}

func scanAPE(sr *binary.SafeReader, fn Func) error {
	footerOffset, err := findAPEFooter(sr)
	if err != nil {
		return err
	}

	footer := make([]byte, apeFooterSize)
	if err := sr.ReadAt(footer, footerOffset, "APE footer"); err != nil {
		return err
	}

	tagSize, err := binary.ReadLE[uint32](sr, footerOffset+12, "APE tag size")
	if err != nil {
		return err
	}
	itemCount, err := binary.ReadLE[uint32](sr, footerOffset+16, "APE item count")
	if err != nil {
		return err
	}

	// The tag size covers the items and the footer, not the optional
	// header before them.
	if int64(tagSize) < apeFooterSize || int64(tagSize) > footerOffset+apeFooterSize {
		return &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: footerOffset,
			Reason: fmt.Sprintf("implausible APE tag size %d", tagSize),
		}
	}

	items := make([]byte, int64(tagSize)-apeFooterSize)
	itemsOffset := footerOffset + apeFooterSize - int64(tagSize)
	if len(items) > 0 {
		if err := sr.ReadAt(items, itemsOffset, "APE items"); err != nil {
			return err
		}
	}

	return scanAPEItems(items, itemCount, sr.Path(), fn)
}

// findAPEFooter locates the "APETAGEX" footer at the end of the file,
// looking both at the very end and before a trailing ID3v1 tag.
func findAPEFooter(sr *binary.SafeReader) (int64, error) {
	for _, tail := range []int64{apeFooterSize, apeFooterSize + id3v1Size} {
		offset := sr.Size() - tail
		if offset < 0 {
			continue
		}
		preamble := make([]byte, 8)
		if err := sr.ReadAt(preamble, offset, "APE footer preamble"); err != nil {
			continue
		}
		if string(preamble) == "APETAGEX" {
			return offset, nil
		}
	}

	return 0, &types.UnsupportedFormatError{
		Path:   sr.Path(),
		Reason: "no APE tag at end of file",
	}
}

// scanAPEItems walks the item list. Each item is a LE u32 value size, a
// LE u32 flags word, a NUL-terminated ASCII key, and the value bytes.
func scanAPEItems(items []byte, count uint32, path string, fn Func) error {
	offset := 0

	for i := uint32(0); i < count; i++ {
		if offset+8 > len(items) {
			return &types.CorruptedFileError{
				Path:   path,
				Reason: fmt.Sprintf("truncated APE item %d of %d", i+1, count),
			}
		}

		valueSize := int(uint32(items[offset]) | uint32(items[offset+1])<<8 |
			uint32(items[offset+2])<<16 | uint32(items[offset+3])<<24)
		flags := uint32(items[offset+4]) | uint32(items[offset+5])<<8 |
			uint32(items[offset+6])<<16 | uint32(items[offset+7])<<24
		offset += 8

		nul := bytes.IndexByte(items[offset:], 0)
		if nul < 0 {
			return &types.CorruptedFileError{
				Path:   path,
				Reason: fmt.Sprintf("unterminated key in APE item %d", i+1),
			}
		}
		key := string(items[offset : offset+nul])
		offset += nul + 1

		if offset+valueSize > len(items) {
			return &types.CorruptedFileError{
				Path:   path,
				Reason: fmt.Sprintf("APE item %d value exceeds tag", i+1),
			}
		}
		value := items[offset : offset+valueSize]
		offset += valueSize

		// Item type lives in flags bits 1-2; 0 means UTF-8 text.
		if (flags>>1)&0x3 == 0 {
			fn(key, string(value))
		}
	}

	return nil
}
