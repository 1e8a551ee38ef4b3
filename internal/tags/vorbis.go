package tags

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// scanVorbisComments decodes a Vorbis comment block (the format shared
// by FLAC VORBIS_COMMENT blocks, Vorbis comment headers, and OpusTags)
// and emits every field as a name/value pair.
//
// Layout: vendor length (LE u32), vendor string, field count (LE u32),
// then per field a LE u32 length and a "NAME=value" UTF-8 string.
func scanVorbisComments(block []byte, fn Func) error {
	if len(block) < 8 {
		return fmt.Errorf("comment block too short: %d bytes", len(block))
	}

	vendorLen := binary.LittleEndian.Uint32(block[0:4])
	offset := 4 + int(vendorLen)
	if offset+4 > len(block) {
		return fmt.Errorf("vendor string length %d exceeds block", vendorLen)
	}

	count := binary.LittleEndian.Uint32(block[offset : offset+4])
	offset += 4

	for i := uint32(0); i < count; i++ {
		if offset+4 > len(block) {
			return fmt.Errorf("truncated comment %d of %d", i+1, count)
		}
		length := int(binary.LittleEndian.Uint32(block[offset : offset+4]))
		offset += 4
		if offset+length > len(block) {
			return fmt.Errorf("comment %d length %d exceeds block", i+1, length)
		}

		comment := string(block[offset : offset+length])
		offset += length

		// Fields without a separator are malformed; skip them rather
		// than failing the scan.
		if name, value, ok := strings.Cut(comment, "="); ok {
			fn(name, value)
		}
	}

	return nil
}
