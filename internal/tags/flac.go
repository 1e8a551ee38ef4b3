package tags

import (
	"fmt"

	"github.com/simonhull/embcue/internal/binary"
)

// FLAC metadata block types. Only VORBIS_COMMENT carries text fields.
const (
	flacBlockStreamInfo    = 0
	flacBlockVorbisComment = 4
)

// scanFLAC walks the FLAC metadata blocks after the "fLaC" marker and
// emits the fields of every VORBIS_COMMENT block found.
func scanFLAC(sr *binary.SafeReader, fn Func) error {
	offset := int64(4)

	for offset < sr.Size() {
		header, err := binary.ReadBE[uint32](sr, offset, "metadata block header")
		if err != nil {
			return fmt.Errorf("read FLAC block header: %w", err)
		}

		isLast := (header >> 31) == 1
		blockType := uint8((header >> 24) & 0x7F)
		blockLength := int64(header & 0x00FFFFFF)
		offset += 4

		if blockType == flacBlockVorbisComment {
			block := make([]byte, blockLength)
			if err := sr.ReadAt(block, offset, "VORBIS_COMMENT block"); err != nil {
				return fmt.Errorf("read VORBIS_COMMENT: %w", err)
			}
			if err := scanVorbisComments(block, fn); err != nil {
				return fmt.Errorf("parse VORBIS_COMMENT: %w", err)
			}
		}

		offset += blockLength
		if isLast {
			break
		}
	}

	return nil
}
