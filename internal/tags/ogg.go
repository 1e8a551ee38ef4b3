package tags

import (
	"bytes"
	"fmt"

	"github.com/simonhull/embcue/internal/binary"
	"github.com/simonhull/embcue/internal/types"
)

// oggPage is one Ogg page: header flags plus payload.
type oggPage struct {
	headerType byte // 0x01=continued, 0x02=BOS, 0x04=EOS
	open       bool // final lacing value is 255: last packet spills onto the next page
	data       []byte
}

// scanOgg finds the comment header of the first logical stream (the
// second packet for both Vorbis and Opus) and emits its fields.
//
// Header packets always sit in the first few pages, so the walk stops
// after enough pages to assemble two packets.
func scanOgg(sr *binary.SafeReader, fn Func) error {
	var pages []*oggPage
	offset := int64(0)

	// Identification, comment, and setup headers fit in the first
	// handful of pages even with oversized comment blocks.
	for i := 0; i < 8 && offset < sr.Size(); i++ {
		page, next, err := readOggPage(sr, offset)
		if err != nil {
			if i == 0 {
				return fmt.Errorf("read first Ogg page: %w", err)
			}
			break
		}
		pages = append(pages, page)
		offset = next

		if packets := assemblePackets(pages); len(packets) >= 2 {
			return scanCommentPacket(packets[1], sr.Path(), fn)
		}
	}

	return &types.CorruptedFileError{
		Path:   sr.Path(),
		Offset: offset,
		Reason: "no comment header packet in leading Ogg pages",
	}
}

// readOggPage reads the page at offset and returns it with the offset of
// the following page.
func readOggPage(sr *binary.SafeReader, offset int64) (*oggPage, int64, error) {
	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, offset, "Ogg page magic"); err != nil {
		return nil, 0, err
	}
	if string(magic) != "OggS" {
		return nil, 0, fmt.Errorf("invalid Ogg page at offset %d", offset)
	}

	version, err := binary.ReadBE[uint8](sr, offset+4, "Ogg version")
	if err != nil {
		return nil, 0, err
	}
	if version != 0 {
		return nil, 0, fmt.Errorf("unsupported Ogg version: %d", version)
	}

	headerType, err := binary.ReadBE[uint8](sr, offset+5, "Ogg header type")
	if err != nil {
		return nil, 0, err
	}

	segmentCount, err := binary.ReadBE[uint8](sr, offset+26, "segment count")
	if err != nil {
		return nil, 0, err
	}

	segments := make([]byte, segmentCount)
	if err := sr.ReadAt(segments, offset+27, "segment table"); err != nil {
		return nil, 0, err
	}

	dataSize := 0
	for _, seg := range segments {
		dataSize += int(seg)
	}

	data := make([]byte, dataSize)
	dataOffset := offset + 27 + int64(segmentCount)
	if dataSize > 0 {
		if err := sr.ReadAt(data, dataOffset, "page data"); err != nil {
			return nil, 0, err
		}
	}

	open := segmentCount > 0 && segments[segmentCount-1] == 255

	return &oggPage{headerType: headerType, open: open, data: data}, dataOffset + int64(dataSize), nil
}

// assemblePackets concatenates page payloads into completed packets. A
// page whose final lacing value is 255 leaves its last packet open; the
// following page carries the continuation flag and extends it, and the
// packet only counts once a page closes it. Packet ends inside a page
// are not split out; header packets start on page boundaries, which is
// all this scan needs.
func assemblePackets(pages []*oggPage) [][]byte {
	var packets [][]byte
	var current []byte
	pending := false

	for _, page := range pages {
		if page.headerType&0x01 != 0 && pending {
			current = append(current, page.data...)
		} else {
			current = bytes.Clone(page.data)
		}
		if page.open {
			pending = true
			continue
		}
		packets = append(packets, current)
		current = nil
		pending = false
	}

	return packets
}

// scanCommentPacket strips the codec-specific comment header prefix and
// hands the remaining Vorbis comment block to the shared decoder.
func scanCommentPacket(packet []byte, path string, fn Func) error {
	switch {
	case len(packet) > 7 && packet[0] == 0x03 && string(packet[1:7]) == "vorbis":
		return scanVorbisComments(packet[7:], fn)
	case len(packet) > 8 && string(packet[:8]) == "OpusTags":
		return scanVorbisComments(packet[8:], fn)
	}

	return &types.CorruptedFileError{
		Path:   path,
		Reason: "second Ogg packet is not a Vorbis or Opus comment header",
	}
}
