package tags

import (
	"encoding/binary"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"

	binutil "github.com/simonhull/embcue/internal/binary"
	"github.com/simonhull/embcue/internal/types"
)

// ID3Scanner reads an ID3v2.3 or ID3v2.4 tag from the start of a file.
//
// Text frames are emitted under their four-character frame ID; TXXX
// frames are emitted under their description string, which is how
// fields like CUESHEET are stored in ID3.
type ID3Scanner struct{}

// Scan implements Scanner.
func (ID3Scanner) Scan(path string, fn Func) error {
	return withReader(path, func(sr *binutil.SafeReader) error {
		return scanID3v2(sr, fn)
	})
}

// ID3v2 text encodings.
const (
	id3EncodingLatin1  = 0
	id3EncodingUTF16   = 1 // with BOM
	id3EncodingUTF16BE = 2 // without BOM (ID3v2.4)
	id3EncodingUTF8    = 3 // ID3v2.4
)

func scanID3v2(sr *binutil.SafeReader, fn Func) error {
	header := make([]byte, 10)
	if err := sr.ReadAt(header, 0, "ID3v2 header"); err != nil {
		return err
	}
	if string(header[0:3]) != "ID3" {
		return &types.UnsupportedFormatError{
			Path:   sr.Path(),
			Reason: "no ID3v2 tag at start of file",
		}
	}

	version := header[3]
	if version != 3 && version != 4 {
		return &types.UnsupportedFormatError{
			Path:   sr.Path(),
			Reason: "unsupported ID3v2 version",
		}
	}

	flags := header[5]
	body := make([]byte, int(decodeSynchsafe(header[6:10])))
	if err := sr.ReadAt(body, 10, "ID3v2 tag body"); err != nil {
		return err
	}

	// ID3v2.3 applies unsynchronisation to the whole tag body; ID3v2.4
	// moved it to per-frame format flags.
	if version == 3 && flags&0x80 != 0 {
		body = removeUnsync(body)
	}

	offset := 0

	// Skip the extended header when present.
	if flags&0x40 != 0 && len(body) >= 4 {
		if version == 4 {
			offset = int(decodeSynchsafe(body[0:4]))
		} else {
			offset = int(binary.BigEndian.Uint32(body[0:4])) + 4
		}
	}

	for offset+10 <= len(body) {
		// Padding: a zero byte where a frame ID should be.
		if body[offset] == 0 {
			break
		}

		frameID := string(body[offset : offset+4])
		var frameSize int
		if version == 4 {
			frameSize = int(decodeSynchsafe(body[offset+4 : offset+8]))
		} else {
			frameSize = int(binary.BigEndian.Uint32(body[offset+4 : offset+8]))
		}
		formatFlags := body[offset+9]
		if frameSize == 0 || offset+10+frameSize > len(body) {
			break
		}
		data := body[offset+10 : offset+10+frameSize]
		offset += 10 + frameSize

		if version == 4 {
			// A data length indicator precedes the payload when flagged.
			if formatFlags&0x01 != 0 {
				if len(data) < 4 {
					continue
				}
				data = data[4:]
			}
			// The tag-level unsync flag in v2.4 means every frame is
			// unsynchronized.
			if formatFlags&0x02 != 0 || flags&0x80 != 0 {
				data = removeUnsync(data)
			}
		}

		switch {
		case frameID == "TXXX":
			// Layout: encoding byte, description, terminator, value.
			if len(data) >= 1 {
				desc, value := splitID3Pair(data[1:], data[0])
				if desc != "" {
					fn(desc, value)
				}
			}
		case frameID[0] == 'T':
			if len(data) >= 1 {
				fn(frameID, decodeID3Text(data[1:], data[0]))
			}
		}
	}

	return nil
}

// removeUnsync reverses ID3 unsynchronisation: each 0x00 byte directly
// following 0xFF was inserted by the writer and is dropped.
func removeUnsync(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		out = append(out, data[i])
		if data[i] == 0xFF && i+1 < len(data) && data[i+1] == 0x00 {
			i++
		}
	}
	return out
}

// decodeSynchsafe decodes a synchsafe integer: 7 data bits per byte,
// bit 7 always zero.
func decodeSynchsafe(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// splitID3Pair splits TXXX frame data into its description and value at
// the encoding-dependent terminator.
func splitID3Pair(data []byte, encoding byte) (desc, value string) {
	if encoding == id3EncodingUTF16 || encoding == id3EncodingUTF16BE {
		for i := 0; i+1 < len(data); i += 2 {
			if data[i] == 0 && data[i+1] == 0 {
				return decodeID3Text(data[:i], encoding), decodeID3Text(data[i+2:], encoding)
			}
		}
	} else {
		for i := range data {
			if data[i] == 0 {
				return decodeID3Text(data[:i], encoding), decodeID3Text(data[i+1:], encoding)
			}
		}
	}

	// No terminator: the whole frame is the description, value empty.
	return decodeID3Text(data, encoding), ""
}

// decodeID3Text decodes frame text per its encoding byte and strips
// trailing terminators.
func decodeID3Text(data []byte, encoding byte) string {
	switch encoding {
	case id3EncodingLatin1:
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return ""
		}
		return strings.TrimRight(string(decoded), "\x00")

	case id3EncodingUTF16, id3EncodingUTF16BE:
		return strings.TrimRight(decodeUTF16(data, encoding == id3EncodingUTF16BE), "\x00")

	case id3EncodingUTF8:
		return strings.TrimRight(string(data), "\x00")
	}

	return ""
}

// decodeUTF16 decodes UTF-16 text, honoring a leading BOM when present
// and defaulting to big-endian otherwise.
func decodeUTF16(data []byte, bigEndian bool) string {
	if len(data) >= 2 {
		switch {
		case data[0] == 0xFF && data[1] == 0xFE:
			bigEndian = false
			data = data[2:]
		case data[0] == 0xFE && data[1] == 0xFF:
			bigEndian = true
			data = data[2:]
		}
	}

	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		if bigEndian {
			units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
		} else {
			units = append(units, uint16(data[i+1])<<8|uint16(data[i]))
		}
	}

	return string(utf16.Decode(units))
}
