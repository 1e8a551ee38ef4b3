package types

import "time"

// Track is one logical track extracted from an embedded cue sheet.
//
// A Track describes a span of audio inside the container file the cue
// sheet was read from: metadata plus a start offset, and an end offset
// when the following track's position made it known.
type Track struct {
	// URI of the audio data. For an embedded cue sheet this is always
	// the base name of the container file; any FILE value found inside
	// the sheet text is discarded, since an embedded sheet necessarily
	// describes the file it is stored in.
	URI string

	// Number is the track number from the TRACK directive. Numbers are
	// not validated or renumbered; out-of-order or duplicate numbers in
	// the source are preserved.
	Number int

	// Tags holds the metadata merged from sheet-level and track-level
	// directives. Track-level values win over sheet-level ones.
	Tags Tags

	// Start is the track's offset within the container file, taken
	// from its primary index (INDEX 01 when present, otherwise the
	// first index seen). Zero when the timestamp was malformed.
	Start time.Duration

	// End is the track's end offset, derived from the next track's
	// start. Zero for the final track, whose end is unknown.
	End time.Duration
}
