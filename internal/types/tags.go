package types

// Tags represents the metadata a cue sheet can attach to a track.
//
// Cue sheets carry a small, flat vocabulary compared to full tag
// containers, so every field here is a plain string. Fields left empty
// simply did not appear in the sheet.
type Tags struct {
	// Title of the track (track-level TITLE directive).
	Title string

	// Artist performing the track (track-level PERFORMER, falling back
	// to the sheet-level PERFORMER).
	Artist string

	// AlbumArtist is the sheet-level PERFORMER.
	AlbumArtist string

	// Album is the sheet-level TITLE.
	Album string

	// Composer is the SONGWRITER directive value.
	Composer string

	// Genre from a "REM GENRE" remark, if present.
	Genre string

	// Date from a "REM DATE" remark, if present.
	Date string

	// Comment from a "REM COMMENT" remark, if present.
	Comment string

	// ISRC is the track's International Standard Recording Code.
	ISRC string
}

// Merge fills empty fields of t from fallback. Existing values are kept,
// which gives track-level directives precedence over sheet-level ones.
func (t *Tags) Merge(fallback Tags) {
	if t.Title == "" {
		t.Title = fallback.Title
	}
	if t.Artist == "" {
		t.Artist = fallback.Artist
	}
	if t.AlbumArtist == "" {
		t.AlbumArtist = fallback.AlbumArtist
	}
	if t.Album == "" {
		t.Album = fallback.Album
	}
	if t.Composer == "" {
		t.Composer = fallback.Composer
	}
	if t.Genre == "" {
		t.Genre = fallback.Genre
	}
	if t.Date == "" {
		t.Date = fallback.Date
	}
	if t.Comment == "" {
		t.Comment = fallback.Comment
	}
	if t.ISRC == "" {
		t.ISRC = fallback.ISRC
	}
}
