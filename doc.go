// Package embcue extracts playlists from embedded cue sheets.
//
// Some audio files carry a complete cue sheet inside a metadata tag
// (conventionally a field named CUESHEET) instead of next to them as a
// .cue file. embcue probes a file's tag containers for such a field and
// turns the sheet into an ordered sequence of tracks with per-track
// time boundaries and metadata.
//
// # Quick Start
//
//	playlist, err := embcue.Open("/music/album.flac")
//	if err != nil {
//		// errors.Is(err, embcue.ErrNoCueSheet) means the file simply
//		// has no embedded cue sheet; that is the common case.
//		return err
//	}
//	defer playlist.Close()
//
//	for track := playlist.Read(); track != nil; track = playlist.Read() {
//		fmt.Printf("%02d %s [%s]\n", track.Number, track.Tags.Title, track.Start)
//	}
//
// # Probing
//
// Open consults tag containers in a fixed order and stops at the first
// one holding a non-empty CUESHEET field:
//
//  1. the file's native container (FLAC or Ogg comments, or a leading
//     ID3v2 tag on otherwise untyped files)
//  2. an APEv2 tag at the end of the file
//  3. an ID3v2 tag at the start of the file
//
// Only local, absolute file paths are accepted; anything else declines
// with ErrNotLocal.
//
// # Reading
//
// Read is pull-based: each call advances through the sheet text only as
// far as needed to complete one more track, and returns nil permanently
// once the sheet is exhausted. Tracks come out in the order of their
// TRACK directives. Every track's URI is the base name of the container
// file; the sheet's own FILE reference is discarded, since an embedded
// sheet always describes the file it is stored in.
//
// Damaged input degrades instead of failing: unrecognized directive
// lines are skipped and malformed timestamps default to a zero offset.
// Check Playlist.Warnings for what was skipped.
//
// A Playlist is not safe for concurrent use; serialize Read calls per
// playlist.
package embcue
