package embcue

import "github.com/simonhull/embcue/internal/types"

// Track is an alias to types.Track, the unit emitted by Playlist.Read.
// Re-exported from internal/types so internal packages and the public
// API share one definition.
type Track = types.Track

// Tags is an alias to types.Tags, the metadata bundle on a Track.
type Tags = types.Tags
