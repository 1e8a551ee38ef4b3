package library

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/simonhull/embcue/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleTracks() []*types.Track {
	return []*types.Track{
		{
			Number: 1,
			Tags:   types.Tags{Title: "Opening", Artist: "Artist", Album: "Album"},
			Start:  0,
			End:    3 * time.Minute,
		},
		{
			Number: 2,
			Tags:   types.Tags{Title: "Closing", Artist: "Artist", Album: "Album"},
			Start:  3 * time.Minute,
		},
	}
}

func TestReplaceAndQueryTracks(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	mtime := time.Unix(1700000000, 0)

	if err := store.ReplacePlaylist(ctx, "/music/mix.flac", mtime, sampleTracks()); err != nil {
		t.Fatalf("ReplacePlaylist: %v", err)
	}

	tracks, err := store.Tracks(ctx, "/music/mix.flac")
	if err != nil {
		t.Fatalf("Tracks: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}

	first := tracks[0]
	if first.Number != 1 {
		t.Errorf("number = %d, want 1", first.Number)
	}
	if first.URI != "mix.flac" {
		t.Errorf("URI = %q, want mix.flac", first.URI)
	}
	if first.Tags.Title != "Opening" || first.Tags.Artist != "Artist" {
		t.Errorf("tags = %+v", first.Tags)
	}
	if first.End != 3*time.Minute {
		t.Errorf("end = %v, want 3m", first.End)
	}
	if tracks[1].Start != 3*time.Minute || tracks[1].End != 0 {
		t.Errorf("second span = %v..%v", tracks[1].Start, tracks[1].End)
	}
}

func TestReplacePlaylistReplacesPreviousScan(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	mtime := time.Unix(1700000000, 0)

	if err := store.ReplacePlaylist(ctx, "/music/mix.flac", mtime, sampleTracks()); err != nil {
		t.Fatalf("first ReplacePlaylist: %v", err)
	}

	rescan := []*types.Track{{Number: 1, Tags: types.Tags{Title: "Only"}}}
	if err := store.ReplacePlaylist(ctx, "/music/mix.flac", mtime.Add(time.Hour), rescan); err != nil {
		t.Fatalf("second ReplacePlaylist: %v", err)
	}

	tracks, err := store.Tracks(ctx, "/music/mix.flac")
	if err != nil {
		t.Fatalf("Tracks: %v", err)
	}
	if len(tracks) != 1 || tracks[0].Tags.Title != "Only" {
		t.Fatalf("rescan left %d tracks (%+v), want the single new one", len(tracks), tracks)
	}

	containers, err := store.Containers(ctx)
	if err != nil {
		t.Fatalf("Containers: %v", err)
	}
	if len(containers) != 1 {
		t.Fatalf("got %d containers, want 1", len(containers))
	}
	if !containers[0].ModTime.Equal(mtime.Add(time.Hour)) {
		t.Errorf("mtime = %v, want the rescan's", containers[0].ModTime)
	}
}

func TestContainersListing(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	mtime := time.Unix(1700000000, 0)

	if err := store.ReplacePlaylist(ctx, "/music/b.flac", mtime, sampleTracks()); err != nil {
		t.Fatalf("ReplacePlaylist: %v", err)
	}
	if err := store.ReplacePlaylist(ctx, "/music/a.flac", mtime, nil); err != nil {
		t.Fatalf("ReplacePlaylist: %v", err)
	}

	containers, err := store.Containers(ctx)
	if err != nil {
		t.Fatalf("Containers: %v", err)
	}
	if len(containers) != 2 {
		t.Fatalf("got %d containers, want 2", len(containers))
	}
	if containers[0].Path != "/music/a.flac" || containers[1].Path != "/music/b.flac" {
		t.Errorf("order = %q, %q, want path order", containers[0].Path, containers[1].Path)
	}
	if containers[0].TrackNum != 0 || containers[1].TrackNum != 2 {
		t.Errorf("track counts = %d, %d, want 0 and 2", containers[0].TrackNum, containers[1].TrackNum)
	}
}

func TestTracksUnknownPath(t *testing.T) {
	store := openTestStore(t)

	tracks, err := store.Tracks(context.Background(), "/music/nope.flac")
	if err != nil {
		t.Fatalf("Tracks: %v", err)
	}
	if len(tracks) != 0 {
		t.Fatalf("got %d tracks for an unindexed path", len(tracks))
	}
}
