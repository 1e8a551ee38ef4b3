package embcue

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/embcue/internal/cue"
)

// Playlist is an open embedded-cue playlist session.
//
// A Playlist owns the probed cue sheet text, a read cursor into it, and
// the incremental parser; nothing is shared between sessions. It is not
// safe for concurrent Read calls.
//
// Always call Close when done:
//
//	playlist, err := embcue.Open(path)
//	if err != nil {
//		return err
//	}
//	defer playlist.Close()
type Playlist struct {
	// Path the playlist was opened from.
	Path string

	// filename overrides the sheet's FILE reference on every emitted
	// track: an embedded sheet always points at its own container.
	filename string

	sheet  string
	cursor *cue.Cursor
	parser *cue.Parser
	closed bool
}

// Open probes path for an embedded cue sheet and opens a playlist
// session over it.
//
// Two sentinel errors mark the expected decline cases: ErrNotLocal for
// anything that is not a local absolute file path, and ErrNoCueSheet
// when no tag container holds a CUESHEET field. Both mean "not my
// file", not failure; most audio files decline this way.
func Open(path string, opts ...Option) (*Playlist, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	if !isLocalPath(path) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotLocal)
	}

	sheet, ok := probeCueSheet(path, options.scanners)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNoCueSheet)
	}

	return &Playlist{
		Path:     path,
		filename: filepath.Base(path),
		sheet:    sheet,
		cursor:   cue.NewCursor(sheet),
		parser:   cue.NewParser(),
	}, nil
}

// OpenContext is Open with an up-front context check. Probing performs
// ordinary blocking file reads; once open, a Playlist never touches the
// file again.
func OpenContext(ctx context.Context, path string, opts ...Option) (*Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// Read returns the next track of the playlist, or nil permanently once
// the sheet is exhausted.
//
// Read advances the cursor and parser only as far as needed to complete
// one track. Every returned track's URI is the base name of the
// container file.
func (p *Playlist) Read() *Track {
	if p.closed {
		return nil
	}

	if track := p.parser.Get(); track != nil {
		return p.substitute(track)
	}

	for {
		line, ok := p.cursor.Next()
		if !ok {
			break
		}
		p.parser.Feed(line)
		if track := p.parser.Get(); track != nil {
			return p.substitute(track)
		}
	}

	p.parser.Finish()
	if track := p.parser.Get(); track != nil {
		return p.substitute(track)
	}
	return nil
}

// ReadAll drains the session and returns the remaining tracks in order.
func (p *Playlist) ReadAll() []*Track {
	var out []*Track
	for track := p.Read(); track != nil; track = p.Read() {
		out = append(out, track)
	}
	return out
}

// Sheet returns the raw cue sheet text the playlist was built from.
func (p *Playlist) Sheet() string {
	return p.sheet
}

// Warnings returns the non-fatal problems encountered so far. More may
// accumulate as Read advances through the sheet.
func (p *Playlist) Warnings() []Warning {
	if p.parser == nil {
		return nil
	}
	return p.parser.Warnings()
}

// Close releases the session. It is safe to call mid-enumeration and
// more than once; Read returns nil after Close.
func (p *Playlist) Close() error {
	p.closed = true
	p.cursor = nil
	p.parser = nil
	p.sheet = ""
	return nil
}

func (p *Playlist) substitute(track *Track) *Track {
	track.URI = p.filename
	return track
}

// OpenAll probes many paths concurrently and returns a playlist for
// each file that carries an embedded cue sheet, in input order. Files
// that decline (no cue sheet, not local) are skipped silently; only
// context cancellation produces an error.
func OpenAll(ctx context.Context, paths ...string) ([]*Playlist, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Playlist, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			playlist, err := Open(path)
			if err != nil {
				// Declines are the normal case when sweeping a
				// directory; only report them through absence.
				return nil
			}
			results[i] = playlist
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, playlist := range results {
			if playlist != nil {
				playlist.Close()
			}
		}
		return nil, err
	}

	out := make([]*Playlist, 0, len(results))
	for _, playlist := range results {
		if playlist != nil {
			out = append(out, playlist)
		}
	}
	return out, nil
}
