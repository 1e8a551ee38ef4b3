package cue

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/simonhull/embcue/internal/types"
)

// framesPerSecond is the cue sheet frame rate (CD sectors per second).
const framesPerSecond = 75

type state int

const (
	// statePreamble collects sheet-level directives seen before the
	// first TRACK.
	statePreamble state = iota

	// stateTrack accumulates fields for the currently open track.
	stateTrack
)

// Parser is the incremental cue sheet state machine.
//
// Feed it one line at a time and call Get after every Feed; each Feed
// can complete at most one track, and a completed track must be drained
// before more input is fed or it is replaced. Call Finish exactly once
// at end of input, then drain Get until it returns nil.
//
// A track closed by a new TRACK directive is held back one stage so the
// new track's first index can stamp its end time; it surfaces through
// Get one directive later, or at Finish.
type Parser struct {
	state state

	// sheet holds the sheet-level fields, stored in the positions they
	// occupy on a finished track (sheet TITLE is the album, sheet
	// PERFORMER the album artist).
	sheet types.Tags

	current  *types.Track // open track, still accumulating
	previous *types.Track // closed, end time still unknown
	finished *types.Track // completed, awaiting Get

	// startIndex is the index number that produced current.Start, -1
	// while no index has been seen. INDEX 01 wins over any other.
	startIndex int

	ended    bool
	line     int
	warnings []types.Warning
}

// NewParser creates an empty Parser in the preamble state.
func NewParser() *Parser {
	return &Parser{startIndex: -1}
}

// Feed parses one directive line. Unrecognized or malformed lines are
// skipped; nothing a single line contains can fail the whole parse.
func (p *Parser) Feed(line string) {
	p.line++
	if p.ended {
		return
	}

	command, rest := nextToken(line)
	if command == "" {
		return
	}

	switch strings.ToUpper(command) {
	case "TRACK":
		p.feedTrack(rest)
	case "INDEX":
		p.feedIndex(rest)
	case "TITLE":
		if p.current != nil {
			p.current.Tags.Title = value(rest)
		} else {
			p.sheet.Album = value(rest)
		}
	case "PERFORMER":
		if p.current != nil {
			p.current.Tags.Artist = value(rest)
		} else {
			p.sheet.AlbumArtist = value(rest)
			p.sheet.Artist = p.sheet.AlbumArtist
		}
	case "SONGWRITER":
		if p.current != nil {
			p.current.Tags.Composer = value(rest)
		} else {
			p.sheet.Composer = value(rest)
		}
	case "ISRC":
		if p.current != nil {
			p.current.Tags.ISRC = value(rest)
		}
	case "REM":
		p.feedRem(rest)
	case "FILE", "CATALOG", "CDTEXTFILE", "FLAGS", "PREGAP", "POSTGAP":
		// Recognized but irrelevant here. FILE in particular is always
		// discarded: an embedded sheet describes its own container.
	default:
		p.warnf("unknown directive %q skipped", command)
	}
}

func (p *Parser) feedTrack(rest string) {
	nr, _ := nextToken(rest)
	if nr == "" {
		p.warnf("TRACK directive without a number skipped")
		return
	}
	number, err := strconv.Atoi(nr)
	if err != nil {
		p.warnf("TRACK number %q is not numeric, directive skipped", nr)
		return
	}

	p.commit()
	p.current = &types.Track{Number: number}
	p.startIndex = -1
	p.state = stateTrack
}

func (p *Parser) feedIndex(rest string) {
	if p.state != stateTrack || p.current == nil {
		return
	}

	nr, rest := nextToken(rest)
	position, _ := nextToken(rest)
	index, err := strconv.Atoi(nr)
	if err != nil {
		p.warnf("INDEX number %q is not numeric, directive skipped", nr)
		return
	}

	// The primary index is INDEX 01 when present, otherwise the first
	// index seen (a lone pregap index still yields a usable start).
	if p.startIndex != -1 && (p.startIndex == 1 || index != 1) {
		return
	}

	start, err := parsePosition(position)
	if err != nil {
		// Best effort: a zero start loses one track's precise position
		// instead of the whole playlist.
		p.warnf("bad INDEX position %q: %v", position, err)
		start = 0
	}

	p.current.Start = start
	p.startIndex = index
	if p.previous != nil {
		p.previous.End = start
	}
}

func (p *Parser) feedRem(rest string) {
	key, rest := nextToken(rest)
	tags := &p.sheet
	if p.current != nil {
		tags = &p.current.Tags
	}

	switch strings.ToUpper(key) {
	case "GENRE":
		tags.Genre = value(rest)
	case "DATE":
		tags.Date = value(rest)
	case "COMMENT":
		tags.Comment = value(rest)
	}
}

// commit closes the open track: it inherits the sheet-level fields and
// moves into the previous slot, while whatever occupied that slot is now
// fully determined and surfaces for Get.
func (p *Parser) commit() {
	if p.current == nil {
		return
	}
	p.current.Tags.Merge(p.sheet)
	p.finished = p.previous
	p.previous = p.current
	p.current = nil
}

// Get returns the next completed track, or nil if none is pending.
func (p *Parser) Get() *types.Track {
	if p.finished == nil && p.ended {
		p.finished, p.previous = p.previous, nil
	}
	t := p.finished
	p.finished = nil
	return t
}

// Finish signals end of input. An open track is closed as if another
// TRACK directive had arrived and becomes retrievable via Get. Finish is
// idempotent; without any TRACK directive it produces nothing.
func (p *Parser) Finish() {
	if p.ended {
		return
	}
	p.commit()
	p.ended = true
}

// Warnings returns the non-fatal problems recorded so far.
func (p *Parser) Warnings() []types.Warning {
	return p.warnings
}

func (p *Parser) warnf(format string, args ...any) {
	p.warnings = append(p.warnings, types.Warning{
		Line:    p.line,
		Message: fmt.Sprintf(format, args...),
	})
}

// parsePosition parses a cue timestamp in MM:SS:FF form, 75 frames per
// second. Minutes may exceed 99 on long images.
func parsePosition(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("expected MM:SS:FF, got %q", s)
	}

	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("bad minutes in %q", s)
	}
	seconds, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("bad seconds in %q", s)
	}
	frames, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("bad frames in %q", s)
	}
	if minutes < 0 || seconds < 0 || frames < 0 {
		return 0, fmt.Errorf("negative field in %q", s)
	}

	return time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(frames)*time.Second/framesPerSecond, nil
}

// nextToken extracts the next whitespace-delimited or double-quoted
// token from s, returning the token and the remainder. Quoted tokens
// have no escape mechanism; an unterminated quote takes the rest of the
// line.
func nextToken(s string) (token, rest string) {
	s = strings.TrimLeft(s, " \t")
	if s == "" {
		return "", ""
	}

	if s[0] == '"' {
		if i := strings.IndexByte(s[1:], '"'); i >= 0 {
			return s[1 : 1+i], s[2+i:]
		}
		return s[1:], ""
	}

	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

// value extracts a directive value: a double-quoted string, or the whole
// trimmed remainder when unquoted.
func value(s string) string {
	s = strings.TrimLeft(s, " \t")
	if s == "" {
		return ""
	}
	if s[0] == '"' {
		v, _ := nextToken(s)
		return v
	}
	return strings.TrimRight(s, " \t")
}
