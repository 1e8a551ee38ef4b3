package cue

import (
	"testing"
	"time"

	"github.com/simonhull/embcue/internal/types"
)

// drain feeds every line with the required Get-after-Feed discipline,
// then finishes and drains the rest.
func drain(p *Parser, lines ...string) []*types.Track {
	var out []*types.Track
	for _, line := range lines {
		p.Feed(line)
		if t := p.Get(); t != nil {
			out = append(out, t)
		}
	}
	p.Finish()
	for t := p.Get(); t != nil; t = p.Get() {
		out = append(out, t)
	}
	return out
}

func TestParserTwoTracks(t *testing.T) {
	tracks := drain(NewParser(),
		"TRACK 01 AUDIO",
		`TITLE "A"`,
		"INDEX 01 00:00:00",
		"TRACK 02 AUDIO",
		`TITLE "B"`,
		"INDEX 01 03:00:00",
	)

	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}

	if tracks[0].Number != 1 || tracks[0].Tags.Title != "A" || tracks[0].Start != 0 {
		t.Errorf("track 1 = %+v", tracks[0])
	}
	if tracks[1].Number != 2 || tracks[1].Tags.Title != "B" || tracks[1].Start != 3*time.Minute {
		t.Errorf("track 2 = %+v", tracks[1])
	}

	// The first track's end is the second track's start.
	if tracks[0].End != 3*time.Minute {
		t.Errorf("track 1 end = %v, want 3m", tracks[0].End)
	}
	if tracks[1].End != 0 {
		t.Errorf("track 2 end = %v, want 0 (unknown)", tracks[1].End)
	}
}

func TestParserLastTrackRequiresFinish(t *testing.T) {
	p := NewParser()

	lines := []string{
		"TRACK 01 AUDIO",
		"INDEX 01 00:00:00",
		"TRACK 02 AUDIO",
		"INDEX 01 01:00:00",
		"TRACK 03 AUDIO",
		"INDEX 01 02:00:00",
	}

	var before []*types.Track
	for _, line := range lines {
		p.Feed(line)
		if tr := p.Get(); tr != nil {
			before = append(before, tr)
		}
	}

	// Only track 1 can be complete before end of input: its end time
	// became known at track 2's index, and it surfaced at track 3.
	if len(before) != 1 || before[0].Number != 1 {
		t.Fatalf("before Finish: got %v tracks, want just track 1", len(before))
	}

	p.Finish()
	var after []*types.Track
	for tr := p.Get(); tr != nil; tr = p.Get() {
		after = append(after, tr)
	}

	if len(after) != 2 || after[0].Number != 2 || after[1].Number != 3 {
		t.Fatalf("after Finish: got %d tracks, want tracks 2 and 3", len(after))
	}
}

func TestParserHeaderOnlySheetProducesNothing(t *testing.T) {
	tracks := drain(NewParser(),
		`PERFORMER "Artist"`,
		`TITLE "Album"`,
		`FILE "ignored.wav" WAVE`,
	)

	if len(tracks) != 0 {
		t.Fatalf("got %d tracks from trackless sheet, want 0", len(tracks))
	}
}

func TestParserFinishIsIdempotent(t *testing.T) {
	p := NewParser()
	p.Feed("TRACK 01 AUDIO")
	p.Feed("INDEX 01 00:00:00")

	p.Finish()
	if tr := p.Get(); tr == nil || tr.Number != 1 {
		t.Fatalf("first Finish did not surface the open track")
	}

	p.Finish()
	if tr := p.Get(); tr != nil {
		t.Fatalf("second Finish produced track %d", tr.Number)
	}

	// Input after Finish is ignored.
	p.Feed("TRACK 02 AUDIO")
	p.Finish()
	if tr := p.Get(); tr != nil {
		t.Fatalf("post-Finish feed produced track %d", tr.Number)
	}
}

func TestParserSheetTagPropagation(t *testing.T) {
	tracks := drain(NewParser(),
		"REM GENRE Electronic",
		"REM DATE 1998",
		`PERFORMER "Album Artist"`,
		`TITLE "Album Title"`,
		`FILE "self.flac" WAVE`,
		"TRACK 01 AUDIO",
		`TITLE "Opener"`,
		"INDEX 01 00:00:00",
		"TRACK 02 AUDIO",
		`TITLE "Cover Song"`,
		`PERFORMER "Guest"`,
		`SONGWRITER "Writer"`,
		"INDEX 01 04:10:00",
	)

	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}

	first := tracks[0]
	if first.Tags.Artist != "Album Artist" {
		t.Errorf("track 1 artist = %q, want sheet performer fallback", first.Tags.Artist)
	}
	if first.Tags.Album != "Album Title" || first.Tags.AlbumArtist != "Album Artist" {
		t.Errorf("track 1 album fields = %q / %q", first.Tags.Album, first.Tags.AlbumArtist)
	}
	if first.Tags.Genre != "Electronic" || first.Tags.Date != "1998" {
		t.Errorf("track 1 remarks = %q / %q", first.Tags.Genre, first.Tags.Date)
	}

	second := tracks[1]
	if second.Tags.Artist != "Guest" {
		t.Errorf("track 2 artist = %q, want track-level to win", second.Tags.Artist)
	}
	if second.Tags.Composer != "Writer" {
		t.Errorf("track 2 composer = %q", second.Tags.Composer)
	}
	if second.Tags.Album != "Album Title" {
		t.Errorf("track 2 album = %q", second.Tags.Album)
	}
}

func TestParserMalformedTimestampDefaultsToZero(t *testing.T) {
	p := NewParser()
	tracks := drain(p,
		"TRACK 01 AUDIO",
		"INDEX 01 bogus",
	)

	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(tracks))
	}
	if tracks[0].Start != 0 {
		t.Errorf("start = %v, want 0 for malformed timestamp", tracks[0].Start)
	}

	if len(p.Warnings()) == 0 {
		t.Error("expected a warning for the malformed timestamp")
	}
}

func TestParserSkipsNoise(t *testing.T) {
	tracks := drain(NewParser(),
		"",
		"   ",
		"NONSENSE DIRECTIVE HERE",
		"TRACK xx AUDIO",
		"TRACK 01 AUDIO",
		"INDEX 01 00:02:00",
		"INDEX",
		"garbage",
	)

	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(tracks))
	}
	if tracks[0].Start != 2*time.Second {
		t.Errorf("start = %v, want 2s", tracks[0].Start)
	}
}

func TestParserTrackNumbersVerbatim(t *testing.T) {
	tracks := drain(NewParser(),
		"TRACK 07 AUDIO",
		"INDEX 01 00:00:00",
		"TRACK 03 AUDIO",
		"INDEX 01 01:00:00",
		"TRACK 03 AUDIO",
		"INDEX 01 02:00:00",
	)

	if len(tracks) != 3 {
		t.Fatalf("got %d tracks, want 3", len(tracks))
	}
	want := []int{7, 3, 3}
	for i, tr := range tracks {
		if tr.Number != want[i] {
			t.Errorf("track %d number = %d, want %d", i, tr.Number, want[i])
		}
	}
}

func TestParserIndexPreference(t *testing.T) {
	tracks := drain(NewParser(),
		"TRACK 01 AUDIO",
		"INDEX 01 00:10:00",
		"TRACK 02 AUDIO",
		"INDEX 00 01:00:00",
		"INDEX 01 01:02:00",
		"INDEX 02 02:00:00",
	)

	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}

	// INDEX 01 wins over the pregap index and later indices are
	// ignored; the previous track's end follows the primary index.
	if tracks[1].Start != time.Minute+2*time.Second {
		t.Errorf("track 2 start = %v, want 1m2s", tracks[1].Start)
	}
	if tracks[0].End != time.Minute+2*time.Second {
		t.Errorf("track 1 end = %v, want 1m2s", tracks[0].End)
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"00:00:00", 0, false},
		{"03:00:00", 3 * time.Minute, false},
		{"00:01:00", time.Second, false},
		{"00:00:75", time.Second, false}, // 75 frames = 1 second
		{"100:00:00", 100 * time.Minute, false},
		{"0:2:15", 2*time.Second + 200*time.Millisecond, false},
		{"00:00", 0, true},
		{"a:b:c", 0, true},
		{"-1:00:00", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parsePosition(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parsePosition(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parsePosition(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePosition(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNextToken(t *testing.T) {
	tests := []struct {
		input string
		token string
		rest  string
	}{
		{`TRACK 01 AUDIO`, "TRACK", " 01 AUDIO"},
		{`"quoted value" tail`, "quoted value", " tail"},
		{`  padded`, "padded", ""},
		{`"unterminated`, "unterminated", ""},
		{``, "", ""},
		{`   `, "", ""},
	}

	for _, tt := range tests {
		token, rest := nextToken(tt.input)
		if token != tt.token || rest != tt.rest {
			t.Errorf("nextToken(%q) = (%q, %q), want (%q, %q)",
				tt.input, token, rest, tt.token, tt.rest)
		}
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{` "Quoted Title"`, "Quoted Title"},
		{` Unquoted title with spaces `, "Unquoted title with spaces"},
		{``, ""},
		{` "Quoted" trailing ignored`, "Quoted"},
	}

	for _, tt := range tests {
		if got := value(tt.input); got != tt.want {
			t.Errorf("value(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
