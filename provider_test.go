package embcue

import (
	"errors"
	"testing"
)

func TestSuffixMatch(t *testing.T) {
	p := Provider{Suffixes: []string{"flac", "ogg"}}

	tests := []struct {
		uri  string
		want bool
	}{
		{"/music/album.flac", true},
		{"/music/album.FLAC", true},
		{"/music/album.ogg", true},
		{"/music/album.wav", false},
		{"/music/album.", false},
		{"/music/album", false},
	}

	for _, tt := range tests {
		if got := p.SuffixMatch(tt.uri); got != tt.want {
			t.Errorf("SuffixMatch(%q) = %v, want %v", tt.uri, got, tt.want)
		}
	}
}

func TestEmbeddedProviderRegistered(t *testing.T) {
	for _, p := range Providers() {
		if p.Name == "embcue" {
			if !p.SuffixMatch("/music/album.flac") {
				t.Error("flac not in the embedded provider's suffix hints")
			}
			return
		}
	}
	t.Fatal("embedded cue provider not registered")
}

func TestOpenURIDispatchOrder(t *testing.T) {
	saved := providers
	t.Cleanup(func() { providers = saved })
	providers = nil

	declined := false
	Register(Provider{
		Name: "declining",
		Open: func(uri string) (*Playlist, error) {
			declined = true
			return nil, ErrNoCueSheet
		},
	})
	Register(Provider{
		Name: "accepting",
		Open: func(uri string) (*Playlist, error) {
			return &Playlist{Path: uri}, nil
		},
	})

	playlist, err := OpenURI("/music/album.flac")
	if err != nil {
		t.Fatalf("OpenURI: %v", err)
	}
	if !declined {
		t.Error("first provider was not consulted")
	}
	if playlist.Path != "/music/album.flac" {
		t.Errorf("Path = %q", playlist.Path)
	}
}

func TestOpenURIAllDecline(t *testing.T) {
	saved := providers
	t.Cleanup(func() { providers = saved })
	providers = nil

	Register(Provider{
		Name: "declining",
		Open: func(uri string) (*Playlist, error) { return nil, ErrNotLocal },
	})

	_, err := OpenURI("relative.flac")
	if !errors.Is(err, ErrNoCueSheet) {
		t.Fatalf("OpenURI = %v, want ErrNoCueSheet", err)
	}
}
