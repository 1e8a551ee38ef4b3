package embcue

import (
	"fmt"
	"strings"
)

// Provider is one playlist source a host can route URIs to. The
// embedded-cue provider registers itself; hosts with other playlist
// sources (standalone .cue files, m3u, remote lists) register theirs
// alongside it and dispatch with OpenURI.
type Provider struct {
	// Name is a short identifying token for the provider.
	Name string

	// Suffixes lists file extensions (without dot) the provider is
	// likely to handle. Purely advisory: a hint for hosts choosing
	// what to try first, never a gate on Open.
	Suffixes []string

	// Open opens uri as a playlist, or declines with ErrNoCueSheet or
	// ErrNotLocal (or a provider-specific decline wrapping one).
	Open func(uri string) (*Playlist, error)
}

// providers are tried in registration order by OpenURI.
var providers []Provider

// Register adds a provider to the dispatch list. Register is called
// from init functions and is not safe for concurrent use.
func Register(p Provider) {
	providers = append(providers, p)
}

// Providers returns the registered providers in registration order.
func Providers() []Provider {
	return providers
}

// SuffixMatch reports whether uri's extension appears in p.Suffixes.
// Case-insensitive. A non-match does not mean p.Open would fail; the
// suffix list is only a hint.
func (p Provider) SuffixMatch(uri string) bool {
	dot := strings.LastIndexByte(uri, '.')
	if dot < 0 || dot == len(uri)-1 {
		return false
	}
	suffix := uri[dot+1:]
	for _, s := range p.Suffixes {
		if strings.EqualFold(s, suffix) {
			return true
		}
	}
	return false
}

// OpenURI tries every registered provider in order and returns the
// first playlist obtained. Providers that decline are skipped; when all
// decline, the result wraps ErrNoCueSheet.
func OpenURI(uri string) (*Playlist, error) {
	for _, p := range providers {
		playlist, err := p.Open(uri)
		if err != nil {
			continue
		}
		return playlist, nil
	}

	return nil, fmt.Errorf("no provider accepted %s: %w", uri, ErrNoCueSheet)
}

func init() {
	Register(Provider{
		Name: "embcue",

		// A few containers known to carry embedded cue sheets; there
		// are probably more.
		Suffixes: []string{
			"flac",
			"mp3", "mp2",
			"mp4", "m4a", "m4b",
			"ape",
			"wv",
			"ogg", "oga", "opus",
		},

		Open: func(uri string) (*Playlist, error) {
			return Open(uri)
		},
	})
}
