package embcue

// Option customizes Open behavior.
type Option func(*openOptions)

type openOptions struct {
	scanners []TagScanner
}

func defaultOptions() *openOptions {
	return &openOptions{
		scanners: defaultScanners(),
	}
}

// WithScanners replaces the probe's tag scanner order. The scanners are
// consulted front to back and the first one yielding a non-empty
// CUESHEET field wins. Intended for embedders with their own container
// readers and for tests.
func WithScanners(scanners ...TagScanner) Option {
	return func(o *openOptions) {
		o.scanners = scanners
	}
}
