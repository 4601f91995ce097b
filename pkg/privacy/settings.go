// Package privacy implements the user-configurable privacy transforms that
// run between sanitization and document assembly: invisible-character
// cleanup, tracking-pixel removal, lazy-load hints, remote-image blocking and
// tracking-parameter stripping.
//
// Every stage is a pure string-to-string function. Gating by Settings is the
// caller's responsibility, which keeps each stage testable in isolation.
package privacy

// Settings holds the privacy preferences that govern a single render. It is
// a comparable value type: callers pass a snapshot into every render call,
// and a cache keyed by message id must be invalidated whenever the snapshot
// changes.
type Settings struct {
	BlockRemoteImages   bool
	BlockTrackingPixels bool
	StripTrackingParams bool
}

// DefaultSettings returns the privacy-preserving defaults: everything
// blocked, everything stripped.
func DefaultSettings() Settings {
	return Settings{
		BlockRemoteImages:   true,
		BlockTrackingPixels: true,
		StripTrackingParams: true,
	}
}
