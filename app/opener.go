package app

// Opener hands an activated target (link URL or mention feed URL) to the
// outside world: a browser, or the clipboard as a fallback.
type Opener interface {
	// Open returns a short human-readable status describing what happened.
	Open(target string) (string, error)
}
