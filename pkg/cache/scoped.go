package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis instance without colliding.
//
// Example usage:
//
//	// Server keys live under their own namespace
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "maxclique:server:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResultKey generates a prefixed key for solver results.
func (k *ScopedKeyer) ResultKey(graphHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(graphHash, opts)
}

// ColoringKey generates a prefixed key for colorings.
func (k *ScopedKeyer) ColoringKey(graphHash string, opts ColoringKeyOpts) string {
	return k.prefix + k.inner.ColoringKey(graphHash, opts)
}
