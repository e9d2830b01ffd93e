package cache

// ScopedKeyer wraps a Keyer with a prefix, so several deployments can share
// one Redis instance without seeing each other's entries:
//
//	staging := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ResultKey implements [Keyer].
func (k *ScopedKeyer) ResultKey(op, graphHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(op, graphHash, opts)
}

// ReportKey implements [Keyer].
func (k *ScopedKeyer) ReportKey(id string) string {
	return k.prefix + k.inner.ReportKey(id)
}
