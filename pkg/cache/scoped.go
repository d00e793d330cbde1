package cache

// ScopedKeyer wraps a Keyer with a prefix, giving separate cache
// namespaces to callers that share one cache directory (e.g. parallel
// experiment batches over the same instance pool).
//
// Example usage:
//
//	batchKeyer := NewScopedKeyer(NewDefaultKeyer(), "batch:2024-06:")
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

// InstanceKey generates a prefixed instance key.
func (k *ScopedKeyer) InstanceKey(serialized string) string {
	return k.prefix + k.inner.InstanceKey(serialized)
}

// PreprocessKey generates a prefixed preprocessing key.
func (k *ScopedKeyer) PreprocessKey(instanceHash string, kCov, mConn int) string {
	return k.prefix + k.inner.PreprocessKey(instanceHash, kCov, mConn)
}
