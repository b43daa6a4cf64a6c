package cache

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey is the key for one rendered output of a molecule.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the inputs, besides the molecule itself, that
// determine a rendered artifact.
type ArtifactKeyOpts struct {
	// Format is the output format, e.g. "tex" or "svg".
	Format string
	// Options is any JSON-encodable value holding the rendering options
	// that affect this format.
	Options any
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<format>:<hash>".
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, graphHash, opts.Options)
}

// ScopedKeyer prefixes every key of an inner keyer, so several tenants
// or deployments can share one backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}
