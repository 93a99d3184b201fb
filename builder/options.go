// SPDX-License-Identifier: MIT

package builder

// Option customizes the builder configuration.
type Option func(*config)

// config is the resolved, immutable configuration handed to constructors.
type config struct {
	idFn      IDFn
	separator string
}

func newConfig(opts ...Option) config {
	cfg := config{idFn: DefaultIDFn, separator: "."}
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// WithIDScheme sets the function naming generated children.
// Panics on nil.
func WithIDScheme(fn IDFn) Option {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}

	return func(c *config) { c.idFn = fn }
}

// WithSeparator sets the string joining a generated child to its parent's
// ID, e.g. "A" + "." + "0". An empty separator uses the child ID alone,
// which is only unique when the IDFn already includes the parent.
func WithSeparator(sep string) Option {
	return func(c *config) { c.separator = sep }
}
