package billy

// Option configures backend creation.
type Option func(*config)

type config struct {
	cwd string
}

// WithCwd sets the initial working directory.
//
// For the memory backend the directory is created if needed. For the real
// backend it must name an existing directory, otherwise NewReal fails.
func WithCwd(dir string) Option {
	return func(c *config) {
		c.cwd = dir
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
