package lawdex

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	password string

	storePath string

	civilIndex    string
	criminalIndex string

	searchRetries int
	searchTimeout time.Duration

	logger *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance with the
// search module loaded.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithStorePath sets the path to the authoritative SQLite article store.
func WithStorePath(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.storePath = path
	})
}

// WithIndices overrides the civil and criminal index names.
// Defaults: "civil-articles" and "criminal-articles".
func WithIndices(civil, criminal string) Option {
	return optionFunc(func(c *clientConfig) {
		c.civilIndex = civil
		c.criminalIndex = criminal
	})
}

// WithSearchRetries sets the per-index retry count for transient engine
// failures. Default: 2.
func WithSearchRetries(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchRetries = n
	})
}

// WithSearchTimeout sets the per-index search timeout. Default: 5s.
func WithSearchTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchTimeout = d
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
