package solrgeo

import (
	"github.com/prometheus/client_golang/prometheus"
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
	driver   string // "valkey", "redis" or "memory"
	addrs    []string
	password string

	keyPrefix string
	datatypes map[string]string
	fallback  string
	reject    bool

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithValkey stores attribute definitions in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis stores attribute definitions in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithMemory keeps attribute definitions in process memory.
func WithMemory() Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "memory"
		c.addrs = nil
	})
}

// WithKeyPrefix sets the key prefix for stored attributes. Default: "solrgeo:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithDatatype maps a CMS datatype to a SolR field type, e.g. ("ezgmaplocation", "geopoint").
func WithDatatype(datatype, fieldType string) Option {
	return optionFunc(func(c *clientConfig) {
		if c.datatypes == nil {
			c.datatypes = make(map[string]string)
		}
		c.datatypes[datatype] = fieldType
	})
}

// WithFallbackFieldType sets the SolR field type used for unmapped datatypes.
// By default unmapped datatypes are rejected.
func WithFallbackFieldType(fieldType string) Option {
	return optionFunc(func(c *clientConfig) {
		c.fallback = fieldType
	})
}

// WithRejectOnFilterError makes Build fail on the first extended filter error.
// By default failed filters are skipped and reported as warnings.
func WithRejectOnFilterError() Option {
	return optionFunc(func(c *clientConfig) {
		c.reject = true
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
