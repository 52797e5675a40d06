package goheap

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	// DefaultLargeThreshold is the block size at which large_os_pages
	// switches a block to a direct OS mapping.
	DefaultLargeThreshold = 4 << 20

	// MaxAlign is the largest alignment the engine accepts.
	MaxAlign = 16 << 20
)

// Option configures an Engine.
type Option func(*config) error

type config struct {
	log            *zap.Logger
	limit          uintptr
	classes        SizeClassConfig
	largeThreshold uintptr
	lookupEnv      func(string) (string, bool)
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) error {
		if l == nil {
			return fmt.Errorf("%w: nil logger", ErrBadConfig)
		}
		c.log = l
		return nil
	}
}

// WithLimit caps the usable bytes of live blocks. Requests that would
// exceed it return nil and report ENOMEM. Zero means no limit.
//
// The Go runtime aborts the process on real exhaustion, so a limit is the
// only way to observe allocation failure from this engine.
func WithLimit(bytes uintptr) Option {
	return func(c *config) error {
		c.limit = bytes
		return nil
	}
}

// WithSizeClasses replaces the size class table.
func WithSizeClasses(cfg SizeClassConfig) Option {
	return func(c *config) error {
		if err := cfg.validate(); err != nil {
			return err
		}
		c.classes = cfg
		return nil
	}
}

// WithLargeThreshold sets the size at which blocks are mapped from the OS
// when large_os_pages is enabled.
func WithLargeThreshold(bytes uintptr) Option {
	return func(c *config) error {
		if bytes == 0 {
			return fmt.Errorf("%w: zero large threshold", ErrBadConfig)
		}
		c.largeThreshold = bytes
		return nil
	}
}

// WithEnv replaces os.LookupEnv for seeding options. Tests use it to
// simulate MEMKIT_* variables.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(c *config) error {
		if lookup == nil {
			return fmt.Errorf("%w: nil env lookup", ErrBadConfig)
		}
		c.lookupEnv = lookup
		return nil
	}
}
