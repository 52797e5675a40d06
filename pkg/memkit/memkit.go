package memkit

import (
	"errors"
	"fmt"
	"io"
	"unsafe"

	"go.uber.org/zap"

	"github.com/joshuapare/memkit/alloc"
	"github.com/joshuapare/memkit/engine"
	"github.com/joshuapare/memkit/internal/platform"
)

// Allocator is the global allocation capability.
type Allocator interface {
	Alloc(l alloc.Layout) unsafe.Pointer
	AllocZeroed(l alloc.Layout) unsafe.Pointer
	Dealloc(p unsafe.Pointer, l alloc.Layout)
	Realloc(p unsafe.Pointer, l alloc.Layout, newSize uintptr) unsafe.Pointer
}

var _ Allocator = (*alloc.Router)(nil)

// ErrClosed is returned by Close on a surface that is already closed.
var ErrClosed = errors.New("memkit: surface closed")

// Option configures a Surface.
type Option func(*config) error

type config struct {
	engine engine.Engine
	policy *platform.Policy
	log    *zap.Logger
}

// WithEngine uses e instead of the build's default engine. The caller keeps
// ownership of e; Close does not close it.
func WithEngine(e engine.Engine) Option {
	return func(c *config) error {
		if e == nil {
			return errors.New("memkit: nil engine")
		}
		c.engine = e
		return nil
	}
}

// WithPolicy replaces the alignment policy resolved for the running target.
func WithPolicy(p platform.Policy) Option {
	return func(c *config) error {
		if p.MinAlign == 0 || p.MinAlign&(p.MinAlign-1) != 0 {
			return fmt.Errorf("memkit: min align %d is not a power of two", p.MinAlign)
		}
		c.policy = &p
		return nil
	}
}

// WithLogger sets the logger handed to the default engine.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) error {
		if l == nil {
			return errors.New("memkit: nil logger")
		}
		c.log = l
		return nil
	}
}

// Surface is an engine plus the router that dispatches layouts to it.
type Surface struct {
	engine.Engine
	router *alloc.Router
	owned  io.Closer
	closed bool
}

// New creates a surface. Without WithEngine it creates the build's default
// engine and closes it on Close.
func New(opts ...Option) (*Surface, error) {
	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	s := &Surface{Engine: cfg.engine}
	if s.Engine == nil {
		e, err := newDefaultEngine(cfg.log)
		if err != nil {
			return nil, fmt.Errorf("memkit: %s engine: %w", EngineName, err)
		}
		s.Engine = e
		if c, ok := e.(io.Closer); ok {
			s.owned = c
		}
	}

	var ropts []alloc.RouterOption
	if cfg.policy != nil {
		ropts = append(ropts, alloc.WithPolicy(*cfg.policy))
	}
	s.router = alloc.NewRouter(s.Engine, ropts...)
	return s, nil
}

// Router returns the router over the surface's engine.
func (s *Surface) Router() *alloc.Router {
	return s.router
}

// Policy returns the alignment policy the router decides with.
func (s *Surface) Policy() platform.Policy {
	return s.router.Policy()
}

// Stats returns structured counters when the engine reports them.
func (s *Surface) Stats() (engine.Stats, bool) {
	r, ok := s.Engine.(engine.StatsReporter)
	if !ok {
		return engine.Stats{}, false
	}
	return r.Stats(), true
}

// Close closes the engine if the surface created it.
func (s *Surface) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	if s.owned == nil {
		return nil
	}
	return s.owned.Close()
}
