//go:build !(cgo && mimalloc)

package memkit

import (
	"go.uber.org/zap"

	"github.com/joshuapare/memkit/engine"
	"github.com/joshuapare/memkit/engine/goheap"
)

// EngineName names the engine New creates by default.
const EngineName = "goheap"

func newDefaultEngine(log *zap.Logger) (engine.Engine, error) {
	var opts []goheap.Option
	if log != nil {
		opts = append(opts, goheap.WithLogger(log))
	}
	return goheap.New(opts...)
}
