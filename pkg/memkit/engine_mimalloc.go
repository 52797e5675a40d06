//go:build cgo && mimalloc

package memkit

import (
	"go.uber.org/zap"

	"github.com/joshuapare/memkit/engine"
	"github.com/joshuapare/memkit/engine/mimalloc"
)

// EngineName names the engine New creates by default.
const EngineName = "mimalloc"

// libmimalloc writes through its own output callback, so log is unused.
func newDefaultEngine(_ *zap.Logger) (engine.Engine, error) {
	return mimalloc.New(), nil
}
