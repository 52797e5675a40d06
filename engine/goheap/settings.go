package goheap

import "github.com/joshuapare/memkit/engine"

func (e *Engine) OptionIsEnabled(o engine.Option) bool {
	return e.opts.get(o) != 0
}

func (e *Engine) OptionEnable(o engine.Option) {
	e.opts.set(o, 1)
}

func (e *Engine) OptionDisable(o engine.Option) {
	e.opts.set(o, 0)
}

func (e *Engine) OptionSetEnabled(o engine.Option, enable bool) {
	e.opts.set(o, boolValue(enable))
}

func (e *Engine) OptionSetEnabledDefault(o engine.Option, enable bool) {
	e.opts.setDefault(o, boolValue(enable))
}

func (e *Engine) OptionGet(o engine.Option) int64 {
	return e.opts.get(o)
}

func (e *Engine) OptionSet(o engine.Option, value int64) {
	e.opts.set(o, value)
}

// OptionSetDefault changes the fallback for o. It has no effect once o has
// been read or set.
func (e *Engine) OptionSetDefault(o engine.Option, value int64) {
	e.opts.setDefault(o, value)
}

func boolValue(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
