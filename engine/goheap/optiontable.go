package goheap

import (
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/joshuapare/memkit/engine"
)

const envPrefix = "MEMKIT_"

// optionDefaults are the values an option takes when neither the
// environment nor a setter provided one.
var optionDefaults = [engine.OptionCount]int64{
	engine.OptionShowErrors:         0,
	engine.OptionShowStats:          0,
	engine.OptionVerbose:            0,
	engine.OptionEagerCommit:        1,
	engine.OptionEagerRegionCommit:  1,
	engine.OptionResetDecommits:     0,
	engine.OptionLargeOSPages:       0,
	engine.OptionReserveHugeOSPages: 0,
	engine.OptionSegmentCache:       0,
	engine.OptionPageReset:          1,
	engine.OptionAbandonedPageReset: 0,
	engine.OptionSegmentReset:       0,
	engine.OptionEagerCommitDelay:   1,
	engine.OptionResetDelay:         100,
	engine.OptionUseNUMANodes:       0,
	engine.OptionOSTag:              100,
	engine.OptionMaxErrors:          16,
}

// optionTable is the per-engine option store. An option is initialized on
// its first read or set; from then on Default setters no longer apply.
type optionTable struct {
	mu        sync.Mutex
	values    [engine.OptionCount]int64
	defaults  [engine.OptionCount]int64
	init      [engine.OptionCount]bool
	lookupEnv func(string) (string, bool)
	log       *zap.Logger
}

func newOptionTable(lookupEnv func(string) (string, bool), log *zap.Logger) *optionTable {
	return &optionTable{
		defaults:  optionDefaults,
		lookupEnv: lookupEnv,
		log:       log,
	}
}

func (t *optionTable) get(o engine.Option) int64 {
	if !o.Valid() {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.init[o] {
		t.values[o] = t.seed(o)
		t.init[o] = true
	}
	return t.values[o]
}

func (t *optionTable) set(o engine.Option, v int64) {
	if !o.Valid() {
		return
	}
	t.mu.Lock()
	t.values[o] = v
	t.init[o] = true
	t.mu.Unlock()
}

func (t *optionTable) setDefault(o engine.Option, v int64) {
	if !o.Valid() {
		return
	}
	t.mu.Lock()
	if !t.init[o] {
		t.defaults[o] = v
	}
	t.mu.Unlock()
}

// seed reads MEMKIT_<NAME>, falling back to the default. Caller holds mu.
func (t *optionTable) seed(o engine.Option) int64 {
	key := envPrefix + strings.ToUpper(o.String())
	raw, ok := t.lookupEnv(key)
	if !ok || raw == "" {
		return t.defaults[o]
	}
	v, ok := parseOptionValue(raw)
	if !ok {
		t.log.Warn("ignoring invalid option value",
			zap.String("env", key), zap.String("value", raw))
		return t.defaults[o]
	}
	return v
}

func parseOptionValue(raw string) (int64, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return 1, true
	case "0", "false", "no", "off":
		return 0, true
	}
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
