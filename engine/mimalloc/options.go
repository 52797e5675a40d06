//go:build cgo && mimalloc

package mimalloc

/*
#include <mimalloc.h>
*/
import "C"

import "github.com/joshuapare/memkit/engine"

// nativeOption maps the engine option table onto mimalloc's enum by name.
// Options without a counterpart in the linked version are absent.
var nativeOption = map[engine.Option]C.mi_option_t{
	engine.OptionShowErrors:         C.mi_option_show_errors,
	engine.OptionShowStats:          C.mi_option_show_stats,
	engine.OptionVerbose:            C.mi_option_verbose,
	engine.OptionEagerCommit:        C.mi_option_eager_commit,
	engine.OptionEagerRegionCommit:  C.mi_option_eager_region_commit,
	engine.OptionResetDecommits:     C.mi_option_reset_decommits,
	engine.OptionLargeOSPages:       C.mi_option_large_os_pages,
	engine.OptionReserveHugeOSPages: C.mi_option_reserve_huge_os_pages,
	engine.OptionAbandonedPageReset: C.mi_option_abandoned_page_reset,
	engine.OptionEagerCommitDelay:   C.mi_option_eager_commit_delay,
	engine.OptionResetDelay:         C.mi_option_reset_delay,
	engine.OptionUseNUMANodes:       C.mi_option_use_numa_nodes,
	engine.OptionOSTag:              C.mi_option_os_tag,
	engine.OptionMaxErrors:          C.mi_option_max_errors,
}

func (*Engine) OptionIsEnabled(o engine.Option) bool {
	n, ok := nativeOption[o]
	return ok && bool(C.mi_option_is_enabled(n))
}

func (*Engine) OptionEnable(o engine.Option) {
	if n, ok := nativeOption[o]; ok {
		C.mi_option_enable(n)
	}
}

func (*Engine) OptionDisable(o engine.Option) {
	if n, ok := nativeOption[o]; ok {
		C.mi_option_disable(n)
	}
}

func (*Engine) OptionSetEnabled(o engine.Option, enable bool) {
	if n, ok := nativeOption[o]; ok {
		C.mi_option_set_enabled(n, C.bool(enable))
	}
}

func (*Engine) OptionSetEnabledDefault(o engine.Option, enable bool) {
	if n, ok := nativeOption[o]; ok {
		C.mi_option_set_enabled_default(n, C.bool(enable))
	}
}

func (*Engine) OptionGet(o engine.Option) int64 {
	if n, ok := nativeOption[o]; ok {
		return int64(C.mi_option_get(n))
	}
	return 0
}

func (*Engine) OptionSet(o engine.Option, value int64) {
	if n, ok := nativeOption[o]; ok {
		C.mi_option_set(n, C.long(value))
	}
}

func (*Engine) OptionSetDefault(o engine.Option, value int64) {
	if n, ok := nativeOption[o]; ok {
		C.mi_option_set_default(n, C.long(value))
	}
}
