//go:build cgo

package main

/*
#include <stdbool.h>
#include <stdlib.h>
#include "callbacks.h"
*/
import "C"

import (
	"unsafe"

	"github.com/joshuapare/memkit/engine"
)

// outputTo wraps a C output callback. A NULL fn yields nil, which restores
// the engine's default sink.
func outputTo(fn C.memkit_output_fun, arg unsafe.Pointer) engine.OutputFunc {
	if fn == nil {
		return nil
	}
	return func(msg string) {
		cs := C.CString(msg)
		defer C.free(unsafe.Pointer(cs))
		C.memkit_call_output(fn, cs, arg)
	}
}

//export memkit_mem_collect
func memkit_mem_collect(force C.bool) { lib().Collect(bool(force)) }

//export memkit_mem_register_deferred_free
func memkit_mem_register_deferred_free(fn C.memkit_deferred_free_fun, arg unsafe.Pointer) {
	if fn == nil {
		lib().RegisterDeferredFree(nil)
		return
	}
	lib().RegisterDeferredFree(func(force bool, heartbeat uint64) {
		C.memkit_call_deferred(fn, C.bool(force), C.ulonglong(heartbeat), arg)
	})
}

//export memkit_mem_register_output
func memkit_mem_register_output(fn C.memkit_output_fun, arg unsafe.Pointer) {
	lib().RegisterOutput(outputTo(fn, arg))
}

//export memkit_mem_register_error
func memkit_mem_register_error(fn C.memkit_error_fun, arg unsafe.Pointer) {
	if fn == nil {
		lib().RegisterError(nil)
		return
	}
	lib().RegisterError(func(errno int) {
		C.memkit_call_error(fn, C.int(errno), arg)
	})
}

//export memkit_mem_stats_reset
func memkit_mem_stats_reset() { lib().StatsReset() }

//export memkit_mem_stats_merge
func memkit_mem_stats_merge() { lib().StatsMerge() }

//export memkit_mem_stats_print
func memkit_mem_stats_print() { lib().StatsPrint() }

//export memkit_mem_stats_print_out
func memkit_mem_stats_print_out(fn C.memkit_output_fun, arg unsafe.Pointer) {
	lib().StatsPrintOut(outputTo(fn, arg))
}

//export memkit_mem_thread_stats_print_out
func memkit_mem_thread_stats_print_out(fn C.memkit_output_fun, arg unsafe.Pointer) {
	lib().ThreadStatsPrintOut(outputTo(fn, arg))
}

//export memkit_mem_process_init
func memkit_mem_process_init() { lib().ProcessInit() }

//export memkit_mem_thread_init
func memkit_mem_thread_init() { lib().ThreadInit() }

//export memkit_mem_thread_done
func memkit_mem_thread_done() { lib().ThreadDone() }

//export memkit_mem_reserve_huge_os_pages
func memkit_mem_reserve_huge_os_pages(pages C.size_t, maxSecs C.double, reserved *C.size_t) C.int {
	n, errno := lib().ReserveHugeOSPages(sz(pages), float64(maxSecs))
	if reserved != nil {
		*reserved = C.size_t(n)
	}
	return C.int(errno)
}

//export memkit_mem_reserve_huge_os_pages_at
func memkit_mem_reserve_huge_os_pages_at(pages C.size_t, numaNode C.int, timeoutMsecs C.size_t) C.int {
	return C.int(lib().ReserveHugeOSPagesAt(sz(pages), int(numaNode), sz(timeoutMsecs)))
}

//export memkit_mem_reserve_huge_os_pages_interleave
func memkit_mem_reserve_huge_os_pages_interleave(pages, numaNodes, timeoutMsecs C.size_t) C.int {
	return C.int(lib().ReserveHugeOSPagesInterleave(sz(pages), sz(numaNodes), sz(timeoutMsecs)))
}

// Options are addressed by their index in the option table; an index
// outside the table reads as disabled and ignores writes.

//export memkit_mem_option_is_enabled
func memkit_mem_option_is_enabled(o C.int) C.bool {
	opt := engine.Option(o)
	return C.bool(opt.Valid() && lib().OptionIsEnabled(opt))
}

//export memkit_mem_option_enable
func memkit_mem_option_enable(o C.int) {
	if opt := engine.Option(o); opt.Valid() {
		lib().OptionEnable(opt)
	}
}

//export memkit_mem_option_disable
func memkit_mem_option_disable(o C.int) {
	if opt := engine.Option(o); opt.Valid() {
		lib().OptionDisable(opt)
	}
}

//export memkit_mem_option_set_enabled
func memkit_mem_option_set_enabled(o C.int, enable C.bool) {
	if opt := engine.Option(o); opt.Valid() {
		lib().OptionSetEnabled(opt, bool(enable))
	}
}

//export memkit_mem_option_set_enabled_default
func memkit_mem_option_set_enabled_default(o C.int, enable C.bool) {
	if opt := engine.Option(o); opt.Valid() {
		lib().OptionSetEnabledDefault(opt, bool(enable))
	}
}

//export memkit_mem_option_get
func memkit_mem_option_get(o C.int) C.long {
	opt := engine.Option(o)
	if !opt.Valid() {
		return 0
	}
	return C.long(lib().OptionGet(opt))
}

//export memkit_mem_option_set
func memkit_mem_option_set(o C.int, value C.long) {
	if opt := engine.Option(o); opt.Valid() {
		lib().OptionSet(opt, int64(value))
	}
}

//export memkit_mem_option_set_default
func memkit_mem_option_set_default(o C.int, value C.long) {
	if opt := engine.Option(o); opt.Valid() {
		lib().OptionSetDefault(opt, int64(value))
	}
}
