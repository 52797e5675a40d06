package engine

import "unsafe"

// Heap is an opaque heap handle. Zero is never a valid heap.
type Heap uintptr

// Errno values passed to ErrorFunc and returned by the huge page calls.
// They match the Linux values, which is what C callers compare against.
const (
	EAGAIN    = 11 // double free
	ENOMEM    = 12 // out of memory or limit reached
	EFAULT    = 14 // invalid pointer passed to free or realloc
	EINVAL    = 22 // invalid alignment or argument
	EOVERFLOW = 75 // count * size overflow
	ETIMEDOUT = 110
)

// Area describes a group of same-sized blocks inside a heap.
type Area struct {
	Blocks    unsafe.Pointer // first block in the area
	Reserved  uintptr        // bytes reserved for the area
	Committed uintptr        // bytes committed for the area
	Used      uintptr        // number of allocated blocks
	BlockSize uintptr        // size of each block
}

// DeferredFreeFunc is called by the engine from time to time so the
// program can release memory it deferred. heartbeat increases monotonically.
type DeferredFreeFunc func(force bool, heartbeat uint64)

// OutputFunc receives statistics and verbose messages.
type OutputFunc func(msg string)

// ErrorFunc receives errno-style codes for errors the engine detects.
type ErrorFunc func(errno int)

// BlockVisitFunc is called once per area with a nil block, then, when all
// blocks are requested, once per allocated block. Returning false stops
// the visit.
type BlockVisitFunc func(heap Heap, area *Area, block unsafe.Pointer, blockSize uintptr) bool

// Option identifies an entry in the engine option table.
type Option int

// Option table, in the engine's native order.
const (
	OptionShowErrors Option = iota
	OptionShowStats
	OptionVerbose
	OptionEagerCommit
	OptionEagerRegionCommit
	OptionResetDecommits
	OptionLargeOSPages
	OptionReserveHugeOSPages
	OptionSegmentCache
	OptionPageReset
	OptionAbandonedPageReset
	OptionSegmentReset
	OptionEagerCommitDelay
	OptionResetDelay
	OptionUseNUMANodes
	OptionOSTag
	OptionMaxErrors
	optionLast
)

// OptionCount is the number of options in the table.
const OptionCount = int(optionLast)

var optionNames = [...]string{
	OptionShowErrors:         "show_errors",
	OptionShowStats:          "show_stats",
	OptionVerbose:            "verbose",
	OptionEagerCommit:        "eager_commit",
	OptionEagerRegionCommit:  "eager_region_commit",
	OptionResetDecommits:     "reset_decommits",
	OptionLargeOSPages:       "large_os_pages",
	OptionReserveHugeOSPages: "reserve_huge_os_pages",
	OptionSegmentCache:       "segment_cache",
	OptionPageReset:          "page_reset",
	OptionAbandonedPageReset: "abandoned_page_reset",
	OptionSegmentReset:       "segment_reset",
	OptionEagerCommitDelay:   "eager_commit_delay",
	OptionResetDelay:         "reset_delay",
	OptionUseNUMANodes:       "use_numa_nodes",
	OptionOSTag:              "os_tag",
	OptionMaxErrors:          "max_errors",
}

// Valid reports whether o is inside the option table.
func (o Option) Valid() bool {
	return o >= 0 && o < optionLast
}

func (o Option) String() string {
	if !o.Valid() {
		return "unknown"
	}
	return optionNames[o]
}

// ParseOption looks an option up by its table name ("show_stats").
func ParseOption(name string) (Option, bool) {
	for i, n := range optionNames {
		if n == name {
			return Option(i), true
		}
	}
	return 0, false
}
