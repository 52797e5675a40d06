// Package platform resolves the allocation facts that are fixed per target:
// the minimum alignment the engine's unaligned entry points already
// guarantee, and the per-OS ceiling on alignment values.
//
// Both are decided once. MinAlign is a build-time constant chosen by GOARCH
// build constraints; an architecture that is not assigned to a class does
// not compile. The ceiling is looked up by GOOS when Current is first called.
package platform

import (
	"runtime"
	"sync"
)

// Class is the pointer-width class of a target architecture.
type Class uint8

const (
	// ClassNarrow targets guarantee 8-byte alignment from the default path.
	ClassNarrow Class = iota + 1
	// ClassWide targets guarantee 16-byte alignment from the default path.
	ClassWide
)

// MinAlign returns the alignment guaranteed by the class.
func (c Class) MinAlign() uintptr {
	switch c {
	case ClassNarrow:
		return 8
	case ClassWide:
		return 16
	default:
		return 0
	}
}

func (c Class) String() string {
	switch c {
	case ClassNarrow:
		return "narrow"
	case ClassWide:
		return "wide"
	default:
		return "unknown"
	}
}

// classByArch mirrors the build constraints in minalign_*.go.
var classByArch = map[string]Class{
	"386":      ClassNarrow,
	"arm":      ClassNarrow,
	"mips":     ClassNarrow,
	"mipsle":   ClassNarrow,
	"ppc64":    ClassNarrow,
	"ppc64le":  ClassNarrow,
	"wasm":     ClassNarrow,
	"amd64":    ClassWide,
	"arm64":    ClassWide,
	"mips64":   ClassWide,
	"mips64le": ClassWide,
	"s390x":    ClassWide,
	"sparc64":  ClassWide,
	"loong64":  ClassWide,
	"riscv64":  ClassWide,
}

// ClassOf reports the class assigned to goarch. ok is false for an
// architecture that has not been assigned.
func ClassOf(goarch string) (Class, bool) {
	c, ok := classByArch[goarch]
	return c, ok
}

// CeilingTable maps GOOS to the largest alignment value that may be
// forwarded to the engine. Operating systems without an entry have no
// ceiling.
//
// darwin: the system allocator underneath rejects or truncates alignments
// above 2^31.
var CeilingTable = map[string]uintptr{
	"darwin": 1 << 31,
}

// Policy is the resolved alignment policy for one target.
type Policy struct {
	// MinAlign is the alignment the engine's unaligned entry points guarantee.
	MinAlign uintptr
	// MaxAlign is the largest alignment forwarded to the engine.
	// Zero means no ceiling.
	MaxAlign uintptr
}

// FastPath reports whether a request can use the unaligned entry points.
// A block smaller than its alignment is not trusted to land on that
// alignment, so align must not exceed size either.
func (p Policy) FastPath(size, align uintptr) bool {
	return align <= p.MinAlign && align <= size
}

// Exceeds reports whether align is above the ceiling.
func (p Policy) Exceeds(align uintptr) bool {
	return p.MaxAlign != 0 && align > p.MaxAlign
}

// Resolve builds the policy for goos using table for the ceiling and the
// build-time MinAlign of this binary.
func Resolve(goos string, table map[string]uintptr) Policy {
	return Policy{
		MinAlign: MinAlign,
		MaxAlign: table[goos],
	}
}

var (
	current     Policy
	currentOnce sync.Once
)

// Current returns the policy of the running target. It is resolved once.
func Current() Policy {
	currentOnce.Do(func() {
		current = Resolve(runtime.GOOS, CeilingTable)
	})
	return current
}
