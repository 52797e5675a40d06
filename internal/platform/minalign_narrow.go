//go:build 386 || arm || mips || mipsle || ppc64 || ppc64le || wasm

package platform

const (
	// TargetClass is the class of the architecture this binary was built for.
	TargetClass = ClassNarrow

	// MinAlign is the alignment guaranteed by the unaligned allocation path.
	MinAlign uintptr = 8
)
