//go:build amd64 || arm64 || mips64 || mips64le || s390x || sparc64 || loong64 || riscv64

package platform

const (
	// TargetClass is the class of the architecture this binary was built for.
	TargetClass = ClassWide

	// MinAlign is the alignment guaranteed by the unaligned allocation path.
	MinAlign uintptr = 16
)
