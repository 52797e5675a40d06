//go:build cgo

package main

/*
#include <stddef.h>
*/
import "C"

import (
	"unsafe"

	"github.com/joshuapare/memkit/codec"
	"github.com/joshuapare/memkit/internal/platform"
)

type compressFunc func(src, dst []byte, level int) int

type decompressFunc func(src, dst []byte) int

// bytesAt views n bytes at p. A NULL p or a negative n is an empty view.
func bytesAt(p unsafe.Pointer, n int) []byte {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}

func compressWith(fn compressFunc, src unsafe.Pointer, srcLen int, dst unsafe.Pointer, dstLen, level int) int {
	if srcLen < 0 || dstLen < 0 || (src == nil && srcLen > 0) {
		return codec.StatusBadArgument
	}
	return fn(bytesAt(src, srcLen), bytesAt(dst, dstLen), level)
}

func decompressWith(fn decompressFunc, src unsafe.Pointer, srcLen int, dst unsafe.Pointer, dstLen int) int {
	if srcLen < 0 || dstLen < 0 || (src == nil && srcLen > 0) {
		return codec.StatusBadArgument
	}
	return fn(bytesAt(src, srcLen), bytesAt(dst, dstLen))
}

// Codec entry points return the bytes written, 0 when dst is too small,
// or a negative status.

//export memkit_compress_lz4
func memkit_compress_lz4(src unsafe.Pointer, srcLen C.int, dst unsafe.Pointer, dstLen, level C.int) C.int {
	return C.int(compressWith(codec.CompressLZ4, src, int(srcLen), dst, int(dstLen), int(level)))
}

//export memkit_compress_lz4hc
func memkit_compress_lz4hc(src unsafe.Pointer, srcLen C.int, dst unsafe.Pointer, dstLen, level C.int) C.int {
	return C.int(compressWith(codec.CompressLZ4HC, src, int(srcLen), dst, int(dstLen), int(level)))
}

//export memkit_decompress_lz4
func memkit_decompress_lz4(src unsafe.Pointer, srcLen C.int, dst unsafe.Pointer, dstLen C.int) C.int {
	return C.int(decompressWith(codec.DecompressLZ4, src, int(srcLen), dst, int(dstLen)))
}

//export memkit_compress_zstd
func memkit_compress_zstd(src unsafe.Pointer, srcLen C.int, dst unsafe.Pointer, dstLen, level C.int) C.int {
	return C.int(compressWith(codec.CompressZstd, src, int(srcLen), dst, int(dstLen), int(level)))
}

//export memkit_decompress_zstd
func memkit_decompress_zstd(src unsafe.Pointer, srcLen C.int, dst unsafe.Pointer, dstLen C.int) C.int {
	return C.int(decompressWith(codec.DecompressZstd, src, int(srcLen), dst, int(dstLen)))
}

//export memkit_compress_zlib
func memkit_compress_zlib(src unsafe.Pointer, srcLen C.int, dst unsafe.Pointer, dstLen, level C.int) C.int {
	return C.int(compressWith(codec.CompressZlib, src, int(srcLen), dst, int(dstLen), int(level)))
}

//export memkit_decompress_zlib
func memkit_decompress_zlib(src unsafe.Pointer, srcLen C.int, dst unsafe.Pointer, dstLen C.int) C.int {
	return C.int(decompressWith(codec.DecompressZlib, src, int(srcLen), dst, int(dstLen)))
}

//export memkit_compress_deflate
func memkit_compress_deflate(src unsafe.Pointer, srcLen C.int, dst unsafe.Pointer, dstLen, level C.int) C.int {
	return C.int(compressWith(codec.CompressDeflate, src, int(srcLen), dst, int(dstLen), int(level)))
}

//export memkit_decompress_deflate
func memkit_decompress_deflate(src unsafe.Pointer, srcLen C.int, dst unsafe.Pointer, dstLen C.int) C.int {
	return C.int(decompressWith(codec.DecompressDeflate, src, int(srcLen), dst, int(dstLen)))
}

//export memkit_compress_gzip
func memkit_compress_gzip(src unsafe.Pointer, srcLen C.int, dst unsafe.Pointer, dstLen, level C.int) C.int {
	return C.int(compressWith(codec.CompressGzip, src, int(srcLen), dst, int(dstLen), int(level)))
}

//export memkit_decompress_gzip
func memkit_decompress_gzip(src unsafe.Pointer, srcLen C.int, dst unsafe.Pointer, dstLen C.int) C.int {
	return C.int(decompressWith(codec.DecompressGzip, src, int(srcLen), dst, int(dstLen)))
}

//export memkit_decompress
func memkit_decompress(src unsafe.Pointer, srcLen C.int, dst unsafe.Pointer, dstLen C.int) C.int {
	return C.int(decompressWith(codec.DecompressTo, src, int(srcLen), dst, int(dstLen)))
}

//export memkit_compress_bound
func memkit_compress_bound(n C.int) C.int {
	if n < 0 {
		return codec.StatusBadArgument
	}
	return C.int(codec.Bound(int(n)))
}

// shuffleWith returns 0 on success and StatusBadArgument when the buffers
// do not fit typeSize.
func shuffleWith(fn func(int, []byte, []byte) error, typeSize, n int, src, dst unsafe.Pointer) int {
	if n < 0 || (n > 0 && (src == nil || dst == nil)) {
		return codec.StatusBadArgument
	}
	if err := fn(typeSize, bytesAt(src, n), bytesAt(dst, n)); err != nil {
		return codec.StatusBadArgument
	}
	return 0
}

//export memkit_shuffle
func memkit_shuffle(typeSize, n C.int, src, dst unsafe.Pointer) C.int {
	return C.int(shuffleWith(codec.Shuffle, int(typeSize), int(n), src, dst))
}

//export memkit_unshuffle
func memkit_unshuffle(typeSize, n C.int, src, dst unsafe.Pointer) C.int {
	return C.int(shuffleWith(codec.Unshuffle, int(typeSize), int(n), src, dst))
}

//export memkit_cpu_number
func memkit_cpu_number() C.int { return C.int(platform.CurrentCPU()) }
