package codec

// CompressLZ4 compresses src into dst with LZ4. The level only selects
// storing (0) or compressing.
func CompressLZ4(src, dst []byte, level int) int { return compress(LZ4, src, dst, level) }

// DecompressLZ4 decodes an LZ4 or LZ4HC frame.
func DecompressLZ4(src, dst []byte) int {
	h, ok := parseHeader(src)
	if !ok {
		return StatusCorrupt
	}
	if h.codec != LZ4 && h.codec != LZ4HC {
		return StatusCodecMismatch
	}
	return decodeFrame(h, src[headerSize:], dst)
}

// CompressLZ4HC compresses src with the high-compression LZ4 encoder.
func CompressLZ4HC(src, dst []byte, level int) int { return compress(LZ4HC, src, dst, level) }

func CompressZstd(src, dst []byte, level int) int { return compress(Zstd, src, dst, level) }

func DecompressZstd(src, dst []byte) int { return decompress(Zstd, src, dst) }

func CompressZlib(src, dst []byte, level int) int { return compress(Zlib, src, dst, level) }

func DecompressZlib(src, dst []byte) int { return decompress(Zlib, src, dst) }

func CompressDeflate(src, dst []byte, level int) int { return compress(Deflate, src, dst, level) }

func DecompressDeflate(src, dst []byte) int { return decompress(Deflate, src, dst) }

func CompressGzip(src, dst []byte, level int) int { return compress(Gzip, src, dst, level) }

func DecompressGzip(src, dst []byte) int { return decompress(Gzip, src, dst) }

// CompressTo compresses src into dst with c. Unknown codecs return
// StatusBadArgument.
func CompressTo(c Codec, src, dst []byte, level int) int {
	if !c.Valid() {
		return StatusBadArgument
	}
	return compress(c, src, dst, level)
}

// DecompressTo decodes any frame into dst.
func DecompressTo(src, dst []byte) int {
	h, ok := parseHeader(src)
	if !ok {
		return StatusCorrupt
	}
	return decodeFrame(h, src[headerSize:], dst)
}
