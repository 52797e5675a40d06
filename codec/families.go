package codec

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// encodeFunc returns the compressed payload of src, or nil when the codec
// cannot shrink it.
type encodeFunc func(src []byte, level int) ([]byte, error)

// decodeFunc decodes payload into out, which has exactly the raw length.
type decodeFunc func(payload, out []byte) (int, error)

var encoders = map[Codec]encodeFunc{
	LZ4:     encodeLZ4,
	LZ4HC:   encodeLZ4HC,
	Zstd:    encodeZstd,
	Zlib:    encodeZlib,
	Deflate: encodeDeflate,
	Gzip:    encodeGzip,
}

var decoders = map[Codec]decodeFunc{
	LZ4:     decodeLZ4,
	LZ4HC:   decodeLZ4,
	Zstd:    decodeZstd,
	Zlib:    decodeZlib,
	Deflate: decodeDeflate,
	Gzip:    decodeGzip,
}

var lz4Compressors = sync.Pool{
	New: func() any { return new(lz4.Compressor) },
}

var lz4HCLevels = [MaxLevel + 1]lz4.CompressionLevel{
	lz4.Fast, lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4,
	lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

func encodeLZ4(src []byte, _ int) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	c := lz4Compressors.Get().(*lz4.Compressor)
	defer lz4Compressors.Put(c)
	n, err := c.CompressBlock(src, dst)
	if err != nil || n == 0 {
		return nil, err
	}
	return dst[:n], nil
}

func encodeLZ4HC(src []byte, level int) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	c := lz4.CompressorHC{Level: lz4HCLevels[level]}
	n, err := c.CompressBlock(src, dst)
	if err != nil || n == 0 {
		return nil, err
	}
	return dst[:n], nil
}

func decodeLZ4(payload, out []byte) (int, error) {
	return lz4.UncompressBlock(payload, out)
}

var (
	zstdMu       sync.Mutex
	zstdEncoders = make(map[int]*zstd.Encoder)

	zstdDecoderOnce sync.Once
	zstdDecoder     *zstd.Decoder
	zstdDecoderErr  error
)

// zstdEncoder returns a shared encoder for level. EncodeAll is safe for
// concurrent use.
func zstdEncoder(level int) (*zstd.Encoder, error) {
	zstdMu.Lock()
	defer zstdMu.Unlock()
	if enc, ok := zstdEncoders[level]; ok {
		return enc, nil
	}
	// Levels 1..9 spread over zstd's 1..22.
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level*22/MaxLevel)),
		zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	zstdEncoders[level] = enc
	return enc, nil
}

func encodeZstd(src []byte, level int) ([]byte, error) {
	enc, err := zstdEncoder(level)
	if err != nil {
		return nil, err
	}
	return enc.EncodeAll(src, nil), nil
}

func decodeZstd(payload, out []byte) (int, error) {
	zstdDecoderOnce.Do(func() {
		zstdDecoder, zstdDecoderErr = zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(0),
			zstd.WithDecodeAllCapLimit(true))
	})
	if zstdDecoderErr != nil {
		return 0, zstdDecoderErr
	}
	// Output is limited to out's capacity, the raw length from the header.
	res, err := zstdDecoder.DecodeAll(payload, out[:0:len(out)])
	if err != nil {
		return 0, err
	}
	if len(res) != len(out) {
		return 0, ErrCorrupt
	}
	copy(out, res)
	return len(res), nil
}

func encodeZlib(src []byte, level int) ([]byte, error) {
	var b bytes.Buffer
	w, err := zlib.NewWriterLevel(&b, level)
	if err != nil {
		return nil, err
	}
	return finish(&b, w, src)
}

func encodeDeflate(src []byte, level int) ([]byte, error) {
	var b bytes.Buffer
	w, err := flate.NewWriter(&b, level)
	if err != nil {
		return nil, err
	}
	return finish(&b, w, src)
}

func encodeGzip(src []byte, level int) ([]byte, error) {
	var b bytes.Buffer
	w, err := gzip.NewWriterLevel(&b, level)
	if err != nil {
		return nil, err
	}
	return finish(&b, w, src)
}

func finish(b *bytes.Buffer, w io.WriteCloser, src []byte) ([]byte, error) {
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func decodeZlib(payload, out []byte) (int, error) {
	r, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	return readExact(r, out)
}

func decodeDeflate(payload, out []byte) (int, error) {
	return readExact(flate.NewReader(bytes.NewReader(payload)), out)
}

func decodeGzip(payload, out []byte) (int, error) {
	r, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	return readExact(r, out)
}

// readExact fills out from r and requires the stream to end right there,
// which is also when checksums are verified.
func readExact(r io.ReadCloser, out []byte) (int, error) {
	defer r.Close()
	n, err := io.ReadFull(r, out)
	if err != nil {
		return n, err
	}
	var extra [1]byte
	if m, err := r.Read(extra[:]); m != 0 || err != io.EOF {
		return n, ErrCorrupt
	}
	return n, nil
}
