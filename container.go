package remnantsav

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"io"
)

// archiveV2HeaderTag identifies a chunk as belonging to the ARCHIVE_V2
// container format (§4.2). No other tag value is understood.
const archiveV2HeaderTag = 0x22222222_9E2A83C1

// chunkSize is the nominal (not necessarily actual) uncompressed size of
// each chunk emitted on encode, and the value always stored on the wire
// for uncompressed_block_size regardless of a chunk's real size.
const chunkSize = 2 << 16

// CompressorKind is the on-wire compressor tag for a chunk (§4.2). Only
// CompressorZlib is ever produced by this package's encoder; readCompressor
// recognizes the others because they have been observed in the wild, but
// decodeContainer rejects them with ErrUnknownCompressor.
type CompressorKind uint8

const (
	CompressorCustom CompressorKind = iota
	CompressorNone
	CompressorOodle
	CompressorZlib
	CompressorGzip
	CompressorLZ4
)

// Compressor is a chunk's compressor tag, with the Custom variant's name
// carried alongside (empty for every other kind).
type Compressor struct {
	Kind       CompressorKind
	CustomName string
}

func readCompressor(c *Cursor) (Compressor, error) {
	tag, err := c.ReadUint8()
	if err != nil {
		return Compressor{}, err
	}
	switch CompressorKind(tag) {
	case CompressorCustom:
		name, err := c.ReadFString()
		if err != nil {
			return Compressor{}, err
		}
		return Compressor{Kind: CompressorCustom, CustomName: name}, nil
	case CompressorNone, CompressorOodle, CompressorZlib, CompressorGzip, CompressorLZ4:
		return Compressor{Kind: CompressorKind(tag)}, nil
	default:
		return Compressor{}, ErrUnknownCompressor
	}
}

func writeCompressor(c *Cursor, comp Compressor) {
	c.WriteUint8(uint8(comp.Kind))
	if comp.Kind == CompressorCustom {
		c.WriteFString(comp.CustomName)
	}
}

// DecodeSavFile parses a complete .sav file: the CRC+size+version header,
// the chunked zlib payload, and the archive it contains. opts may be nil.
func DecodeSavFile(raw []byte, opts *Options) (*Archive, error) {
	return decodeSavFile(raw, opts)
}

func decodeSavFile(raw []byte, opts *Options) (*Archive, error) {
	stream, err := decodeContainer(raw, opts)
	if err != nil {
		return nil, err
	}
	return ReadArchive(stream)
}

// EncodeSavFile serializes a into the complete .sav on-disk byte layout:
// chunked zlib framing around the archive's own header+content.
func EncodeSavFile(a *Archive, savFileVersion uint32) []byte {
	archiveBytes := WriteArchive(a)
	return encodeContainer(archiveBytes, savFileVersion)
}

// decodeContainer reconstructs the uncompressed archive stream from a .sav
// file's chunked zlib container, verifying the stored CRC32 (§4.2).
func decodeContainer(raw []byte, opts *Options) ([]byte, error) {
	logger := opts.logger()
	c := NewCursor(raw, 4)
	crc, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	contentSize, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	version, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}

	uncompressed := make([]byte, 0, contentSize)
	for c.Position() < int64(c.Len()) {
		tag, err := c.ReadUint64()
		if err != nil {
			return nil, err
		}
		if tag != archiveV2HeaderTag {
			return nil, ErrInvalidMagic
		}
		if _, err := c.ReadUint64(); err != nil { // uncompressed_block_size, informational
			return nil, err
		}
		compressor, err := readCompressor(c)
		if err != nil {
			return nil, err
		}
		if compressor.Kind != CompressorZlib {
			return nil, ErrUnknownCompressor
		}
		info, err := readCompressedChunkInfo(c)
		if err != nil {
			return nil, err
		}
		dup, err := readCompressedChunkInfo(c)
		if err != nil {
			return nil, err
		}
		if dup != info {
			logger.Warnf("chunk info duplicate disagrees with primary: %+v vs %+v", dup, info)
		}
		payload, err := c.ReadBytes(int(info.Compressed))
		if err != nil {
			return nil, err
		}
		inflated, err := inflateZlib(payload)
		if err != nil {
			return nil, err
		}
		uncompressed = append(uncompressed, inflated...)
	}

	// crc32 and content_size are prepended ahead of the concatenated chunk
	// payload (itself archiveBytes[8:] from the encode side, i.e. it opens
	// with the save_game_file_version slot, which encodeContainer fills with
	// contentSize-4); the reconstructed stream's byte offset 8, which lines
	// up with that slot, is then
	// overwritten with the container version, per §4.2. ReadArchive ends up
	// reporting this container version as the archive's SaveGameFileVersion
	// — the real value written by WriteArchive never reaches the wire.
	reconstructed := make([]byte, 0, 8+len(uncompressed))
	reconstructed = appendUint32LE(reconstructed, crc)
	reconstructed = appendUint32LE(reconstructed, contentSize)
	reconstructed = append(reconstructed, uncompressed...)
	putUint32LE(reconstructed[8:12], version)

	got := crc32.ChecksumIEEE(reconstructed[4:])
	if got != crc && !opts.disableCRCCheck() {
		return nil, ErrCrcMismatch
	}
	if got != crc {
		logger.Warnf("crc32 mismatch ignored: stored %#x, computed %#x", crc, got)
	}

	return reconstructed, nil
}

// encodeContainer wraps archiveBytes (the output of WriteArchive, which
// already reserves its own leading 8 zero bytes for crc32+size) in the
// chunked zlib container, computing the real CRC32 and chunk sizes.
func encodeContainer(archiveBytes []byte, savFileVersion uint32) []byte {
	contentSize := uint32(len(archiveBytes))

	// The chunked payload is archiveBytes[8:] (its own leading 8 reserved
	// bytes never reach the wire); on reconstruction that payload's first
	// 4 bytes are overwritten with the container version, so the CRC is
	// computed over that same patched view, not the raw bytes.
	crcBuf := make([]byte, 0, 8+len(archiveBytes)-8)
	crcBuf = appendUint32LE(crcBuf, contentSize)
	crcBuf = appendUint32LE(crcBuf, savFileVersion)
	crcBuf = append(crcBuf, archiveBytes[12:]...)
	crc := crc32.ChecksumIEEE(crcBuf)

	out := NewCursor(nil, 0)
	out.WriteUint32(crc)
	out.WriteUint32(contentSize)
	out.WriteUint32(savFileVersion)

	// The payload's own offset 0 (archiveBytes[8:12], the archive's
	// save_game_file_version slot) is fixed up to contentSize-4 before
	// chunking, matching the real writer: on decode this slot is discarded
	// and overwritten with the container version regardless (§4.2, above),
	// but what actually gets compressed here must match a real save's bytes.
	payload := append([]byte(nil), archiveBytes[8:]...)
	putUint32LE(payload[0:4], contentSize-4)
	for offset := 0; offset < len(payload); {
		n := len(payload) - offset
		if n > chunkSize {
			n = chunkSize
		}
		chunk := payload[offset : offset+n]
		offset += n

		out.WriteUint64(archiveV2HeaderTag)
		out.WriteUint64(chunkSize)
		writeCompressor(out, Compressor{Kind: CompressorZlib})

		compressed := deflateZlib(chunk)
		info := CompressedChunkInfo{Compressed: uint64(len(compressed)), Uncompressed: uint64(len(chunk))}
		writeCompressedChunkInfo(out, info)
		writeCompressedChunkInfo(out, info)
		out.WriteBytes(compressed)
	}

	return out.Bytes()
}

// CompressedChunkInfo is the duplicated per-chunk size record (§4.2). The
// semantic meaning of the second copy found on the wire is unclear; it is
// always observed equal to the first and is written equal on encode (§9).
type CompressedChunkInfo struct {
	Compressed   uint64
	Uncompressed uint64
}

func readCompressedChunkInfo(c *Cursor) (CompressedChunkInfo, error) {
	compressed, err := c.ReadUint64()
	if err != nil {
		return CompressedChunkInfo{}, err
	}
	uncompressed, err := c.ReadUint64()
	if err != nil {
		return CompressedChunkInfo{}, err
	}
	return CompressedChunkInfo{Compressed: compressed, Uncompressed: uncompressed}, nil
}

func writeCompressedChunkInfo(c *Cursor, info CompressedChunkInfo) {
	c.WriteUint64(info.Compressed)
	c.WriteUint64(info.Uncompressed)
}

func inflateZlib(payload []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func deflateZlib(payload []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(payload)
	w.Close()
	return buf.Bytes()
}

func appendUint32LE(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

func putUint32LE(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b, v)
}
