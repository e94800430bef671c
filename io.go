package remnantsav

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Cursor is a seekable, little-endian reader/writer over an owned, in-memory
// buffer. Decode and encode share the same type: decode only ever reads
// (and seeks, to reach the name table and object index), encode seeks back
// to its own placeholders to overwrite them with offsets and sizes.
//
// ObjectPadding selects which terminator width an enclosing object body
// writes/expects after its property list (see §4.6): 4 for the top-level
// archive, 8 for PersistenceContainer actor sub-archives.
type Cursor struct {
	buf           []byte
	pos           int
	ObjectPadding int
}

// NewCursor wraps buf for reading and writing. objectPadding is 4 or 8 for a
// cursor that reads or writes object bodies; other cursors ignore it.
func NewCursor(buf []byte, objectPadding int) *Cursor {
	return &Cursor{buf: buf, ObjectPadding: objectPadding}
}

// Position returns the current byte offset.
func (c *Cursor) Position() int64 { return int64(c.pos) }

// Seek moves the cursor to an absolute byte offset.
func (c *Cursor) Seek(pos int64) { c.pos = int(pos) }

// Len returns the size of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Bytes returns the underlying buffer. Valid after encode completes.
func (c *Cursor) Bytes() []byte { return c.buf }

func (c *Cursor) growTo(n int) {
	if n > len(c.buf) {
		c.buf = append(c.buf, make([]byte, n-len(c.buf))...)
	}
}

func (c *Cursor) readBytes(n int) ([]byte, error) {
	if c.pos+n > len(c.buf) || n < 0 {
		return nil, ErrShortRead
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadBytes reads n raw bytes and advances the cursor.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	return c.readBytes(n)
}

// WriteBytes appends raw bytes at the current position, growing the buffer
// as needed, and advances the cursor.
func (c *Cursor) WriteBytes(b []byte) {
	c.growTo(c.pos + len(b))
	copy(c.buf[c.pos:], b)
	c.pos += len(b)
}

// ReadUint8 reads a single byte.
func (c *Cursor) ReadUint8() (uint8, error) {
	b, err := c.readBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// WriteUint8 writes a single byte.
func (c *Cursor) WriteUint8(v uint8) {
	c.growTo(c.pos + 1)
	c.buf[c.pos] = v
	c.pos++
}

// ReadUint16 reads a little-endian uint16.
func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// WriteUint16 writes a little-endian uint16.
func (c *Cursor) WriteUint16(v uint16) {
	c.growTo(c.pos + 2)
	binary.LittleEndian.PutUint16(c.buf[c.pos:], v)
	c.pos += 2
}

// ReadUint32 reads a little-endian uint32.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// WriteUint32 writes a little-endian uint32.
func (c *Cursor) WriteUint32(v uint32) {
	c.growTo(c.pos + 4)
	binary.LittleEndian.PutUint32(c.buf[c.pos:], v)
	c.pos += 4
}

// ReadUint64 reads a little-endian uint64.
func (c *Cursor) ReadUint64() (uint64, error) {
	b, err := c.readBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// WriteUint64 writes a little-endian uint64.
func (c *Cursor) WriteUint64(v uint64) {
	c.growTo(c.pos + 8)
	binary.LittleEndian.PutUint64(c.buf[c.pos:], v)
	c.pos += 8
}

// ReadInt16 reads a little-endian int16.
func (c *Cursor) ReadInt16() (int16, error) {
	v, err := c.ReadUint16()
	return int16(v), err
}

// WriteInt16 writes a little-endian int16.
func (c *Cursor) WriteInt16(v int16) { c.WriteUint16(uint16(v)) }

// ReadInt32 reads a little-endian int32.
func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

// WriteInt32 writes a little-endian int32.
func (c *Cursor) WriteInt32(v int32) { c.WriteUint32(uint32(v)) }

// ReadInt64 reads a little-endian int64.
func (c *Cursor) ReadInt64() (int64, error) {
	v, err := c.ReadUint64()
	return int64(v), err
}

// WriteInt64 writes a little-endian int64.
func (c *Cursor) WriteInt64(v int64) { c.WriteUint64(uint64(v)) }

// ReadFloat32 reads a little-endian IEEE-754 float32.
func (c *Cursor) ReadFloat32() (float32, error) {
	v, err := c.ReadUint32()
	return math.Float32frombits(v), err
}

// WriteFloat32 writes a little-endian IEEE-754 float32.
func (c *Cursor) WriteFloat32(v float32) { c.WriteUint32(math.Float32bits(v)) }

// ReadFloat64 reads a little-endian IEEE-754 float64.
func (c *Cursor) ReadFloat64() (float64, error) {
	v, err := c.ReadUint64()
	return math.Float64frombits(v), err
}

// WriteFloat64 writes a little-endian IEEE-754 float64.
func (c *Cursor) WriteFloat64(v float64) { c.WriteUint64(math.Float64bits(v)) }

// ReadFString reads a length-prefixed C-string: a u32 length (including the
// trailing NUL) followed by that many bytes. length==0 denotes the empty
// string with no further bytes.
func (c *Cursor) ReadFString() (string, error) {
	length, err := c.ReadUint32()
	if err != nil {
		return "", err
	}
	if length == 0 {
		return "", nil
	}
	raw, err := c.readBytes(int(length))
	if err != nil {
		return "", err
	}
	if raw[len(raw)-1] != 0 {
		return "", ErrInvalidCString
	}
	body := raw[:len(raw)-1]
	if !utf8.Valid(body) {
		return "", ErrInvalidUTF8
	}
	return string(body), nil
}

// WriteFString writes s as a length-prefixed C-string. The empty string
// encodes as a bare u32 zero with no trailing NUL.
func (c *Cursor) WriteFString(s string) {
	if s == "" {
		c.WriteUint32(0)
		return
	}
	c.WriteUint32(uint32(len(s)) + 1)
	c.WriteBytes([]byte(s))
	c.WriteUint8(0)
}

// PlaceholderUint32 writes a zero uint32 and returns its position, to be
// filled in later via PatchUint32 once the real value is known.
func (c *Cursor) PlaceholderUint32() int64 {
	at := c.Position()
	c.WriteUint32(0)
	return at
}

// PlaceholderUint64 writes a zero uint64 and returns its position, to be
// filled in later via PatchUint64.
func (c *Cursor) PlaceholderUint64() int64 {
	at := c.Position()
	c.WriteUint64(0)
	return at
}

// PatchUint32 overwrites the uint32 at a previously reserved placeholder
// position, then restores the cursor to where it was (normally end of
// buffer). This is the back-patch-without-two-passes idiom used throughout
// the archive and container writers: write a placeholder, remember the
// position, write the body, seek back, overwrite, seek forward again.
func (c *Cursor) PatchUint32(at int64, v uint32) {
	cur := c.pos
	c.pos = int(at)
	c.WriteUint32(v)
	c.pos = cur
}

// PatchUint64 is PatchUint32 for a u64 placeholder.
func (c *Cursor) PatchUint64(at int64, v uint64) {
	cur := c.pos
	c.pos = int(at)
	c.WriteUint64(v)
	c.pos = cur
}
