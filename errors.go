package remnantsav

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fixed, parameterless failure modes.
var (
	// ErrShortRead is returned when a read would run past the end of the
	// buffer.
	ErrShortRead = errors.New("remnantsav: short read")

	// ErrInvalidUTF8 is returned when a length-prefixed string's bytes are
	// not valid UTF-8.
	ErrInvalidUTF8 = errors.New("remnantsav: invalid utf8 in string")

	// ErrInvalidCString is returned when a length-prefixed string is
	// missing its trailing NUL.
	ErrInvalidCString = errors.New("remnantsav: length-prefixed string missing trailing NUL")

	// ErrInvalidMagic is returned when a chunk's package file tag does not
	// match the ARCHIVE_V2 header tag.
	ErrInvalidMagic = errors.New("remnantsav: chunk tag is not ARCHIVE_V2")

	// ErrUnknownCompressor is returned for a compressor byte outside the
	// known range, and, when decoding a container, for any compressor other
	// than zlib (Custom included: no handler is registered for it).
	ErrUnknownCompressor = errors.New("remnantsav: unknown or unsupported compressor")

	// ErrCrcMismatch is returned when the container's stored CRC32 does not
	// match the recomputed one.
	ErrCrcMismatch = errors.New("remnantsav: crc32 mismatch")

	// ErrUnsupportedHistoryType is returned for a TextProperty history_type
	// outside {0, 255}.
	ErrUnsupportedHistoryType = errors.New("remnantsav: unsupported TextProperty history type")

	// ErrUnknownStructKind is returned when a PersistenceBlob's class path
	// is neither the profile nor the save path.
	ErrUnknownStructKind = errors.New("remnantsav: unknown PersistenceBlob class path")

	// ErrComponentLengthMismatch is returned when a component body consumes
	// a different byte count than its declared length. Unlike the
	// per-object length mismatch (which is recoverable, see §4.6), this one
	// is always fatal.
	ErrComponentLengthMismatch = errors.New("remnantsav: component body length mismatch")
)

// NameIndexOutOfRangeError is returned when an FName reference resolves past
// the end of the archive's name table.
type NameIndexOutOfRangeError struct {
	Index uint16
	Size  int
}

func (e *NameIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("remnantsav: name index %d out of range (table has %d entries)", e.Index, e.Size)
}

// UnknownPropertyTypeError is returned when a property's type_name does not
// match any known property kind.
type UnknownPropertyTypeError struct {
	TypeName string
	Offset   int64
}

func (e *UnknownPropertyTypeError) Error() string {
	return fmt.Sprintf("remnantsav: unknown property type %q at offset %d", e.TypeName, e.Offset)
}

// ReservedNonZeroError is returned when a field documented as always zero on
// the wire is observed to be non-zero.
type ReservedNonZeroError struct {
	Context string
	Value   uint64
}

func (e *ReservedNonZeroError) Error() string {
	return fmt.Sprintf("remnantsav: %s: 0x%X", e.Context, e.Value)
}

// UnknownVariableTagError is returned when a Variable's tag byte does not
// match any of the five known value kinds.
type UnknownVariableTagError struct {
	Tag    uint8
	Offset int64
}

func (e *UnknownVariableTagError) Error() string {
	return fmt.Sprintf("remnantsav: unknown variable tag %d at offset %d", e.Tag, e.Offset)
}
