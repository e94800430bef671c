package remnantsav

// FName is a reference into an archive's name table, with an optional
// numeric suffix. On the wire it is a u16 table index; bit 15
// (nameIndexNumberFlag) signals a trailing u32 suffix.
type FName struct {
	Value  string  `json:"value"`
	Number *uint32 `json:"number,omitempty"`
}

const nameIndexNumberFlag = uint16(1 << 15)

// NameNone is the property-list terminator sentinel.
const NameNone = "None"

// IsNone reports whether n is the bare "None" sentinel.
func (n FName) IsNone() bool { return n.Value == NameNone && n.Number == nil }

// NewName builds a plain FName with no numeric suffix.
func NewName(value string) FName { return FName{Value: value} }

// FGuid is four little-endian u32 words. Unlike a standard GUID it is not
// formatted as 8-4-4-4-12 hex on the wire.
type FGuid struct {
	A, B, C, D uint32
}

func readGuid(c *Cursor) (FGuid, error) {
	var g FGuid
	var err error
	if g.A, err = c.ReadUint32(); err != nil {
		return g, err
	}
	if g.B, err = c.ReadUint32(); err != nil {
		return g, err
	}
	if g.C, err = c.ReadUint32(); err != nil {
		return g, err
	}
	if g.D, err = c.ReadUint32(); err != nil {
		return g, err
	}
	return g, nil
}

func writeGuid(c *Cursor, g FGuid) {
	c.WriteUint32(g.A)
	c.WriteUint32(g.B)
	c.WriteUint32(g.C)
	c.WriteUint32(g.D)
}

// FVector is a tuple of three little-endian f64 components.
type FVector struct {
	X, Y, Z float64
}

func readVector(c *Cursor) (FVector, error) {
	var v FVector
	var err error
	if v.X, err = c.ReadFloat64(); err != nil {
		return v, err
	}
	if v.Y, err = c.ReadFloat64(); err != nil {
		return v, err
	}
	if v.Z, err = c.ReadFloat64(); err != nil {
		return v, err
	}
	return v, nil
}

func writeVector(c *Cursor, v FVector) {
	c.WriteFloat64(v.X)
	c.WriteFloat64(v.Y)
	c.WriteFloat64(v.Z)
}

// FQuaternion is a tuple of four little-endian f64 components, wire order
// w, x, y, z.
type FQuaternion struct {
	W, X, Y, Z float64
}

func readQuaternion(c *Cursor) (FQuaternion, error) {
	var q FQuaternion
	var err error
	if q.W, err = c.ReadFloat64(); err != nil {
		return q, err
	}
	if q.X, err = c.ReadFloat64(); err != nil {
		return q, err
	}
	if q.Y, err = c.ReadFloat64(); err != nil {
		return q, err
	}
	if q.Z, err = c.ReadFloat64(); err != nil {
		return q, err
	}
	return q, nil
}

func writeQuaternion(c *Cursor, q FQuaternion) {
	c.WriteFloat64(q.W)
	c.WriteFloat64(q.X)
	c.WriteFloat64(q.Y)
	c.WriteFloat64(q.Z)
}

// FTransform is a rotation, position, and scale, each a tuple of f64.
type FTransform struct {
	Rotation FQuaternion `json:"rotation"`
	Position FVector     `json:"position"`
	Scale    FVector     `json:"scale"`
}

func readTransform(c *Cursor) (FTransform, error) {
	var t FTransform
	var err error
	if t.Rotation, err = readQuaternion(c); err != nil {
		return t, err
	}
	if t.Position, err = readVector(c); err != nil {
		return t, err
	}
	if t.Scale, err = readVector(c); err != nil {
		return t, err
	}
	return t, nil
}

func writeTransform(c *Cursor, t FTransform) {
	writeQuaternion(c, t.Rotation)
	writeVector(c, t.Position)
	writeVector(c, t.Scale)
}

// FTopLevelAssetPath identifies a blueprint class by package path and leaf
// name, each a length-prefixed C-string.
type FTopLevelAssetPath struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

func readTopLevelAssetPath(c *Cursor) (FTopLevelAssetPath, error) {
	var p FTopLevelAssetPath
	var err error
	if p.Path, err = c.ReadFString(); err != nil {
		return p, err
	}
	if p.Name, err = c.ReadFString(); err != nil {
		return p, err
	}
	return p, nil
}

func writeTopLevelAssetPath(c *Cursor, p FTopLevelAssetPath) {
	c.WriteFString(p.Path)
	c.WriteFString(p.Name)
}

// FPackageVersion records the two independent engine version counters
// (UE4-era and UE5-era) carried by newer save formats.
type FPackageVersion struct {
	UE4 uint32 `json:"ue4"`
	UE5 uint32 `json:"ue5"`
}

func readPackageVersion(c *Cursor) (FPackageVersion, error) {
	var v FPackageVersion
	var err error
	if v.UE4, err = c.ReadUint32(); err != nil {
		return v, err
	}
	if v.UE5, err = c.ReadUint32(); err != nil {
		return v, err
	}
	return v, nil
}

func writePackageVersion(c *Cursor, v FPackageVersion) {
	c.WriteUint32(v.UE4)
	c.WriteUint32(v.UE5)
}

// readTicks64 and writeTicks64 back DateTime and Timespan, both of which are
// a bare u64 tick count on the wire.
func readTicks64(c *Cursor) (uint64, error) { return c.ReadUint64() }
func writeTicks64(c *Cursor, v uint64)      { c.WriteUint64(v) }
