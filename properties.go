package remnantsav

import "fmt"

// PropertyData is the closed tagged union of the 20+ property kinds a
// Property's body can hold. Each concrete type implements the unexported
// marker to keep the union closed to this package.
type PropertyData interface {
	isPropertyData()
}

// Property is a self-describing tagged record: a name, an array index, a
// wire type name, the encoded body size, and the decoded body itself.
type Property struct {
	Name     FName        `json:"name"`
	Index    uint32       `json:"index"`
	TypeName FName        `json:"type_name"`
	Size     uint32       `json:"size"`
	Data     PropertyData `json:"data"`
}

type (
	ByteValue struct {
		Raw     *uint8
		EnumRef *FName
	}
	BytePropertyData struct {
		EnumName FName     `json:"enum_name"`
		Value    ByteValue `json:"value"`
	}
	BoolPropertyData struct {
		Value bool `json:"value"`
	}
	EnumPropertyData struct {
		EnumName FName `json:"enum_name"`
		Value    FName `json:"value"`
	}
	Int16PropertyData struct {
		Value int16 `json:"value"`
	}
	Int32PropertyData struct {
		Value int32 `json:"value"`
	}
	Int64PropertyData struct {
		Value int64 `json:"value"`
	}
	UInt16PropertyData struct {
		Value uint16 `json:"value"`
	}
	UInt32PropertyData struct {
		Value uint32 `json:"value"`
	}
	UInt64PropertyData struct {
		Value uint64 `json:"value"`
	}
	FloatPropertyData struct {
		Value float32 `json:"value"`
	}
	DoublePropertyData struct {
		Value float64 `json:"value"`
	}
	MapEntry struct {
		Key   PropertyData `json:"key"`
		Value PropertyData `json:"value"`
	}
	MapPropertyData struct {
		KeyType   FName      `json:"key_type"`
		ValueType FName      `json:"value_type"`
		Elements  []MapEntry `json:"elements"`
	}
	// ArrayStructHead is the miniature property header that precedes the
	// elements of a struct-typed array. Present only when InnerType is
	// "StructProperty".
	ArrayStructHead struct {
		Name       FName  `json:"name"`
		TypeName   FName  `json:"type_name"`
		Index      uint32 `json:"index"`
		StructName FName  `json:"struct_name"`
		Guid       FGuid  `json:"guid"`
	}
	ArrayPropertyData struct {
		InnerType  FName            `json:"inner_type"`
		StructHead *ArrayStructHead `json:"head,omitempty"`
		Elements   []PropertyData   `json:"elements"`
	}
	// ObjectPropertyData stores an index into the archive's object_index;
	// -1 denotes null.
	ObjectPropertyData struct {
		Index int32 `json:"index"`
	}
	SoftObjectPropertyData struct {
		Value string `json:"value"`
	}
	NamePropertyData struct {
		Value FName `json:"value"`
	}
	StructPropertyData struct {
		StructName FName      `json:"struct_name"`
		Guid       FGuid      `json:"guid"`
		Data       StructData `json:"data"`
	}
	StrPropertyData struct {
		Value string `json:"value"`
	}
	// StructReferenceData is the degenerate bare-FGuid parser used only
	// for struct-typed map keys.
	StructReferenceData struct {
		Value FGuid `json:"value"`
	}
	TextPropertyData struct {
		Flags   uint32      `json:"flags"`
		History TextHistory `json:"history"`
	}
	// TextHistory holds either the Base (namespace/key/source) history or
	// the None (optional culture-invariant string) history, selected by
	// HistoryType (0 or 255).
	TextHistory struct {
		HistoryType         uint8   `json:"history_type"`
		Namespace           string  `json:"namespace,omitempty"`
		Key                 string  `json:"key,omitempty"`
		SourceString        string  `json:"source_string,omitempty"`
		CultureInvariantStr *string `json:"culture_invariant_string,omitempty"`
	}
)

func (BytePropertyData) isPropertyData()       {}
func (BoolPropertyData) isPropertyData()       {}
func (EnumPropertyData) isPropertyData()       {}
func (Int16PropertyData) isPropertyData()      {}
func (Int32PropertyData) isPropertyData()      {}
func (Int64PropertyData) isPropertyData()      {}
func (UInt16PropertyData) isPropertyData()     {}
func (UInt32PropertyData) isPropertyData()     {}
func (UInt64PropertyData) isPropertyData()     {}
func (FloatPropertyData) isPropertyData()      {}
func (DoublePropertyData) isPropertyData()     {}
func (MapPropertyData) isPropertyData()        {}
func (ArrayPropertyData) isPropertyData()      {}
func (ObjectPropertyData) isPropertyData()     {}
func (SoftObjectPropertyData) isPropertyData() {}
func (NamePropertyData) isPropertyData()       {}
func (StructPropertyData) isPropertyData()     {}
func (StrPropertyData) isPropertyData()        {}
func (StructReferenceData) isPropertyData()    {}
func (TextPropertyData) isPropertyData()       {}

// decodeCtx threads the name table and the top-level save_game_class_path
// down through property/struct decoding, since a nested PersistenceBlob
// must dispatch on that path (§4.5) no matter how deep inside a property
// tree it is found.
type decodeCtx struct {
	Names    *NameTable
	SavePath string
}

// readProperties reads a property list until the terminating "None" name,
// consuming no further bytes for the terminator itself.
func readProperties(c *Cursor, ctx *decodeCtx) ([]Property, error) {
	var props []Property
	for {
		name, err := readName(c, ctx.Names)
		if err != nil {
			return nil, err
		}
		if name.Value == NameNone {
			return props, nil
		}
		typeName, err := readName(c, ctx.Names)
		if err != nil {
			return nil, err
		}
		size, err := c.ReadUint32()
		if err != nil {
			return nil, err
		}
		index, err := c.ReadUint32()
		if err != nil {
			return nil, err
		}
		data, err := readPropertyBody(c, ctx, typeName.Value, size)
		if err != nil {
			return nil, err
		}
		props = append(props, Property{Name: name, Index: index, TypeName: typeName, Size: size, Data: data})
	}
}

// writeProperties writes props followed by the "None" terminator name (no
// padding word — callers that need one write it themselves, see §4.6).
func writeProperties(c *Cursor, names *NameTable, props []Property) {
	for _, p := range props {
		writeProperty(c, names, p)
	}
	writeName(c, names, NewName(NameNone))
}

func writeProperty(c *Cursor, names *NameTable, p Property) {
	writeName(c, names, p.Name)
	writeName(c, names, p.TypeName)
	sizePos := c.PlaceholderUint32()
	c.WriteUint32(p.Index)
	size := writePropertyBody(c, names, p.Data)
	c.PatchUint32(sizePos, size)
}

// readPropertyBody dispatches on typeName to the reader for that property
// kind, consuming the full header-relative body of a top-level (named)
// property.
func readPropertyBody(c *Cursor, ctx *decodeCtx, typeName string, size uint32) (PropertyData, error) {
	names := ctx.Names
	switch typeName {
	case "ByteProperty":
		return readByteProperty(c, names)
	case "BoolProperty":
		return readBoolProperty(c)
	case "EnumProperty":
		return readEnumProperty(c, names)
	case "Int16Property":
		v, err := readPrimitiveHeader(c, c.ReadInt16)
		return Int16PropertyData{Value: v}, err
	case "IntProperty":
		v, err := readPrimitiveHeader(c, c.ReadInt32)
		return Int32PropertyData{Value: v}, err
	case "Int64Property":
		v, err := readPrimitiveHeader(c, c.ReadInt64)
		return Int64PropertyData{Value: v}, err
	case "UInt16Property":
		v, err := readPrimitiveHeader(c, c.ReadUint16)
		return UInt16PropertyData{Value: v}, err
	case "UInt32Property":
		v, err := readPrimitiveHeader(c, c.ReadUint32)
		return UInt32PropertyData{Value: v}, err
	case "UInt64Property":
		v, err := readPrimitiveHeader(c, c.ReadUint64)
		return UInt64PropertyData{Value: v}, err
	case "FloatProperty":
		v, err := readPrimitiveHeader(c, c.ReadFloat32)
		return FloatPropertyData{Value: v}, err
	case "DoubleProperty":
		v, err := readPrimitiveHeader(c, c.ReadFloat64)
		return DoublePropertyData{Value: v}, err
	case "MapProperty":
		return readMapProperty(c, ctx)
	case "ArrayProperty":
		return readArrayProperty(c, ctx)
	case "ObjectProperty":
		if _, err := c.ReadUint8(); err != nil {
			return nil, err
		}
		return readObjectPropertyRaw(c)
	case "SoftObjectProperty":
		if _, err := c.ReadUint8(); err != nil {
			return nil, err
		}
		return readSoftObjectRaw(c)
	case "NameProperty":
		if _, err := c.ReadUint8(); err != nil {
			return nil, err
		}
		return readNamePropertyRaw(c, names)
	case "StructProperty":
		return readStructProperty(c, ctx, size)
	case "StrProperty":
		if _, err := c.ReadUint8(); err != nil {
			return nil, err
		}
		return readStrPropertyRaw(c)
	case "TextProperty":
		if _, err := c.ReadUint8(); err != nil {
			return nil, err
		}
		return readTextPropertyRaw(c)
	default:
		return nil, &UnknownPropertyTypeError{TypeName: typeName, Offset: c.Position()}
	}
}

func readPrimitiveHeader[T any](c *Cursor, read func() (T, error)) (T, error) {
	var zero T
	if _, err := c.ReadUint8(); err != nil {
		return zero, err
	}
	return read()
}

func readByteProperty(c *Cursor, names *NameTable) (PropertyData, error) {
	enumName, err := readName(c, names)
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadUint8(); err != nil {
		return nil, err
	}
	var value ByteValue
	if enumName.Value == NameNone {
		raw, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		value.Raw = &raw
	} else {
		ref, err := readName(c, names)
		if err != nil {
			return nil, err
		}
		value.EnumRef = &ref
	}
	return BytePropertyData{EnumName: enumName, Value: value}, nil
}

func readBoolProperty(c *Cursor) (PropertyData, error) {
	v, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadUint8(); err != nil {
		return nil, err
	}
	return BoolPropertyData{Value: v != 0}, nil
}

func readEnumProperty(c *Cursor, names *NameTable) (PropertyData, error) {
	enumName, err := readName(c, names)
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadUint8(); err != nil {
		return nil, err
	}
	value, err := readName(c, names)
	if err != nil {
		return nil, err
	}
	return EnumPropertyData{EnumName: enumName, Value: value}, nil
}

func readObjectPropertyRaw(c *Cursor) (PropertyData, error) {
	v, err := c.ReadInt32()
	return ObjectPropertyData{Index: v}, err
}

func readSoftObjectRaw(c *Cursor) (PropertyData, error) {
	v, err := c.ReadFString()
	return SoftObjectPropertyData{Value: v}, err
}

func readNamePropertyRaw(c *Cursor, names *NameTable) (PropertyData, error) {
	v, err := readName(c, names)
	return NamePropertyData{Value: v}, err
}

func readStrPropertyRaw(c *Cursor) (PropertyData, error) {
	v, err := c.ReadFString()
	return StrPropertyData{Value: v}, err
}

func readStructReferenceRaw(c *Cursor) (PropertyData, error) {
	g, err := readGuid(c)
	return StructReferenceData{Value: g}, err
}

func readTextPropertyRaw(c *Cursor) (PropertyData, error) {
	flags, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	historyType, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	var h TextHistory
	h.HistoryType = historyType
	switch historyType {
	case 0:
		if h.Namespace, err = c.ReadFString(); err != nil {
			return nil, err
		}
		if h.Key, err = c.ReadFString(); err != nil {
			return nil, err
		}
		if h.SourceString, err = c.ReadFString(); err != nil {
			return nil, err
		}
	case 255:
		hasCI, err := c.ReadUint32()
		if err != nil {
			return nil, err
		}
		if hasCI != 0 {
			s, err := c.ReadFString()
			if err != nil {
				return nil, err
			}
			h.CultureInvariantStr = &s
		}
	default:
		return nil, ErrUnsupportedHistoryType
	}
	return TextPropertyData{Flags: flags, History: h}, nil
}

// readPropertyRaw reads a property's body only (no name/type_name/size/index
// header), used by array elements and map keys/values. mapKey selects the
// degenerate struct-ref parser when typeName is "StructProperty" and this
// is a map key position; struct-typed values and struct array elements are
// handled by their callers before reaching here (they need ctx for
// PersistenceBlob dispatch, which this headerless helper doesn't carry).
func readPropertyRaw(c *Cursor, names *NameTable, typeName string, mapKey bool) (PropertyData, error) {
	if mapKey && typeName == "StructProperty" {
		return readStructReferenceRaw(c)
	}
	switch typeName {
	case "ByteProperty":
		raw, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		return BytePropertyData{EnumName: NewName(NameNone), Value: ByteValue{Raw: &raw}}, nil
	case "BoolProperty":
		v, err := c.ReadUint8()
		return BoolPropertyData{Value: v != 0}, err
	case "Int16Property":
		v, err := c.ReadInt16()
		return Int16PropertyData{Value: v}, err
	case "IntProperty":
		v, err := c.ReadInt32()
		return Int32PropertyData{Value: v}, err
	case "Int64Property":
		v, err := c.ReadInt64()
		return Int64PropertyData{Value: v}, err
	case "UInt16Property":
		v, err := c.ReadUint16()
		return UInt16PropertyData{Value: v}, err
	case "UInt32Property":
		v, err := c.ReadUint32()
		return UInt32PropertyData{Value: v}, err
	case "UInt64Property":
		v, err := c.ReadUint64()
		return UInt64PropertyData{Value: v}, err
	case "FloatProperty":
		v, err := c.ReadFloat32()
		return FloatPropertyData{Value: v}, err
	case "DoubleProperty":
		v, err := c.ReadFloat64()
		return DoublePropertyData{Value: v}, err
	case "ObjectProperty":
		return readObjectPropertyRaw(c)
	case "NameProperty":
		return readNamePropertyRaw(c, names)
	case "StrProperty":
		return readStrPropertyRaw(c)
	default:
		return nil, &UnknownPropertyTypeError{TypeName: typeName, Offset: c.Position()}
	}
}

func readMapProperty(c *Cursor, ctx *decodeCtx) (PropertyData, error) {
	names := ctx.Names
	keyType, err := readName(c, names)
	if err != nil {
		return nil, err
	}
	valueType, err := readName(c, names)
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadUint8(); err != nil {
		return nil, err
	}
	if _, err := c.ReadUint32(); err != nil {
		return nil, err
	}
	count, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	elems := make([]MapEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		key, err := readPropertyRaw(c, names, keyType.Value, true)
		if err != nil {
			return nil, err
		}
		value, err := readMapValueRaw(c, ctx, valueType.Value)
		if err != nil {
			return nil, err
		}
		elems = append(elems, MapEntry{Key: key, Value: value})
	}
	return MapPropertyData{KeyType: keyType, ValueType: valueType, Elements: elems}, nil
}

// readMapValueRaw handles the one map-value case readPropertyRaw cannot:
// a full struct body (map values are never struct-ref degenerate).
func readMapValueRaw(c *Cursor, ctx *decodeCtx, typeName string) (PropertyData, error) {
	if typeName == "StructProperty" {
		structName, err := readName(c, ctx.Names)
		if err != nil {
			return nil, err
		}
		guid, err := readGuid(c)
		if err != nil {
			return nil, err
		}
		data, err := readStructBody(c, ctx, structName.Value)
		if err != nil {
			return nil, err
		}
		return StructPropertyData{StructName: structName, Guid: guid, Data: data}, nil
	}
	return readPropertyRaw(c, ctx.Names, typeName, false)
}

func readArrayProperty(c *Cursor, ctx *decodeCtx) (PropertyData, error) {
	names := ctx.Names
	innerType, err := readName(c, names)
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadUint8(); err != nil {
		return nil, err
	}
	count, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	var head *ArrayStructHead
	var structName FName
	if innerType.Value == "StructProperty" {
		h, name, err := readArrayStructHead(c, names)
		if err != nil {
			return nil, err
		}
		head = h
		structName = name
	}
	elems := make([]PropertyData, 0, count)
	for i := uint32(0); i < count; i++ {
		var el PropertyData
		if head != nil {
			data, err := readStructBody(c, ctx, structName.Value)
			if err != nil {
				return nil, err
			}
			el = StructPropertyData{StructName: structName, Guid: head.Guid, Data: data}
		} else {
			el, err = readPropertyRaw(c, names, innerType.Value, false)
			if err != nil {
				return nil, err
			}
		}
		elems = append(elems, el)
	}
	return ArrayPropertyData{InnerType: innerType, StructHead: head, Elements: elems}, nil
}

func readArrayStructHead(c *Cursor, names *NameTable) (*ArrayStructHead, FName, error) {
	name, err := readName(c, names)
	if err != nil {
		return nil, FName{}, err
	}
	typeName, err := readName(c, names)
	if err != nil {
		return nil, FName{}, err
	}
	if _, err := c.ReadUint32(); err != nil { // size, unused on decode
		return nil, FName{}, err
	}
	index, err := c.ReadUint32()
	if err != nil {
		return nil, FName{}, err
	}
	structName, err := readName(c, names)
	if err != nil {
		return nil, FName{}, err
	}
	guid, err := readGuid(c)
	if err != nil {
		return nil, FName{}, err
	}
	if _, err := c.ReadUint8(); err != nil {
		return nil, FName{}, err
	}
	return &ArrayStructHead{Name: name, TypeName: typeName, Index: index, StructName: structName, Guid: guid}, structName, nil
}

func readStructProperty(c *Cursor, ctx *decodeCtx, size uint32) (PropertyData, error) {
	structName, err := readName(c, ctx.Names)
	if err != nil {
		return nil, err
	}
	guid, err := readGuid(c)
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadUint8(); err != nil {
		return nil, err
	}
	data, err := readStructBody(c, ctx, structName.Value)
	if err != nil {
		return nil, err
	}
	return StructPropertyData{StructName: structName, Guid: guid, Data: data}, nil
}

// --- write side ---

// writePropertyBody writes p's body (without the common header) and returns
// the property header's semantic size (§4.4): the per-kind UE "wire size"
// value, which is not simply the number of bytes written here. It excludes
// the common leading has-property-guid byte (and, for the wrapper kinds,
// their own type-name fields) the same way the original's PropertyComposer
// does, so the caller's size back-patch matches what a real save carries —
// e.g. BoolProperty is always 0 even though two bytes are written, because
// its value lives in the header rather than the body.
func writePropertyBody(c *Cursor, names *NameTable, p PropertyData) uint32 {
	switch v := p.(type) {
	case BytePropertyData:
		writeName(c, names, v.EnumName)
		c.WriteUint8(0)
		if v.Value.Raw != nil {
			c.WriteUint8(*v.Value.Raw)
			return 1
		}
		writeName(c, names, *v.Value.EnumRef)
		return 2
	case BoolPropertyData:
		c.WriteUint8(boolByte(v.Value))
		c.WriteUint8(0)
		return 0
	case EnumPropertyData:
		writeName(c, names, v.EnumName)
		c.WriteUint8(0)
		writeName(c, names, v.Value)
		return 2
	case Int16PropertyData:
		c.WriteUint8(0)
		c.WriteInt16(v.Value)
		return 2
	case Int32PropertyData:
		c.WriteUint8(0)
		c.WriteInt32(v.Value)
		return 4
	case Int64PropertyData:
		c.WriteUint8(0)
		c.WriteInt64(v.Value)
		return 8
	case UInt16PropertyData:
		c.WriteUint8(0)
		c.WriteUint16(v.Value)
		return 2
	case UInt32PropertyData:
		c.WriteUint8(0)
		c.WriteUint32(v.Value)
		return 4
	case UInt64PropertyData:
		c.WriteUint8(0)
		c.WriteUint64(v.Value)
		return 8
	case FloatPropertyData:
		c.WriteUint8(0)
		c.WriteFloat32(v.Value)
		return 4
	case DoublePropertyData:
		c.WriteUint8(0)
		c.WriteFloat64(v.Value)
		return 8
	case MapPropertyData:
		return writeMapProperty(c, names, v)
	case ArrayPropertyData:
		return writeArrayProperty(c, names, v)
	case ObjectPropertyData:
		c.WriteUint8(0)
		c.WriteInt32(v.Index)
		return 4
	case SoftObjectPropertyData:
		c.WriteUint8(0)
		c.WriteFString(v.Value)
		return fstringSize(v.Value)
	case NamePropertyData:
		c.WriteUint8(0)
		writeName(c, names, v.Value)
		return 2
	case StructPropertyData:
		writeName(c, names, v.StructName)
		writeGuid(c, v.Guid)
		c.WriteUint8(0)
		start := c.Position()
		writeStructBody(c, names, v.Data)
		return uint32(c.Position() - start)
	case StrPropertyData:
		c.WriteUint8(0)
		c.WriteFString(v.Value)
		return fstringSize(v.Value)
	case StructReferenceData:
		writeGuid(c, v.Value)
		return 16
	case TextPropertyData:
		c.WriteUint8(0)
		return writeTextPropertyRaw(c, v)
	default:
		panic(fmt.Sprintf("remnantsav: unhandled PropertyData %T", p))
	}
}

// fstringSize is the property-header semantic size of a length-prefixed
// C-string body: a bare u32 zero for the empty string, or length(4) + the
// string's bytes + trailing NUL(1) otherwise.
func fstringSize(s string) uint32 {
	if s == "" {
		return 4
	}
	return uint32(4 + len(s) + 1)
}

// writePropertyRaw writes p's headerless body, used for array elements and
// map entries, and returns the number of bytes written. Unlike
// writePropertyBody it writes no leading u8 0 (that byte belongs to the
// common property header, which raw encodings don't have), a ByteProperty
// is its raw byte only (no enum name), and a StructProperty is its struct
// body only (no struct_name or guid). Enum, SoftObject, Text, Map and Array
// values are not handled and panic.
func writePropertyRaw(c *Cursor, names *NameTable, p PropertyData) uint32 {
	start := c.Position()
	switch v := p.(type) {
	case BytePropertyData:
		c.WriteUint8(*v.Value.Raw)
	case BoolPropertyData:
		c.WriteUint8(boolByte(v.Value))
	case Int16PropertyData:
		c.WriteInt16(v.Value)
	case Int32PropertyData:
		c.WriteInt32(v.Value)
	case Int64PropertyData:
		c.WriteInt64(v.Value)
	case UInt16PropertyData:
		c.WriteUint16(v.Value)
	case UInt32PropertyData:
		c.WriteUint32(v.Value)
	case UInt64PropertyData:
		c.WriteUint64(v.Value)
	case FloatPropertyData:
		c.WriteFloat32(v.Value)
	case DoublePropertyData:
		c.WriteFloat64(v.Value)
	case ObjectPropertyData:
		c.WriteInt32(v.Index)
	case NamePropertyData:
		writeName(c, names, v.Value)
	case StrPropertyData:
		c.WriteFString(v.Value)
	case StructReferenceData:
		writeGuid(c, v.Value)
	case StructPropertyData:
		writeStructBody(c, names, v.Data)
	default:
		panic(fmt.Sprintf("remnantsav: unhandled raw PropertyData %T", p))
	}
	return uint32(c.Position() - start)
}

// writeMapProperty returns the property header's semantic size: 8 (the
// reserved u32 + the count u32 just written) plus the raw size of every
// key and value, excluding the leading key/value type FNames and the
// has-property-guid byte (§4.4: Map -> 8+Σraw).
func writeMapProperty(c *Cursor, names *NameTable, m MapPropertyData) uint32 {
	writeName(c, names, m.KeyType)
	writeName(c, names, m.ValueType)
	c.WriteUint8(0)
	c.WriteUint32(0)
	c.WriteUint32(uint32(len(m.Elements)))
	size := uint32(8)
	for _, e := range m.Elements {
		size += writePropertyRaw(c, names, e.Key)
		size += writeMapValueRaw(c, names, e.Value)
	}
	return size
}

// writeMapValueRaw mirrors readMapValueRaw: a struct-typed map value carries
// its own structName+guid+body (unlike a struct-typed array element, whose
// structName+guid live once in the array's shared head), so it can't go
// through writePropertyRaw's array-oriented StructPropertyData case.
func writeMapValueRaw(c *Cursor, names *NameTable, v PropertyData) uint32 {
	if sp, ok := v.(StructPropertyData); ok {
		start := c.Position()
		writeName(c, names, sp.StructName)
		writeGuid(c, sp.Guid)
		writeStructBody(c, names, sp.Data)
		return uint32(c.Position() - start)
	}
	return writePropertyRaw(c, names, v)
}

// writeArrayProperty returns the property header's semantic size: 4 (the
// element count just written), plus 31 more when a struct head is present
// (Name+TypeName FNames, the head's own size placeholder, Index, StructName,
// Guid, and the has-property-guid byte), plus the raw size of every element
// (§4.4: Array -> 4(+31 head)+Σraw).
func writeArrayProperty(c *Cursor, names *NameTable, a ArrayPropertyData) uint32 {
	writeName(c, names, a.InnerType)
	c.WriteUint8(0)
	c.WriteUint32(uint32(len(a.Elements)))

	var sizePos int64 = -1
	size := uint32(4) // the count field just written

	if a.StructHead != nil {
		h := a.StructHead
		writeName(c, names, h.Name)
		writeName(c, names, h.TypeName)
		sizePos = c.PlaceholderUint32()
		c.WriteUint32(h.Index)
		writeName(c, names, h.StructName)
		writeGuid(c, h.Guid)
		c.WriteUint8(0)
		size += 2 + 2 + 4 + 4 + 2 + 16 + 1
	}

	for _, el := range a.Elements {
		size += writePropertyRaw(c, names, el)
	}

	if sizePos >= 0 {
		c.PatchUint32(sizePos, size)
	}
	return size
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// writeTextPropertyRaw writes the FText body (flags + history) and returns
// its total byte length, which is exactly the property header's semantic
// size for TextProperty (§4.4: Text -> 5+...; nothing precedes the history
// within this function, so no adjustment is needed).
func writeTextPropertyRaw(c *Cursor, t TextPropertyData) uint32 {
	start := c.Position()
	c.WriteUint32(t.Flags)
	c.WriteUint8(t.History.HistoryType)
	switch t.History.HistoryType {
	case 0:
		c.WriteFString(t.History.Namespace)
		c.WriteFString(t.History.Key)
		c.WriteFString(t.History.SourceString)
	case 255:
		if t.History.CultureInvariantStr != nil {
			c.WriteUint32(1)
			c.WriteFString(*t.History.CultureInvariantStr)
		} else {
			c.WriteUint32(0)
		}
	}
	return uint32(c.Position() - start)
}
