package remnantsav

// UObjectLoadedData carries the name/outer needed to reconstruct an object
// that was not already loaded when the archive was captured.
type UObjectLoadedData struct {
	Name    FName  `json:"name"`
	OuterID uint32 `json:"outer_id"`
}

// UObject is one entry of an ArchiveContent's object index: an id, its
// loaded/unloaded identity, its property list, and — for actors — a
// component list.
type UObject struct {
	ObjectID   uint32              `json:"object_id"`
	WasLoaded  bool                `json:"was_loaded"`
	ObjectPath string              `json:"object_path"`
	LoadedData *UObjectLoadedData  `json:"loaded_data,omitempty"`
	Properties []Property          `json:"properties"`
	Components []Component         `json:"components,omitempty"`
}

// IsActor reports whether this object carries a component list.
func (o *UObject) IsActor() bool { return o.Components != nil }

// ArchiveContent is the decoded object/property tree of one archive —
// either the top-level save, a nested profile sub-archive, or an actor
// blob inside a PersistenceContainer. PackageVersion and SaveGameClassPath
// are present only where has_ue_version/has_top_level_asset_path hold.
type ArchiveContent struct {
	PackageVersion    *FPackageVersion    `json:"package_version,omitempty"`
	SaveGameClassPath *FTopLevelAssetPath `json:"save_game_class_path,omitempty"`
	Names             *NameTable          `json:"-"`
	Objects           []UObject           `json:"objects"`
	Version           uint32              `json:"version"`
}

// readArchiveContent decodes one ArchiveContent per §4.6. ctx.Names must be
// a fresh table scoped to this content (every caller creates one); the name
// pool is loaded into it before any FName is read. When
// hasTopLevelAssetPath holds, ctx.SavePath is set to the path read here;
// otherwise the caller's SavePath is kept, for any nested PersistenceBlob
// dispatch.
func readArchiveContent(c *Cursor, ctx *decodeCtx, hasUEVersion, hasTopLevelAssetPath bool) (*ArchiveContent, error) {
	content := &ArchiveContent{Names: ctx.Names}

	if hasUEVersion {
		v, err := readPackageVersion(c)
		if err != nil {
			return nil, err
		}
		content.PackageVersion = &v
	}

	if hasTopLevelAssetPath {
		p, err := readTopLevelAssetPath(c)
		if err != nil {
			return nil, err
		}
		content.SaveGameClassPath = &p
		ctx.SavePath = p.Path
	}

	nameTableOffset, err := c.ReadUint64()
	if err != nil {
		return nil, err
	}
	afterNameOffset := c.Position()

	c.Seek(int64(nameTableOffset))
	if err := readNamePool(c, ctx.Names); err != nil {
		return nil, err
	}
	c.Seek(afterNameOffset)

	version, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	content.Version = version

	objectIndexOffset, err := c.ReadUint64()
	if err != nil {
		return nil, err
	}
	afterObjectIndexOffset := c.Position()

	c.Seek(int64(objectIndexOffset))
	objectCount, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	objects := make([]UObject, objectCount)
	for i := range objects {
		obj, err := readObjectDirectoryEntry(c, ctx, content, i)
		if err != nil {
			return nil, err
		}
		objects[i] = obj
	}
	c.Seek(afterObjectIndexOffset)

	for i := uint32(0); i < objectCount; i++ {
		objectID, err := c.ReadUint32()
		if err != nil {
			return nil, err
		}
		if int(objectID) >= len(objects) {
			return nil, ErrShortRead
		}
		props, err := readObjectBody(c, ctx, objectID)
		if err != nil {
			return nil, err
		}
		isActor, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		var components []Component
		if isActor != 0 {
			components, err = readComponents(c, ctx)
			if err != nil {
				return nil, err
			}
			if components == nil {
				components = []Component{}
			}
		}
		objects[objectID].Properties = props
		objects[objectID].Components = components
	}

	content.Objects = objects
	return content, nil
}

// readObjectDirectoryEntry reads one object-index entry: was_loaded, path
// (or none, for the top-level id-0 save-class-path special case), and
// loaded_data. The object_id itself is not present here — it is assigned
// implicitly by this entry's position, matching the object body's explicit
// object_id read later.
func readObjectDirectoryEntry(c *Cursor, ctx *decodeCtx, content *ArchiveContent, index int) (UObject, error) {
	wasLoadedByte, err := c.ReadUint8()
	if err != nil {
		return UObject{}, err
	}
	wasLoaded := wasLoadedByte != 0

	var path string
	if wasLoaded && index == 0 && content.SaveGameClassPath != nil {
		path = content.SaveGameClassPath.Path
	} else {
		path, err = c.ReadFString()
		if err != nil {
			return UObject{}, err
		}
	}

	var loadedData *UObjectLoadedData
	if !wasLoaded {
		name, err := readName(c, ctx.Names)
		if err != nil {
			return UObject{}, err
		}
		outerID, err := c.ReadUint32()
		if err != nil {
			return UObject{}, err
		}
		loadedData = &UObjectLoadedData{Name: name, OuterID: outerID}
	}

	return UObject{ObjectID: uint32(index), WasLoaded: wasLoaded, ObjectPath: path, LoadedData: loadedData}, nil
}

// readObjectBody reads one object's property-list section (§4.6): a
// declared length, the properties, a padding word, then a defensive reseek
// if the declared and consumed lengths disagree.
func readObjectBody(c *Cursor, ctx *decodeCtx, objectID uint32) ([]Property, error) {
	objectLength, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	start := c.Position()

	var props []Property
	if objectLength > 0 {
		props, err = readProperties(c, ctx)
		if err != nil {
			return nil, err
		}
		if c.ObjectPadding == 8 && objectID == 0 {
			if _, err := c.ReadUint64(); err != nil {
				return nil, err
			}
		} else {
			if _, err := c.ReadUint32(); err != nil {
				return nil, err
			}
		}
	}

	if consumed := c.Position() - start; consumed != int64(objectLength) {
		c.Seek(start + int64(objectLength))
	}

	return props, nil
}

// writeArchiveContent mirrors readArchiveContent. names is the fresh table
// scoped to this content; the caller is responsible for not sharing it
// across archives.
func writeArchiveContent(c *Cursor, names *NameTable, content *ArchiveContent, hasUEVersion, hasTopLevelAssetPath bool) {
	if hasUEVersion && content.PackageVersion != nil {
		writePackageVersion(c, *content.PackageVersion)
	}
	if hasTopLevelAssetPath && content.SaveGameClassPath != nil {
		writeTopLevelAssetPath(c, *content.SaveGameClassPath)
	}

	nameTableOffsetPos := c.PlaceholderUint64()
	c.WriteUint32(content.Version)
	objectIndexOffsetPos := c.PlaceholderUint64()

	for _, obj := range content.Objects {
		c.WriteUint32(obj.ObjectID)
		writeObjectBody(c, names, obj)
		if obj.IsActor() {
			c.WriteUint8(1)
			writeComponents(c, names, obj.Components)
		} else {
			c.WriteUint8(0)
		}
	}

	c.PatchUint64(objectIndexOffsetPos, uint64(c.Position()))
	c.WriteUint32(uint32(len(content.Objects)))
	for i, obj := range content.Objects {
		writeObjectDirectoryEntry(c, names, content, obj, i)
	}

	c.PatchUint64(nameTableOffsetPos, uint64(c.Position()))
	writeNamePool(c, names)
}

func writeObjectDirectoryEntry(c *Cursor, names *NameTable, content *ArchiveContent, obj UObject, index int) {
	c.WriteUint8(boolByte(obj.WasLoaded))
	if !(obj.WasLoaded && index == 0 && content.SaveGameClassPath != nil) {
		c.WriteFString(obj.ObjectPath)
	}
	if obj.LoadedData != nil {
		writeName(c, names, obj.LoadedData.Name)
		c.WriteUint32(obj.LoadedData.OuterID)
	}
}

func writeObjectBody(c *Cursor, names *NameTable, obj UObject) {
	lengthPos := c.PlaceholderUint32()
	start := c.Position()
	if len(obj.Properties) > 0 {
		writeProperties(c, names, obj.Properties)
		if c.ObjectPadding == 8 && obj.ObjectID == 0 {
			c.WriteUint64(0)
		} else {
			c.WriteUint32(0)
		}
	}
	c.PatchUint32(lengthPos, uint32(c.Position()-start))
}

// Archive is the top-level decoded save: a header plus its content.
type Archive struct {
	Header  ArchiveHeader  `json:"header"`
	Content ArchiveContent `json:"content"`
}

// ArchiveHeader is the leading fixed fields of the uncompressed stream,
// once its first two reserved words (filled by the container with
// crc32/size) have been consumed (§4.7).
type ArchiveHeader struct {
	SaveGameFileVersion uint32 `json:"save_game_file_version"`
	BuildNumber         uint32 `json:"build_number"`
}

func readArchiveHeader(c *Cursor) (ArchiveHeader, error) {
	if _, err := c.ReadUint32(); err != nil { // reserved: container crc32
		return ArchiveHeader{}, err
	}
	if _, err := c.ReadUint32(); err != nil { // reserved: container size
		return ArchiveHeader{}, err
	}
	version, err := c.ReadUint32()
	if err != nil {
		return ArchiveHeader{}, err
	}
	build, err := c.ReadUint32()
	if err != nil {
		return ArchiveHeader{}, err
	}
	return ArchiveHeader{SaveGameFileVersion: version, BuildNumber: build}, nil
}

func writeArchiveHeader(c *Cursor, h ArchiveHeader) {
	c.WriteUint32(0)
	c.WriteUint32(0)
	c.WriteUint32(h.SaveGameFileVersion)
	c.WriteUint32(h.BuildNumber)
}

// ReadArchive decodes the uncompressed archive stream (post container
// framing) into a full Archive tree.
func ReadArchive(buf []byte) (*Archive, error) {
	c := NewCursor(buf, 4)
	header, err := readArchiveHeader(c)
	if err != nil {
		return nil, err
	}

	ctx := &decodeCtx{Names: NewNameTable()}
	content, err := readArchiveContent(c, ctx, true, true)
	if err != nil {
		return nil, err
	}
	return &Archive{Header: header, Content: *content}, nil
}

// WriteArchive encodes a full Archive tree into the uncompressed archive
// stream (pre container framing).
func WriteArchive(a *Archive) []byte {
	c := NewCursor(nil, 4)
	writeArchiveHeader(c, a.Header)
	names := NewNameTable()
	writeArchiveContent(c, names, &a.Content, true, true)
	return c.Bytes()
}
