package remnantsav

import "fmt"

// StructData is the closed tagged union of StructProperty body kinds,
// selected by struct_name (§4.5).
type StructData interface {
	isStructData()
}

// Class paths a top-level archive's save_game_class_path may carry; these
// select how a nested PersistenceBlob struct is interpreted.
const (
	profileClassPath = "/Game/_Core/Blueprints/Base/BP_RemnantSaveGameProfile"
	saveClassPath    = "/Game/_Core/Blueprints/Base/BP_RemnantSaveGame"
)

type (
	SoftClassPathData struct {
		Value string `json:"value"`
	}
	SoftObjectPathData struct {
		Value string `json:"value"`
	}
	GuidStructData struct {
		Value FGuid `json:"value"`
	}
	TimespanData struct {
		Ticks uint64 `json:"ticks"`
	}
	DateTimeData struct {
		Ticks uint64 `json:"ticks"`
	}
	VectorStructData struct {
		Value FVector `json:"value"`
	}
	// GenericStructData is the fallback for any struct_name not otherwise
	// recognized: a plain property list.
	GenericStructData struct {
		Properties []Property `json:"properties"`
	}
	// PersistenceBlobData is a nested profile sub-archive.
	PersistenceBlobData struct {
		Content *ArchiveContent `json:"content"`
	}
	// PersistenceContainerData is a nested actor directory.
	PersistenceContainerData struct {
		Container *PersistenceContainer `json:"container"`
	}
)

func (SoftClassPathData) isStructData()       {}
func (SoftObjectPathData) isStructData()      {}
func (GuidStructData) isStructData()          {}
func (TimespanData) isStructData()            {}
func (DateTimeData) isStructData()            {}
func (VectorStructData) isStructData()        {}
func (GenericStructData) isStructData()       {}
func (PersistenceBlobData) isStructData()     {}
func (PersistenceContainerData) isStructData() {}

// Actor is one entry of a PersistenceContainer's directory: an optional
// transform, its own archive content, and an optional dynamic-actor record
// attached by unique_id in a second pass.
type Actor struct {
	UniqueID    uint64          `json:"unique_id"`
	Transform   *FTransform     `json:"transform,omitempty"`
	Archive     ArchiveContent  `json:"archive"`
	DynamicData *DynamicActorData `json:"dynamic_data,omitempty"`
}

// DynamicActorData is a dynamically-spawned actor's transform and class,
// recorded separately from its archive and bound back by unique_id.
type DynamicActorData struct {
	Transform FTransform         `json:"transform"`
	ClassPath FTopLevelAssetPath `json:"class_path"`
}

// PersistenceContainer is the actor directory embedded inside a save-path
// PersistenceBlob: a destroyed-id list plus an ordered list of actors.
// Actors is kept in on-wire info order (not a map) so re-encoding preserves
// the original directory order byte-for-byte.
type PersistenceContainer struct {
	Version   uint32   `json:"version"`
	Destroyed []uint64 `json:"destroyed"`
	Actors    []Actor  `json:"actors"`
}

// readStructBody dispatches on struct_name to decode a StructProperty's
// body. ctx carries the enclosing top-level archive's save_game_class_path,
// needed only by the PersistenceBlob case.
func readStructBody(c *Cursor, ctx *decodeCtx, structName string) (StructData, error) {
	switch structName {
	case "SoftClassPath":
		s, err := c.ReadFString()
		return SoftClassPathData{Value: s}, err
	case "SoftObjectPath":
		s, err := c.ReadFString()
		return SoftObjectPathData{Value: s}, err
	case "Guid":
		g, err := readGuid(c)
		return GuidStructData{Value: g}, err
	case "Timespan":
		t, err := readTicks64(c)
		return TimespanData{Ticks: t}, err
	case "DateTime":
		t, err := readTicks64(c)
		return DateTimeData{Ticks: t}, err
	case "Vector":
		v, err := readVector(c)
		return VectorStructData{Value: v}, err
	case "PersistenceBlob":
		return readPersistenceBlob(c, ctx)
	default:
		props, err := readProperties(c, ctx)
		if err != nil {
			return nil, err
		}
		return GenericStructData{Properties: props}, nil
	}
}

func readPersistenceBlob(c *Cursor, ctx *decodeCtx) (StructData, error) {
	innerSize, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	raw, err := c.ReadBytes(int(innerSize))
	if err != nil {
		return nil, err
	}
	sub := NewCursor(append([]byte(nil), raw...), 4)
	subCtx := &decodeCtx{Names: NewNameTable(), SavePath: ctx.SavePath}
	switch ctx.SavePath {
	case profileClassPath:
		content, err := readArchiveContent(sub, subCtx, true, false)
		if err != nil {
			return nil, err
		}
		return PersistenceBlobData{Content: content}, nil
	case saveClassPath:
		sub.ObjectPadding = 8
		pc, err := readPersistenceContainer(sub, subCtx)
		if err != nil {
			return nil, err
		}
		return PersistenceContainerData{Container: pc}, nil
	default:
		return nil, ErrUnknownStructKind
	}
}

// readPersistenceContainer decodes the directory-of-actor-blobs layout of
// §4.6 from a sub-cursor whose position 0 is the start of the blob: all
// offsets inside it (index_offset, dynamic_offset, each FInfo.offset) are
// absolute within this buffer.
func readPersistenceContainer(c *Cursor, ctx *decodeCtx) (*PersistenceContainer, error) {
	version, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	indexOffset, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	dynamicOffset, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}

	c.Seek(int64(indexOffset))
	infoCount, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	type finfo struct {
		uniqueID uint64
		offset   uint32
		size     uint32
	}
	infos := make([]finfo, infoCount)
	for i := range infos {
		if infos[i].uniqueID, err = c.ReadUint64(); err != nil {
			return nil, err
		}
		if infos[i].offset, err = c.ReadUint32(); err != nil {
			return nil, err
		}
		if infos[i].size, err = c.ReadUint32(); err != nil {
			return nil, err
		}
	}
	destroyedCount, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	destroyed := make([]uint64, destroyedCount)
	for i := range destroyed {
		if destroyed[i], err = c.ReadUint64(); err != nil {
			return nil, err
		}
	}

	actors := make([]Actor, len(infos))
	indexByID := make(map[uint64]int, len(infos))
	for i, info := range infos {
		c.Seek(int64(info.offset))
		blob, err := c.ReadBytes(int(info.size))
		if err != nil {
			return nil, err
		}
		actorCursor := NewCursor(append([]byte(nil), blob...), 8)
		hasTransform, err := actorCursor.ReadUint32()
		if err != nil {
			return nil, err
		}
		var transform *FTransform
		if hasTransform != 0 {
			t, err := readTransform(actorCursor)
			if err != nil {
				return nil, err
			}
			transform = &t
		}
		actorCtx := &decodeCtx{Names: NewNameTable(), SavePath: ctx.SavePath}
		content, err := readArchiveContent(actorCursor, actorCtx, false, false)
		if err != nil {
			return nil, err
		}
		actors[i] = Actor{UniqueID: info.uniqueID, Transform: transform, Archive: *content}
		indexByID[info.uniqueID] = i
	}

	c.Seek(int64(dynamicOffset))
	dynamicCount, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < dynamicCount; i++ {
		uid, err := c.ReadUint64()
		if err != nil {
			return nil, err
		}
		transform, err := readTransform(c)
		if err != nil {
			return nil, err
		}
		path, err := readTopLevelAssetPath(c)
		if err != nil {
			return nil, err
		}
		if idx, ok := indexByID[uid]; ok {
			actors[idx].DynamicData = &DynamicActorData{Transform: transform, ClassPath: path}
		}
	}

	return &PersistenceContainer{Version: version, Destroyed: destroyed, Actors: actors}, nil
}

func writeStructBody(c *Cursor, names *NameTable, data StructData) {
	switch v := data.(type) {
	case SoftClassPathData:
		c.WriteFString(v.Value)
	case SoftObjectPathData:
		c.WriteFString(v.Value)
	case GuidStructData:
		writeGuid(c, v.Value)
	case TimespanData:
		writeTicks64(c, v.Ticks)
	case DateTimeData:
		writeTicks64(c, v.Ticks)
	case VectorStructData:
		writeVector(c, v.Value)
	case GenericStructData:
		writeProperties(c, names, v.Properties)
	case PersistenceBlobData:
		writePersistenceBlobProfile(c, v)
	case PersistenceContainerData:
		writePersistenceBlobContainer(c, v)
	default:
		panic(fmt.Sprintf("remnantsav: unhandled StructData %T", data))
	}
}

func writePersistenceBlobProfile(c *Cursor, v PersistenceBlobData) {
	sub := NewCursor(nil, 4)
	writeArchiveContent(sub, NewNameTable(), v.Content, true, false)
	c.WriteUint32(uint32(len(sub.Bytes())))
	c.WriteBytes(sub.Bytes())
}

func writePersistenceBlobContainer(c *Cursor, v PersistenceContainerData) {
	sub := NewCursor(nil, 8)
	writePersistenceContainer(sub, v.Container)
	c.WriteUint32(uint32(len(sub.Bytes())))
	c.WriteBytes(sub.Bytes())
}

func writePersistenceContainer(c *Cursor, pc *PersistenceContainer) {
	c.WriteUint32(pc.Version)
	indexOffsetPos := c.PlaceholderUint32()
	dynamicOffsetPos := c.PlaceholderUint32()

	type finfo struct {
		uniqueID uint64
		offset   uint32
		size     uint32
	}
	infos := make([]finfo, len(pc.Actors))
	for i, a := range pc.Actors {
		offset := uint32(c.Position())
		actorCursor := NewCursor(nil, 8)
		if a.Transform != nil {
			actorCursor.WriteUint32(1)
			writeTransform(actorCursor, *a.Transform)
		} else {
			actorCursor.WriteUint32(0)
		}
		writeArchiveContent(actorCursor, NewNameTable(), &a.Archive, false, false)
		c.WriteBytes(actorCursor.Bytes())
		infos[i] = finfo{uniqueID: a.UniqueID, offset: offset, size: uint32(len(actorCursor.Bytes()))}
	}

	c.PatchUint32(indexOffsetPos, uint32(c.Position()))
	c.WriteUint32(uint32(len(infos)))
	for _, info := range infos {
		c.WriteUint64(info.uniqueID)
		c.WriteUint32(info.offset)
		c.WriteUint32(info.size)
	}
	c.WriteUint32(uint32(len(pc.Destroyed)))
	for _, id := range pc.Destroyed {
		c.WriteUint64(id)
	}

	c.PatchUint32(dynamicOffsetPos, uint32(c.Position()))
	var dynamicCount uint32
	for _, a := range pc.Actors {
		if a.DynamicData != nil {
			dynamicCount++
		}
	}
	c.WriteUint32(dynamicCount)
	for _, a := range pc.Actors {
		if a.DynamicData == nil {
			continue
		}
		c.WriteUint64(a.UniqueID)
		writeTransform(c, a.DynamicData.Transform)
		writeTopLevelAssetPath(c, a.DynamicData.ClassPath)
	}
}
