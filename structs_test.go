package remnantsav

import "testing"

func TestStructBodyDispatch(t *testing.T) {
	tests := []struct {
		name       string
		structName string
		write      func(c *Cursor)
		check      func(t *testing.T, data StructData)
	}{
		{
			"SoftClassPath",
			"SoftClassPath",
			func(c *Cursor) { c.WriteFString("/Script/Game.MyClass") },
			func(t *testing.T, data StructData) {
				v, ok := data.(SoftClassPathData)
				if !ok || v.Value != "/Script/Game.MyClass" {
					t.Errorf("got %+v", data)
				}
			},
		},
		{
			"Guid",
			"Guid",
			func(c *Cursor) { writeGuid(c, FGuid{A: 1, B: 2, C: 3, D: 4}) },
			func(t *testing.T, data StructData) {
				v, ok := data.(GuidStructData)
				if !ok || v.Value != (FGuid{A: 1, B: 2, C: 3, D: 4}) {
					t.Errorf("got %+v", data)
				}
			},
		},
		{
			"Timespan",
			"Timespan",
			func(c *Cursor) { c.WriteUint64(12345) },
			func(t *testing.T, data StructData) {
				v, ok := data.(TimespanData)
				if !ok || v.Ticks != 12345 {
					t.Errorf("got %+v", data)
				}
			},
		},
		{
			"Vector",
			"Vector",
			func(c *Cursor) { writeVector(c, FVector{X: 1, Y: 2, Z: 3}) },
			func(t *testing.T, data StructData) {
				v, ok := data.(VectorStructData)
				if !ok || v.Value != (FVector{X: 1, Y: 2, Z: 3}) {
					t.Errorf("got %+v", data)
				}
			},
		},
		{
			"unrecognized struct_name falls back to a generic property list",
			"SomeCustomStruct",
			func(c *Cursor) { writeProperties(c, NewNameTable(), nil) },
			func(t *testing.T, data StructData) {
				v, ok := data.(GenericStructData)
				if !ok || len(v.Properties) != 0 {
					t.Errorf("got %+v", data)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(nil, 4)
			tt.write(c)
			r := NewCursor(c.Bytes(), 4)
			names := NewNameTable()
			names.append(NameNone)
			ctx := &decodeCtx{Names: names}
			data, err := readStructBody(r, ctx, tt.structName)
			if err != nil {
				t.Fatalf("readStructBody failed: %v", err)
			}
			tt.check(t, data)
		})
	}
}

func TestPersistenceBlobUnknownClassPath(t *testing.T) {
	c := NewCursor(nil, 4)
	c.WriteUint32(0) // empty inner blob
	r := NewCursor(c.Bytes(), 4)
	ctx := &decodeCtx{Names: NewNameTable(), SavePath: "/Game/NotARecognizedPath"}
	if _, err := readStructBody(r, ctx, "PersistenceBlob"); err != ErrUnknownStructKind {
		t.Errorf("got %v, want ErrUnknownStructKind", err)
	}
}

func minimalPersistenceContainer() *PersistenceContainer {
	return &PersistenceContainer{
		Version:   3,
		Destroyed: []uint64{100, 200},
		Actors: []Actor{
			{
				UniqueID:  1,
				Transform: &FTransform{Rotation: FQuaternion{W: 1}, Position: FVector{X: 1, Y: 2, Z: 3}, Scale: FVector{X: 1, Y: 1, Z: 1}},
				Archive: ArchiveContent{
					Version: 1,
					Objects: []UObject{
						{ObjectID: 0, WasLoaded: false, ObjectPath: "/Game/Actors/Chest", LoadedData: &UObjectLoadedData{Name: NewName("Chest"), OuterID: 0}, Properties: []Property{}},
					},
				},
				DynamicData: &DynamicActorData{
					Transform: FTransform{Rotation: FQuaternion{W: 1}, Position: FVector{X: 5}, Scale: FVector{X: 1, Y: 1, Z: 1}},
					ClassPath: FTopLevelAssetPath{Path: "/Game/Actors", Name: "BP_Chest_C"},
				},
			},
			{
				UniqueID: 2,
				Archive: ArchiveContent{
					Version: 1,
					Objects: []UObject{
						{ObjectID: 0, WasLoaded: false, ObjectPath: "/Game/Actors/Door", LoadedData: &UObjectLoadedData{Name: NewName("Door"), OuterID: 0}, Properties: []Property{}},
					},
				},
			},
		},
	}
}

func TestPersistenceContainerRoundTrip(t *testing.T) {
	want := minimalPersistenceContainer()

	w := NewCursor(nil, 8)
	writePersistenceContainer(w, want)

	r := NewCursor(w.Bytes(), 8)
	ctx := &decodeCtx{Names: NewNameTable()}
	got, err := readPersistenceContainer(r, ctx)
	if err != nil {
		t.Fatalf("readPersistenceContainer failed: %v", err)
	}

	if got.Version != want.Version {
		t.Errorf("Version: got %d, want %d", got.Version, want.Version)
	}
	if len(got.Destroyed) != len(want.Destroyed) {
		t.Fatalf("Destroyed: got %d entries, want %d", len(got.Destroyed), len(want.Destroyed))
	}
	if len(got.Actors) != 2 {
		t.Fatalf("Actors: got %d, want 2", len(got.Actors))
	}
	// Actor directory order must survive exactly (§8 round-trip invariant):
	// this is why Actors is a slice, not a map.
	if got.Actors[0].UniqueID != 1 || got.Actors[1].UniqueID != 2 {
		t.Errorf("actor order not preserved: got uids %d,%d, want 1,2", got.Actors[0].UniqueID, got.Actors[1].UniqueID)
	}
	first := got.Actors[0]
	if first.Transform == nil || first.Transform.Position.X != 1 {
		t.Errorf("actor 0 transform: got %+v", first.Transform)
	}
	if first.DynamicData == nil || first.DynamicData.ClassPath.Name != "BP_Chest_C" {
		t.Errorf("actor 0 dynamic data bound by unique_id incorrectly: got %+v", first.DynamicData)
	}
	second := got.Actors[1]
	if second.Transform != nil {
		t.Errorf("actor 1 has no transform on write, got %+v", second.Transform)
	}
	if second.DynamicData != nil {
		t.Errorf("actor 1 has no dynamic data, got %+v", second.DynamicData)
	}
	if len(first.Archive.Objects) != 1 || first.Archive.Objects[0].ObjectPath != "/Game/Actors/Chest" {
		t.Errorf("actor 0 archive content not isolated correctly: got %+v", first.Archive.Objects)
	}
	if len(second.Archive.Objects) != 1 || second.Archive.Objects[0].ObjectPath != "/Game/Actors/Door" {
		t.Errorf("actor 1 archive content not isolated correctly: got %+v", second.Archive.Objects)
	}
}

func TestPersistenceContainerActorsUseIndependentCursors(t *testing.T) {
	// Each actor blob's internal name-table/object-index offsets are
	// relative to the start of that actor's own blob, not the outer
	// container buffer. A shared cursor would resolve the second actor's
	// offsets against the wrong base; this only surfaces with >1 actor.
	want := minimalPersistenceContainer()
	w := NewCursor(nil, 8)
	writePersistenceContainer(w, want)

	r := NewCursor(w.Bytes(), 8)
	got, err := readPersistenceContainer(r, &decodeCtx{Names: NewNameTable()})
	if err != nil {
		t.Fatalf("readPersistenceContainer failed: %v", err)
	}
	for i, a := range got.Actors {
		if len(a.Archive.Objects) != 1 {
			t.Fatalf("actor %d: got %d objects, want 1 (offsets likely resolved against the wrong base)", i, len(a.Archive.Objects))
		}
	}
}
