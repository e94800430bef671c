package remnantsav

import "testing"

func minimalArchive() *Archive {
	return &Archive{
		Header: ArchiveHeader{SaveGameFileVersion: 9, BuildNumber: 100},
		Content: ArchiveContent{
			PackageVersion:    &FPackageVersion{UE4: 522, UE5: 1008},
			SaveGameClassPath: &FTopLevelAssetPath{Path: "/Game/Save/BP_Save", Name: "BP_Save_C"},
			Version:           1,
			Objects: []UObject{
				{ObjectID: 0, WasLoaded: true, Properties: []Property{}},
			},
		},
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	want := minimalArchive()
	buf := WriteArchive(want)

	got, err := ReadArchive(buf)
	if err != nil {
		t.Fatalf("ReadArchive failed: %v", err)
	}

	if got.Header.BuildNumber != want.Header.BuildNumber {
		t.Errorf("BuildNumber: got %d, want %d", got.Header.BuildNumber, want.Header.BuildNumber)
	}
	if got.Content.Version != want.Content.Version {
		t.Errorf("Content.Version: got %d, want %d", got.Content.Version, want.Content.Version)
	}
	if got.Content.SaveGameClassPath == nil || *got.Content.SaveGameClassPath != *want.Content.SaveGameClassPath {
		t.Errorf("SaveGameClassPath: got %+v, want %+v", got.Content.SaveGameClassPath, want.Content.SaveGameClassPath)
	}
	if len(got.Content.Objects) != 1 {
		t.Fatalf("Objects: got %d entries, want 1", len(got.Content.Objects))
	}
	obj := got.Content.Objects[0]
	wantPath := want.Content.SaveGameClassPath.Path
	if !obj.WasLoaded || obj.ObjectPath != wantPath {
		t.Errorf("top-level id-0 loaded object should take its path from SaveGameClassPath (%q), got %+v", wantPath, obj)
	}
}

func TestArchiveRoundTripIsByteExact(t *testing.T) {
	want := minimalArchive()
	buf1 := WriteArchive(want)

	a, err := ReadArchive(buf1)
	if err != nil {
		t.Fatalf("ReadArchive failed: %v", err)
	}
	buf2 := WriteArchive(a)

	if len(buf1) != len(buf2) {
		t.Fatalf("re-encoded length differs: %d vs %d", len(buf1), len(buf2))
	}
	for i := range buf1 {
		if buf1[i] != buf2[i] {
			t.Fatalf("byte %d differs: %#x vs %#x", i, buf1[i], buf2[i])
		}
	}
}
