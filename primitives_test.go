package remnantsav

import "testing"

func TestGuidRoundTrip(t *testing.T) {
	want := FGuid{A: 1, B: 2, C: 3, D: 4}
	w := NewCursor(nil, 4)
	writeGuid(w, want)
	r := NewCursor(w.Bytes(), 4)
	got, err := readGuid(r)
	if err != nil {
		t.Fatalf("readGuid failed: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestVectorRoundTrip(t *testing.T) {
	want := FVector{X: 1.5, Y: -2.25, Z: 0}
	w := NewCursor(nil, 4)
	writeVector(w, want)
	r := NewCursor(w.Bytes(), 4)
	got, err := readVector(r)
	if err != nil {
		t.Fatalf("readVector failed: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestQuaternionWireOrderIsWXYZ(t *testing.T) {
	want := FQuaternion{W: 1, X: 2, Y: 3, Z: 4}
	w := NewCursor(nil, 4)
	writeQuaternion(w, want)

	r := NewCursor(w.Bytes(), 4)
	first, err := r.ReadFloat64()
	if err != nil {
		t.Fatalf("ReadFloat64 failed: %v", err)
	}
	if first != want.W {
		t.Errorf("first field on the wire should be W, got %v", first)
	}

	r2 := NewCursor(w.Bytes(), 4)
	got, err := readQuaternion(r2)
	if err != nil {
		t.Fatalf("readQuaternion failed: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestTransformFieldOrder(t *testing.T) {
	want := FTransform{
		Rotation: FQuaternion{W: 1, X: 0, Y: 0, Z: 0},
		Position: FVector{X: 10, Y: 20, Z: 30},
		Scale:    FVector{X: 1, Y: 1, Z: 1},
	}
	w := NewCursor(nil, 4)
	writeTransform(w, want)
	r := NewCursor(w.Bytes(), 4)
	got, err := readTransform(r)
	if err != nil {
		t.Fatalf("readTransform failed: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestTopLevelAssetPathRoundTrip(t *testing.T) {
	want := FTopLevelAssetPath{Path: "/Game/Blueprints/BP_Save", Name: "BP_Save_C"}
	w := NewCursor(nil, 4)
	writeTopLevelAssetPath(w, want)
	r := NewCursor(w.Bytes(), 4)
	got, err := readTopLevelAssetPath(r)
	if err != nil {
		t.Fatalf("readTopLevelAssetPath failed: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestPackageVersionRoundTrip(t *testing.T) {
	want := FPackageVersion{UE4: 522, UE5: 1008}
	w := NewCursor(nil, 4)
	writePackageVersion(w, want)
	r := NewCursor(w.Bytes(), 4)
	got, err := readPackageVersion(r)
	if err != nil {
		t.Fatalf("readPackageVersion failed: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestFNameIsNone(t *testing.T) {
	tests := []struct {
		name string
		in   FName
		want bool
	}{
		{"bare none", FName{Value: NameNone}, true},
		{"other value", FName{Value: "Health"}, false},
		{"none with number is not none", FName{Value: NameNone, Number: func() *uint32 { n := uint32(1); return &n }()}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.IsNone(); got != tt.want {
				t.Errorf("IsNone() = %v, want %v", got, tt.want)
			}
		})
	}
}
