package remnantsav

import "testing"

func TestCompressorRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   Compressor
	}{
		{"none", Compressor{Kind: CompressorNone}},
		{"zlib", Compressor{Kind: CompressorZlib}},
		{"custom", Compressor{Kind: CompressorCustom, CustomName: "Oodle-ish"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewCursor(nil, 4)
			writeCompressor(w, tt.in)
			r := NewCursor(w.Bytes(), 4)
			got, err := readCompressor(r)
			if err != nil {
				t.Fatalf("readCompressor failed: %v", err)
			}
			if got != tt.in {
				t.Errorf("got %+v, want %+v", got, tt.in)
			}
		})
	}
}

func TestReadCompressorUnknownTag(t *testing.T) {
	w := NewCursor(nil, 4)
	w.WriteUint8(0xFE)
	r := NewCursor(w.Bytes(), 4)
	if _, err := readCompressor(r); err != ErrUnknownCompressor {
		t.Errorf("got %v, want ErrUnknownCompressor", err)
	}
}

func TestSavFileRoundTrip(t *testing.T) {
	want := minimalArchive()
	raw := EncodeSavFile(want, 9)

	got, err := DecodeSavFile(raw, nil)
	if err != nil {
		t.Fatalf("DecodeSavFile failed: %v", err)
	}

	// BuildNumber survives the container round trip untouched.
	if got.Header.BuildNumber != want.Header.BuildNumber {
		t.Errorf("BuildNumber: got %d, want %d", got.Header.BuildNumber, want.Header.BuildNumber)
	}
	// The container's own version patches over SaveGameFileVersion on decode.
	if got.Header.SaveGameFileVersion != 9 {
		t.Errorf("SaveGameFileVersion: got %d, want the container version 9", got.Header.SaveGameFileVersion)
	}
	if got.Content.Version != want.Content.Version {
		t.Errorf("Content.Version: got %d, want %d", got.Content.Version, want.Content.Version)
	}
}

func TestSavFileChunksLargePayload(t *testing.T) {
	want := minimalArchive()
	// Pad with extra distinct objects so the content exceeds a single chunk.
	for i := 1; i < 4000; i++ {
		want.Content.Objects = append(want.Content.Objects, UObject{
			ObjectID:   uint32(i),
			WasLoaded:  false,
			ObjectPath: "/Game/Save/Obj",
			LoadedData: &UObjectLoadedData{Name: NewName("Obj"), OuterID: 0},
			Properties: []Property{},
		})
	}

	raw := EncodeSavFile(want, 9)
	got, err := DecodeSavFile(raw, nil)
	if err != nil {
		t.Fatalf("DecodeSavFile failed on multi-chunk payload: %v", err)
	}
	if len(got.Content.Objects) != len(want.Content.Objects) {
		t.Fatalf("Objects: got %d, want %d", len(got.Content.Objects), len(want.Content.Objects))
	}
}

func TestSavFileCrcMismatchIsFatalByDefault(t *testing.T) {
	want := minimalArchive()
	raw := EncodeSavFile(want, 9)
	raw[0] ^= 0xFF // corrupt the stored crc32

	if _, err := DecodeSavFile(raw, nil); err != ErrCrcMismatch {
		t.Errorf("got %v, want ErrCrcMismatch", err)
	}
}

func TestSavFileCrcMismatchCanBeDisabled(t *testing.T) {
	want := minimalArchive()
	raw := EncodeSavFile(want, 9)
	raw[0] ^= 0xFF

	_, err := DecodeSavFile(raw, &Options{DisableCRCCheck: true})
	if err != nil {
		t.Errorf("DecodeSavFile with DisableCRCCheck should not fail on crc mismatch, got %v", err)
	}
}
