package remnantsav

import "testing"

func TestVariablesKeysRecognizeAllSixDistinctSpellings(t *testing.T) {
	want := []string{
		"GlobalVariables", "Variables", "Variable",
		"PersistenceKeys", "PersistanceKeys1", "PersistenceKeys1",
	}
	if len(variablesKeys) != 6 {
		t.Fatalf("variablesKeys has %d entries, want 6 distinct spellings", len(variablesKeys))
	}
	for _, k := range want {
		if !variablesKeys[k] {
			t.Errorf("variablesKeys missing %q", k)
		}
	}
}

func TestComponentVariablesRoundTrip(t *testing.T) {
	names := NewNameTable()
	nameVal := uint32(1)
	comps := []Component{
		{
			Key: "Variables",
			Body: VariablesData{
				Name: NewName("Inventory"),
				Variables: []Variable{
					{Name: NewName("Gold"), Value: VarInt{Value: 500}},
					{Name: NewName("HasKey"), Value: VarBool{Value: true}},
					{Name: NewName("DropRate"), Value: VarFloat{Value: 0.25}},
					{Name: NewName("Owner"), Value: VarName{Value: FName{Value: "Player1", Number: &nameVal}}},
					{Name: NewName("Unset"), Value: VarNone{}},
				},
			},
		},
	}

	w := NewCursor(nil, 4)
	writeComponents(w, names, comps)

	rtbl := NewNameTable()
	for _, s := range names.Strings() {
		rtbl.append(s)
	}
	r := NewCursor(w.Bytes(), 4)
	got, err := readComponents(r, &decodeCtx{Names: rtbl})
	if err != nil {
		t.Fatalf("readComponents failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d components, want 1", len(got))
	}
	data, ok := got[0].Body.(VariablesData)
	if !ok {
		t.Fatalf("got %T, want VariablesData", got[0].Body)
	}
	if len(data.Variables) != 5 {
		t.Fatalf("got %d variables, want 5", len(data.Variables))
	}
	if _, ok := data.Variables[0].Value.(VarInt); !ok {
		t.Errorf("var 0: got %T, want VarInt", data.Variables[0].Value)
	}
	if v, ok := data.Variables[3].Value.(VarName); !ok || v.Value.Number == nil || *v.Value.Number != nameVal {
		t.Errorf("var 3: got %+v, want VarName with number %d", data.Variables[3].Value, nameVal)
	}
	if _, ok := data.Variables[4].Value.(VarNone); !ok {
		t.Errorf("var 4: got %T, want VarNone", data.Variables[4].Value)
	}
}

func TestComponentDynamicStructFallback(t *testing.T) {
	names := NewNameTable()
	comps := []Component{
		{
			Key: "SomeUnrecognizedComponentKey",
			Body: DynamicStructComponent{
				Properties: []Property{
					{Name: NewName("Charge"), TypeName: NewName("FloatProperty"), Data: FloatPropertyData{Value: 1.0}},
				},
			},
		},
	}

	w := NewCursor(nil, 4)
	writeComponents(w, names, comps)

	rtbl := NewNameTable()
	for _, s := range names.Strings() {
		rtbl.append(s)
	}
	r := NewCursor(w.Bytes(), 4)
	got, err := readComponents(r, &decodeCtx{Names: rtbl})
	if err != nil {
		t.Fatalf("readComponents failed: %v", err)
	}
	data, ok := got[0].Body.(DynamicStructComponent)
	if !ok {
		t.Fatalf("got %T, want DynamicStructComponent", got[0].Body)
	}
	if len(data.Properties) != 1 || data.Properties[0].Name.Value != "Charge" {
		t.Errorf("got %+v", data.Properties)
	}
}

func TestVariablesReservedNonZero(t *testing.T) {
	names := NewNameTable()
	names.append("Name")

	w := NewCursor(nil, 4)
	writeName(w, names, NewName("Name"))
	w.WriteUint64(0xDEAD) // reserved, must be zero
	w.WriteUint32(0)

	r := NewCursor(w.Bytes(), 4)
	_, err := readVariablesData(r, names)
	var reservedErr *ReservedNonZeroError
	if err == nil {
		t.Fatal("expected ReservedNonZeroError")
	}
	if rv, ok := err.(*ReservedNonZeroError); !ok {
		t.Fatalf("got %T, want *ReservedNonZeroError", err)
	} else {
		reservedErr = rv
	}
	if reservedErr.Value != 0xDEAD {
		t.Errorf("got %#x, want %#x", reservedErr.Value, 0xDEAD)
	}
}

func TestVariableValueUnknownTag(t *testing.T) {
	names := NewNameTable()
	_, err := readVariableValue(NewCursor(nil, 4), names, 0xFF)
	var tagErr *UnknownVariableTagError
	if err == nil {
		t.Fatal("expected UnknownVariableTagError")
	}
	tagErr, ok := err.(*UnknownVariableTagError)
	if !ok {
		t.Fatalf("got %T, want *UnknownVariableTagError", err)
	}
	if tagErr.Tag != 0xFF {
		t.Errorf("got tag %d, want 255", tagErr.Tag)
	}
}

func TestComponentLengthMismatch(t *testing.T) {
	names := NewNameTable()
	names.append("X")

	w := NewCursor(nil, 4)
	w.WriteUint32(1) // component count
	w.WriteFString("Variable")
	w.WriteUint32(4) // declared length, deliberately wrong
	writeName(w, names, NewName("X"))
	w.WriteUint64(0)
	w.WriteUint32(0)

	r := NewCursor(w.Bytes(), 4)
	_, err := readComponents(r, &decodeCtx{Names: names})
	if err != ErrComponentLengthMismatch {
		t.Errorf("got %v, want ErrComponentLengthMismatch", err)
	}
}
