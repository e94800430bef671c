package remnantsav

// NameTable is an archive-local, insertion-order deduplicating string pool.
// FName references are u16 indices into it. A table must not be shared
// across archives: indices are archive-local.
type NameTable struct {
	strings []string
	index   map[string]uint16
}

// NewNameTable returns an empty table, ready for either decode-time bulk
// population or encode-time incremental interning.
func NewNameTable() *NameTable {
	return &NameTable{index: make(map[string]uint16)}
}

// Strings returns the table contents in table order (first-use order).
func (t *NameTable) Strings() []string { return t.strings }

// Len reports the number of distinct strings currently interned.
func (t *NameTable) Len() int { return len(t.strings) }

// append adds s unconditionally and indexes it. Used when bulk-loading a
// decoded name pool, where the wire already guarantees uniqueness.
func (t *NameTable) append(s string) {
	t.index[s] = uint16(len(t.strings))
	t.strings = append(t.strings, s)
}

// intern returns the index for s, appending it in first-use order if this
// is the first time s has been seen. This is the encode-side write_name
// behavior: insertion-order-stable dedup.
func (t *NameTable) intern(s string) uint16 {
	if idx, ok := t.index[s]; ok {
		return idx
	}
	idx := uint16(len(t.strings))
	t.index[s] = idx
	t.strings = append(t.strings, s)
	return idx
}

// resolve returns the string stored at idx.
func (t *NameTable) resolve(idx uint16) (string, error) {
	if int(idx) >= len(t.strings) {
		return "", &NameIndexOutOfRangeError{Index: idx, Size: len(t.strings)}
	}
	return t.strings[idx], nil
}

// readNamePool reads the length-prefixed sequence of length-prefixed
// C-strings that makes up an archive's trailing name table (§4.3), and
// populates t with them in wire order.
func readNamePool(c *Cursor, t *NameTable) error {
	n, err := c.ReadUint32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		s, err := c.ReadFString()
		if err != nil {
			return err
		}
		t.append(s)
	}
	return nil
}

// writeNamePool writes t's current contents as the length-prefixed name
// pool. Called once the archive body has been fully serialized and every
// name referenced has been interned.
func writeNamePool(c *Cursor, t *NameTable) {
	c.WriteUint32(uint32(len(t.strings)))
	for _, s := range t.strings {
		c.WriteFString(s)
	}
}

// readName reads an FName reference: a u16 table index, optionally
// followed by a u32 numeric suffix when the high bit is set.
func readName(c *Cursor, t *NameTable) (FName, error) {
	raw, err := c.ReadUint16()
	if err != nil {
		return FName{}, err
	}
	hasNumber := raw&nameIndexNumberFlag != 0
	idx := raw &^ nameIndexNumberFlag
	value, err := t.resolve(idx)
	if err != nil {
		return FName{}, err
	}
	name := FName{Value: value}
	if hasNumber {
		num, err := c.ReadUint32()
		if err != nil {
			return FName{}, err
		}
		name.Number = &num
	}
	return name, nil
}

// writeName interns n.Value into t (assigning it the next table index on
// first use) and writes the wire reference.
func writeName(c *Cursor, t *NameTable, n FName) {
	idx := t.intern(n.Value)
	if n.Number != nil {
		c.WriteUint16(idx | nameIndexNumberFlag)
		c.WriteUint32(*n.Number)
		return
	}
	c.WriteUint16(idx)
}
