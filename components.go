package remnantsav

import "fmt"

// Component is one entry of an actor's component list: a wire key and the
// body that key's exact spelling selects (§3, §4.6).
type Component struct {
	Key  string        `json:"key"`
	Body ComponentType `json:"body"`
}

// ComponentType is the closed union of component bodies. Six wire keys
// (GlobalVariables, Variables, Variable, PersistenceKeys, PersistanceKeys1,
// PersistenceKeys1 — kept byte-for-byte distinct per §9) all share the same
// VariablesData shape; any other key decodes as DynamicStructComponent.
type ComponentType interface {
	isComponentType()
}

type (
	VariablesData struct {
		Name      FName      `json:"name"`
		Variables []Variable `json:"variables"`
	}
	DynamicStructComponent struct {
		Properties []Property `json:"properties"`
	}
)

func (VariablesData) isComponentType()          {}
func (DynamicStructComponent) isComponentType() {}

// Variable is one {name, tagged value} pair inside a VariablesData body.
type Variable struct {
	Name  FName         `json:"name"`
	Value VariableValue `json:"value"`
}

// VariableValue is the closed union of variable value tags (§4.6).
type VariableValue interface {
	isVariableValue()
}

type (
	VarNone  struct{}
	VarBool  struct{ Value bool }
	VarInt   struct{ Value int32 }
	VarFloat struct{ Value float32 }
	VarName  struct{ Value FName }
)

func (VarNone) isVariableValue()  {}
func (VarBool) isVariableValue()  {}
func (VarInt) isVariableValue()   {}
func (VarFloat) isVariableValue() {}
func (VarName) isVariableValue()  {}

// variablesKeys are the six wire keys whose body is a VariablesData; any
// other key (including the unknown/future ones) decodes as
// DynamicStructComponent (§3: "any unknown key maps to DynamicStruct").
var variablesKeys = map[string]bool{
	"GlobalVariables":  true,
	"Variables":        true,
	"Variable":         true,
	"PersistenceKeys":  true,
	"PersistanceKeys1": true,
	"PersistenceKeys1": true,
}

// readComponents reads an actor's component list: a count, then for each a
// length-prefixed-by-byte-count body dispatched on key.
func readComponents(c *Cursor, ctx *decodeCtx) ([]Component, error) {
	count, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	components := make([]Component, 0, count)
	for i := uint32(0); i < count; i++ {
		key, err := c.ReadFString()
		if err != nil {
			return nil, err
		}
		length, err := c.ReadUint32()
		if err != nil {
			return nil, err
		}
		start := c.Position()
		body, err := readComponentBody(c, ctx, key)
		if err != nil {
			return nil, err
		}
		if consumed := uint32(c.Position() - start); consumed != length {
			return nil, ErrComponentLengthMismatch
		}
		components = append(components, Component{Key: key, Body: body})
	}
	return components, nil
}

func readComponentBody(c *Cursor, ctx *decodeCtx, key string) (ComponentType, error) {
	if variablesKeys[key] {
		return readVariablesData(c, ctx.Names)
	}
	return readDynamicStructComponent(c, ctx)
}

func readVariablesData(c *Cursor, names *NameTable) (ComponentType, error) {
	name, err := readName(c, names)
	if err != nil {
		return nil, err
	}
	reserved, err := c.ReadUint64()
	if err != nil {
		return nil, err
	}
	if reserved != 0 {
		return nil, &ReservedNonZeroError{Context: "Variables::read", Value: reserved}
	}
	count, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	vars := make([]Variable, 0, count)
	for i := uint32(0); i < count; i++ {
		varName, err := readName(c, names)
		if err != nil {
			return nil, err
		}
		tag, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		value, err := readVariableValue(c, names, tag)
		if err != nil {
			return nil, err
		}
		vars = append(vars, Variable{Name: varName, Value: value})
	}
	return VariablesData{Name: name, Variables: vars}, nil
}

func readVariableValue(c *Cursor, names *NameTable, tag uint8) (VariableValue, error) {
	switch tag {
	case 0:
		if _, err := c.ReadUint32(); err != nil {
			return nil, err
		}
		return VarNone{}, nil
	case 1:
		v, err := c.ReadUint32()
		return VarBool{Value: v != 0}, err
	case 2:
		v, err := c.ReadInt32()
		return VarInt{Value: v}, err
	case 3:
		v, err := c.ReadFloat32()
		return VarFloat{Value: v}, err
	case 4:
		v, err := readName(c, names)
		return VarName{Value: v}, err
	default:
		return nil, &UnknownVariableTagError{Tag: tag, Offset: c.Position()}
	}
}

func readDynamicStructComponent(c *Cursor, ctx *decodeCtx) (ComponentType, error) {
	props, err := readProperties(c, ctx)
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadUint64(); err != nil {
		return nil, err
	}
	return DynamicStructComponent{Properties: props}, nil
}

func writeComponents(c *Cursor, names *NameTable, components []Component) {
	c.WriteUint32(uint32(len(components)))
	for _, comp := range components {
		c.WriteFString(comp.Key)
		lengthPos := c.PlaceholderUint32()
		start := c.Position()
		writeComponentBody(c, names, comp.Body)
		c.PatchUint32(lengthPos, uint32(c.Position()-start))
	}
}

func writeComponentBody(c *Cursor, names *NameTable, body ComponentType) {
	switch v := body.(type) {
	case VariablesData:
		writeName(c, names, v.Name)
		c.WriteUint64(0)
		c.WriteUint32(uint32(len(v.Variables)))
		for _, variable := range v.Variables {
			writeName(c, names, variable.Name)
			writeVariableValue(c, names, variable.Value)
		}
	case DynamicStructComponent:
		writeProperties(c, names, v.Properties)
		c.WriteUint64(0)
	default:
		panic(fmt.Sprintf("remnantsav: unhandled ComponentType %T", body))
	}
}

func writeVariableValue(c *Cursor, names *NameTable, value VariableValue) {
	switch v := value.(type) {
	case VarNone:
		c.WriteUint8(0)
		c.WriteUint32(0)
	case VarBool:
		c.WriteUint8(1)
		c.WriteUint32(boolByte32(v.Value))
	case VarInt:
		c.WriteUint8(2)
		c.WriteInt32(v.Value)
	case VarFloat:
		c.WriteUint8(3)
		c.WriteFloat32(v.Value)
	case VarName:
		c.WriteUint8(4)
		writeName(c, names, v.Value)
	default:
		panic(fmt.Sprintf("remnantsav: unhandled VariableValue %T", value))
	}
}

func boolByte32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
