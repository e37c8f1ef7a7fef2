package zcode

import (
	"github.com/zata-lang/zvm/zbuiltin"
	"github.com/zata-lang/zvm/zvalue"
)

// Module wraps a code object with the global attribute map (the run entry
// point's root frame executes this code with these globals), a path (used
// for diagnostics and as the target of LOAD_SLL when the module describes
// a native shared library), and an export list naming the symbols a
// native library descriptor resolves (§3, §4.6).
type Module struct {
	zvalue.Header
	Name       string
	Path       string
	Names      []string
	Attributes map[string]zvalue.Value
	Code       *Code
	Exports    []string
}

var moduleMetatype = zvalue.NewMetatype("module")

func ModuleMetatype() *zvalue.Metatype { return moduleMetatype }

func NewModule(name, path string, names []string, code *Code, exports []string) *Module {
	return &Module{
		Header:     zvalue.NewHeader(zvalue.TagModule, moduleMetatype),
		Name:       name,
		Path:       path,
		Names:      names,
		Attributes: make(map[string]zvalue.Value),
		Code:       code,
		Exports:    exports,
	}
}

// Global reads a global by name-table index, the form STORE_GLOBAL and
// LOAD_GLOBAL address it by (§4.1: "against the executing module's
// attribute map, addressed by the module's name table").
func (m *Module) Global(nameIndex int) (zvalue.Value, bool) {
	if nameIndex < 0 || nameIndex >= len(m.Names) {
		return nil, false
	}
	v, ok := m.Attributes[m.Names[nameIndex]]
	return v, ok
}

func (m *Module) SetGlobal(nameIndex int, v zvalue.Value) bool {
	if nameIndex < 0 || nameIndex >= len(m.Names) {
		return false
	}
	name := m.Names[nameIndex]
	if old, ok := m.Attributes[name]; ok {
		zvalue.Release(old)
	}
	m.Attributes[name] = zvalue.Retain(v)
	return true
}

func init() {
	moduleMetatype.BindNative(zvalue.SlotStr, func(args []zvalue.Value) (zvalue.Value, error) {
		m := args[0].(*Module)
		return zbuiltin.NewString("<module " + m.Name + ">"), nil
	})
}
