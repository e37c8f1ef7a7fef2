// Package zloader implements the dynamic native-library loader (§4.6):
// given a shared-library path and an export list, it resolves each named
// symbol to a native callable and returns a Library holding the
// name-to-callable map. The library handle is never released: a loaded
// library stays open for the life of the process.
//
// Go's plugin package is the only stdlib facility that opens a .so and
// resolves symbols by name; none of the reference corpus's third-party
// dependencies cover dynamic code loading, so this one component is
// stdlib by necessity rather than by omission (see DESIGN.md).
package zloader

import (
	"plugin"

	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zvalue"
)

// Native matches the callable signature every resolved export must
// satisfy: a vector of values in, a value out (§6).
type Native func(args []zvalue.Value) (zvalue.Value, error)

// Library is a loaded native shared library: its resolved exports plus
// the underlying OS handle. Go's plugin package exposes no Close -
// opened plugins live for the process lifetime - so Library has no
// release method and nothing unmaps it; see DESIGN.md.
type Library struct {
	Path    string
	Exports map[string]Native
	handle  *plugin.Plugin
}

// Load opens path and resolves each name in exports to a Native-shaped
// symbol. A missing export or a load failure is an IO error (§7).
func Load(path string, exports []string) (*Library, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, zerror.New(zerror.IOErr, "load library %q: %v", path, err)
	}
	lib := &Library{Path: path, Exports: make(map[string]Native, len(exports)), handle: p}
	for _, name := range exports {
		sym, err := p.Lookup(name)
		if err != nil {
			return nil, zerror.New(zerror.IOErr, "library %q missing export %q", path, name)
		}
		fn, ok := sym.(func([]zvalue.Value) (zvalue.Value, error))
		if !ok {
			return nil, zerror.New(zerror.IOErr, "library %q export %q has the wrong signature", path, name)
		}
		lib.Exports[name] = fn
	}
	return lib, nil
}

// Call resolves fn_index against the export list, matching LOAD_SLL's
// addressing of a symbol by index rather than name (§4.1).
func (l *Library) Call(exportNames []string, fnIndex int, args []zvalue.Value) (zvalue.Value, error) {
	if fnIndex < 0 || fnIndex >= len(exportNames) {
		return nil, zerror.New(zerror.BytecodeErr, "LOAD_SLL: export index %d out of range", fnIndex)
	}
	fn, ok := l.Exports[exportNames[fnIndex]]
	if !ok {
		return nil, zerror.New(zerror.IOErr, "library %q missing export %q", l.Path, exportNames[fnIndex])
	}
	return fn(args)
}
