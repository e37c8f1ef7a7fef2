// Package zhostfn is the built-in function registry (§4.4). Each VM builds
// its own through DefaultRegistry; LOAD_GLOBAL consults it for a name that
// is not a module global.
package zhostfn

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/zata-lang/zvm/zbuiltin"
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zvalue"
)

// Native is the signature every registry entry conforms to, identical to
// zvalue.Native - the registry exists to name these by string, not to
// impose a different calling convention.
type Native func(args []zvalue.Value) (zvalue.Value, error)

// Registry maps a built-in's name to its native implementation. Populated
// once at VM startup (§4.4); LOAD_GLOBAL looks a name up here when the
// module has no global of that name and pushes the entry as a Builtin,
// which CALL then invokes directly.
type Registry struct {
	fns map[string]Native
}

func NewRegistry() *Registry {
	return &Registry{fns: make(map[string]Native)}
}

func (r *Registry) Register(name string, fn Native) {
	r.fns[name] = fn
}

func (r *Registry) Lookup(name string) (Native, bool) {
	fn, ok := r.fns[name]
	return fn, ok
}

var processStart = time.Now()

// DefaultRegistry returns a registry with the three built-ins §4.4
// requires: print, input, now. caller is threaded into print's str-slot
// dispatch so a user class's own __str__ can be invoked, not just native
// str slots.
func DefaultRegistry(stdout *bufio.Writer, stdin *bufio.Reader, caller zvalue.UserCaller) *Registry {
	r := NewRegistry()

	r.Register("print", func(args []zvalue.Value) (zvalue.Value, error) {
		if len(args) != 1 {
			return nil, zerror.New(zerror.StackErr, "print expects 1 argument, got %d", len(args))
		}
		strResult, bound, err := args[0].Header().Metatype().Slot(zvalue.SlotStr).Invoke(caller, args)
		if err != nil {
			return nil, err
		}
		if !bound {
			return nil, zerror.TypeErrorf(args[0].Header().ID(), zvalue.SlotStr.String())
		}
		s, ok := strResult.(*zbuiltin.String)
		if !ok {
			return nil, zerror.New(zerror.TypeErr, "str slot did not return a string value")
		}
		fmt.Fprintln(stdout, s.Value)
		stdout.Flush()
		return zbuiltin.StateNone, nil
	})

	r.Register("input", func(args []zvalue.Value) (zvalue.Value, error) {
		if len(args) == 1 {
			if prompt, ok := args[0].(*zbuiltin.String); ok {
				fmt.Fprint(stdout, prompt.Value)
				stdout.Flush()
			}
		}
		line, err := stdin.ReadString('\n')
		if err != nil && line == "" {
			return nil, zerror.New(zerror.IOErr, "input: %v", err)
		}
		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}
		return zbuiltin.NewString(line), nil
	})

	r.Register("now", func(args []zvalue.Value) (zvalue.Value, error) {
		return zbuiltin.NewFloat(float32(time.Since(processStart).Seconds())), nil
	})

	return r
}
