// Package zvm is the ZVM dispatch loop (§4.1): it owns the operand stack,
// call stack, and block stack, decodes the flat instruction stream one
// opcode at a time, and indexes each value's metatype to carry out
// arithmetic, comparison, container and lifecycle operations. It never
// switches on a value's Tag to choose behaviour - that is the metatype
// table's job (§4.2).
package zvm

import (
	"bufio"
	"io"
	"os"

	"github.com/zata-lang/zvm/zclass"
	"github.com/zata-lang/zvm/zcode"
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zframe"
	"github.com/zata-lang/zvm/zhostfn"
	"github.com/zata-lang/zvm/zloader"
	"github.com/zata-lang/zvm/zvalue"
)

// DiagnosticContext carries a source file's path, content and
// modification time, reserved for the error reporter to present source
// excerpts (§6) - not yet consulted by the reporter itself, same as the
// source this was distilled from.
type DiagnosticContext struct {
	Path    string
	Content string
	ModTime int64
}

// Option configures a VM at construction time.
type Option func(*VM)

// WithStdout redirects the print built-in's output; defaults to os.Stdout
// via cmd/zvm, tests typically pass a bytes.Buffer-backed writer instead.
func WithStdout(w io.Writer) Option {
	return func(v *VM) { v.stdout = bufio.NewWriter(w) }
}

// WithStdin redirects the input built-in's source.
func WithStdin(r io.Reader) Option {
	return func(v *VM) { v.stdin = bufio.NewReader(r) }
}

// WithDiagnostics attaches source contexts for the error reporter.
func WithDiagnostics(ctxs []DiagnosticContext) Option {
	return func(v *VM) { v.diagnostics = ctxs }
}

// VM is one ZVM instance. Per §5, a single instance is single-threaded
// and not safe to enter from more than one goroutine concurrently; a host
// embedder wanting concurrency creates multiple instances.
type VM struct {
	operands zframe.OperandStack
	calls    *zframe.CallStack
	builtins *zhostfn.Registry
	libs     map[string]*zloader.Library

	stdout *bufio.Writer
	stdin  *bufio.Reader

	diagnostics []DiagnosticContext
	running     bool
	module      *zcode.Module
	mem         *memory
}

// New constructs a VM with the default built-in registry bound to opts'
// stdio (os.Stdout/os.Stdin if unset by an Option).
func New(opts ...Option) *VM {
	vm := &VM{calls: zframe.NewCallStack(), libs: make(map[string]*zloader.Library), mem: newMemory()}
	for _, opt := range opts {
		opt(vm)
	}
	if vm.stdout == nil {
		vm.stdout = bufio.NewWriter(os.Stdout)
	}
	if vm.stdin == nil {
		vm.stdin = bufio.NewReader(os.Stdin)
	}
	vm.builtins = zhostfn.DefaultRegistry(vm.stdout, vm.stdin, vm)
	return vm
}

// Run is the host entry point (§6, §4.5): pushes a root frame for
// module's code object, executes until HALT or the instruction stream is
// exhausted, and returns the final operand stack bottom to top. On error
// it returns the *zerror.Error and leaves the call stack as it stood at
// the point of failure; Traceback describes it for the error reporter.
func (vm *VM) Run(module *zcode.Module) ([]zvalue.Value, *zerror.Error) {
	vm.module = module
	root := zframe.NewFrame(module.Code, module.Name, 0, nil)
	if err := vm.calls.Push(root); err != nil {
		return nil, err.(*zerror.Error)
	}
	vm.running = true
	for vm.running {
		frame := vm.calls.Top()
		if frame == nil {
			break
		}
		if frame.PC >= len(frame.Code.Instructions) {
			if _, err := vm.calls.Pop(); err != nil {
				return nil, err.(*zerror.Error)
			}
			if vm.calls.Depth() == 0 {
				break
			}
			continue
		}
		if zerr := vm.step(frame); zerr != nil {
			return nil, zerr
		}
	}
	vm.stdout.Flush()
	return vm.operands.Values(), nil
}

// Traceback describes the call stack as it stood after the last failing
// Run, innermost frame first, for the caller to hand to zerror.Report.
func (vm *VM) Traceback() []zerror.StackFrame {
	frames := vm.calls.Frames()
	out := make([]zerror.StackFrame, len(frames))
	for i, f := range frames {
		out[i] = zerror.StackFrame{Name: f.Name, Line: f.Code.LineAt(f.PC)}
	}
	return out
}

// CallFunctionValue implements zvalue.UserCaller: invoked whenever a
// metatype slot forwards to a user-defined function (a class method,
// including __init__ during construction; CALL on a function pushes its
// frame directly instead). It pushes a frame and runs the dispatch loop
// until that frame returns.
func (vm *VM) CallFunctionValue(fn zvalue.Value, args []zvalue.Value) (zvalue.Value, error) {
	f, ok := fn.(*zclass.Function)
	if !ok {
		return nil, zerror.New(zerror.TypeErr, "<object id=%d> is not callable", fn.Header().ID())
	}
	return vm.invoke(f, args)
}

// invoke pushes a frame for f, runs the loop until it returns (the call
// stack depth drops back to where it started), and returns whatever was
// left on top of the operand stack - the return value RET's caller is
// expected to find there.
func (vm *VM) invoke(f *zclass.Function, args []zvalue.Value) (zvalue.Value, error) {
	targetDepth := vm.calls.Depth()
	frame := zframe.NewClosureFrame(f, -1, args)
	if err := vm.calls.Push(frame); err != nil {
		return nil, err
	}
	for vm.calls.Depth() > targetDepth {
		top := vm.calls.Top()
		if top == nil {
			break
		}
		if top.PC >= len(top.Code.Instructions) {
			return nil, zerror.New(zerror.RuntimeErr, "function %q fell off the end of its code without RET", f.Name)
		}
		if zerr := vm.step(top); zerr != nil {
			return nil, zerr
		}
	}
	return vm.operands.Pop()
}
