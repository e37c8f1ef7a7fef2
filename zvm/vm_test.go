package zvm

import (
	"bytes"
	"testing"

	"github.com/zata-lang/zvm/zbuiltin"
	"github.com/zata-lang/zvm/zclass"
	"github.com/zata-lang/zvm/zcode"
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zvalue"
)

func mustRunInt(t *testing.T, code *zcode.Code) int32 {
	t.Helper()
	mod := zcode.NewModule("main", "main.zvmb", nil, code, nil)
	stack, zerr := New().Run(mod)
	if zerr != nil {
		t.Fatalf("unexpected vm error: %v", zerr)
	}
	if len(stack) != 1 {
		t.Fatalf("expected exactly one value left on the stack, got %d", len(stack))
	}
	i, ok := stack[0].(*zbuiltin.Integer)
	if !ok {
		t.Fatalf("expected an Integer result, got %T", stack[0])
	}
	return i.Value
}

func TestVMArithmetic(t *testing.T) {
	consts := []zvalue.Value{zbuiltin.NewInteger(3), zbuiltin.NewInteger(4)}
	addPattern, ok := zvalue.BinarySlot(0) // SlotAdd
	if !ok || addPattern != zvalue.SlotAdd {
		t.Fatal("expected pattern 0 to map to SlotAdd")
	}
	instructions := []int{
		int(LOAD_CONST), 0,
		int(LOAD_CONST), 1,
		int(B_CALC), 0,
		int(HALT),
	}
	code := zcode.NewCode("main", 0, consts, nil, instructions, nil)

	if got := mustRunInt(t, code); got != 7 {
		t.Fatalf("expected 3 + 4 = 7, got %d", got)
	}
}

func TestVMConditionalJump(t *testing.T) {
	// if True: push 1 else push 2; HALT. JMP_IF_FALSE skips the "then" const.
	consts := []zvalue.Value{zbuiltin.FromBool(true), zbuiltin.NewInteger(1), zbuiltin.NewInteger(2)}
	instructions := []int{
		int(LOAD_CONST), 0, // push True
		int(JMP_IF_FALSE), 4, // if false, skip to the else branch (pc += 4 lands on LOAD_CONST 2)
		int(LOAD_CONST), 1, // then branch: push 1
		int(JMP), 2, // skip over the else branch
		int(LOAD_CONST), 2, // else branch: push 2
		int(HALT),
	}
	code := zcode.NewCode("main", 0, consts, nil, instructions, nil)

	if got := mustRunInt(t, code); got != 1 {
		t.Fatalf("expected the then branch to run, got %d", got)
	}
}

func TestVMConditionalJumpFalseBranch(t *testing.T) {
	consts := []zvalue.Value{zbuiltin.FromBool(false), zbuiltin.NewInteger(1), zbuiltin.NewInteger(2)}
	instructions := []int{
		int(LOAD_CONST), 0,
		int(JMP_IF_FALSE), 4,
		int(LOAD_CONST), 1,
		int(JMP), 2,
		int(LOAD_CONST), 2,
		int(HALT),
	}
	code := zcode.NewCode("main", 0, consts, nil, instructions, nil)

	if got := mustRunInt(t, code); got != 2 {
		t.Fatalf("expected the else branch to run, got %d", got)
	}
}

func TestVMFunctionCall(t *testing.T) {
	// double(x) { return x + x }
	doubleInstructions := []int{
		int(LOAD_LOCAL), 0,
		int(LOAD_LOCAL), 0,
		int(B_CALC), 0,
		int(RET),
	}
	doubleCode := zcode.NewCode("double", 1, nil, nil, doubleInstructions, nil)
	double := zclass.NewFunction("double", 1, doubleCode, nil, nil)

	mainConsts := []zvalue.Value{double, zbuiltin.NewInteger(21)}
	mainInstructions := []int{
		int(LOAD_CONST), 1, // push 21 (the argument)
		int(LOAD_CONST), 0, // push double (the callee, popped first by CALL)
		int(CALL), 1,
		int(HALT),
	}
	code := zcode.NewCode("main", 0, mainConsts, nil, mainInstructions, nil)

	if got := mustRunInt(t, code); got != 42 {
		t.Fatalf("expected double(21) = 42, got %d", got)
	}
}

func TestVMInstanceConstructionAndAttributes(t *testing.T) {
	class := zclass.NewClass("Point", nil, nil, map[string]zvalue.Value{})

	consts := []zvalue.Value{class, zbuiltin.NewInteger(9)}
	names := []string{"x"}
	instructions := []int{
		int(MAKE_INSTANCE), 0, // push a fresh Point instance
		int(DUP),
		int(LOAD_CONST), 1, // push 9
		int(SET_ATTR), 0, // instance.x = 9 (pops value then target)
		int(GET_ATTR), 0, // push instance.x
		int(HALT),
	}
	code := zcode.NewCode("main", 0, consts, names, instructions, nil)

	if got := mustRunInt(t, code); got != 9 {
		t.Fatalf("expected instance.x = 9, got %d", got)
	}
}

func TestVMBuiltinPrint(t *testing.T) {
	consts := []zvalue.Value{zbuiltin.NewString("hello")}
	names := []string{"print"}
	instructions := []int{
		int(LOAD_CONST), 0, // push "hello" (the argument)
		int(LOAD_GLOBAL), 0, // resolves "print" from the builtin registry (the callee, popped first by CALL)
		int(CALL), 1,
		int(POP),
		int(HALT),
	}
	code := zcode.NewCode("main", 0, consts, names, instructions, nil)
	mod := zcode.NewModule("main", "main.zvmb", nil, code, nil)

	var out bytes.Buffer
	_, zerr := New(WithStdout(&out)).Run(mod)
	if zerr != nil {
		t.Fatalf("unexpected vm error: %v", zerr)
	}
	if out.String() != "hello\n" {
		t.Fatalf("expected print to write %q, got %q", "hello\n", out.String())
	}
}

func TestVMCalcTypeErrorProducesTraceback(t *testing.T) {
	// A state value has no __add__ slot bound, so B_CALC on it must fail
	// with a type error rather than panicking.
	consts := []zvalue.Value{zbuiltin.StateNone, zbuiltin.NewInteger(1)}
	instructions := []int{
		int(LOAD_CONST), 0,
		int(LOAD_CONST), 1,
		int(B_CALC), 0,
		int(HALT),
	}
	code := zcode.NewCode("main", 0, consts, nil, instructions, nil)
	mod := zcode.NewModule("main", "main.zvmb", nil, code, nil)

	vm := New()
	_, zerr := vm.Run(mod)
	if zerr == nil {
		t.Fatal("expected a type error from adding a state value")
	}
	if zerr.Kind != zerror.TypeErr {
		t.Fatalf("expected TypeErr, got %v", zerr.Kind)
	}
	trace := vm.Traceback()
	if len(trace) != 1 || trace[0].Name != "main" {
		t.Fatalf("expected a one-frame traceback naming the module's root frame, got %+v", trace)
	}
}
