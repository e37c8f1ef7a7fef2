package main

import (
	"fmt"

	"github.com/zata-lang/zvm/zbuiltin"
	"github.com/zata-lang/zvm/zcode"
	"github.com/zata-lang/zvm/zvalue"
	"github.com/zata-lang/zvm/zvm"
)

// operandCounts mirrors the operand arity each opcode's exec function in
// zvm consumes via fetchOperand - duplicated here since that table lives
// unexported inside the dispatch loop and disasm only needs to print,
// never execute.
var operandCounts = map[zvm.Opcode]int{
	zvm.B_CALC: 1, zvm.U_CALC: 1,
	zvm.LOAD_CONST: 1, zvm.LOAD_LOCAL: 1, zvm.STORE_LOCAL: 1,
	zvm.LOAD_GLOBAL: 1, zvm.STORE_GLOBAL: 1, zvm.LOAD_CLOSURE: 1,
	zvm.SWAP: 0, zvm.DUP: 0, zvm.POP: 0,
	zvm.LOAD_SLL: 2,
	zvm.JMP: 1, zvm.JMP_IF_TRUE: 1, zvm.JMP_IF_FALSE: 1,
	zvm.CALL: 1, zvm.RET: 0, zvm.NOP: 0,
	zvm.MAKE_INSTANCE: 1, zvm.GET_ATTR: 1, zvm.SET_ATTR: 1,
	zvm.GET_ITER: 0, zvm.NEXT_ITER: 0,
	zvm.ALLOC: 1, zvm.FREE: 0, zvm.LOAD_MEM: 0, zvm.STORE_MEM: 0,
	zvm.SETUP_FINALLY: 1, zvm.TRY_CATCH_START: 0, zvm.TRY_FINALLY_START: 0,
	zvm.SETUP_CATCH: 1, zvm.END_FINALLY: 0, zvm.BS_POP: 0, zvm.THROW: 0,
	zvm.HALT: 0,
}

// printDisasm walks code's flat instruction stream and prints one line
// per instruction: its offset, line number, mnemonic, and any operand
// words, resolving LOAD_CONST's operand against the constant pool for
// readability.
func printDisasm(code *zcode.Code) {
	pc := 0
	for pc < len(code.Instructions) {
		offset := pc
		op := zvm.Opcode(code.Instructions[pc])
		pc++
		n, known := operandCounts[op]
		if !known {
			fmt.Printf("%4d  %-16s ; unknown opcode 0x%02x\n", offset, op, int(op))
			continue
		}
		operands := make([]int, n)
		for i := 0; i < n; i++ {
			if pc >= len(code.Instructions) {
				fmt.Printf("%4d  %-16s ; truncated operand\n", offset, op)
				return
			}
			operands[i] = code.Instructions[pc]
			pc++
		}
		fmt.Printf("%4d  line %-4d %-16s %s\n", offset, code.LineAt(offset), op, operandString(code, op, operands))
	}
}

func operandString(code *zcode.Code, op zvm.Opcode, operands []int) string {
	s := ""
	for i, v := range operands {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprint(v)
	}
	switch op {
	case zvm.LOAD_CONST:
		if len(operands) == 1 {
			if c, ok := code.Const(operands[0]); ok {
				s += fmt.Sprintf(" ; %s", describe(c))
			}
		}
	case zvm.LOAD_GLOBAL, zvm.STORE_GLOBAL, zvm.LOAD_CLOSURE, zvm.GET_ATTR, zvm.SET_ATTR:
		if len(operands) == 1 {
			if name, ok := code.NameAt(operands[0]); ok {
				s += fmt.Sprintf(" ; %q", name)
			}
		}
	}
	return s
}

// describe renders a constant value for disasm/run output via its str
// slot, the same dispatch print uses, falling back to its tag name for
// values that leave it unbound.
func describe(v zvalue.Value) string {
	result, bound, err := v.Header().Metatype().Slot(zvalue.SlotStr).Invoke(nil, []zvalue.Value{v})
	if err != nil || !bound {
		return fmt.Sprintf("<%s>", v.Header().Tag())
	}
	s, ok := result.(*zbuiltin.String)
	if !ok {
		return fmt.Sprintf("<%s>", v.Header().Tag())
	}
	return s.Value
}
