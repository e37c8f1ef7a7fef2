// Package zcode defines the immutable, loaded form of compiled Zata code:
// the code object and the module that wraps it (§3, §4.5).
package zcode

import "github.com/zata-lang/zvm/zvalue"

// LineEntry pairs an instruction offset with the source line it came from,
// used by the error reporter to annotate a traceback frame.
type LineEntry struct {
	Offset int
	Line   int
}

// Code is an immutable unit of compiled bytecode: a constant pool indexed
// by LOAD_CONST, a name table indexed by the *_GLOBAL/*_ATTR/LOAD_CLOSURE
// family of opcodes, a local-slot vector template whose length fixes the
// callee's frame size, a flat instruction stream (opcodes and inline
// operands interleaved), and a line map.
type Code struct {
	Name         string
	LocalCount   int
	Consts       []zvalue.Value
	Names        []string
	Instructions []int
	Lines        []LineEntry
}

// NewCode builds a code object from its compiled parts. LocalCount must be
// at least the number of parameters the callee declares, since CALL
// assembles argument values into slots 0..arg_count-1 of a vector sized to
// this count.
func NewCode(name string, localCount int, consts []zvalue.Value, names []string, instructions []int, lines []LineEntry) *Code {
	return &Code{
		Name:         name,
		LocalCount:   localCount,
		Consts:       consts,
		Names:        names,
		Instructions: instructions,
		Lines:        lines,
	}
}

// LineAt returns the source line recorded for the instruction at pc, or 0
// if the line map doesn't cover it. The map is assumed sorted by offset;
// it's small enough in practice that a linear scan for the last entry at
// or before pc is simpler than maintaining a sorted-search invariant.
func (c *Code) LineAt(pc int) int {
	line := 0
	for _, e := range c.Lines {
		if e.Offset > pc {
			break
		}
		line = e.Line
	}
	return line
}

// Const returns the constant at index k, and whether k was in range -
// an out-of-range index is a bytecode error, not a panic (§7).
func (c *Code) Const(k int) (zvalue.Value, bool) {
	if k < 0 || k >= len(c.Consts) {
		return nil, false
	}
	return c.Consts[k], true
}

// NameAt returns the name-table entry at index k, and whether k was in
// range.
func (c *Code) NameAt(k int) (string, bool) {
	if k < 0 || k >= len(c.Names) {
		return "", false
	}
	return c.Names[k], true
}
