package zvm

// Opcode is the single-word instruction tag at the head of each
// instruction in the flat bytecode stream (§6). Values match the wire
// encoding exactly; this is not an internal enumeration free to renumber.
type Opcode int

const (
	B_CALC Opcode = 0x01
	U_CALC Opcode = 0x02

	LOAD_CONST    Opcode = 0x20
	LOAD_LOCAL    Opcode = 0x21
	STORE_LOCAL   Opcode = 0x22
	LOAD_GLOBAL   Opcode = 0x23
	STORE_GLOBAL  Opcode = 0x24
	LOAD_CLOSURE  Opcode = 0x25
	SWAP          Opcode = 0x26
	DUP           Opcode = 0x27
	POP           Opcode = 0x28
	LOAD_SLL      Opcode = 0x29
	JMP           Opcode = 0x30
	JMP_IF_TRUE   Opcode = 0x31
	JMP_IF_FALSE  Opcode = 0x32
	CALL          Opcode = 0x33
	RET           Opcode = 0x34
	NOP           Opcode = 0x35

	MAKE_INSTANCE Opcode = 0x40
	GET_ATTR      Opcode = 0x41
	SET_ATTR      Opcode = 0x42
	GET_ITER      Opcode = 0x43
	NEXT_ITER     Opcode = 0x44

	ALLOC     Opcode = 0x50
	FREE      Opcode = 0x51
	LOAD_MEM  Opcode = 0x52
	STORE_MEM Opcode = 0x53

	SETUP_FINALLY    Opcode = 0x54
	TRY_CATCH_START  Opcode = 0x55
	TRY_FINALLY_START Opcode = 0x56
	SETUP_CATCH      Opcode = 0x57
	END_FINALLY      Opcode = 0x58
	BS_POP           Opcode = 0x59
	THROW            Opcode = 0x5A

	HALT Opcode = 0xFF
)

func (op Opcode) String() string {
	switch op {
	case B_CALC:
		return "B_CALC"
	case U_CALC:
		return "U_CALC"
	case LOAD_CONST:
		return "LOAD_CONST"
	case LOAD_LOCAL:
		return "LOAD_LOCAL"
	case STORE_LOCAL:
		return "STORE_LOCAL"
	case LOAD_GLOBAL:
		return "LOAD_GLOBAL"
	case STORE_GLOBAL:
		return "STORE_GLOBAL"
	case LOAD_CLOSURE:
		return "LOAD_CLOSURE"
	case SWAP:
		return "SWAP"
	case DUP:
		return "DUP"
	case POP:
		return "POP"
	case LOAD_SLL:
		return "LOAD_SLL"
	case JMP:
		return "JMP"
	case JMP_IF_TRUE:
		return "JMP_IF_TRUE"
	case JMP_IF_FALSE:
		return "JMP_IF_FALSE"
	case CALL:
		return "CALL"
	case RET:
		return "RET"
	case NOP:
		return "NOP"
	case MAKE_INSTANCE:
		return "MAKE_INSTANCE"
	case GET_ATTR:
		return "GET_ATTR"
	case SET_ATTR:
		return "SET_ATTR"
	case GET_ITER:
		return "GET_ITER"
	case NEXT_ITER:
		return "NEXT_ITER"
	case ALLOC:
		return "ALLOC"
	case FREE:
		return "FREE"
	case LOAD_MEM:
		return "LOAD_MEM"
	case STORE_MEM:
		return "STORE_MEM"
	case SETUP_FINALLY:
		return "SETUP_FINALLY"
	case TRY_CATCH_START:
		return "TRY_CATCH_START"
	case TRY_FINALLY_START:
		return "TRY_FINALLY_START"
	case SETUP_CATCH:
		return "SETUP_CATCH"
	case END_FINALLY:
		return "END_FINALLY"
	case BS_POP:
		return "BS_POP"
	case THROW:
		return "THROW"
	case HALT:
		return "HALT"
	default:
		return "UNKNOWN"
	}
}
