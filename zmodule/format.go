// Package zmodule decodes the on-disk module file format into the
// zcode.Module/zcode.Code values the VM executes (§4.6, §6's "on-disk
// module file format...not part of this design" gap). Load and Decode do
// no signature checking; VerifySignature is a separate call, which
// cmd/zvm makes before Load when asked to.
//
// Layout ("ZVMB" container, all multi-byte fields little-endian):
//
//	magic      [4]byte  "ZVMB"
//	version    [8]byte  semver string, NUL-padded (checked against formatVersion)
//	nameCount  uint32
//	names      nameCount length-prefixed strings
//	constCount uint32
//	consts     constCount tagged constant records
//	instrCount uint32
//	instrs     instrCount int64 words
//	lineCount  uint32
//	lines      lineCount (offset uint32, line uint32) pairs
//	exportCount uint32
//	exports    exportCount length-prefixed strings
//	path       length-prefixed string
//	localCount uint32
//	sigLen     uint32 (0 if unsigned)
//	sig        sigLen bytes
//
// Decode stops after localCount: it neither reads nor checks sigLen/sig,
// and `zvm run --verify` checks a sibling <module>.sig file instead.
package zmodule

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/mod/semver"

	"github.com/zata-lang/zvm/zbuiltin"
	"github.com/zata-lang/zvm/zcode"
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zvalue"
)

var magic = [4]byte{'Z', 'V', 'M', 'B'}

// formatVersion is the highest module format this loader accepts;
// modules declaring a newer major version are rejected.
const formatVersion = "v1.0.0"

// constTag discriminates the tagged constant records in the constant
// pool section - a small closed set, since only primitive literals (not
// classes or functions, which a compiler emits via bytecode instead) can
// appear as module-file constants.
type constTag uint8

const (
	constInteger constTag = iota
	constLongInteger
	constFloat
	constDouble
	constString
	constNone
)

type reader struct {
	data []byte
	pos  int
}

func (r *reader) bytesLeft() int { return len(r.data) - r.pos }

func (r *reader) u8() (uint8, error) {
	if r.bytesLeft() < 1 {
		return 0, fmt.Errorf("truncated module: expected 1 byte at offset %d", r.pos)
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if r.bytesLeft() < 4 {
		return 0, fmt.Errorf("truncated module: expected uint32 at offset %d", r.pos)
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) i64() (int64, error) {
	if r.bytesLeft() < 8 {
		return 0, fmt.Errorf("truncated module: expected int64 at offset %d", r.pos)
	}
	v := int64(binary.LittleEndian.Uint64(r.data[r.pos:]))
	r.pos += 8
	return v, nil
}

func (r *reader) f32() (float32, error) {
	bits, err := r.u32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

func (r *reader) f64() (float64, error) {
	if r.bytesLeft() < 8 {
		return 0, fmt.Errorf("truncated module: expected float64 at offset %d", r.pos)
	}
	bits := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return math.Float64frombits(bits), nil
}

func (r *reader) str() (string, error) {
	n, err := r.u32()
	if err != nil {
		return "", err
	}
	if r.bytesLeft() < int(n) {
		return "", fmt.Errorf("truncated module: expected %d-byte string at offset %d", n, r.pos)
	}
	s := string(r.data[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, nil
}

// Decode parses a fully-loaded module file image (see Load for the
// mmap-backed entry point) into a *zcode.Module.
func Decode(data []byte) (*zcode.Module, error) {
	r := &reader{data: data}
	if len(data) < 12 || !bytes.Equal(data[0:4], magic[:]) {
		return nil, zerror.New(zerror.BytecodeErr, "not a ZVMB module file")
	}
	r.pos = 4

	versionBytes := data[4:12]
	version := string(bytes.TrimRight(versionBytes, "\x00"))
	r.pos = 12
	if !semver.IsValid(version) {
		return nil, zerror.New(zerror.BytecodeErr, "module declares an invalid format version %q", version)
	}
	if semver.Compare(semver.Major(version), semver.Major(formatVersion)) > 0 {
		return nil, zerror.New(zerror.BytecodeErr, "module format %s is newer than supported %s", version, formatVersion)
	}

	names, err := readStrings(r)
	if err != nil {
		return nil, zerror.New(zerror.BytecodeErr, "%v", err)
	}
	consts, err := readConsts(r)
	if err != nil {
		return nil, zerror.New(zerror.BytecodeErr, "%v", err)
	}
	instructions, err := readInstructions(r)
	if err != nil {
		return nil, zerror.New(zerror.BytecodeErr, "%v", err)
	}
	lines, err := readLines(r)
	if err != nil {
		return nil, zerror.New(zerror.BytecodeErr, "%v", err)
	}
	exports, err := readStrings(r)
	if err != nil {
		return nil, zerror.New(zerror.BytecodeErr, "%v", err)
	}
	path, err := r.str()
	if err != nil {
		return nil, zerror.New(zerror.BytecodeErr, "%v", err)
	}
	localCount, err := r.u32()
	if err != nil {
		return nil, zerror.New(zerror.BytecodeErr, "%v", err)
	}

	code := zcode.NewCode(path, int(localCount), consts, names, instructions, lines)
	mod := zcode.NewModule(path, path, names, code, exports)
	return mod, nil
}

func readStrings(r *reader) ([]string, error) {
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i := range out {
		s, err := r.str()
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func readConsts(r *reader) ([]zvalue.Value, error) {
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	out := make([]zvalue.Value, n)
	for i := range out {
		tag, err := r.u8()
		if err != nil {
			return nil, err
		}
		switch constTag(tag) {
		case constInteger:
			v, err := r.i64()
			if err != nil {
				return nil, err
			}
			out[i] = zbuiltin.NewInteger(int32(v))
		case constLongInteger:
			v, err := r.i64()
			if err != nil {
				return nil, err
			}
			out[i] = zbuiltin.NewLongInteger(v)
		case constFloat:
			v, err := r.f32()
			if err != nil {
				return nil, err
			}
			out[i] = zbuiltin.NewFloat(v)
		case constDouble:
			v, err := r.f64()
			if err != nil {
				return nil, err
			}
			out[i] = zbuiltin.NewDouble(v)
		case constString:
			s, err := r.str()
			if err != nil {
				return nil, err
			}
			out[i] = zbuiltin.NewString(s)
		case constNone:
			out[i] = zbuiltin.StateNone
		default:
			return nil, fmt.Errorf("unknown constant tag %d at index %d", tag, i)
		}
	}
	return out, nil
}

func readInstructions(r *reader) ([]int, error) {
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	out := make([]int, n)
	for i := range out {
		v, err := r.i64()
		if err != nil {
			return nil, err
		}
		out[i] = int(v)
	}
	return out, nil
}

func readLines(r *reader) ([]zcode.LineEntry, error) {
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	out := make([]zcode.LineEntry, n)
	for i := range out {
		offset, err := r.u32()
		if err != nil {
			return nil, err
		}
		line, err := r.u32()
		if err != nil {
			return nil, err
		}
		out[i] = zcode.LineEntry{Offset: int(offset), Line: int(line)}
	}
	return out, nil
}

// Load memory-maps path and decodes it, avoiding a full read into a byte
// slice for large modules. Decoded constants, names and instructions are
// copied out of the mapping, which is unmapped before Load returns.
func Load(path string) (*zcode.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, zerror.New(zerror.IOErr, "open module %q: %v", path, err)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, zerror.New(zerror.IOErr, "mmap module %q: %v", path, err)
	}
	defer m.Unmap()

	return Decode([]byte(m))
}
