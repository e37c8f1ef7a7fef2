// Package zvalue defines the universal runtime datum of the Zata VM and
// the metatype slot table every value carries for operator dispatch.
package zvalue

import "sync/atomic"

// Tag discriminates a Value's variant. The dispatch loop never switches on
// Tag to choose behaviour - that's the metatype's job - but built-ins,
// diagnostics and the error reporter use it to name a value's kind.
type Tag int

const (
	TagInteger Tag = iota
	TagLongInteger
	TagBigInteger
	TagFloat
	TagDouble
	TagDecimal
	TagString
	TagList
	TagDict
	TagTuple
	TagRecord
	TagState
	TagFunction
	TagClass
	TagInstance
	TagCode
	TagModule
	TagMetatype
	TagIterator
)

func (t Tag) String() string {
	switch t {
	case TagInteger:
		return "integer"
	case TagLongInteger:
		return "long-integer"
	case TagBigInteger:
		return "big-integer"
	case TagFloat:
		return "float"
	case TagDouble:
		return "double"
	case TagDecimal:
		return "decimal"
	case TagString:
		return "string"
	case TagList:
		return "list"
	case TagDict:
		return "dict"
	case TagTuple:
		return "tuple"
	case TagRecord:
		return "record"
	case TagState:
		return "state"
	case TagFunction:
		return "function"
	case TagClass:
		return "class"
	case TagInstance:
		return "instance"
	case TagCode:
		return "code"
	case TagModule:
		return "module"
	case TagMetatype:
		return "metatype"
	case TagIterator:
		return "iterator"
	default:
		return "unknown"
	}
}

var nextID uint64

// NewID issues the next monotonically increasing identity, used for
// `is`-style identity comparisons and diagnostics only.
func NewID() uint64 {
	return atomic.AddUint64(&nextID, 1)
}

// Value is the universal runtime datum. Every concrete variant embeds
// Header, which carries the shared fields §3 requires of every value:
// tag, metatype, identity, and a reference count used to give values with
// an external resource (a loaded library handle, an open stream) a
// deterministic destruction point even though ordinary memory is left to
// the Go garbage collector.
type Value interface {
	Header() *Header
	Tag() Tag
}

// Header is embedded by every concrete value type.
type Header struct {
	id       uint64
	tag      Tag
	metatype *Metatype
	refs     int32
	onZero   func()
}

// NewHeader constructs a header with a fresh identity and the given tag
// and metatype. mt must be non-nil: §3 requires every value's metatype
// pointer be non-null after construction.
func NewHeader(tag Tag, mt *Metatype) Header {
	if mt == nil {
		panic("zvalue: NewHeader called with nil metatype for tag " + tag.String())
	}
	return Header{id: NewID(), tag: tag, metatype: mt, refs: 1}
}

func (h *Header) Header() *Header { return h }
func (h *Header) Tag() Tag        { return h.tag }

// ID returns the value's identity, stable for its lifetime.
func (h *Header) ID() uint64 { return h.id }

// Metatype returns the per-type operator slot table this value dispatches
// through. Never nil (see NewHeader).
func (h *Header) Metatype() *Metatype { return h.metatype }

// SetMetatype rebinds the value's metatype, for a value that must start
// dispatching through a different table. Nothing in this repository
// calls it.
func (h *Header) SetMetatype(mt *Metatype) {
	if mt == nil {
		panic("zvalue: SetMetatype called with nil metatype")
	}
	h.metatype = mt
}

// OnRelease registers a destructor invoked exactly once, when the last
// strong reference is released (Release brings the count to zero), for
// values that own an external resource, to satisfy §3's "destroyed
// deterministically when its last strong reference is dropped" where
// that determinism matters beyond memory housekeeping (which the Go
// runtime already handles). zloader's Library is not a Value and does
// not use it.
func (h *Header) OnRelease(fn func()) { h.onZero = fn }

// Retain increments the reference count. Containers, locals, the operand
// stack and captured closure environments each call Retain when they take
// joint ownership of a value.
func Retain(v Value) Value {
	if v == nil {
		return nil
	}
	atomic.AddInt32(&v.Header().refs, 1)
	return v
}

// Release decrements the reference count, running the registered
// destructor (if any) when it reaches zero. Safe to call on nil.
func Release(v Value) {
	if v == nil {
		return
	}
	h := v.Header()
	if atomic.AddInt32(&h.refs, -1) == 0 && h.onZero != nil {
		h.onZero()
		h.onZero = nil
	}
}

// RefCount reports the current strong reference count; exposed for tests
// and diagnostics only, never consulted by the dispatch loop.
func (h *Header) RefCount() int32 { return atomic.LoadInt32(&h.refs) }
