package zbuiltin

import "github.com/zata-lang/zvm/zvalue"

// Iterator drives GET_ITER/NEXT_ITER (§4.1), which "delegate to the
// target's getitem/container slots for iteration" - there's no separate
// iteration slot in the metatype table, so an Iterator simply replays
// getitem against increasing integer indices until it's refused.
type Iterator struct {
	zvalue.Header
	Target zvalue.Value
	Index  int32
}

var iteratorMetatype = zvalue.NewMetatype("iterator")

func IteratorMetatype() *zvalue.Metatype { return iteratorMetatype }

func NewIterator(target zvalue.Value) *Iterator {
	return &Iterator{
		Header: zvalue.NewHeader(zvalue.TagIterator, iteratorMetatype),
		Target: zvalue.Retain(target),
		Index:  0,
	}
}

// Next calls getitem on the wrapped target at the current index,
// advancing it on success. Returns the element and true, or
// (StateNotFound, false) once the target refuses the index - the signal
// NEXT_ITER's caller uses to end a loop.
func (it *Iterator) Next(caller zvalue.UserCaller) (zvalue.Value, bool, error) {
	slot := it.Target.Header().Metatype().Slot(zvalue.SlotGetItem)
	if !slot.Bound() {
		return StateNotFound, false, nil
	}
	idx := NewInteger(it.Index)
	v, bound, err := slot.Invoke(caller, []zvalue.Value{it.Target, idx})
	if err != nil || !bound {
		return StateNotFound, false, nil
	}
	it.Index++
	return v, true, nil
}

func init() {
	iteratorMetatype.BindNative(zvalue.SlotStr, func(args []zvalue.Value) (zvalue.Value, error) {
		return NewString("[iterator]"), nil
	})
}
