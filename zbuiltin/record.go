package zbuiltin

import "github.com/zata-lang/zvm/zvalue"

// Record is a mapping from name to value (§3), distinct from Dict in that
// its keys are always field names rather than arbitrary values, read and
// written through Get/Set. GET_ATTR/SET_ATTR do not accept a record: they
// handle instances, classes and modules only.
type Record struct {
	zvalue.Header
	Fields map[string]zvalue.Value
}

var recordMetatype = zvalue.NewMetatype("record")

func RecordMetatype() *zvalue.Metatype { return recordMetatype }

func NewRecord() *Record {
	return &Record{Header: zvalue.NewHeader(zvalue.TagRecord, recordMetatype), Fields: make(map[string]zvalue.Value)}
}

func (r *Record) Get(name string) (zvalue.Value, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

func (r *Record) Set(name string, v zvalue.Value) {
	if old, ok := r.Fields[name]; ok {
		zvalue.Release(old)
	}
	r.Fields[name] = zvalue.Retain(v)
}

func init() {
	m := recordMetatype
	m.BindNative(zvalue.SlotStr, func(args []zvalue.Value) (zvalue.Value, error) {
		return NewString("[record]"), nil
	})
}
