package zbuiltin

import "testing"

func TestRecordGetSet(t *testing.T) {
	r := NewRecord()
	if _, ok := r.Get("name"); ok {
		t.Fatal("expected an absent field to report not found")
	}

	v := NewString("alice")
	r.Set("name", v)
	got, ok := r.Get("name")
	if !ok || got != v {
		t.Fatalf("expected Get to find the set field, got %v, ok=%v", got, ok)
	}
}

func TestRecordSetReplacesExistingField(t *testing.T) {
	r := NewRecord()
	r.Set("x", NewInteger(1))
	r.Set("x", NewInteger(2))

	got, _ := r.Get("x")
	if got.(*Integer).Value != 2 {
		t.Fatalf("expected the second Set to replace the field, got %v", got)
	}
}
