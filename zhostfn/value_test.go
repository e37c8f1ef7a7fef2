package zhostfn

import (
	"testing"

	"github.com/zata-lang/zvm/zvalue"
)

func TestNewBuiltinWrapsNativeFn(t *testing.T) {
	called := false
	b := NewBuiltin("noop", func(args []zvalue.Value) (zvalue.Value, error) {
		called = true
		return nil, nil
	})

	if b.Name != "noop" {
		t.Fatalf("expected Name to be set, got %q", b.Name)
	}
	if b.Header.Tag() != zvalue.TagFunction {
		t.Fatalf("expected a builtin to reuse TagFunction, got %v", b.Header.Tag())
	}
	if b.Header.Metatype() != BuiltinMetatype() {
		t.Fatal("expected a builtin to dispatch through the shared builtin metatype")
	}

	if _, err := b.Fn(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("expected the wrapped native function to be reachable through Fn")
	}
}
