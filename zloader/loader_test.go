package zloader

import (
	"testing"

	"github.com/zata-lang/zvm/zbuiltin"
	"github.com/zata-lang/zvm/zvalue"
)

func TestLibraryCallResolvesByIndex(t *testing.T) {
	lib := &Library{
		Path: "libexample.so",
		Exports: map[string]Native{
			"add": func(args []zvalue.Value) (zvalue.Value, error) {
				return args[0], nil
			},
		},
	}
	exportNames := []string{"add"}
	v := zbuiltin.NewInteger(3)

	result, err := lib.Call(exportNames, 0, []zvalue.Value{v})
	if err != nil || result != v {
		t.Fatalf("expected Call to resolve export 0 to add, got %v, err %v", result, err)
	}
}

func TestLibraryCallIndexOutOfRange(t *testing.T) {
	lib := &Library{Path: "libexample.so", Exports: map[string]Native{}}

	if _, err := lib.Call(nil, 0, nil); err == nil {
		t.Fatal("expected an out-of-range export index to error")
	}
	if _, err := lib.Call([]string{"add"}, -1, nil); err == nil {
		t.Fatal("expected a negative export index to error")
	}
}

func TestLibraryCallMissingExport(t *testing.T) {
	lib := &Library{Path: "libexample.so", Exports: map[string]Native{}}
	exportNames := []string{"gone"}

	if _, err := lib.Call(exportNames, 0, nil); err == nil {
		t.Fatal("expected a name present in exportNames but absent from Exports to error")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/libexample.so", nil); err == nil {
		t.Fatal("expected Load to error on a nonexistent path")
	}
}
