package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/dop251/goja"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formtoggle/pkg/checkbox"
	"github.com/goliatone/go-formtoggle/pkg/htmlform"
)

func newRuntime(t *testing.T, doc checkbox.Document, opts ...Option) *goja.Runtime {
	t.Helper()
	vm := goja.New()
	if err := Install(vm, doc, opts...); err != nil {
		t.Fatalf("install: %v", err)
	}
	return vm
}

func TestSelectGlobal(t *testing.T) {
	form := checkbox.Fields{
		checkbox.Checkbox("a", false),
		checkbox.Checkbox("ab", false),
		checkbox.Input("text", "a"),
	}
	vm := newRuntime(t, checkbox.Forms{form})

	if _, err := vm.RunString(`select("a", true)`); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]bool{true, false, false}, form.States()); diff != "" {
		t.Fatalf("states mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectMultipleGlobal(t *testing.T) {
	form := checkbox.Fields{
		checkbox.Checkbox("a", true),
		checkbox.Checkbox("b", true),
		checkbox.Checkbox("c", true),
	}
	vm := newRuntime(t, checkbox.Forms{form})

	if _, err := vm.RunString(`selectMultiple(["a", "c", "a"], false)`); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]bool{false, true, false}, form.States()); diff != "" {
		t.Fatalf("states mismatch (-want +got):\n%s", diff)
	}

	if _, err := vm.RunString(`selectMultiple([], true)`); err != nil {
		t.Fatalf("run empty: %v", err)
	}
	if diff := cmp.Diff([]bool{false, true, false}, form.States()); diff != "" {
		t.Fatalf("empty names mutated form (-want +got):\n%s", diff)
	}
}

func TestClickHandlerAgainstHTML(t *testing.T) {
	doc, err := htmlform.ParseString(`<form>
		<input type="checkbox" name="ids" value="1">
		<input type="checkbox" name="ids" value="2">
		<input type="checkbox" name="keep" value="3">
	</form>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	vm := newRuntime(t, doc)

	script := `
		function onSelectAll() { select("ids", true); return false; }
		onSelectAll();
	`
	if _, err := vm.RunString(script); err != nil {
		t.Fatalf("run: %v", err)
	}

	out := doc.String()
	if strings.Count(out, `checked=""`) != 2 {
		t.Fatalf("expected two checked boxes, got %s", out)
	}
}

func TestNullishNamesMatchNothing(t *testing.T) {
	form := checkbox.Fields{
		checkbox.Checkbox("undefined", false),
		checkbox.Checkbox("null", false),
		checkbox.Checkbox("1", false),
	}
	vm := newRuntime(t, checkbox.Forms{form})

	script := `
		select(undefined, true);
		select(null, true);
		select();
		selectMultiple([undefined, null, 1], true);
	`
	if _, err := vm.RunString(script); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]bool{false, false, false}, form.States()); diff != "" {
		t.Fatalf("states mismatch (-want +got):\n%s", diff)
	}

	if _, err := vm.RunString(`selectMultiple([null, "1"], true)`); err != nil {
		t.Fatalf("run mixed: %v", err)
	}
	if diff := cmp.Diff([]bool{false, false, true}, form.States()); diff != "" {
		t.Fatalf("mixed entries mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingFormThrows(t *testing.T) {
	vm := newRuntime(t, checkbox.Forms{})

	_, err := vm.RunString(`select("a", true)`)
	var exc *goja.Exception
	if !errors.As(err, &exc) {
		t.Fatalf("expected a JS exception, got %v", err)
	}
	if !strings.Contains(exc.Error(), "TypeError") {
		t.Fatalf("expected TypeError, got %v", exc)
	}
}

func TestWithGlobalNames(t *testing.T) {
	form := checkbox.Fields{checkbox.Checkbox("a", false)}
	vm := newRuntime(t, checkbox.Forms{form}, WithGlobalNames("checkGroup", ""))

	if _, err := vm.RunString(`checkGroup("a", true)`); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !form[0].IsChecked {
		t.Fatalf("expected renamed global to toggle")
	}
	if v := vm.Get(DefaultSelectMultipleName); v == nil || goja.IsUndefined(v) {
		t.Fatalf("expected default selectMultiple global to remain")
	}
}

func TestInstallNilRuntime(t *testing.T) {
	if err := Install(nil, checkbox.Forms{}); err == nil {
		t.Fatalf("expected error for nil runtime")
	}
}
