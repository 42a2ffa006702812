package htmlform

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formtoggle/pkg/checkbox"
)

func loadFixture(t *testing.T) *Document {
	t.Helper()
	f, err := os.Open("testdata/signup.html")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()
	doc, err := Parse(f)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

type control struct {
	Type    string
	Name    string
	Checked bool
}

func snapshot(form checkbox.Form) []control {
	var out []control
	for _, el := range form.Elements() {
		out = append(out, control{Type: el.Type(), Name: el.Name(), Checked: el.Checked()})
	}
	return out
}

func TestForms_DocumentOrder(t *testing.T) {
	doc := loadFixture(t)

	forms := doc.Forms()
	if len(forms) != 2 {
		t.Fatalf("expected 2 forms, got %d", len(forms))
	}
	if id := forms[0].(*Form).ID(); id != "signup" {
		t.Fatalf("expected first form signup, got %q", id)
	}
}

func TestForm_Elements(t *testing.T) {
	doc := loadFixture(t)
	form, err := doc.FirstForm()
	if err != nil {
		t.Fatalf("first form: %v", err)
	}

	want := []control{
		{Type: "text", Name: "topics"},
		{Type: "checkbox", Name: "topics"},
		{Type: "checkbox", Name: "topics", Checked: true},
		{Type: "checkbox", Name: "newsletter"},
		{Type: "checkbox", Name: "topics-extra"},
		{Type: "select-one", Name: "topics"},
		{Type: "submit", Name: "topics"},
		{Type: "checkbox", Name: "topics"},
	}
	if diff := cmp.Diff(want, snapshot(form)); diff != "" {
		t.Fatalf("elements mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_ElementsSkipImageButtons(t *testing.T) {
	doc, err := ParseString(`<form>
		<input type="image" src="go.png" name="go">
		<input type="IMAGE" name="shout">
		<input type="checkbox" name="go">
		<button type="submit" name="send">Send</button>
	</form>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	form, err := doc.FirstForm()
	if err != nil {
		t.Fatalf("first form: %v", err)
	}

	want := []control{
		{Type: "checkbox", Name: "go"},
		{Type: "submit", Name: "send"},
	}
	if diff := cmp.Diff(want, snapshot(form)); diff != "" {
		t.Fatalf("elements mismatch (-want +got):\n%s", diff)
	}
}

func TestSelect_OnlyFirstFormCheckboxes(t *testing.T) {
	doc := loadFixture(t)
	form, err := doc.FirstForm()
	if err != nil {
		t.Fatalf("first form: %v", err)
	}

	matched, err := checkbox.Select(form, "topics", true)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if matched != 3 {
		t.Fatalf("expected 3 matches, got %d", matched)
	}

	other := snapshot(doc.Forms()[1])
	if other[0].Checked {
		t.Fatalf("second form should be untouched")
	}

	got := snapshot(form)
	if got[0].Checked || got[4].Checked || got[5].Checked {
		t.Fatalf("non-matching controls changed: %+v", got)
	}
}

func TestSelect_RenderRoundTrip(t *testing.T) {
	doc, err := ParseString(`<form><input type="checkbox" name="a" checked><input type="checkbox" name="b"></form>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	form, err := doc.FirstForm()
	if err != nil {
		t.Fatalf("first form: %v", err)
	}

	if _, err := checkbox.Select(form, "a", false); err != nil {
		t.Fatalf("select a: %v", err)
	}
	if _, err := checkbox.Select(form, "b", true); err != nil {
		t.Fatalf("select b: %v", err)
	}

	out := doc.String()
	if !strings.Contains(out, `<input type="checkbox" name="a"/>`) {
		t.Fatalf("expected a unchecked in output, got %s", out)
	}
	if !strings.Contains(out, `<input type="checkbox" name="b" checked=""/>`) {
		t.Fatalf("expected b checked in output, got %s", out)
	}

	reparsed, err := ParseString(out)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	first, err := reparsed.FirstForm()
	if err != nil {
		t.Fatalf("first form after reparse: %v", err)
	}
	want := []control{
		{Type: "checkbox", Name: "a"},
		{Type: "checkbox", Name: "b", Checked: true},
	}
	if diff := cmp.Diff(want, snapshot(first)); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSetChecked_Idempotent(t *testing.T) {
	doc, err := ParseString(`<form><input type="checkbox" name="a"></form>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	form, _ := doc.FirstForm()
	el := form.Elements()[0].(*Element)

	el.SetChecked(true)
	el.SetChecked(true)
	if n := len(el.node.Attr); n != 3 {
		t.Fatalf("expected a single checked attribute, got %d attrs", n)
	}
}

func TestFirstForm_Missing(t *testing.T) {
	doc, err := ParseString(`<p>no forms here</p>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := doc.FirstForm(); !errors.Is(err, checkbox.ErrNoForm) {
		t.Fatalf("expected ErrNoForm, got %v", err)
	}
}

func TestGroupLabel(t *testing.T) {
	doc := loadFixture(t)
	form, err := doc.FirstForm()
	if err != nil {
		t.Fatalf("first form: %v", err)
	}

	if got := form.GroupLabel("topics"); got != "<input type=\"checkbox\" name=\"topics\" value=\"go\"/> <b>Go</b>" {
		t.Fatalf("unexpected topics label %q", got)
	}
	if got := form.GroupLabel("newsletter"); got != "Newsletter" {
		t.Fatalf("unexpected newsletter label %q", got)
	}
	if got := form.GroupLabel("topics-extra"); got != "" {
		t.Fatalf("expected no label, got %q", got)
	}
}
