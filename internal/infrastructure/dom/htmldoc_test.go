package dom

import (
	"reflect"
	"strings"
	"testing"

	"github.com/wrfweb/taskmonitor/internal/core/ports"
)

func mustParse(t *testing.T) *HTMLDocument {
	t.Helper()
	doc, err := ParseString(taskPage)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestHTMLDocument_QueryByRoleAndTask(t *testing.T) {
	doc := mustParse(t)

	el, ok := doc.Query(ports.RoleStatus, "t2")
	if !ok {
		t.Fatalf("expected status element for t2")
	}
	if el.Text() != "running" {
		t.Fatalf("unexpected text %q", el.Text())
	}

	if _, ok := doc.Query(ports.RoleMessage, "t2"); ok {
		t.Fatalf("t2 has no message element")
	}
	if _, ok := doc.Query(ports.RoleRunTrigger, "t1"); !ok {
		t.Fatalf("expected run trigger for t1")
	}
	if _, ok := doc.Query(ports.RoleStatus, "missing"); ok {
		t.Fatalf("unexpected match for unknown task")
	}
}

func TestHTMLDocument_QueryAll(t *testing.T) {
	doc := mustParse(t)

	if got := len(doc.QueryAll(ports.RoleStatus)); got != 2 {
		t.Fatalf("expected 2 status elements, got %d", got)
	}
	forms := doc.QueryAll(ports.RoleConfirmLeave)
	if len(forms) != 1 {
		t.Fatalf("expected only the form to match, got %d", len(forms))
	}
	if id, _ := forms[0].Attr("id"); id != "namelist" {
		t.Fatalf("unexpected form %q", id)
	}
}

func TestHTMLDocument_Meta(t *testing.T) {
	doc := mustParse(t)

	if v, ok := doc.Meta("csrf-token"); !ok || v != "tok-abc" {
		t.Fatalf("unexpected meta %q %v", v, ok)
	}
	if _, ok := doc.Meta("absent"); ok {
		t.Fatalf("expected missing meta")
	}
}

func TestHTMLElement_Mutations(t *testing.T) {
	doc := mustParse(t)
	el, _ := doc.Query(ports.RoleStatus, "t1")

	el.SetText("completed")
	el.SetClasses("badge", "bg-success")
	if el.Text() != "completed" {
		t.Fatalf("unexpected text %q", el.Text())
	}
	if !reflect.DeepEqual(el.Classes(), []string{"badge", "bg-success"}) {
		t.Fatalf("unexpected classes %v", el.Classes())
	}

	btn, _ := doc.Query(ports.RoleRunTrigger, "t1")
	btn.SetDisabled(true)
	if !btn.Disabled() {
		t.Fatalf("expected disabled")
	}
	btn.SetDisabled(false)
	if btn.Disabled() {
		t.Fatalf("expected enabled")
	}

	box, _ := doc.Query(ports.RoleResultLink, "t1")
	box.ReplaceWithLink("/results/t1", "View result", "btn", "btn-success")
	box.ReplaceWithLink("/results/t1", "View result", "btn", "btn-success")
	inner := box.(*HTMLElement).InnerHTML()
	if inner != `<a href="/results/t1" class="btn btn-success">View result</a>` {
		t.Fatalf("unexpected inner html %q", inner)
	}

	if !strings.Contains(doc.String(), `data-task-id="t1">completed</span>`) {
		t.Fatalf("render does not reflect mutation: %s", doc.String())
	}
}

func TestHTMLDocument_Dispatch(t *testing.T) {
	doc := mustParse(t)
	btn, _ := doc.Query(ports.RoleRunTrigger, "t1")

	var calls []string
	btn.On(ports.EventClick, func() { calls = append(calls, "first") })
	btn.On(ports.EventClick, func() { calls = append(calls, "second") })

	again, _ := doc.Query(ports.RoleRunTrigger, "t1")
	doc.Dispatch(again, ports.EventClick)
	doc.Dispatch(again, ports.EventSubmit)

	if !reflect.DeepEqual(calls, []string{"first", "second"}) {
		t.Fatalf("unexpected calls %v", calls)
	}

	btn.SetDisabled(true)
	doc.Dispatch(btn, ports.EventClick)
	if len(calls) != 2 {
		t.Fatalf("disabled button must not receive clicks, got %v", calls)
	}
}
