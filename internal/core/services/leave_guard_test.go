package services

import (
	"testing"

	"github.com/wrfweb/taskmonitor/internal/core/ports"
)

const formsPage = `<html><body>
<form data-confirm-leave id="a"><input name="x"></form>
<form data-confirm-leave id="b"><input name="y"></form>
<form id="plain"><input name="z"></form>
</body></html>`

func TestLeaveGuard_BlocksWhileModified(t *testing.T) {
	doc := parsePage(t, formsPage)
	g := NewLeaveGuard("")

	if n := g.Attach(doc); n != 2 {
		t.Fatalf("expected 2 tracked forms, got %d", n)
	}
	if !g.Active() {
		t.Fatalf("guard with tracked forms must be active")
	}
	if prevent, _ := g.BeforeUnload(); prevent {
		t.Fatalf("pristine forms must not block")
	}

	forms := doc.QueryAll(ports.RoleConfirmLeave)
	doc.Dispatch(forms[1], ports.EventInput)

	prevent, msg := g.BeforeUnload()
	if !prevent || msg != DefaultLeaveMessage {
		t.Fatalf("expected block with message, got %v %q", prevent, msg)
	}

	doc.Dispatch(forms[1], ports.EventSubmit)
	if prevent, _ := g.BeforeUnload(); prevent {
		t.Fatalf("submitted form must not block")
	}
	if v, _ := forms[1].Attr("data-modified"); v != "false" {
		t.Fatalf("expected modified=false, got %q", v)
	}
}

func TestLeaveGuard_NoForms(t *testing.T) {
	doc := parsePage(t, taskRowPage)
	g := NewLeaveGuard("custom")

	if g.Attach(doc) != 0 || g.Active() {
		t.Fatalf("expected no tracked forms")
	}
	if prevent, _ := g.BeforeUnload(); prevent {
		t.Fatalf("nothing to guard")
	}
}
