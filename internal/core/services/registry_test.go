package services

import (
	"errors"
	"reflect"
	"testing"

	"github.com/wrfweb/taskmonitor/internal/domain"
)

func TestRegistry_ScanSkipsElementsWithoutID(t *testing.T) {
	doc := parsePage(t, taskRowPage)
	reg := NewRegistry()

	if n := reg.Scan(doc); n != 2 {
		t.Fatalf("expected 2 tasks, got %d", n)
	}
	if !reflect.DeepEqual(reg.IDs(), []string{"t1", "t2"}) {
		t.Fatalf("unexpected ids %v", reg.IDs())
	}
	if n := reg.Scan(doc); n != 0 {
		t.Fatalf("rescan must not add duplicates, added %d", n)
	}
}

func TestRegistry_RegisterUnregister(t *testing.T) {
	reg := NewRegistry()

	if !reg.Register("b") || !reg.Register("a") {
		t.Fatalf("expected new registrations")
	}
	if reg.Register("a") {
		t.Fatalf("duplicate must report false")
	}
	if reg.Register("") {
		t.Fatalf("empty id must be rejected")
	}
	if !reflect.DeepEqual(reg.IDs(), []string{"a", "b"}) {
		t.Fatalf("unexpected ids %v", reg.IDs())
	}

	if err := reg.Unregister("a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reg.Unregister("a"); !errors.Is(err, domain.ErrTaskNotRegistered) {
		t.Fatalf("expected ErrTaskNotRegistered, got %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 task left, got %d", reg.Len())
	}
}

func TestLocator_ResolvesFragments(t *testing.T) {
	doc := parsePage(t, taskRowPage)
	loc := Locator{TaskID: "t1"}

	for name, find := range map[string]func() bool{
		"status":  func() bool { _, ok := loc.Status(doc); return ok },
		"message": func() bool { _, ok := loc.Message(doc); return ok },
		"result":  func() bool { _, ok := loc.ResultLink(doc); return ok },
		"run":     func() bool { _, ok := loc.RunTrigger(doc); return ok },
	} {
		if !find() {
			t.Fatalf("expected %s fragment for t1", name)
		}
	}

	if _, ok := (Locator{TaskID: "t2"}).Message(doc); ok {
		t.Fatalf("t2 has no message fragment")
	}
	if _, ok := loc.Status(nil); ok {
		t.Fatalf("nil document must resolve nothing")
	}
}
