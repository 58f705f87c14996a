//go:build js && wasm

package dom

import (
	"strings"
	"syscall/js"

	"github.com/wrfweb/taskmonitor/internal/core/ports"
)

// JSDocument is the live browser document.
type JSDocument struct {
	doc js.Value
	// funcs keeps event callbacks reachable for the page lifetime.
	funcs []js.Func
}

var _ ports.Document = (*JSDocument)(nil)

func NewJSDocument() *JSDocument {
	return &JSDocument{doc: js.Global().Get("document")}
}

func (d *JSDocument) Query(role ports.Role, taskID string) (ports.Element, bool) {
	sel := role.Selector() + `[` + ports.TaskIDAttr + `="` + cssEscape(taskID) + `"]`
	v := d.doc.Call("querySelector", sel)
	if v.IsNull() || v.IsUndefined() {
		return nil, false
	}
	return &JSElement{doc: d, v: v}, true
}

func (d *JSDocument) QueryAll(role ports.Role) []ports.Element {
	list := d.doc.Call("querySelectorAll", role.Selector())
	n := list.Get("length").Int()
	out := make([]ports.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &JSElement{doc: d, v: list.Call("item", i)})
	}
	return out
}

func (d *JSDocument) Meta(name string) (string, bool) {
	v := d.doc.Call("querySelector", `meta[name="`+cssEscape(name)+`"]`)
	if v.IsNull() || v.IsUndefined() {
		return "", false
	}
	c := v.Call("getAttribute", "content")
	if c.IsNull() {
		return "", false
	}
	return c.String(), true
}

// OnBeforeUnload installs a beforeunload listener. guard reports whether
// navigation should be blocked and the message to attach.
func (d *JSDocument) OnBeforeUnload(guard func() (bool, string)) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		prevent, msg := guard()
		if !prevent || len(args) == 0 {
			return nil
		}
		ev := args[0]
		ev.Call("preventDefault")
		ev.Set("returnValue", msg)
		return msg
	})
	d.funcs = append(d.funcs, fn)
	js.Global().Call("addEventListener", "beforeunload", fn)
}

// Location returns window.location.origin, used as the API base URL.
func (d *JSDocument) Location() string {
	return js.Global().Get("location").Get("origin").String()
}

type JSElement struct {
	doc *JSDocument
	v   js.Value
}

var _ ports.Element = (*JSElement)(nil)

func (e *JSElement) Attr(name string) (string, bool) {
	v := e.v.Call("getAttribute", name)
	if v.IsNull() {
		return "", false
	}
	return v.String(), true
}

func (e *JSElement) SetAttr(name, value string) {
	e.v.Call("setAttribute", name, value)
}

func (e *JSElement) Text() string {
	return e.v.Get("textContent").String()
}

func (e *JSElement) SetText(text string) {
	e.v.Set("textContent", text)
}

func (e *JSElement) Classes() []string {
	return strings.Fields(e.v.Get("className").String())
}

func (e *JSElement) SetClasses(classes ...string) {
	e.v.Set("className", strings.Join(classes, " "))
}

func (e *JSElement) Disabled() bool {
	return e.v.Get("disabled").Truthy()
}

func (e *JSElement) SetDisabled(disabled bool) {
	e.v.Set("disabled", disabled)
}

func (e *JSElement) ReplaceWithLink(href, label string, classes ...string) {
	a := e.doc.doc.Call("createElement", "a")
	a.Call("setAttribute", "href", href)
	if len(classes) > 0 {
		a.Set("className", strings.Join(classes, " "))
	}
	a.Set("textContent", label)
	e.v.Call("replaceChildren", a)
}

func (e *JSElement) On(event string, handler func()) {
	// handler runs on the JS thread and must not block.
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		handler()
		return nil
	})
	e.doc.funcs = append(e.doc.funcs, fn)
	e.v.Call("addEventListener", event, fn)
}

func cssEscape(s string) string {
	if css := js.Global().Get("CSS"); !css.IsUndefined() && !css.Get("escape").IsUndefined() {
		return css.Call("escape", s).String()
	}
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// Alerter shows failures with window.alert.
type Alerter struct{}

func (Alerter) Alert(message string) {
	js.Global().Call("alert", message)
}
