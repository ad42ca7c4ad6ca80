package fern

import (
	"testing"

	"github.com/vango-dev/fern/pkg/host/memdom"
	"github.com/vango-dev/fern/pkg/vdom"
)

func TestMountBasicTree(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	root := vdom.Div(vdom.ID("app"),
		vdom.Span("hello"),
		vdom.P("world"),
	)
	if err := rt.Setup(root, dom.Root); err != nil {
		t.Fatal(err)
	}

	want := `<div id="app"><span>hello</span><p>world</p></div>`
	if got := dom.Root.InnerHTML(); got != want {
		t.Errorf("InnerHTML = %q, want %q", got, want)
	}
}

func TestIdempotentNoOpUpdate(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	app := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		return vdom.Div(vdom.Span("static"), vdom.P("tree"))
	}
	if err := rt.Setup(vdom.Comp(app, nil), dom.Root); err != nil {
		t.Fatal(err)
	}
	rt.Settle()

	inst := rt.RootInstance()
	childInst := inst.Children[0]

	dom.ResetOps()
	rt.ScheduleRender()
	rt.Settle()

	// No structural mutations; prop reconfirmation through DiffProps is the
	// only permitted adapter traffic.
	for _, kind := range []memdom.OpKind{
		memdom.OpCreateElement, memdom.OpCreateText, memdom.OpSetText,
		memdom.OpInsert, memdom.OpRemove, memdom.OpRemoveProp,
	} {
		if got := dom.Count(kind); got != 0 {
			t.Errorf("%s ops = %d, want 0", kind, got)
		}
	}

	if rt.RootInstance() != inst {
		t.Error("root instance was replaced on a no-op update")
	}
	if rt.RootInstance().Children[0] != childInst {
		t.Error("component child instance was replaced on a no-op update")
	}
}

// The span's text changes from 1 to 2: exactly one text mutation, no element
// recreation.
func TestTextUpdateMutatesInPlace(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	var set func(any)
	app := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		n, s := h.UseState(1)
		set = s
		return vdom.Div(vdom.Span(vdom.Textf("%v", n)))
	}
	if err := rt.Setup(vdom.Comp(app, nil), dom.Root); err != nil {
		t.Fatal(err)
	}
	rt.Settle()

	dom.ResetOps()
	set(2)
	rt.Settle()

	if got := dom.Count(memdom.OpSetText); got != 1 {
		t.Errorf("SetText ops = %d, want exactly 1", got)
	}
	for _, kind := range []memdom.OpKind{
		memdom.OpCreateElement, memdom.OpCreateText, memdom.OpInsert, memdom.OpRemove,
	} {
		if got := dom.Count(kind); got != 0 {
			t.Errorf("%s ops = %d, want 0", kind, got)
		}
	}
	if got := dom.Root.TextContent(); got != "2" {
		t.Errorf("TextContent = %q, want 2", got)
	}
}

func TestPropRemovedWhenAbsentInNext(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	var set func(any)
	app := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		wide, s := h.UseState(true)
		set = s
		if wide.(bool) {
			return vdom.Div(vdom.Class("wide"), vdom.ID("box"))
		}
		return vdom.Div(vdom.ID("box"))
	}
	if err := rt.Setup(vdom.Comp(app, nil), dom.Root); err != nil {
		t.Fatal(err)
	}
	rt.Settle()

	set(false)
	rt.Settle()

	div := dom.Root.FindByTag("div")
	if _, ok := div.Props["className"]; ok {
		t.Error("className still present after being dropped from props")
	}
	if got := div.Props["id"]; got != "box" {
		t.Errorf("id = %v, want box", got)
	}
}

// Unkeyed prepend: [a b c] → [x a b c] is treated as three changed positions
// plus one appended node, not as a single insertion.
func TestUnkeyedListShiftHazard(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	var set func(any)
	app := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		items, s := h.UseState([]string{"a", "b", "c"})
		set = s
		kids := make([]*vdom.VNode, 0)
		for _, it := range items.([]string) {
			kids = append(kids, vdom.Text(it))
		}
		return vdom.Div(kids)
	}
	if err := rt.Setup(vdom.Comp(app, nil), dom.Root); err != nil {
		t.Fatal(err)
	}
	rt.Settle()

	dom.ResetOps()
	set([]string{"x", "a", "b", "c"})
	rt.Settle()

	if got := dom.Root.TextContent(); got != "xabc" {
		t.Errorf("TextContent = %q, want xabc", got)
	}
	if got := dom.Count(memdom.OpSetText); got != 3 {
		t.Errorf("SetText ops = %d, want 3 (every shifted sibling rewritten)", got)
	}
	if got := dom.Count(memdom.OpCreateText); got != 1 {
		t.Errorf("CreateText ops = %d, want 1", got)
	}
}

// A type change mid-list must insert the replacement before the next host
// node from the old children, not append it.
func TestMidListRemountPreservesOrder(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	var set func(any)
	app := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		first, s := h.UseState("text")
		set = s
		var head *vdom.VNode
		if first.(string) == "text" {
			head = vdom.Text("plain")
		} else {
			head = vdom.Em("emphatic")
		}
		return vdom.Div(head, vdom.Span("tail"))
	}
	if err := rt.Setup(vdom.Comp(app, nil), dom.Root); err != nil {
		t.Fatal(err)
	}
	rt.Settle()

	set("em")
	rt.Settle()

	want := `<div><em>emphatic</em><span>tail</span></div>`
	if got := dom.Root.InnerHTML(); got != want {
		t.Errorf("InnerHTML = %q, want %q", got, want)
	}
}

func TestListGrowsAndShrinks(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	var set func(any)
	app := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		n, s := h.UseState(1)
		set = s
		kids := make([]*vdom.VNode, 0)
		for i := 0; i < n.(int); i++ {
			kids = append(kids, vdom.Li(vdom.Textf("%d", i)))
		}
		return vdom.Ul(kids)
	}
	if err := rt.Setup(vdom.Comp(app, nil), dom.Root); err != nil {
		t.Fatal(err)
	}
	rt.Settle()

	set(3)
	rt.Settle()
	if got := dom.Root.TextContent(); got != "012" {
		t.Errorf("after grow: TextContent = %q, want 012", got)
	}

	set(2)
	rt.Settle()
	if got := dom.Root.TextContent(); got != "01" {
		t.Errorf("after shrink: TextContent = %q, want 01", got)
	}
	ul := dom.Root.FindByTag("ul")
	if got := len(ul.Children); got != 2 {
		t.Errorf("ul children = %d, want 2", got)
	}
}

func TestFragmentRendersAgainstParent(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	var set func(any)
	app := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		n, s := h.UseState(1)
		set = s
		return vdom.Fragment(
			vdom.Span("a"),
			vdom.Textf("%v", n),
		)
	}
	if err := rt.Setup(vdom.Comp(app, nil), dom.Root); err != nil {
		t.Fatal(err)
	}
	rt.Settle()

	want := `<span>a</span>1`
	if got := dom.Root.InnerHTML(); got != want {
		t.Errorf("InnerHTML = %q, want %q", got, want)
	}

	set(2)
	rt.Settle()
	if got := dom.Root.InnerHTML(); got != `<span>a</span>2` {
		t.Errorf("after update: InnerHTML = %q", got)
	}
}

func TestComponentProducingNil(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	nothing := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode { return nil }
	if err := rt.Setup(vdom.Comp(nothing, nil), dom.Root); err != nil {
		t.Fatal(err)
	}
	rt.Settle()

	if got := len(dom.Root.Children); got != 0 {
		t.Errorf("container children = %d, want 0", got)
	}
	for path, list := range rt.store.lists {
		if len(list.slots) != 0 {
			t.Errorf("hook slots persisted at %s: %d, want 0", path, len(list.slots))
		}
	}
}

func TestConditionalChildUnmounts(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	var set func(any)
	app := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		show, s := h.UseState(true)
		set = s
		var child *vdom.VNode
		if show.(bool) {
			child = vdom.Span("visible")
		}
		return vdom.Div(child, vdom.P("always"))
	}
	if err := rt.Setup(vdom.Comp(app, nil), dom.Root); err != nil {
		t.Fatal(err)
	}
	rt.Settle()

	set(false)
	rt.Settle()
	if got := dom.Root.InnerHTML(); got != `<div><p>always</p></div>` {
		t.Errorf("after hide: InnerHTML = %q", got)
	}

	set(true)
	rt.Settle()
	if got := dom.Root.InnerHTML(); got != `<div><span>visible</span><p>always</p></div>` {
		t.Errorf("after show: InnerHTML = %q (span must precede p)", got)
	}
}

func TestEventHandlerDrivesUpdate(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	counter := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		count, set := h.UseState(0)
		return vdom.Button(
			vdom.OnClick(func(vdom.Event) { set(count.(int) + 1) }),
			vdom.Textf("%v", count),
		)
	}
	if err := rt.Setup(vdom.Comp(counter, nil), dom.Root); err != nil {
		t.Fatal(err)
	}
	rt.Settle()

	btn := dom.Root.FindByTag("button")
	if !btn.Dispatch(vdom.Event{Type: "click"}) {
		t.Fatal("no click handler attached")
	}
	rt.Settle()

	if got := dom.Root.TextContent(); got != "1" {
		t.Errorf("TextContent = %q, want 1", got)
	}
}

// Keyed children keep their hook state across reorders even though the
// positional pairing forces a DOM remount: identity follows the key.
func TestKeyedChildKeepsStateAcrossReorder(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	item := func(h vdom.Hooks, props vdom.Props) *vdom.VNode {
		clicks, set := h.UseState(0)
		return vdom.Li(
			vdom.OnClick(func(vdom.Event) { set(clicks.(int) + 1) }),
			vdom.Textf("%s:%v", props["name"], clicks),
		)
	}

	var set func(any)
	app := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		order, s := h.UseState([]string{"a", "b"})
		set = s
		kids := make([]*vdom.VNode, 0)
		for _, name := range order.([]string) {
			kids = append(kids, vdom.Comp(item, vdom.Props{"key": name, "name": name}))
		}
		return vdom.Ul(kids)
	}
	if err := rt.Setup(vdom.Comp(app, nil), dom.Root); err != nil {
		t.Fatal(err)
	}
	rt.Settle()

	// Click item a once.
	ul := dom.Root.FindByTag("ul")
	ul.Children[0].(*memdom.Element).Dispatch(vdom.Event{Type: "click"})
	rt.Settle()
	if got := dom.Root.TextContent(); got != "a:1b:0" {
		t.Fatalf("after click: TextContent = %q, want a:1b:0", got)
	}

	set([]string{"b", "a"})
	rt.Settle()
	if got := dom.Root.TextContent(); got != "b:0a:1" {
		t.Errorf("after reorder: TextContent = %q, want b:0a:1 (a keeps its count)", got)
	}
}
