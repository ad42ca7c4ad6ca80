package fern

import (
	"testing"

	"github.com/vango-dev/fern/pkg/host/memdom"
	"github.com/vango-dev/fern/pkg/vdom"
)

func TestSetupValidation(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	if err := rt.Setup(nil, dom.Root); err != ErrNilRoot {
		t.Errorf("Setup(nil root) = %v, want ErrNilRoot", err)
	}
	if err := rt.Setup(vdom.Div(), nil); err != ErrNoContainer {
		t.Errorf("Setup(nil container) = %v, want ErrNoContainer", err)
	}
}

func TestSetupIsSynchronous(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	if err := rt.Setup(vdom.Div(vdom.Text("now")), dom.Root); err != nil {
		t.Fatal(err)
	}
	// No pump: the initial pass already committed.
	if got := dom.Root.TextContent(); got != "now" {
		t.Errorf("TextContent = %q, want now (before any pump)", got)
	}
}

func TestSetupReplacesPreviousTree(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	if err := rt.Setup(vdom.Div(vdom.Text("first")), dom.Root); err != nil {
		t.Fatal(err)
	}
	rt.Settle()

	if err := rt.Setup(vdom.Span(vdom.Text("second")), dom.Root); err != nil {
		t.Fatal(err)
	}
	rt.Settle()

	if got := dom.Root.InnerHTML(); got != `<span>second</span>` {
		t.Errorf("InnerHTML = %q, want only the second tree", got)
	}
}

func TestEffectRunsAfterCommitNotDuring(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	var sawDuringSetup string
	var log []string
	app := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		h.UseEffect(func() func() {
			log = append(log, "effect")
			return nil
		}, []any{})
		return vdom.Text("x")
	}
	if err := rt.Setup(vdom.Comp(app, nil), dom.Root); err != nil {
		t.Fatal(err)
	}
	if len(log) > 0 {
		sawDuringSetup = log[0]
	}

	rt.Settle()

	if sawDuringSetup != "" {
		t.Error("effect ran synchronously during setup")
	}
	if len(log) != 1 {
		t.Errorf("effect runs = %d, want 1", len(log))
	}
}

func TestEffectDependencyGating(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	var log []string
	var setDep, setOther func(any)
	app := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		dep, sd := h.UseState(1)
		other, so := h.UseState(0)
		setDep, setOther = sd, so
		h.UseEffect(func() func() {
			log = append(log, "effect")
			return func() { log = append(log, "cleanup") }
		}, []any{dep})
		return vdom.Textf("%v-%v", dep, other)
	}
	if err := rt.Setup(vdom.Comp(app, nil), dom.Root); err != nil {
		t.Fatal(err)
	}
	rt.Settle()

	// Unrelated state change: same dep, no re-run, no cleanup.
	setOther(1)
	rt.Settle()
	if len(log) != 1 {
		t.Fatalf("log after unrelated change = %v, want [effect]", log)
	}

	// Dep change: previous cleanup runs before the new body.
	setDep(2)
	rt.Settle()
	want := []string{"effect", "cleanup", "effect"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
}

func TestEffectNilDepsRunsEveryPass(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	runs := 0
	app := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		Effect(h, func() func() {
			runs++
			return nil
		})
		return vdom.Text("x")
	}
	if err := rt.Setup(vdom.Comp(app, nil), dom.Root); err != nil {
		t.Fatal(err)
	}
	rt.Settle()
	rt.ScheduleRender()
	rt.Settle()

	if runs != 2 {
		t.Errorf("runs = %d, want 2 (once per pass with no dependency list)", runs)
	}
}

func TestOnMountRunsOnce(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	runs := 0
	app := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		OnMount(h, func() func() {
			runs++
			return nil
		})
		return vdom.Text("x")
	}
	if err := rt.Setup(vdom.Comp(app, nil), dom.Root); err != nil {
		t.Fatal(err)
	}
	rt.Settle()
	rt.ScheduleRender()
	rt.Settle()

	if runs != 1 {
		t.Errorf("runs = %d, want 1 (empty dependency list)", runs)
	}
}

// An effect that sets state parks a fresh render pass, which Settle keeps
// pumping until the tree stabilizes.
func TestEffectStateChangeSchedulesNewPass(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	app := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		phase, setPhase := h.UseState("loading")
		h.UseEffect(func() func() {
			setPhase("ready")
			return nil
		}, []any{})
		return vdom.Text(phase.(string))
	}
	if err := rt.Setup(vdom.Comp(app, nil), dom.Root); err != nil {
		t.Fatal(err)
	}
	if got := dom.Root.TextContent(); got != "loading" {
		t.Fatalf("before pump: TextContent = %q, want loading", got)
	}

	rt.Settle()
	if got := dom.Root.TextContent(); got != "ready" {
		t.Errorf("after settle: TextContent = %q, want ready", got)
	}
}

func TestHookSlotGCOnUnmount(t *testing.T) {
	dom := memdom.New()
	rt := New(dom)

	child := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		n, set := h.UseState(0)
		return vdom.Button(
			vdom.OnClick(func(vdom.Event) { set(n.(int) + 1) }),
			vdom.Textf("%v", n),
		)
	}

	var setShow func(any)
	app := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		show, s := h.UseState(true)
		setShow = s
		if !show.(bool) {
			return vdom.Div()
		}
		return vdom.Div(vdom.Comp(child, nil))
	}
	if err := rt.Setup(vdom.Comp(app, nil), dom.Root); err != nil {
		t.Fatal(err)
	}
	rt.Settle()

	// Advance the child's state to 2.
	btn := dom.Root.FindByTag("button")
	btn.Dispatch(vdom.Event{Type: "click"})
	rt.Settle()
	dom.Root.FindByTag("button").Dispatch(vdom.Event{Type: "click"})
	rt.Settle()
	if got := dom.Root.TextContent(); got != "2" {
		t.Fatalf("TextContent = %q, want 2", got)
	}
	listsBefore := rt.store.size()

	// Unmount the child: its slot list is reclaimed after the pass.
	setShow(false)
	rt.Settle()
	if got := rt.store.size(); got != listsBefore-1 {
		t.Errorf("live slot lists = %d, want %d", got, listsBefore-1)
	}

	// Remount at the same identity path: fresh initial state.
	setShow(true)
	rt.Settle()
	if got := dom.Root.TextContent(); got != "0" {
		t.Errorf("TextContent after remount = %q, want 0 (state reset)", got)
	}
}

func TestWakeFiresOnScheduledWork(t *testing.T) {
	dom := memdom.New()

	wakes := 0
	rt := New(dom, WithWake(func() { wakes++ }))

	var set func(any)
	app := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		n, s := h.UseState(0)
		set = s
		return vdom.Textf("%v", n)
	}
	if err := rt.Setup(vdom.Comp(app, nil), dom.Root); err != nil {
		t.Fatal(err)
	}
	rt.Settle()
	wakes = 0

	set(1)
	set(2) // absorbed
	if wakes != 1 {
		t.Errorf("wakes = %d, want 1 (coalesced)", wakes)
	}
}

func TestIndependentRuntimesShareNothing(t *testing.T) {
	counter := func(h vdom.Hooks, _ vdom.Props) *vdom.VNode {
		n, set := h.UseState(0)
		return vdom.Button(
			vdom.OnClick(func(vdom.Event) { set(n.(int) + 1) }),
			vdom.Textf("%v", n),
		)
	}

	domA, domB := memdom.New(), memdom.New()
	rtA, rtB := New(domA), New(domB)
	if err := rtA.Setup(vdom.Comp(counter, nil), domA.Root); err != nil {
		t.Fatal(err)
	}
	if err := rtB.Setup(vdom.Comp(counter, nil), domB.Root); err != nil {
		t.Fatal(err)
	}
	rtA.Settle()
	rtB.Settle()

	domA.Root.FindByTag("button").Dispatch(vdom.Event{Type: "click"})
	rtA.Settle()
	rtB.Settle()

	if got := domA.Root.TextContent(); got != "1" {
		t.Errorf("runtime A TextContent = %q, want 1", got)
	}
	if got := domB.Root.TextContent(); got != "0" {
		t.Errorf("runtime B TextContent = %q, want 0 (isolated state)", got)
	}
}
