package fern

import (
	"reflect"

	"github.com/vango-dev/fern/pkg/vdom"
)

// slotKind identifies the kind of hook slot.
type slotKind uint8

const (
	slotState slotKind = iota + 1
	slotEffect
)

// slot is one persisted piece of per-identity hook state, indexed by call
// order within the owning component.
type slot struct {
	kind slotKind

	// State slots.
	value any

	// Effect slots.
	deps    []any          // last-run dependency values
	hasDeps bool           // whether a dependency list was supplied last run
	cleanup func()         // cleanup from the last run, nil if none
	fn      vdom.EffectFunc
}

// slotList is the ordered slot sequence for one identity path, with the
// cursor that resets to zero each time the owning component is invoked.
type slotList struct {
	slots  []*slot
	cursor int
}

// next advances the cursor and returns the slot at the previous position,
// creating it when the component is mounting. The returned bool reports
// whether the slot is fresh.
//
// The store trusts the rules of hooks: it does not verify that the slot at
// the cursor has the requested kind. A component that varies its hook calls
// between renders silently reads and writes the wrong slot.
func (l *slotList) next(kind slotKind) (*slot, bool) {
	idx := l.cursor
	l.cursor++
	if idx < len(l.slots) {
		return l.slots[idx], false
	}
	s := &slot{kind: kind}
	l.slots = append(l.slots, s)
	return s, true
}

// hookStore maps identity paths to slot lists, process-wide per Runtime.
type hookStore struct {
	lists   map[string]*slotList
	visited map[string]struct{}
}

func newHookStore() *hookStore {
	return &hookStore{
		lists:   make(map[string]*slotList),
		visited: make(map[string]struct{}),
	}
}

// beginPass clears the visited set ahead of a render pass.
func (s *hookStore) beginPass() {
	clear(s.visited)
}

// enter marks a component identity as visited for the current pass, ensures
// its slot list exists, and resets its cursor.
func (s *hookStore) enter(path string) *slotList {
	s.visited[path] = struct{}{}
	l, ok := s.lists[path]
	if !ok {
		l = &slotList{}
		s.lists[path] = l
	}
	l.cursor = 0
	return l
}

// list returns the slot list for a path previously entered this pass.
func (s *hookStore) list(path string) *slotList {
	return s.lists[path]
}

// gc discards the slot lists of every path not visited during the pass that
// just completed (components that were unmounted or whose identity no longer
// appears) and returns how many lists were reclaimed. Stored effect cleanups
// are discarded with their slots, not run.
func (s *hookStore) gc() int {
	n := 0
	for path := range s.lists {
		if _, ok := s.visited[path]; !ok {
			delete(s.lists, path)
			n++
		}
	}
	return n
}

// size returns the number of live slot lists.
func (s *hookStore) size() int {
	return len(s.lists)
}

// UseState implements vdom.Hooks. See the interface for the contract.
func (r *Runtime) UseState(initial any) (any, func(any)) {
	_, list := r.currentHookList()
	s, fresh := list.next(slotState)
	if fresh {
		if produce, ok := initial.(func() any); ok {
			s.value = produce()
		} else {
			s.value = initial
		}
	}

	// The captured value pins updater semantics to this call site: an
	// updater passed to the setter sees the value as of this render, not a
	// live-refreshed one.
	captured := s.value
	setter := func(v any) {
		if update, ok := v.(func(any) any); ok {
			v = update(captured)
		}
		if sameValue(s.value, v) {
			return
		}
		s.value = v
		r.renderSched.request()
	}
	return s.value, setter
}

// UseEffect implements vdom.Hooks. See the interface for the contract.
func (r *Runtime) UseEffect(fn vdom.EffectFunc, deps []any) {
	path, list := r.currentHookList()
	s, fresh := list.next(slotEffect)
	cursor := list.cursor - 1

	run := fresh || deps == nil || !s.hasDeps || !shallowEqual(s.deps, deps)
	if !run {
		// Dependencies unchanged: carry the previous record forward.
		return
	}

	if s.cleanup != nil {
		cleanup := s.cleanup
		s.cleanup = nil
		r.effects.push(effectEntry{kind: entryCleanup, path: path, cursor: cursor, run: cleanup})
	}

	s.fn = fn
	s.deps = deps
	s.hasDeps = deps != nil
	r.effects.push(effectEntry{kind: entryEffect, path: path, cursor: cursor, run: func() {
		if cleanup := fn(); cleanup != nil {
			s.cleanup = cleanup
		}
	}})
}

// currentHookList resolves the hook slot list for the component currently on
// the call stack. Hook calls with no active component fail loudly.
func (r *Runtime) currentHookList() (string, *slotList) {
	if len(r.stack) == 0 {
		panic(errHookOutsideRender)
	}
	path := r.stack[len(r.stack)-1]
	return path, r.store.list(path)
}

// sameValue is the setter's change detector: identity for reference types,
// value equality for primitives and other comparable types. It never
// deep-compares.
func sameValue(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !ra.IsValid() || !rb.IsValid() || ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Len() == rb.Len() && (ra.Len() == 0 || ra.Pointer() == rb.Pointer())
	}
	if ra.Type().Comparable() {
		return a == b
	}
	return false
}

// shallowEqual compares dependency lists elementwise with sameValue.
func shallowEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameValue(a[i], b[i]) {
			return false
		}
	}
	return true
}

// State is the typed convenience wrapper over Hooks.UseState.
//
//	count, setCount := fern.State(h, 0)
//	setCount(count + 1)
func State[T any](h vdom.Hooks, initial T) (T, func(T)) {
	v, set := h.UseState(initial)
	return v.(T), func(next T) { set(next) }
}

// Reduce returns the typed state value and a setter that applies an update
// function to the value captured at this call site.
//
//	count, bump := fern.Reduce(h, 0)
//	bump(func(n int) int { return n + 1 })
func Reduce[T any](h vdom.Hooks, initial T) (T, func(func(T) T)) {
	v, set := h.UseState(initial)
	return v.(T), func(update func(T) T) {
		set(func(prev any) any { return update(prev.(T)) })
	}
}

// Effect schedules fn to run after every commit. Equivalent to
// h.UseEffect(fn, nil).
func Effect(h vdom.Hooks, fn vdom.EffectFunc) {
	h.UseEffect(fn, nil)
}

// OnMount schedules fn to run once, after the component's first commit. With
// an empty dependency list the slot never re-runs, so a returned cleanup is
// only ever discarded by slot GC.
func OnMount(h vdom.Hooks, fn vdom.EffectFunc) {
	h.UseEffect(fn, []any{})
}
