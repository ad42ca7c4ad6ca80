package vdom

import (
	"reflect"
	"runtime"
	"strings"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindText      VKind = iota // Plain text node
	KindElement                // Host element (<div>, <button>, etc.)
	KindFragment               // Grouping without a wrapper node
	KindComponent              // Component function
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Props holds attributes and event handlers.
type Props map[string]any

// EffectFunc is an effect body. Its return value, if non-nil, is the cleanup
// that runs before the effect's next execution or when the owning component
// unmounts.
type EffectFunc func() func()

// Hooks is the per-component state surface handed to a Component while it
// renders. The concrete implementation lives in the fern runtime; components
// only ever see this interface.
//
// Calls must follow the rules of hooks: the same number of hook calls in the
// same order on every invocation of a given component. The store indexes
// slots by call order and does not detect violations; a mismatched call
// silently reads the wrong slot.
type Hooks interface {
	// UseState returns the current value of the next state slot and a setter.
	// On first call the slot is initialized from initial; if initial is a
	// func() any it is invoked lazily to produce the value.
	//
	// The setter accepts either a literal value or a func(prev any) any
	// updater. Setting a value equal (by identity/primitive equality) to the
	// current one is a no-op and schedules nothing.
	UseState(initial any) (any, func(any))

	// UseEffect schedules fn to run after commit when deps changed since the
	// previous invocation. A nil deps slice means "no dependency list": the
	// effect runs after every pass. An empty non-nil slice runs the effect
	// once on mount.
	UseEffect(fn EffectFunc, deps []any)
}

// Component is a component function: invoked with its hook surface and props,
// it returns a single child VNode (or nil to render nothing).
type Component func(h Hooks, props Props) *VNode

// VNode is an immutable description of a desired node.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (KindElement only)
	Key      string    // Reconciliation key, "" if absent
	Props    Props     // Attributes and event handlers
	Children []*VNode  // Child nodes (KindElement, KindFragment)
	Text     string    // Text content (KindText only)
	Comp     Component // Component function (KindComponent only)
}

// TypeName returns the name used for positional identity: "#text" for text
// nodes, the tag for elements, "#fragment" for fragments, and the component
// function's short name for components.
func (v *VNode) TypeName() string {
	switch v.Kind {
	case KindText:
		return "#text"
	case KindElement:
		return v.Tag
	case KindFragment:
		return "#fragment"
	case KindComponent:
		return funcName(v.Comp)
	default:
		return "#unknown"
	}
}

// SameType reports whether two VNodes have the same type for reconciliation
// purposes: same kind, and for elements the same tag, for components the same
// function.
func SameType(a, b *VNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindElement:
		return a.Tag == b.Tag
	case KindComponent:
		return reflect.ValueOf(a.Comp).Pointer() == reflect.ValueOf(b.Comp).Pointer()
	default:
		return true
	}
}

// funcName resolves a component function's short name, e.g. "Counter" for
// github.com/acme/app.Counter. Anonymous functions get their compiler name
// (e.g. "main.func1"), which is still stable within a build.
func funcName(fn Component) string {
	if fn == nil {
		return "#nil"
	}
	pc := reflect.ValueOf(fn).Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "#func"
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
