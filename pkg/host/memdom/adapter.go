package memdom

import (
	"sync"

	"github.com/vango-dev/fern/pkg/host"
	"github.com/vango-dev/fern/pkg/vdom"
)

// OpKind identifies a recorded host mutation.
type OpKind uint8

const (
	OpCreateElement OpKind = iota + 1
	OpCreateText
	OpSetText
	OpSetProp
	OpRemoveProp
	OpInsert
	OpRemove
)

// String returns the string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpSetText:
		return "SetText"
	case OpSetProp:
		return "SetProp"
	case OpRemoveProp:
		return "RemoveProp"
	case OpInsert:
		return "Insert"
	case OpRemove:
		return "Remove"
	default:
		return "Unknown"
	}
}

// Op is one recorded host mutation.
type Op struct {
	Kind OpKind

	// Target describes the mutated node: tag for elements, "#text" for text
	// nodes.
	Target string

	// Detail carries the prop key for SetProp/RemoveProp and the new content
	// for SetText/CreateText.
	Detail string
}

// DOM is an in-memory host tree implementing host.Adapter.
//
// Every mutation is appended to an op log so callers can assert exactly what
// the reconciler did. The log guards itself with a mutex so a dev-server
// snapshot read cannot race a render pass, but the tree itself follows the
// runtime's single-threaded model.
type DOM struct {
	// Root is the container element render roots attach to.
	Root *Element

	mu  sync.Mutex
	ops []Op
}

// New creates an empty DOM with a "body" container element.
func New() *DOM {
	return &DOM{Root: &Element{Tag: "body", Props: make(vdom.Props)}}
}

func (d *DOM) record(op Op) {
	d.mu.Lock()
	d.ops = append(d.ops, op)
	d.mu.Unlock()
}

// Ops returns a copy of the op log.
func (d *DOM) Ops() []Op {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Op, len(d.ops))
	copy(out, d.ops)
	return out
}

// Count returns how many logged ops have the given kind.
func (d *DOM) Count(kind OpKind) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, op := range d.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// ResetOps clears the op log without touching the tree.
func (d *DOM) ResetOps() {
	d.mu.Lock()
	d.ops = nil
	d.mu.Unlock()
}

// CreateTextNode implements host.Adapter.
func (d *DOM) CreateTextNode(text string) host.Node {
	d.record(Op{Kind: OpCreateText, Target: "#text", Detail: text})
	return &Text{Data: text}
}

// CreateElement implements host.Adapter.
func (d *DOM) CreateElement(tag string) host.Node {
	d.record(Op{Kind: OpCreateElement, Target: tag})
	return &Element{Tag: tag, Props: make(vdom.Props)}
}

// SetText implements host.Adapter.
func (d *DOM) SetText(node host.Node, text string) {
	t := node.(*Text)
	t.Data = text
	d.record(Op{Kind: OpSetText, Target: "#text", Detail: text})
}

// SetProps implements host.Adapter.
func (d *DOM) SetProps(el host.Node, props vdom.Props) {
	e := el.(*Element)
	for key, val := range props {
		d.setProp(e, key, val)
	}
}

// DiffProps implements host.Adapter. Props present only in prev are removed;
// every prop in next is applied.
func (d *DOM) DiffProps(el host.Node, prev, next vdom.Props) {
	e := el.(*Element)
	for key := range prev {
		if _, ok := next[key]; !ok {
			delete(e.Props, key)
			d.record(Op{Kind: OpRemoveProp, Target: e.Tag, Detail: key})
		}
	}
	for key, val := range next {
		d.setProp(e, key, val)
	}
}

func (d *DOM) setProp(e *Element, key string, val any) {
	e.Props[key] = val
	d.record(Op{Kind: OpSetProp, Target: e.Tag, Detail: key})
}

// InsertBefore implements host.Adapter. A nil anchor appends.
func (d *DOM) InsertBefore(parent, child, anchor host.Node) {
	p := parent.(*Element)
	var a Node
	if anchor != nil {
		a = anchor.(Node)
	}
	p.insertBefore(child.(Node), a)
	d.record(Op{Kind: OpInsert, Target: nodeTarget(child)})
}

// RemoveChild implements host.Adapter.
func (d *DOM) RemoveChild(parent, child host.Node) {
	parent.(*Element).remove(child.(Node))
	d.record(Op{Kind: OpRemove, Target: nodeTarget(child)})
}

func nodeTarget(n host.Node) string {
	switch v := n.(type) {
	case *Element:
		return v.Tag
	case *Text:
		return "#text"
	default:
		return "Unknown"
	}
}

var _ host.Adapter = (*DOM)(nil)
