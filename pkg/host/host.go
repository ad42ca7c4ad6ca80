// Package host defines the adapter contract between the fern runtime and a
// concrete output tree. The runtime never touches host nodes directly; every
// structural or property change goes through an Adapter, so any tree-shaped
// output medium (an in-memory DOM, a terminal buffer, a remote patch stream)
// can back a render root.
package host

import "github.com/vango-dev/fern/pkg/vdom"

// Node is an opaque handle to a realized output node. Only the Adapter that
// created a Node may interpret it.
type Node any

// Adapter is the capability set the runtime requires of a host tree.
//
// Prop mappings handed to SetProps and DiffProps follow the vdom contract:
// "on"-prefixed keys carry event handlers, "className" the class string,
// "style" a property→value mapping, "data-*" string data attributes, and
// everything else is assigned as a generic property.
//
// Adapter errors are not handled by the runtime; implementations that can
// fail should surface failures to their own caller (panic, callback, or
// internal error state), not swallow them.
type Adapter interface {
	// CreateTextNode creates a detached text node.
	CreateTextNode(text string) Node

	// CreateElement creates a detached element node for the given tag.
	CreateElement(tag string) Node

	// SetText replaces the text content of a text node in place.
	SetText(node Node, text string)

	// SetProps applies every prop in the mapping to an element.
	SetProps(el Node, props vdom.Props)

	// DiffProps updates an element from prev to next: props present only in
	// prev are removed, every prop in next is applied.
	DiffProps(el Node, prev, next vdom.Props)

	// InsertBefore inserts child into parent before anchor. A nil anchor
	// appends. If child is already attached it is moved.
	InsertBefore(parent, child, anchor Node)

	// RemoveChild detaches child from parent.
	RemoveChild(parent, child Node)
}
