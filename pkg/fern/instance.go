package fern

import (
	"github.com/vango-dev/fern/pkg/host"
	"github.com/vango-dev/fern/pkg/vdom"
)

// Instance is one realized position in the committed tree. Instances are
// mutable and persistent: the reconciler updates them in place across passes
// and only replaces one when a type or key mismatch forces an unmount and
// remount.
type Instance struct {
	// Kind mirrors the committed VNode's kind.
	Kind vdom.VKind

	// Dom is the realized host node. Non-nil once mounted for text and
	// element instances; always nil for fragments and components, whose
	// footprint is the host nodes reachable through Children.
	Dom host.Node

	// Node is the VNode last committed at this position.
	Node *vdom.VNode

	// Children holds the realized children in order. A nil entry marks a
	// positionally-absent child, preserved to keep index alignment during
	// child diffing.
	Children []*Instance

	// Key is the committed reconciliation key, "" if absent.
	Key string

	// Path is the identity string assigned to this position; hook slots for
	// component instances are stored under it.
	Path string
}

// hostNodes appends the instance's effective host-node footprint to out in
// document order: the own node for text and element instances, the union of
// child footprints for fragments and components.
func (in *Instance) hostNodes(out []host.Node) []host.Node {
	if in == nil {
		return out
	}
	if in.Dom != nil {
		return append(out, in.Dom)
	}
	for _, c := range in.Children {
		out = c.hostNodes(out)
	}
	return out
}

// firstHostNode returns the first host node reachable from the instance, or
// nil. Used to compute insertion anchors.
func (in *Instance) firstHostNode() host.Node {
	if in == nil {
		return nil
	}
	if in.Dom != nil {
		return in.Dom
	}
	for _, c := range in.Children {
		if dom := c.firstHostNode(); dom != nil {
			return dom
		}
	}
	return nil
}

// anchorAfter returns the first host node among children[from:]. During a
// left-to-right child walk these are exactly the not-yet-superseded old
// siblings, so a fresh mid-list mount inserts before this node to preserve
// document order.
func anchorAfter(children []*Instance, from int) host.Node {
	for i := from; i < len(children); i++ {
		if dom := children[i].firstHostNode(); dom != nil {
			return dom
		}
	}
	return nil
}
