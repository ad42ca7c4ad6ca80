package fern

import (
	"github.com/vango-dev/fern/pkg/host"
	"github.com/vango-dev/fern/pkg/vdom"
)

// reconcile walks next against the committed instance at the same position
// and realizes the difference through the host adapter. It returns the
// instance now committed at the position, nil when next is nil.
//
// The adapter only ever sees "insert before this anchor" or "append"; all
// ordering decisions happen here by walking the instance tree for the first
// concrete host node.
func (r *Runtime) reconcile(parentDom host.Node, prev *Instance, next *vdom.VNode, path string) *Instance {
	return r.reconcileAt(parentDom, prev, next, path, nil)
}

func (r *Runtime) reconcileAt(parentDom host.Node, prev *Instance, next *vdom.VNode, path string, anchor host.Node) *Instance {
	switch {
	case next == nil:
		// Conditional rendering: the position is now empty.
		if prev != nil {
			r.unmount(parentDom, prev)
		}
		return nil

	case prev == nil:
		return r.mount(parentDom, next, path, anchor)

	case !vdom.SameType(prev.Node, next) || prev.Key != next.Key:
		// No in-place adaptation across type or key changes.
		r.unmount(parentDom, prev)
		return r.mount(parentDom, next, path, anchor)

	default:
		return r.update(parentDom, prev, next, path)
	}
}

// mount realizes a VNode with no previous instance. New host nodes insert
// before anchor, or append when anchor is nil.
func (r *Runtime) mount(parentDom host.Node, v *vdom.VNode, path string, anchor host.Node) *Instance {
	inst := &Instance{Kind: v.Kind, Node: v, Key: v.Key, Path: path}

	switch v.Kind {
	case vdom.KindText:
		dom := r.adapter.CreateTextNode(v.Text)
		r.adapter.InsertBefore(parentDom, dom, anchor)
		inst.Dom = dom

	case vdom.KindElement:
		dom := r.adapter.CreateElement(v.Tag)
		if len(v.Props) > 0 {
			r.adapter.SetProps(dom, v.Props)
		}
		inst.Dom = dom
		inst.Children = r.mountChildren(dom, v.Children, path)
		r.adapter.InsertBefore(parentDom, dom, anchor)

	case vdom.KindFragment:
		// No own host node: children realize against the same parent. Each
		// child inserts before the same anchor, preserving document order.
		inst.Children = r.mountChildrenAt(parentDom, v.Children, path, anchor)

	case vdom.KindComponent:
		child := r.invokeComponent(v, path)
		// The component's child keeps the component's own identity path; a
		// component introduces no path segment beyond its identity.
		inst.Children = []*Instance{r.reconcileAt(parentDom, nil, child, path, anchor)}
	}

	if r.rec != nil {
		r.rec.Mounts.Inc()
	}
	return inst
}

func (r *Runtime) mountChildren(parentDom host.Node, children []*vdom.VNode, path string) []*Instance {
	return r.mountChildrenAt(parentDom, children, path, nil)
}

func (r *Runtime) mountChildrenAt(parentDom host.Node, children []*vdom.VNode, path string, anchor host.Node) []*Instance {
	out := make([]*Instance, 0, len(children))
	for i, c := range children {
		if c == nil || vdom.IsEmpty(c) {
			// Keep index alignment for later array-style diffing.
			out = append(out, nil)
			continue
		}
		childPath := childIdentity(path, c, i, children)
		out = append(out, r.mount(parentDom, c, childPath, anchor))
	}
	return out
}

// unmount removes every host node reachable from the instance. Hook slots
// for unmounted components are reclaimed by store GC at the end of the pass,
// not here.
func (r *Runtime) unmount(parentDom host.Node, inst *Instance) {
	for _, dom := range inst.hostNodes(nil) {
		r.adapter.RemoveChild(parentDom, dom)
	}
	if r.rec != nil {
		r.rec.Unmounts.Inc()
	}
}

// update mutates the committed instance in place; prev and next are known to
// agree on type and key.
func (r *Runtime) update(parentDom host.Node, inst *Instance, next *vdom.VNode, path string) *Instance {
	switch inst.Kind {
	case vdom.KindText:
		if inst.Node.Text != next.Text {
			r.adapter.SetText(inst.Dom, next.Text)
		}

	case vdom.KindElement:
		// Props present only in the old node are cleared by the adapter.
		r.adapter.DiffProps(inst.Dom, inst.Node.Props, next.Props)
		r.reconcileChildren(inst.Dom, inst, next.Children, path)

	case vdom.KindFragment:
		r.reconcileChildren(parentDom, inst, next.Children, path)

	case vdom.KindComponent:
		child := r.invokeComponent(next, path)
		var prevChild *Instance
		if len(inst.Children) > 0 {
			prevChild = inst.Children[0]
		}
		inst.Children = []*Instance{r.reconcile(parentDom, prevChild, child, path)}
	}

	inst.Node = next
	inst.Path = path
	if r.rec != nil {
		r.rec.Updates.Inc()
	}
	return inst
}

// reconcileChildren pairs old and new children by index up to
// max(prevLen, nextLen). There is no key-aware list matching: inserting or
// removing a middle child of an unkeyed list shifts every following sibling
// onto a different identity and updates them all in place. This is a
// deliberate simplification; keys opt a child out of positional identity but
// never reorder the pairing.
func (r *Runtime) reconcileChildren(parentDom host.Node, inst *Instance, next []*vdom.VNode, path string) {
	prev := inst.Children

	maxLen := len(prev)
	if len(next) > maxLen {
		maxLen = len(next)
	}

	out := make([]*Instance, 0, len(next))
	for i := 0; i < maxLen; i++ {
		var prevChild *Instance
		if i < len(prev) {
			prevChild = prev[i]
		}
		var nextChild *vdom.VNode
		if i < len(next) && next[i] != nil && !vdom.IsEmpty(next[i]) {
			nextChild = next[i]
		}

		if nextChild == nil {
			if prevChild != nil {
				r.unmount(parentDom, prevChild)
			}
			if i < len(next) {
				out = append(out, nil)
			}
			continue
		}

		childPath := childIdentity(path, nextChild, i, next)

		// A fresh mount (or forced remount) mid-list inserts before the
		// first host node of the not-yet-superseded old siblings.
		var anchor host.Node
		if prevChild == nil || !vdom.SameType(prevChild.Node, nextChild) || prevChild.Key != nextChild.Key {
			anchor = anchorAfter(prev, i+1)
		}

		out = append(out, r.reconcileAt(parentDom, prevChild, nextChild, childPath, anchor))
	}

	inst.Children = out
}

// invokeComponent runs a component function: the identity path goes onto the
// call stack so hook calls resolve to this component's slots, the path is
// marked visited for GC, and the slot cursor resets to zero.
func (r *Runtime) invokeComponent(v *vdom.VNode, path string) *vdom.VNode {
	r.stack = append(r.stack, path)
	r.store.enter(path)

	child := v.Comp(r, v.Props)

	r.stack = r.stack[:len(r.stack)-1]
	return child
}
