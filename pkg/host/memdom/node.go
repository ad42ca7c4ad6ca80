// Package memdom is an in-memory reference implementation of the host
// adapter. It realizes render output as a plain node tree, records every
// mutation in an op log, and serializes subtrees to HTML. It backs the
// package tests and the dev server preview.
package memdom

import "github.com/vango-dev/fern/pkg/vdom"

// Node is a realized memdom node: either *Element or *Text.
type Node interface {
	// Parent returns the containing element, or nil while detached.
	Parent() *Element
	setParent(p *Element)
}

// Text is a text node.
type Text struct {
	parent *Element

	// Data is the current text content.
	Data string
}

// Parent returns the containing element, or nil while detached.
func (t *Text) Parent() *Element { return t.parent }

func (t *Text) setParent(p *Element) { t.parent = p }

// Element is an element node.
type Element struct {
	parent *Element

	// Tag is the element's tag name.
	Tag string

	// Props holds the currently applied props, event handlers included.
	Props vdom.Props

	// Children are the attached child nodes in document order.
	Children []Node
}

// Parent returns the containing element, or nil while detached.
func (e *Element) Parent() *Element { return e.parent }

func (e *Element) setParent(p *Element) { e.parent = p }

// insertBefore attaches child before anchor. A nil anchor appends. If the
// child is already attached somewhere it is detached first.
func (e *Element) insertBefore(child, anchor Node) {
	if p := child.Parent(); p != nil {
		p.remove(child)
	}
	if anchor == nil {
		e.Children = append(e.Children, child)
	} else {
		idx := len(e.Children)
		for i, c := range e.Children {
			if c == anchor {
				idx = i
				break
			}
		}
		e.Children = append(e.Children, nil)
		copy(e.Children[idx+1:], e.Children[idx:])
		e.Children[idx] = child
	}
	child.setParent(e)
}

// remove detaches child. Removing a node that is not a child is a no-op.
func (e *Element) remove(child Node) {
	for i, c := range e.Children {
		if c == child {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			child.setParent(nil)
			return
		}
	}
}

// Dispatch invokes the element's handler for the given event, if one is
// registered under the "on" + event.Type prop. It reports whether a handler
// ran. Tests and the dev server use this to drive interactions.
func (e *Element) Dispatch(event vdom.Event) bool {
	if e.Props == nil {
		return false
	}
	handler, ok := e.Props["on"+event.Type].(func(vdom.Event))
	if !ok {
		return false
	}
	handler(event)
	return true
}

// Find returns the first element in the subtree (depth-first, self included)
// for which match returns true, or nil.
func (e *Element) Find(match func(*Element) bool) *Element {
	if match(e) {
		return e
	}
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			if found := el.Find(match); found != nil {
				return found
			}
		}
	}
	return nil
}

// FindByTag returns the first element with the given tag in the subtree.
func (e *Element) FindByTag(tag string) *Element {
	return e.Find(func(el *Element) bool { return el.Tag == tag })
}

// TextContent returns the concatenated text of the subtree in document order.
func (e *Element) TextContent() string {
	var out string
	for _, c := range e.Children {
		switch n := c.(type) {
		case *Text:
			out += n.Data
		case *Element:
			out += n.TextContent()
		}
	}
	return out
}
