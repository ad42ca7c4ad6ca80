package vdom

import (
	"fmt"
	"strconv"
)

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Comp creates a component node from a component function and its props.
// The reserved "key" prop, if present, is lifted into the node's Key.
func Comp(fn Component, props Props) *VNode {
	node := &VNode{
		Kind:  KindComponent,
		Comp:  fn,
		Props: props,
	}
	if props != nil {
		if key, ok := props["key"].(string); ok {
			node.Key = key
		}
	}
	return node
}

// El creates an element node with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, Props, *VNode, []*VNode, string, int,
// or Component. Empty values (nil, booleans, empty strings) are filtered out
// before they reach the reconciler.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes and children)
			continue

		case Attr:
			node.setAttr(v)

		case []Attr:
			for _, attr := range v {
				node.setAttr(attr)
			}

		case Props:
			for key, val := range v {
				node.setAttr(Attr{Key: key, Value: val})
			}

		default:
			node.Children = appendChild(node.Children, arg)
		}
	}

	return node
}

// Fragment groups children without a wrapper node.
func Fragment(children ...any) *VNode {
	node := &VNode{
		Kind:     KindFragment,
		Children: make([]*VNode, 0),
	}
	for _, child := range children {
		node.Children = appendChild(node.Children, child)
	}
	return node
}

// setAttr applies a single attribute, lifting the reserved "key" prop into
// the node's Key.
func (v *VNode) setAttr(attr Attr) {
	if attr.Key == "" {
		return
	}
	if attr.Key == "key" {
		if s, ok := attr.Value.(string); ok {
			v.Key = s
		}
		return
	}
	if v.Props == nil {
		v.Props = make(Props)
	}
	v.Props[attr.Key] = attr.Value
}

// appendChild normalizes a child argument and appends it unless it is empty.
// Strings and numbers become text nodes; nested slices are flattened;
// components are wrapped; empty values are dropped.
func appendChild(children []*VNode, child any) []*VNode {
	if IsEmpty(child) {
		return children
	}
	switch v := child.(type) {
	case *VNode:
		return append(children, v)
	case []*VNode:
		for _, c := range v {
			if !IsEmpty(c) {
				children = append(children, c)
			}
		}
		return children
	case []any:
		for _, c := range v {
			children = appendChild(children, c)
		}
		return children
	case string:
		return append(children, Text(v))
	case int:
		return append(children, Text(strconv.Itoa(v)))
	case int64:
		return append(children, Text(strconv.FormatInt(v, 10)))
	case float64:
		return append(children, Text(strconv.FormatFloat(v, 'f', -1, 64)))
	case Component:
		return append(children, Comp(v, nil))
	default:
		return append(children, Textf("%v", v))
	}
}

// IsEmpty reports whether a value is an "empty" child: nil, a boolean, an
// empty string, or a nil *VNode. Empty children are filtered out by the
// builder and never reach the reconciler.
func IsEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return true
	case string:
		return val == ""
	case *VNode:
		return val == nil
	default:
		return false
	}
}
