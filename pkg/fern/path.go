package fern

import (
	"strconv"

	"github.com/vango-dev/fern/pkg/vdom"
)

// childIdentity derives a child's identity path from its parent's path.
//
// A child with an explicit key gets parent + "/" + key, independent of
// position. Two siblings carrying the same explicit key therefore collapse
// onto one identity (last one wins) and corrupt each other's hook state; the
// scheme does not detect the collision.
//
// A keyless child gets parent + "/" + typeName + n, where n counts earlier
// keyless siblings of the same type. Positional identity shifts when
// same-type siblings are inserted or removed ahead of a child, which is why
// list items should carry keys.
func childIdentity(parent string, child *vdom.VNode, index int, siblings []*vdom.VNode) string {
	if child.Key != "" {
		return parent + "/" + child.Key
	}
	name := child.TypeName()
	occurrence := 0
	for i := 0; i < index && i < len(siblings); i++ {
		s := siblings[i]
		if s != nil && s.Key == "" && s.TypeName() == name {
			occurrence++
		}
	}
	return parent + "/" + name + strconv.Itoa(occurrence)
}

// rootIdentity is the identity path of the root VNode.
func rootIdentity(root *vdom.VNode) string {
	return childIdentity("", root, 0, []*vdom.VNode{root})
}
