// Package vdom defines the virtual tree model consumed by the fern runtime:
// the VNode value type, its kind discriminator, and the builder functions
// that normalize loosely-typed call forms into clean trees.
//
// VNodes are immutable descriptions constructed fresh on every render pass.
// The runtime diffs them against the previously committed instance tree; the
// vdom package itself performs no host mutation.
package vdom
