package fern

import (
	"testing"

	"github.com/vango-dev/fern/pkg/vdom"
)

func TestChildIdentityKeyed(t *testing.T) {
	child := vdom.El("li", vdom.Key("item-7"))
	got := childIdentity("/root", child, 3, []*vdom.VNode{nil, nil, nil, child})
	if got != "/root/item-7" {
		t.Errorf("keyed identity = %q, want /root/item-7", got)
	}
}

func TestChildIdentityPositional(t *testing.T) {
	siblings := []*vdom.VNode{
		vdom.Div(),
		vdom.Span(),
		vdom.Div(),
		vdom.Text("x"),
		vdom.Div(),
	}

	tests := []struct {
		index int
		want  string
	}{
		{0, "/p/div0"},
		{1, "/p/span0"},
		{2, "/p/div1"},
		{3, "/p/#text0"},
		{4, "/p/div2"},
	}
	for _, tt := range tests {
		if got := childIdentity("/p", siblings[tt.index], tt.index, siblings); got != tt.want {
			t.Errorf("index %d: identity = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestChildIdentityKeyedSiblingsDoNotCount(t *testing.T) {
	siblings := []*vdom.VNode{
		vdom.El("li", vdom.Key("a")),
		vdom.Li(),
		vdom.Li(),
	}
	// The keyed li at index 0 is not a positional occurrence.
	if got := childIdentity("/ul", siblings[1], 1, siblings); got != "/ul/li0" {
		t.Errorf("identity = %q, want /ul/li0", got)
	}
	if got := childIdentity("/ul", siblings[2], 2, siblings); got != "/ul/li1" {
		t.Errorf("identity = %q, want /ul/li1", got)
	}
}

// Duplicate explicit keys collapse onto one identity. Last one wins; the
// collision is not detected.
func TestChildIdentityDuplicateKeysCollide(t *testing.T) {
	a := vdom.El("li", vdom.Key("dup"))
	b := vdom.El("span", vdom.Key("dup"))
	siblings := []*vdom.VNode{a, b}

	pa := childIdentity("/ul", a, 0, siblings)
	pb := childIdentity("/ul", b, 1, siblings)
	if pa != pb {
		t.Errorf("duplicate keys produced distinct identities %q and %q", pa, pb)
	}
}

func TestRootIdentity(t *testing.T) {
	if got := rootIdentity(vdom.Div()); got != "/div0" {
		t.Errorf("root identity = %q, want /div0", got)
	}
}
