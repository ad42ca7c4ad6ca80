package vdom

import "testing"

func TestElBasic(t *testing.T) {
	node := El("div", ID("root"), Class("box", "wide"), Text("hi"))

	if node.Kind != KindElement || node.Tag != "div" {
		t.Fatalf("node = %s %q, want Element div", node.Kind, node.Tag)
	}
	if got := node.Props["id"]; got != "root" {
		t.Errorf("id prop = %v, want root", got)
	}
	if got := node.Props["className"]; got != "box wide" {
		t.Errorf("className prop = %v, want %q", got, "box wide")
	}
	if len(node.Children) != 1 || node.Children[0].Text != "hi" {
		t.Errorf("children = %v, want single text child", node.Children)
	}
}

func TestElKeyLifted(t *testing.T) {
	node := El("li", Key("item-1"), Text("x"))
	if node.Key != "item-1" {
		t.Errorf("Key = %q, want item-1", node.Key)
	}
	if _, ok := node.Props["key"]; ok {
		t.Error("key must not remain in Props")
	}
}

func TestElNormalizesPrimitives(t *testing.T) {
	node := El("p", "count: ", 42)
	if len(node.Children) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(node.Children))
	}
	if node.Children[1].Kind != KindText || node.Children[1].Text != "42" {
		t.Errorf("children[1] = %+v, want text 42", node.Children[1])
	}
}

func TestElFiltersEmptyChildren(t *testing.T) {
	var missing *VNode
	node := El("div", nil, false, true, "", missing, Text("keep"))
	if len(node.Children) != 1 {
		t.Fatalf("len(children) = %d, want 1", len(node.Children))
	}
	if node.Children[0].Text != "keep" {
		t.Errorf("children[0].Text = %q, want keep", node.Children[0].Text)
	}
}

func TestElFlattensSlices(t *testing.T) {
	items := []*VNode{Li("a"), nil, Li("b")}
	node := Ul(items)
	if len(node.Children) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(node.Children))
	}
	for i, tag := range []string{"li", "li"} {
		if node.Children[i].Tag != tag {
			t.Errorf("children[%d].Tag = %q, want %q", i, node.Children[i].Tag, tag)
		}
	}
}

func TestFragment(t *testing.T) {
	node := Fragment(Text("a"), nil, Div())
	if node.Kind != KindFragment {
		t.Fatalf("Kind = %s, want Fragment", node.Kind)
	}
	if len(node.Children) != 2 {
		t.Errorf("len(children) = %d, want 2", len(node.Children))
	}
}

func TestCompLiftsKey(t *testing.T) {
	node := Comp(namedComponent, Props{"key": "k1", "label": "x"})
	if node.Key != "k1" {
		t.Errorf("Key = %q, want k1", node.Key)
	}
}

func TestIsEventProp(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"onclick", true},
		{"onClick", true},
		{"ONLOAD", true},
		{"on", false},
		{"once", true}, // prefix-based, same as the reconciler's view
		{"className", false},
	}
	for _, tt := range tests {
		if got := IsEventProp(tt.key); got != tt.want {
			t.Errorf("IsEventProp(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
