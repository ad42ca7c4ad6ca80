package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the className prop, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("className", strings.Join(classes, " ")) }

// ClassIf sets the className prop only when the condition holds.
func ClassIf(condition bool, class string) Attr {
	if !condition {
		return Attr{}
	}
	return attr("className", class)
}

// Style sets the style prop from a property→value mapping.
func Style(style map[string]string) Attr { return attr("style", style) }

// Key sets the reconciliation key.
func Key(key string) Attr { return attr("key", key) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123".
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Value sets the value prop (inputs, options).
func Value(value string) Attr { return attr("value", value) }

// Placeholder sets the placeholder prop.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Type sets the type prop (inputs, buttons).
func Type(t string) Attr { return attr("type", t) }

// Href sets the href prop.
func Href(url string) Attr { return attr("href", url) }

// Title sets the title prop.
func Title(text string) Attr { return attr("title", text) }

// Disabled sets the disabled prop.
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }

// Event handlers

// On registers an event handler under the "on" + event prop key.
// Example: On("click", fn) → onclick prop.
func On(event string, handler func(Event)) Attr {
	return attr("on"+event, handler)
}

// OnClick registers a click handler.
func OnClick(handler func(Event)) Attr { return On("click", handler) }

// OnInput registers an input handler.
func OnInput(handler func(Event)) Attr { return On("input", handler) }

// OnChange registers a change handler.
func OnChange(handler func(Event)) Attr { return On("change", handler) }

// OnSubmit registers a submit handler.
func OnSubmit(handler func(Event)) Attr { return On("submit", handler) }

// Event carries the payload delivered to an event handler by the host.
type Event struct {
	// Type is the event name without the "on" prefix, e.g. "click".
	Type string
	// Value is the host's current value for the target, when the event
	// carries one (input, change).
	Value string
}

// IsEventProp reports whether a prop key names an event handler.
// Case-insensitive on the prefix to catch onclick, onClick, and OnClick.
func IsEventProp(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}
