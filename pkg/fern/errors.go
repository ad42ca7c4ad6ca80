package fern

import "errors"

// ErrNilRoot is returned by Setup when the root VNode is nil. A nil root is a
// programming error, not conditional rendering; render nothing by mounting a
// component that returns nil instead.
var ErrNilRoot = errors.New("fern: setup requires a non-nil root VNode")

// ErrNoContainer is returned by Setup when no host container is supplied.
var ErrNoContainer = errors.New("fern: setup requires a host container")

// errHookOutsideRender is the panic message for hook calls with no component
// on the call stack. This is a programming-contract violation and fails
// loudly rather than silently no-opping.
const errHookOutsideRender = "[FERN E001] hook called outside component render"
