// Package fern is the rendering runtime: the reconciler that diffs virtual
// trees against the committed instance tree, the identity-keyed hook store
// that persists component state across re-renders, and the scheduler that
// coalesces render requests and defers side effects to after commit.
//
// A Runtime owns all mutable state for one render root. Nothing in this
// package is ambient, so independent roots (and tests) never share state:
//
//	dom := memdom.New()
//	rt := fern.New(dom)
//	if err := rt.Setup(vdom.Comp(App, nil), dom.Root); err != nil { ... }
//	rt.Settle() // pump scheduled work: render passes, then effects
//
// The model is single-threaded and cooperative. "Deferred" means parked until
// the driver next calls Pump or Settle, not concurrent; a state setter fired
// from an event handler or an effect parks exactly one coalesced render pass.
package fern
