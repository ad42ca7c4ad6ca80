package fern

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/fern/pkg/host"
	"github.com/vango-dev/fern/pkg/metrics"
	"github.com/vango-dev/fern/pkg/vdom"
)

// Runtime owns all mutable state for one render root: the committed instance
// tree, the hook store, the effect queue, and the two coalescing schedulers.
// It is the explicit runtime context handed to component functions (it
// implements vdom.Hooks), so independent roots never share state.
type Runtime struct {
	adapter   host.Adapter
	container host.Node
	root      *vdom.VNode
	rootInst  *Instance
	rootPath  string

	store   *hookStore
	effects *effectQueue
	stack   []string // identity paths of components currently rendering

	renderSched *coalescer
	effectSched *coalescer

	logger *slog.Logger
	rec    *metrics.Recorder
	tracer trace.Tracer
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the runtime's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) { r.logger = logger }
}

// WithMetrics wires a metrics recorder; render passes, mounts, updates,
// unmounts, effect runs, and slot GC are counted on it.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(r *Runtime) { r.rec = rec }
}

// WithTracer wraps every render pass in a span on the given tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Runtime) { r.tracer = tracer }
}

// WithWake registers a callback fired whenever scheduled work becomes
// pending. A driver typically uses it to poke the loop that calls Pump; the
// callback must not call back into the Runtime.
func WithWake(wake func()) Option {
	return func(r *Runtime) {
		r.renderSched.wake = wake
		r.effectSched.wake = wake
	}
}

// New creates a Runtime rendering through the given host adapter.
func New(adapter host.Adapter, opts ...Option) *Runtime {
	r := &Runtime{
		adapter: adapter,
		store:   newHookStore(),
		effects: newEffectQueue(),
		logger:  slog.Default(),
	}
	r.renderSched = newCoalescer(r.renderPass, nil)
	r.effectSched = newCoalescer(r.flushEffects, nil)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Setup binds the root VNode to a host container, resets all runtime state,
// and performs one synchronous initial render pass. Effects from that pass
// are parked; call Pump or Settle to run them.
//
// Calling Setup on a runtime that already committed a tree unmounts it from
// its container first.
func (r *Runtime) Setup(root *vdom.VNode, container host.Node) error {
	if container == nil {
		return ErrNoContainer
	}
	if root == nil {
		return ErrNilRoot
	}

	if r.rootInst != nil {
		r.unmount(r.container, r.rootInst)
	}
	r.store = newHookStore()
	r.effects = newEffectQueue()
	r.stack = nil

	r.container = container
	r.root = root
	r.rootInst = nil
	r.rootPath = rootIdentity(root)

	r.renderPass()
	return nil
}

// RootInstance returns the committed instance tree, nil before Setup.
func (r *Runtime) RootInstance() *Instance { return r.rootInst }

// ScheduleRender parks one coalesced render pass, exactly as a state setter
// does. Drivers use it to re-render after out-of-band changes.
func (r *Runtime) ScheduleRender() {
	r.renderSched.request()
}

// Pump flushes parked work once: a pending render pass, then a pending
// effect flush. It reports whether anything ran. Effects that set state park
// a fresh render pass for the next Pump.
func (r *Runtime) Pump() bool {
	ran := r.renderSched.flush()
	if r.effectSched.flush() {
		ran = true
	}
	return ran
}

// Settle pumps until no work is pending. With a component that sets state
// unconditionally in an always-run effect this will not terminate; that is
// the render loop the component asked for.
func (r *Runtime) Settle() {
	for r.Pump() {
	}
}

// renderPass runs one full reconciliation: clear the visited set and call
// stack, reconcile the root, GC hook slots, then park the effect flush.
func (r *Runtime) renderPass() {
	var span trace.Span
	if r.tracer != nil {
		_, span = r.tracer.Start(context.Background(), "fern.render_pass")
		defer span.End()
	}

	start := time.Now()
	r.store.beginPass()
	r.stack = r.stack[:0]

	r.rootInst = r.reconcile(r.container, r.rootInst, r.root, r.rootPath)

	reclaimed := r.store.gc()
	elapsed := time.Since(start)

	if r.rec != nil {
		r.rec.RenderPasses.Inc()
		r.rec.RenderDuration.Observe(elapsed.Seconds())
		r.rec.SlotsReclaimed.Add(float64(reclaimed))
	}
	if span != nil {
		span.SetAttributes(
			attribute.String("fern.root", r.rootPath),
			attribute.Int("fern.slots.reclaimed", reclaimed),
			attribute.Int("fern.effects.pending", r.effects.len()),
		)
	}
	r.logger.Debug("render pass complete",
		"root", r.rootPath,
		"duration", elapsed,
		"slots_live", r.store.size(),
		"slots_reclaimed", reclaimed,
		"effects_pending", r.effects.len(),
	)

	r.effectSched.request()
}

// flushEffects drains the effect queue in FIFO order. Effects enqueued while
// draining run in the same flush.
func (r *Runtime) flushEffects() {
	cleanups, effects := r.effects.drain()
	if cleanups == 0 && effects == 0 {
		return
	}
	if r.rec != nil {
		r.rec.CleanupsRun.Add(float64(cleanups))
		r.rec.EffectsRun.Add(float64(effects))
	}
	r.logger.Debug("effect flush complete", "cleanups", cleanups, "effects", effects)
}
