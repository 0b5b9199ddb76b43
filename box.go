package gruby

// #include "go-ruby.h"
import "C"
import "sync/atomic"

// Box keeps one Ruby value reachable for the collector independent of Go
// stack shape. The value lives in a C-allocated cell with a stable address;
// for heap values that address is registered as a collector root for
// exactly the box's lifetime.
//
// A Box is owned exclusively: Dup creates an independently registered box,
// never a shared alias. Free must be called exactly once, by the owner.
type Box struct {
	cell       *C.gr_value
	registered bool
}

// Registration balance counters, for diagnostics and tests.
var (
	boxRegistrations   atomic.Int64
	boxUnregistrations atomic.Int64
)

// NewBox allocates a box keeping v alive. Immediate values are stored
// without touching the collector API at all, which keeps boxes of
// immediates legal before Setup and after Cleanup. Allocation failure of
// the cell itself aborts the process: no usable degraded mode exists at
// this layer.
func NewBox(v Value) *Box {
	b := &Box{cell: C.gr_value_alloc(v.v)}

	// The immediate check must come first: the collector calls are not
	// safe to make when the runtime is not in a valid state.
	if !v.IsSpecialConst() {
		C.gr_value_register(b.cell)
		b.registered = true
		boxRegistrations.Add(1)
	}
	return b
}

// Value returns the boxed value. After Free it returns Undef.
func (b *Box) Value() Value {
	if b.cell == nil {
		return Undef
	}
	return Value{b.cell.value}
}

// Dup returns a new box over the same value with its own registration and
// lifetime.
func (b *Box) Dup() *Box {
	return NewBox(b.Value())
}

// Free unregisters the cell if it was registered, clears it to the
// undefined sentinel and releases it. Calling Free twice on the same box
// is caller misuse; the cleared cell merely makes stale reads inert
// rather than leaving a dangling live root.
func (b *Box) Free() {
	if b.cell == nil {
		return
	}
	if b.registered {
		C.gr_value_unregister(b.cell)
		b.registered = false
		boxUnregistrations.Add(1)
	}
	C.gr_value_free(b.cell)
	b.cell = nil
}

// BoxRegistrationCounts reports how many root registrations and
// unregistrations boxes have performed. The two drift apart by exactly
// the number of live registered boxes.
func BoxRegistrationCounts() (registered, unregistered int64) {
	return boxRegistrations.Load(), boxUnregistrations.Load()
}
