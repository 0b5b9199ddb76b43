package gruby

// #include "go-ruby.h"
import "C"
import "errors"

var (
	// ErrAlreadyLive is returned by Setup when the runtime has already
	// been initialized in this process.
	ErrAlreadyLive = errors.New("ruby runtime already initialized")

	// ErrNotLive is returned by Cleanup when the runtime is not
	// initialized, and by Submit when the executor never came up.
	ErrNotLive = errors.New("ruby runtime is not initialized")

	// ErrExecutorStopped is returned by Enqueue and Submit after a stop
	// has been requested.
	ErrExecutorStopped = errors.New("executor stopped")
)

// Exception is a Ruby exception surfaced as a Go error. The raised object
// is kept alive in a box for the lifetime of the Exception; Value hands it
// back for inspection or re-raising.
type Exception struct {
	box *Box
	msg string
}

// newException captures the pending runtime exception. Must be called on
// the runtime thread immediately after a protected call reports failure.
func newException(raised Value) *Exception {
	return &Exception{
		box: NewBox(raised),
		msg: renderRaised(raised),
	}
}

// renderRaised produces the Error message eagerly so Error never has to
// re-enter the runtime, which would be unsafe off the runtime thread. It
// uses the raw shim call rather than Inspect: a failure here must not
// construct another Exception.
func renderRaised(raised Value) string {
	var state C.int
	s := C.gr_inspect_protect(raised.v, &state)
	if state != 0 {
		C.gr_take_errinfo()
		return "ruby exception (unrenderable)"
	}
	return GoString(Value{s})
}

// Error implements the error interface.
func (e *Exception) Error() string { return e.msg }

// Value returns the raised Ruby exception object.
func (e *Exception) Value() Value { return e.box.Value() }

// Free releases the box keeping the raised object alive. After Free the
// Exception only retains its rendered message.
func (e *Exception) Free() {
	if e.box != nil {
		e.box.Free()
		e.box = nil
	}
}
