package gruby

// #include <stdlib.h>
// #include "go-ruby.h"
import "C"
import (
	"errors"
	"runtime/cgo"
	"unsafe"
)

// Block is a Go closure callable from Ruby as a method block. args are the
// values yielded to the block; blockArg is the block's own block, Nil when
// absent. A nil error returns the value to the iteration; see ErrIterBreak
// and IterBreakWith for loop control, and note that returning an
// *Exception re-raises its Ruby exception object.
type Block func(args []Value, blockArg Value) (Value, error)

// ErrIterBreak terminates the enclosing iteration, like `break` inside a
// Ruby block. Only the iteration unwinds; the BlockCall itself returns
// normally.
var ErrIterBreak = errors.New("iterator break")

type iterBreakValue struct {
	val Value
}

func (e *iterBreakValue) Error() string { return "iterator break with value" }

// IterBreakWith terminates the enclosing iteration and makes v the overall
// result of the method the block was passed to.
func IterBreakWith(v Value) error { return &iterBreakValue{v} }

// goBlockCallback is the single process-wide dispatcher the runtime calls
// for every block invocation, installed once by Setup. The closure to run
// travels in the opaque context word; no other global state is consulted.
//
//export goBlockCallback
func goBlockCallback(context C.uintptr_t, argc C.int, argv *C.VALUE,
	blockarg C.VALUE, ret *C.gr_return_value) {
	// A Go panic must not unwind into the runtime's C frames.
	defer func() {
		if r := recover(); r != nil {
			setRaise(ret, errors.New("panic in block callback"))
		}
	}()

	block, ok := cgo.Handle(context).Value().(Block)
	if !ok {
		setRaise(ret, errors.New("block context does not resolve to a Block"))
		return
	}

	var args []Value
	if argc > 0 {
		carg := unsafe.Slice(argv, int(argc))
		args = make([]Value, int(argc))
		for i := range args {
			args[i] = Value{carg[i]}
		}
	}

	result, err := block(args, Value{blockarg})
	if err == nil {
		ret._type = C.GR_RT_VALUE
		ret.value = result.v
		return
	}

	var breakVal *iterBreakValue
	var exc *Exception
	switch {
	case errors.Is(err, ErrIterBreak):
		ret._type = C.GR_RT_BREAK
		ret.value = C.gr_qnil()
	case errors.As(err, &breakVal):
		ret._type = C.GR_RT_BREAK_VALUE
		ret.value = breakVal.val.v
	case errors.As(err, &exc):
		ret._type = C.GR_RT_RAISE
		ret.value = exc.Value().v
	default:
		setRaise(ret, err)
	}
}

// setRaise arranges for the runtime to raise a RuntimeError carrying the
// Go error's message. Runs inside a live Ruby frame, so constructing the
// exception object here is legitimate; the raise itself happens in the
// shim after this callback returns.
func setRaise(ret *C.gr_return_value, err error) {
	msg := C.CString(err.Error())
	defer C.free(unsafe.Pointer(msg))

	ret._type = C.GR_RT_RAISE
	ret.value = C.gr_new_runtime_error(msg)
}
