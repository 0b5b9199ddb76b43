package gruby

// #include <stdlib.h>
// #include "go-ruby.h"
import "C"
import (
	"runtime"
	"runtime/cgo"
	"unsafe"
)

// Every call that can raise goes through the shim's rb_protect relays and
// comes back as (Value, error). On failure the raised object is taken out
// of errinfo and wrapped in *Exception; no non-local jump is ever visible
// above this file.
//
// All functions here must run on the runtime thread (see Executor).

func completion(result C.VALUE, state C.int) (Value, error) {
	if state != 0 {
		return Nil, newException(Value{C.gr_take_errinfo()})
	}
	return Value{result}, nil
}

// cValues flattens args for the C side. Callers must keep the returned
// slice alive across the C call.
func cValues(args []Value) []C.VALUE {
	if len(args) == 0 {
		return nil
	}
	argv := make([]C.VALUE, len(args))
	for i, a := range args {
		argv[i] = a.v
	}
	return argv
}

// argvPtr is nil for an empty argument list, which the shim relays accept.
func argvPtr(argv []C.VALUE) *C.VALUE {
	if len(argv) == 0 {
		return nil
	}
	return &argv[0]
}

// Intern resolves a name to an interned symbol id.
func Intern(name string) (ID, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	var state C.int
	id := C.gr_intern_protect(cname, &state)
	if state != 0 {
		return ID{}, newException(Value{C.gr_take_errinfo()})
	}
	return ID{id}, nil
}

// MustIntern is Intern for literal names known to be valid.
func MustIntern(name string) ID {
	id, err := Intern(name)
	if err != nil {
		panic(err)
	}
	return id
}

// Funcall invokes the method mid on recv with positional arguments.
func Funcall(recv Value, mid ID, args ...Value) (Value, error) {
	argv := cValues(args)
	var state C.int
	result := C.gr_funcallv_protect(recv.v, mid.id,
		C.int(len(args)), argvPtr(argv), &state)
	runtime.KeepAlive(argv)
	return completion(result, state)
}

// LoadFile loads and executes the Ruby source file at path. With wrap the
// file is executed under an anonymous module instead of polluting the
// top-level namespace.
func LoadFile(path string, wrap bool) error {
	fname := StringValue(path)
	cwrap := C.int(0)
	if wrap {
		cwrap = 1
	}
	var state C.int
	C.gr_load_protect(fname.v, cwrap, &state)
	_, err := completion(C.gr_qnil(), state)
	return err
}

// EvalString evaluates a Ruby expression at the top level.
func EvalString(code string) (Value, error) {
	ccode := C.CString(code)
	defer C.free(unsafe.Pointer(ccode))

	var state C.int
	result := C.gr_eval_string_protect(ccode, &state)
	return completion(result, state)
}

// ConstGet looks up a constant by symbol. A nil recv looks up from the
// top level (Object).
func ConstGet(recv Value, id ID) (Value, error) {
	if recv.IsNil() {
		recv = Value{C.gr_object_class()}
	}
	var state C.int
	result := C.gr_const_get_protect(recv.v, id.id, &state)
	return completion(result, state)
}

// ConstGetAt looks up a constant strictly in recv's own scope, without
// the lexical fallbacks of ConstGet.
func ConstGetAt(recv Value, id ID) (Value, error) {
	if recv.IsNil() {
		recv = Value{C.gr_object_class()}
	}
	var state C.int
	result := C.gr_const_get_at_protect(recv.v, id.id, &state)
	return completion(result, state)
}

// ConstSet binds a constant under mod. A nil mod binds at the top level.
func ConstSet(mod Value, id ID, val Value) error {
	if mod.IsNil() {
		mod = Value{C.gr_object_class()}
	}
	var state C.int
	C.gr_const_set_protect(mod.v, id.id, val.v, &state)
	_, err := completion(C.gr_qnil(), state)
	return err
}

// Inspect returns the Ruby inspect string of the value.
func Inspect(v Value) (Value, error) {
	var state C.int
	result := C.gr_inspect_protect(v.v, &state)
	return completion(result, state)
}

// ToS coerces the value to a String via Kernel#String semantics.
func ToS(v Value) (Value, error) {
	var state C.int
	result := C.gr_String_protect(v.v, &state)
	return completion(result, state)
}

// ToArray coerces the value to an Array via Kernel#Array semantics.
func ToArray(v Value) (Value, error) {
	var state C.int
	result := C.gr_Array_protect(v.v, &state)
	return completion(result, state)
}

// ToHash coerces the value to a Hash; nil becomes an empty hash.
func ToHash(v Value) (Value, error) {
	var state C.int
	result := C.gr_Hash_protect(v.v, &state)
	return completion(result, state)
}

// CvarGet reads a class-level shared variable from cls.
func CvarGet(cls Value, id ID) (Value, error) {
	var state C.int
	result := C.gr_cvar_get_protect(cls.v, id.id, &state)
	return completion(result, state)
}

// YieldValues re-yields args to the block of the current method. Only
// meaningful while executing inside a runtime call frame.
func YieldValues(args ...Value) (Value, error) {
	argv := cValues(args)
	var state C.int
	result := C.gr_yield_values_protect(C.int(len(args)), argvPtr(argv), &state)
	runtime.KeepAlive(argv)
	return completion(result, state)
}

// ProcCall invokes a Proc with positional arguments and an optional block
// argument (pass Nil for none).
func ProcCall(proc Value, args []Value, blockArg Value) (Value, error) {
	argv := cValues(args)
	var state C.int
	result := C.gr_proc_call_protect(proc.v,
		C.int(len(args)), argvPtr(argv), blockArg.v, &state)
	runtime.KeepAlive(argv)
	return completion(result, state)
}

// BlockCall invokes the method mid on recv, supplying the Go closure as
// the method's block. Errors raised by the callee and signals from the
// block are caught at this boundary like any other protected call.
func BlockCall(recv Value, mid ID, args []Value, block Block) (Value, error) {
	h := cgo.NewHandle(block)
	defer h.Delete()

	argv := cValues(args)
	var state C.int
	result := C.gr_block_call_protect(recv.v, mid.id,
		C.int(len(args)), argvPtr(argv), C.uintptr_t(h), &state)
	runtime.KeepAlive(argv)
	return completion(result, state)
}
