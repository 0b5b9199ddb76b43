package gruby

// #include "go-ruby.h"
import "C"

// Numeric unboxing goes through the runtime's own conversion primitives,
// which raise on range and type violations. Those raises surface as the
// same *Exception as any other protected call, never as a separate
// host-side error kind.

// Int64 unboxes an Integer-convertible value.
func Int64(v Value) (int64, error) {
	var state C.int
	n := C.gr_num2long_protect(v.v, &state)
	if state != 0 {
		return 0, newException(Value{C.gr_take_errinfo()})
	}
	return int64(n), nil
}

// Uint64 unboxes an Integer-convertible value, raising RangeError for
// negative numbers rather than wrapping.
func Uint64(v Value) (uint64, error) {
	var state C.int
	n := C.gr_num2ulong_protect(v.v, &state)
	if state != 0 {
		return 0, newException(Value{C.gr_take_errinfo()})
	}
	return uint64(n), nil
}

// Float64 unboxes a Float-convertible value.
func Float64(v Value) (float64, error) {
	var state C.int
	f := C.gr_num2dbl_protect(v.v, &state)
	if state != 0 {
		return 0, newException(Value{C.gr_take_errinfo()})
	}
	return float64(f), nil
}

// Int64Value boxes a Go int64 as a Ruby Integer.
func Int64Value(n int64) Value { return Value{C.gr_ll2num(C.longlong(n))} }

// Uint64Value boxes a Go uint64 as a Ruby Integer. Values above the
// fixnum range allocate a heap Integer.
func Uint64Value(n uint64) Value { return Value{C.gr_ull2num(C.ulonglong(n))} }

// FloatValue boxes a Go float64 as a Ruby Float.
func FloatValue(f float64) Value { return Value{C.gr_dbl2num(C.double(f))} }
