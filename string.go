package gruby

// #include <stdlib.h>
// #include "go-ruby.h"
import "C"
import "unsafe"

// StringValue creates a Ruby String from a Go string. The result is a
// fresh heap object; box it if it must outlive the current call.
func StringValue(s string) Value {
	if len(s) == 0 {
		return Value{C.gr_str_new(nil, 0)}
	}
	ptr := C.CString(s)
	defer C.free(unsafe.Pointer(ptr))
	return Value{C.gr_str_new(ptr, C.long(len(s)))}
}

// GoString copies a Ruby String into a Go string. Valid only for values
// of TypeString; use ToS or Inspect to stringify anything else.
func GoString(v Value) string {
	if v.Type() != TypeString {
		return ""
	}
	return C.GoStringN(C.gr_rstring_ptr(v.v), C.int(C.gr_rstring_len(v.v)))
}
