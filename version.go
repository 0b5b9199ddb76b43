package gruby

// #include "go-ruby.h"
import "C"

// Version returns the linked runtime's version string.
func Version() string {
	return C.GoString(C.gr_version())
}

// Description returns the runtime's full description, as `ruby -v` prints.
func Description() string {
	return C.GoString(C.gr_description())
}
