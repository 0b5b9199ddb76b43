//go:build !linux

package gruby

// #include "go-ruby.h"
import "C"

func currentThreadID() uint64 { return uint64(C.gr_thread_self()) }
