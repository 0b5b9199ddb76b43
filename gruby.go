package gruby

// #cgo pkg-config: ruby-3.2
// #cgo CFLAGS: -Wall
// #include <stdlib.h>
// #include "go-ruby.h"
import "C"
import (
	"fmt"
	"sync"
	"unsafe"

	"go.uber.org/zap"
)

// The runtime is process-global: one instance for the process lifetime,
// initialized at most once and unusable again after Cleanup. All runtime
// calls must come from the thread that ran Setup; Executor enforces that.

type runtimePhase int

const (
	phaseVirgin runtimePhase = iota
	phaseLive
	phaseDead
)

var (
	phaseMu sync.Mutex
	phase   runtimePhase
)

// Setup initializes the embedded runtime on the calling thread: stack
// registration, interpreter boot, load path and the block dispatcher
// installation. The calling goroutine must be locked to its OS thread and
// that thread must make every future runtime call.
func Setup() error {
	phaseMu.Lock()
	defer phaseMu.Unlock()

	switch phase {
	case phaseLive:
		return ErrAlreadyLive
	case phaseDead:
		return ErrNotLive
	}

	C.gr_init_stack()
	if rc := C.gr_setup(); rc != 0 {
		return fmt.Errorf("ruby_setup failed with status %d", int(rc))
	}
	C.gr_install_block_callback()
	Script("gruby")

	phase = phaseLive
	Logger().Info("ruby runtime initialized", zap.String("version", Version()))
	return nil
}

// Cleanup finalizes the runtime. Must run on the thread that ran Setup.
// The runtime cannot be initialized again afterwards.
func Cleanup() error {
	phaseMu.Lock()
	defer phaseMu.Unlock()

	if phase != phaseLive {
		return ErrNotLive
	}
	phase = phaseDead

	if rc := C.gr_cleanup(); rc != 0 {
		return fmt.Errorf("ruby_cleanup finished with status %d", int(rc))
	}
	Logger().Info("ruby runtime finalized")
	return nil
}

// Live reports whether the runtime is between Setup and Cleanup.
func Live() bool {
	phaseMu.Lock()
	defer phaseMu.Unlock()
	return phase == phaseLive
}

// Script sets the runtime's script name ($0).
func Script(name string) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	C.gr_script(cname)
}
