package gruby

import (
	"os"
	"testing"
)

// The runtime initializes once per process, so every Ruby-touching test
// shares one executor created here. Executor machinery itself is tested
// separately against no-op lifecycle hooks (see executor_test.go).
var testEx *Executor

func TestMain(m *testing.M) {
	testEx = NewExecutor()
	code := m.Run()
	testEx.Stop()
	os.Exit(code)
}

// onRuby runs fn on the runtime thread and reports its error. Assertions
// belong in the test goroutine, after this returns.
func onRuby(fn func() error) error {
	return testEx.Submit(fn)
}
