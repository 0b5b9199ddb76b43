package gruby

import (
	"reflect"
	"testing"
)

// Expect is a simple testing function which raises error if condition is not met
func Expect(t *testing.T, condition bool, eformat string, args ...interface{}) {
	t.Helper()
	if !condition {
		t.Errorf(eformat, args...)
	}
}

// ExpectEql expects both arguments to be equal.
// Internally it uses reflect.DeepEqual to perform the test.
func ExpectEql(t *testing.T, v1, v2 interface{}) {
	t.Helper()
	Expect(t, reflect.DeepEqual(v1, v2), "Expected '%v' to equal '%v'", v1, v2)
}

// ExpectNilError should be used to check a returned Go error.
// Test fails if there is an error.
func ExpectNilError(t *testing.T, i error) {
	t.Helper()
	Expect(t, i == nil, "Error: %v", i)
}

// ExpectErr should be used to check that a Go error is raised.
// Test fails if there is no error.
func ExpectErr(t *testing.T, i error, eformat string, args ...interface{}) {
	t.Helper()
	Expect(t, i != nil, eformat, args...)
}
