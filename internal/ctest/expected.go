// Package ctest provides small assertion helpers shared by this module's
// test files. It mirrors the hand-rolled expectation style used throughout
// the emulation's own test suite rather than pulling in an assertion
// framework.
package ctest

import (
	"math"
	"reflect"
	"testing"
)

// isFailure reports whether v represents a failed outcome: a false bool or
// a non-nil error. Any other value, including nil, counts as success.
func isFailure(v interface{}) bool {
	switch o := v.(type) {
	case bool:
		return !o
	case error:
		return o != nil
	case nil:
		return false
	}
	return false
}

// ExpectSuccess fails the test if v represents a failure.
func ExpectSuccess(t *testing.T, v interface{}) {
	t.Helper()
	if isFailure(v) {
		t.Errorf("expected success, got %v", v)
	}
}

// ExpectFailure fails the test if v does not represent a failure.
func ExpectFailure(t *testing.T, v interface{}) {
	t.Helper()
	if !isFailure(v) {
		t.Errorf("expected failure, got %v", v)
	}
}

// Equate fails the test if got is not equal to want.
func Equate(t *testing.T, got, want interface{}) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("values not equal: got %v, want %v", got, want)
	}
}

// ExpectEquality is an alias of Equate, matching the order used elsewhere in
// the suite (expected value first).
func ExpectEquality(t *testing.T, want, got interface{}) {
	t.Helper()
	Equate(t, got, want)
}

// ExpectInequality fails the test if a equals b.
func ExpectInequality(t *testing.T, a, b interface{}) {
	t.Helper()
	if reflect.DeepEqual(a, b) {
		t.Errorf("values unexpectedly equal: %v", a)
	}
}

// ExpectApproximate fails the test if a and b differ by more than tolerance.
func ExpectApproximate(t *testing.T, a, b, tolerance float64) {
	t.Helper()
	if math.Abs(a-b) > tolerance {
		t.Errorf("values not approximately equal: %v vs %v (tolerance %v)", a, b, tolerance)
	}
}
