// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf_test

import (
	"reflect"
	"testing"
)

// assertEqual checks if 2 values are equal.
// Returns successful assertion status.
func assertEqual(t *testing.T, expected, actual any) bool {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Errorf(
			"\n\t"+`expected "%+v" (%T),`+
				"\n\t"+`but got  "%+v" (%T)`+"\n",
			expected, expected,
			actual, actual,
		)

		return false
	}

	return true
}

// assertNil checks if value passed is nil.
// Returns successful assertion status.
func assertNil(t *testing.T, actual any) bool {
	t.Helper()
	if !isNil(actual) {
		t.Errorf("expected nil, but got %+v", actual)

		return false
	}

	return true
}

// assertNotNil checks if value passed is not nil.
// Returns successful assertion status.
func assertNotNil(t *testing.T, actual any) bool {
	t.Helper()
	if isNil(actual) {
		t.Error("expected not nil")

		return false
	}

	return true
}

// assertTrue checks if value passed is true.
// Returns successful assertion status.
func assertTrue(t *testing.T, actual bool) bool {
	t.Helper()
	if !actual {
		t.Error("expected true")

		return false
	}

	return true
}

// assertFalse checks if value passed is false.
// Returns successful assertion status.
func assertFalse(t *testing.T, actual bool) bool {
	t.Helper()
	if actual {
		t.Error("expected false")

		return false
	}

	return true
}

// requireNil fails the test immediately if passed value is not nil.
func requireNil(t *testing.T, actual any) {
	t.Helper()
	if !isNil(actual) {
		t.Fatalf("expected nil, but got %+v", actual)
	}
}

// isNil checks if a value is nil or not.
func isNil(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	}

	return false
}
