package extensions

import "testing"

func AssertAreEqual[T comparable](t *testing.T, name string, expected T, actual T) {
	t.Helper()
	if expected != actual {
		t.Fatalf("value mismatch for %s, expected %v, got %v", name, expected, actual)
	}
}

func AssertNoError(t *testing.T, name string, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error for %s: %v", name, err)
	}
}
