package cmp_test

import (
	"testing"

	"github.com/caeli-works/caeli/pkg/cmp"
)

func TestSliceContentEq(t *testing.T) {
	t.Run("same content in different order is equal", func(t *testing.T) {
		if !cmp.SliceContentEq([]string{"a", "b", "c"}, []string{"c", "b", "a"}) {
			t.Error("bags with same content are not equal, unexpectedly")
		}
	})

	t.Run("multiplicity matters", func(t *testing.T) {
		if cmp.SliceContentEq([]string{"a", "b", "c", "c"}, []string{"a", "b", "c"}) {
			t.Error("bags with different multiplicity are equal, unexpectedly")
		}
	})

	t.Run("extra elements are detected", func(t *testing.T) {
		if cmp.SliceContentEq([]string{"a", "b"}, []string{"a", "b", "z"}) {
			t.Error("bags with different length are equal, unexpectedly")
		}
	})
}

func TestMapEq(t *testing.T) {
	t.Run("maps with same pairs are equal", func(t *testing.T) {
		a := map[string]int{"x": 1, "y": 2}
		b := map[string]int{"y": 2, "x": 1}
		if !cmp.MapEq(a, b) {
			t.Error("a != b, unexpectedly")
		}
	})

	t.Run("maps differing in one value are not equal", func(t *testing.T) {
		a := map[string]int{"x": 1, "y": 2}
		b := map[string]int{"x": 1, "y": 3}
		if cmp.MapEq(a, b) {
			t.Error("a == b, unexpectedly")
		}
	})

	t.Run("missing keys are not equal", func(t *testing.T) {
		a := map[string]int{"x": 1}
		b := map[string]int{"x": 1, "y": 2}
		if cmp.MapEq(a, b) {
			t.Error("a == b, unexpectedly")
		}
	})
}
