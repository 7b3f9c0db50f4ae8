package geo

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNormalizeZeroVector(t *testing.T) {
	v := Vec2{}.Normalize()
	if !v.IsZero() {
		t.Errorf("expected zero vector, got %+v", v)
	}
}

func TestNormalizeUnitLength(t *testing.T) {
	v := Vec2{X: 3, Y: -4}.Normalize()
	if !almostEqual(v.Length(), 1) {
		t.Errorf("expected unit length, got %f", v.Length())
	}
	if !almostEqual(v.X, 0.6) || !almostEqual(v.Y, -0.8) {
		t.Errorf("unexpected direction: %+v", v)
	}
}

func TestClampLength(t *testing.T) {
	v := Vec2{X: 6, Y: 8}.ClampLength(5)
	if !almostEqual(v.Length(), 5) {
		t.Errorf("expected length 5, got %f", v.Length())
	}
	// Direction preserved
	if !almostEqual(v.X, 3) || !almostEqual(v.Y, 4) {
		t.Errorf("direction not preserved: %+v", v)
	}

	// Below the cap the vector is untouched
	w := Vec2{X: 1, Y: 1}
	if got := w.ClampLength(5); got != w {
		t.Errorf("short vector modified: %+v", got)
	}
}

func TestDistance(t *testing.T) {
	a := Vec2{X: 0, Y: 0}
	b := Vec2{X: 3, Y: 4}
	if d := a.Distance(b); !almostEqual(d, 5) {
		t.Errorf("expected 5, got %f", d)
	}
}

func TestHeadingScreenCoordinates(t *testing.T) {
	// Moving "up" on screen (negative y) is +90 degrees.
	if h := (Vec2{X: 0, Y: -1}).Heading(); !almostEqual(h, 90) {
		t.Errorf("expected 90, got %f", h)
	}
	if h := (Vec2{X: 1, Y: 0}).Heading(); !almostEqual(h, 0) {
		t.Errorf("expected 0, got %f", h)
	}
	if h := (Vec2{X: 0, Y: 1}).Heading(); !almostEqual(h, -90) {
		t.Errorf("expected -90, got %f", h)
	}
}

func TestFromAngle(t *testing.T) {
	v := FromAngle(math.Pi/2, 3)
	if !almostEqual(v.X, 0) || !almostEqual(v.Y, 3) {
		t.Errorf("unexpected vector: %+v", v)
	}
}
