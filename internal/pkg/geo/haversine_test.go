package geo

import (
	"math"
	"testing"
)

func TestHaversine_Symmetry(t *testing.T) {
	d1 := Haversine(12.9716, 77.5946, 19.0760, 72.8777)
	d2 := Haversine(19.0760, 72.8777, 12.9716, 77.5946)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("expected symmetric distances, got %f and %f", d1, d2)
	}
}

func TestHaversine_Identity(t *testing.T) {
	if d := Haversine(43.263, -2.935, 43.263, -2.935); d != 0 {
		t.Errorf("expected 0 for identical points, got %f", d)
	}
}

func TestHaversine_BangaloreToMumbai(t *testing.T) {
	// Roughly 840 km apart.
	d := Haversine(12.9716, 77.5946, 19.0760, 72.8777)
	if d < 800 || d > 900 {
		t.Errorf("expected ~840 km, got %f", d)
	}
}

func TestHaversine_NaNPropagates(t *testing.T) {
	if d := Haversine(math.NaN(), 77.5946, 19.0760, 72.8777); !math.IsNaN(d) {
		t.Errorf("expected NaN to propagate, got %f", d)
	}
}
