package components

import (
	"strings"
	"testing"
)

func TestMeterFraction(t *testing.T) {
	tests := []struct {
		value, max int
		want       float64
	}{
		{0, 4, 0},
		{2, 4, 0.5},
		{9, 4, 1},
		{-1, 4, 0},
		{3, 0, 0},
	}
	for _, tt := range tests {
		m := Meter{Value: tt.value, Max: tt.max}
		if got := m.Fraction(); got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.value, tt.max, got, tt.want)
		}
	}
}

func TestMeterView(t *testing.T) {
	m := Meter{Label: "Level", Value: 2, Max: 5, Width: 30, ShowCount: true}
	got := m.View()
	if !strings.Contains(got, "Level") {
		t.Errorf("label missing: %q", got)
	}
	if !strings.Contains(got, "2/5") {
		t.Errorf("count missing: %q", got)
	}
}
