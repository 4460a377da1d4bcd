package fairness

import "testing"

func TestGini_EqualHoursIsZero(t *testing.T) {
	hours := map[int]float64{1: 40, 2: 40, 3: 40}
	if g := Gini(hours); g != 0 {
		t.Errorf("Gini = %v, want 0 for equal distribution", g)
	}
}

func TestGini_UnequalHoursIsPositive(t *testing.T) {
	hours := map[int]float64{1: 10, 2: 20, 3: 40}
	g := Gini(hours)
	if g <= 0 || g >= 1 {
		t.Errorf("Gini = %v, want in (0,1) for unequal distribution", g)
	}
}

func TestDeviationFromTarget(t *testing.T) {
	hours := map[int]float64{1: 44, 2: 36}
	targets := map[int]float64{1: 40, 2: 40, 3: 0}
	dev := DeviationFromTarget(hours, targets)
	if dev[1] != 0.1 {
		t.Errorf("dev[1] = %v, want 0.1", dev[1])
	}
	if dev[2] != -0.1 {
		t.Errorf("dev[2] = %v, want -0.1", dev[2])
	}
	if _, ok := dev[3]; ok {
		t.Errorf("employee with zero target should be skipped")
	}
}
