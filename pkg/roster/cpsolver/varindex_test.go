package cpsolver

import (
	"testing"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/Ciantar0309/the-roster-system/pkg/roster/model"
)

func TestVarIndex_IndexPopulation(t *testing.T) {
	b := cpmodel.NewCpModelBuilder()
	vi := newVarIndex()
	emp := model.Employee{ID: 1}
	tpl := model.ShiftTemplate{ID: "t1", ShopID: 10, Day: model.Mon, Type: model.AM}
	v := b.NewBoolVar().WithName("x")
	vi.add(emp, tpl, v)

	if len(vi.byEmployee[1]) != 1 {
		t.Errorf("byEmployee: got %d entries, want 1", len(vi.byEmployee[1]))
	}
	if len(vi.byShopDay[shopDayKey(10, model.Mon)]) != 1 {
		t.Error("byShopDay did not index the new var")
	}
	if len(vi.byEmployeeDay[employeeDayKey(1, model.Mon)]) != 1 {
		t.Error("byEmployeeDay did not index the new var")
	}
	if len(vi.byEmployeeShopDay[employeeShopDayKey(1, 10, model.Mon)]) != 1 {
		t.Error("byEmployeeShopDay did not index the new var")
	}
}

func TestVarIndex_VarsForPreservesOrder(t *testing.T) {
	b := cpmodel.NewCpModelBuilder()
	vi := newVarIndex()
	for i := 0; i < 3; i++ {
		v := b.NewBoolVar().WithName("x")
		vi.add(model.Employee{ID: i}, model.ShiftTemplate{ID: "t", ShopID: 1, Day: model.Mon}, v)
	}
	vars := vi.varsFor([]int{0, 1, 2})
	if len(vars) != 3 {
		t.Fatalf("got %d vars, want 3", len(vars))
	}
}

func TestHoursScale(t *testing.T) {
	cases := []struct {
		minutes int
		want    int64
	}{
		{360, 60},  // 6h -> 60 tenths
		{90, 15},   // 1.5h -> 15 tenths
		{0, 0},
	}
	for _, c := range cases {
		if got := hoursScale(c.minutes); got != c.want {
			t.Errorf("hoursScale(%d) = %d, want %d", c.minutes, got, c.want)
		}
	}
}
