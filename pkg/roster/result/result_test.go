package result

import (
	"testing"

	"github.com/Ciantar0309/the-roster-system/pkg/roster/model"
)

func TestFromSolve_DateOffsetAndRounding(t *testing.T) {
	sr := &model.SolveResult{
		Success: true,
		Status:  model.StatusOptimal,
		Shifts: []model.Assignment{
			{ShopID: 1, EmployeeID: 2, EmployeeName: "Liam Spiteri", Day: model.Wed, Start: 8 * 60, End: (8*60 + 390), Type: model.AM},
		},
		EmployeeHours: map[int]float64{2: 6.049999},
	}
	resp := FromSolve("2026-08-03", map[int]string{1: "Valletta"}, sr)

	if resp.Shifts[0].Date != "2026-08-05" {
		t.Errorf("date = %s, want 2026-08-05 (Monday + 2 days)", resp.Shifts[0].Date)
	}
	if resp.Shifts[0].ShopName != "Valletta" {
		t.Errorf("shop name not resolved from shopNames map: %+v", resp.Shifts[0])
	}
	if resp.EmployeeHours[2] != 6.0 {
		t.Errorf("hours not rounded to one decimal: got %v", resp.EmployeeHours[2])
	}
}

func TestFromSolve_SortedByDayShopEmployee(t *testing.T) {
	sr := &model.SolveResult{
		Shifts: []model.Assignment{
			{ShopID: 2, EmployeeID: 1, Day: model.Tue, Start: 0, End: 60},
			{ShopID: 1, EmployeeID: 5, Day: model.Mon, Start: 0, End: 60},
			{ShopID: 1, EmployeeID: 2, Day: model.Mon, Start: 0, End: 60},
		},
		EmployeeHours: map[int]float64{},
	}
	resp := FromSolve("2026-08-03", nil, sr)
	if len(resp.Shifts) != 3 {
		t.Fatalf("got %d shifts, want 3", len(resp.Shifts))
	}
	if resp.Shifts[0].EmployeeID != 2 || resp.Shifts[1].EmployeeID != 5 || resp.Shifts[2].EmployeeID != 1 {
		t.Errorf("unexpected sort order: %+v", resp.Shifts)
	}
}
