package cpsolver

import (
	"context"
	"testing"

	apperrors "github.com/Ciantar0309/the-roster-system/pkg/errors"
	"github.com/Ciantar0309/the-roster-system/pkg/roster/demand"
	"github.com/Ciantar0309/the-roster-system/pkg/roster/model"
	"github.com/Ciantar0309/the-roster-system/pkg/roster/template"
)

func solveFor(t *testing.T, shops []model.Shop, employees []model.Employee, extra model.SolveInput) *model.SolveResult {
	t.Helper()
	in := extra
	in.Shops = shops
	in.Employees = employees
	in.EnableWeekdayCap = true
	tpls := template.Build(shops)
	demands := demand.Build(shops)
	sr, err := Solve(context.Background(), in, tpls, demands)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	return sr
}

// S1 — minimal feasible: one shop Mon-Fri 08:00-16:00, minAM=1/minPM=1,
// one full-time employee on primary. Expect 5 shifts (one per weekday,
// FULL since a lone employee cannot cover both halves separately), 40h,
// no Sunday work, OPTIMAL.
func TestScenario_S1_MinimalFeasible(t *testing.T) {
	shop := model.Shop{
		ID: 1, Name: "Valletta", Active: true, Open: 8 * 60, Close: 16 * 60,
		Sunday: model.SundayConfig{Closed: true},
		Staffing: model.StaffingConfig{Days: map[model.Weekday]model.DayStaffing{
			model.Mon: {MinAM: 1, MinPM: 1, TargetAM: 1, TargetPM: 1, MaxStaff: 5},
			model.Tue: {MinAM: 1, MinPM: 1, TargetAM: 1, TargetPM: 1, MaxStaff: 5},
			model.Wed: {MinAM: 1, MinPM: 1, TargetAM: 1, TargetPM: 1, MaxStaff: 5},
			model.Thu: {MinAM: 1, MinPM: 1, TargetAM: 1, TargetPM: 1, MaxStaff: 5},
			model.Fri: {MinAM: 1, MinPM: 1, TargetAM: 1, TargetPM: 1, MaxStaff: 5},
		}},
	}
	emp := model.Employee{ID: 1, Name: "Anna Borg", Contract: model.FullTime, WeeklyTarget: 40, Active: true, HasPrimaryShop: true, PrimaryShopID: 1}

	sr := solveFor(t, []model.Shop{shop}, []model.Employee{emp}, model.SolveInput{})

	if sr.Status != model.StatusOptimal {
		t.Fatalf("status = %v, want OPTIMAL", sr.Status)
	}
	if len(sr.Shifts) != 5 {
		t.Fatalf("shift count = %d, want 5", len(sr.Shifts))
	}
	for _, s := range sr.Shifts {
		if s.Day == model.Sun {
			t.Error("no shift should fall on Sunday, shop is closed")
		}
	}
	if got := sr.EmployeeHours[emp.ID]; got != 40 {
		t.Errorf("employee hours = %v, want 40", got)
	}
}

// S2 — solo exclusivity: a solo-eligible shop open Monday only, one eligible
// employee. Single-shift-per-day forces a FULL shift rather than AM+PM.
func TestScenario_S2_SoloExclusivity(t *testing.T) {
	shop := model.Shop{
		ID: 1, Name: "Mellieha", Active: true, CanBeSolo: true, Open: 8 * 60, Close: 16 * 60,
		Sunday: model.SundayConfig{Closed: true},
	}
	emp := model.Employee{ID: 1, Name: "Ben Attard", Contract: model.FullTime, WeeklyTarget: 8, Active: true, HasPrimaryShop: true, PrimaryShopID: 1}

	sr := solveFor(t, []model.Shop{shop}, []model.Employee{emp}, model.SolveInput{})

	var mondayShifts []model.Assignment
	for _, s := range sr.Shifts {
		if s.Day == model.Mon {
			mondayShifts = append(mondayShifts, s)
		}
	}
	if len(mondayShifts) != 1 || mondayShifts[0].Type != model.FULL {
		t.Fatalf("expected exactly one FULL shift on Monday, got %+v", mondayShifts)
	}
}

// S3 — student cap: a student (20h target) and a full-timer share coverage
// of a shop open seven days with minAM=1/minPM=1. The student's total must
// never exceed the statutory cap regardless of what the full-timer absorbs.
func TestScenario_S3_StudentCap(t *testing.T) {
	shop := model.Shop{
		ID: 1, Name: "Sliema", Active: true, Open: 8 * 60, Close: 20 * 60,
	}
	student := model.Employee{ID: 1, Name: "Student One", Contract: model.Student, WeeklyTarget: 20, Active: true, HasPrimaryShop: true, PrimaryShopID: 1}
	fullTimer := model.Employee{ID: 2, Name: "Full Timer", Contract: model.FullTime, WeeklyTarget: 40, Active: true, HasPrimaryShop: true, PrimaryShopID: 1}

	sr := solveFor(t, []model.Shop{shop}, []model.Employee{student, fullTimer}, model.SolveInput{})

	if sr.Status != model.StatusOptimal && sr.Status != model.StatusFeasible {
		t.Fatalf("status = %v, want OPTIMAL or FEASIBLE", sr.Status)
	}
	if got := sr.EmployeeHours[student.ID]; got > model.StudentMaxWeeklyHours {
		t.Errorf("student hours = %v, exceeds cap %d", got, model.StudentMaxWeeklyHours)
	}
}

// S4 — mandatory special request: a special request for (E, shopX, Tue, PM)
// where E is not on primary at X must either appear verbatim in the result
// or the solve must report INFEASIBLE — it must never be silently dropped.
func TestScenario_S4_MandatorySpecialRequest(t *testing.T) {
	shopX := model.Shop{ID: 1, Name: "Rabat", Active: true, Open: 8 * 60, Close: 20 * 60}
	emp := model.Employee{ID: 1, Name: "Clare Mifsud", Contract: model.FullTime, WeeklyTarget: 40, Active: true}

	shops := []model.Shop{shopX}
	in := model.SolveInput{
		Shops:            shops,
		Employees:        []model.Employee{emp},
		EnableWeekdayCap: true,
		SpecialRequests: []model.SpecialRequest{
			{EmployeeID: emp.ID, ShopID: shopX.ID, Day: model.Tue, Type: model.PM},
		},
	}
	// Solve reports INFEASIBLE as a NoFeasibleSolution error, not as a result.
	sr, err := Solve(context.Background(), in, template.Build(shops), demand.Build(shops))
	if apperrors.Is(err, apperrors.CodeNoFeasibleSolution) {
		return
	}
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	found := false
	for _, s := range sr.Shifts {
		if s.EmployeeID == emp.ID && s.ShopID == shopX.ID && s.Day == model.Tue && s.Type == model.PM {
			found = true
		}
	}
	if !found {
		t.Fatalf("special request was dropped from a non-infeasible result: %+v", sr.Shifts)
	}
}

// Universal invariant 2 & 3: at most one assignment per employee/day, and
// total scheduled days per employee never exceeds 6.
func TestScenario_AtMostOneShiftPerDayAndSixDayCap(t *testing.T) {
	shop := model.Shop{ID: 1, Name: "Hamrun", Active: true, Open: 8 * 60, Close: 20 * 60}
	emp := model.Employee{ID: 1, Name: "Sole Worker", Contract: model.FullTime, WeeklyTarget: 40, Active: true, HasPrimaryShop: true, PrimaryShopID: 1}

	sr := solveFor(t, []model.Shop{shop}, []model.Employee{emp}, model.SolveInput{})

	seen := map[model.Weekday]int{}
	for _, s := range sr.Shifts {
		seen[s.Day]++
	}
	days := 0
	for day, count := range seen {
		if count > 1 {
			t.Errorf("day %v has %d assignments for the same employee, want <= 1", day, count)
		}
		days++
	}
	if days > 6 {
		t.Errorf("employee scheduled on %d days, want <= 6", days)
	}
}

// Universal invariant 6: approved leave and fixed days off must never be
// assigned.
func TestScenario_LeaveAndFixedDayOffExcluded(t *testing.T) {
	shop := model.Shop{ID: 1, Name: "Valletta", Active: true, Open: 8 * 60, Close: 16 * 60, Sunday: model.SundayConfig{Closed: true}}
	emp1 := model.Employee{ID: 1, Name: "On Leave", Contract: model.FullTime, WeeklyTarget: 40, Active: true, HasPrimaryShop: true, PrimaryShopID: 1}
	emp2 := model.Employee{ID: 2, Name: "Fixed Off", Contract: model.FullTime, WeeklyTarget: 40, Active: true, HasPrimaryShop: true, PrimaryShopID: 1}

	sr := solveFor(t, []model.Shop{shop}, []model.Employee{emp1, emp2}, model.SolveInput{
		LeaveRequests: []model.LeaveRequest{
			{EmployeeID: emp1.ID, Approved: true, Days: map[model.Weekday]bool{model.Mon: true}},
		},
		FixedDaysOff: []model.FixedDayOff{
			{EmployeeName: model.NormalizeName(emp2.Name), Days: map[model.Weekday]bool{model.Tue: true}},
		},
	})

	for _, s := range sr.Shifts {
		if s.EmployeeID == emp1.ID && s.Day == model.Mon {
			t.Error("employee on approved leave must not be assigned that day")
		}
		if s.EmployeeID == emp2.ID && s.Day == model.Tue {
			t.Error("employee with a fixed day off must not be assigned that day")
		}
	}
}
