package cpsolver

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/Ciantar0309/the-roster-system/pkg/roster/model"
)

// hoursScale converts minutes into tenths-of-an-hour, the fixed-point unit
// §9 Design Notes recommends ("use a fixed-point integer scale, e.g. tenths
// of an hour") so every linear expression stays integer-coefficient, as
// CP-SAT requires. Template boundaries are expected to land on 6-minute
// multiples (derived from whole/half-hour shop open/close times); any
// remainder is truncated.
func hoursScale(minutes int) int64 {
	return int64(minutes) / 6
}

const (
	bigOvertimeCapTenths = 400 // 40h of slack above target, generous upper bound for overTenths
	maxShiftsPerWeek     = 6
	maxShiftsPerWeekday  = 4
)

// Assembled is the CP-SAT model plus the indices needed to extract a solution.
type Assembled struct {
	Model *cpmodel.CpModelBuilder
	Vars  *VarIndex
}

// demandKey mirrors shopDayKey for model.DemandEntry lookups.
func demandKey(d model.DemandEntry) string { return shopDayKey(d.ShopID, d.Day) }

// Assemble builds the CP-SAT model for one solve (§4.4).
func Assemble(in model.SolveInput, templates []model.ShiftTemplate, demands []model.DemandEntry) (*Assembled, error) {
	builder := cpmodel.NewCpModelBuilder()
	elig := buildEligibilityIndex(in)
	vi := newVarIndex()

	for _, emp := range in.Employees {
		for _, tpl := range templates {
			if !elig.eligible(emp, tpl) {
				continue
			}
			v := builder.NewBoolVar().WithName(fmt.Sprintf("x_e%d_%s", emp.ID, tpl.ID))
			vi.add(emp, tpl, v)
		}
	}

	addAtMostOnePerDay(builder, vi, in.Employees)
	addWeeklyCap(builder, vi, in.Employees)
	if in.EnableWeekdayCap {
		addWeekdayCap(builder, vi, in.Employees)
	}
	addNoConsecutiveFullDays(builder, vi, in.Employees)
	addStudentCap(builder, vi, in.Employees)

	demandByKey := map[string]model.DemandEntry{}
	for _, d := range demands {
		demandByKey[demandKey(d)] = d
	}
	shopsByID := elig.shopsByID

	addCoverageAndShapeConstraints(builder, vi, demandByKey, shopsByID)
	addSpecialRequests(builder, vi, in.SpecialRequests)
	addCrossWeekDayInDayOut(builder, vi, in.PreviousWeekSundayShifts, shopsByID)

	objective := buildObjective(builder, vi, in.Employees, demandByKey, shopsByID)
	builder.Minimize(objective)

	return &Assembled{Model: builder, Vars: vi}, nil
}

// addAtMostOnePerDay — hard constraint 1.
func addAtMostOnePerDay(b *cpmodel.CpModelBuilder, vi *VarIndex, employees []model.Employee) {
	for _, emp := range employees {
		for d := model.Mon; d <= model.Sun; d++ {
			indices := vi.byEmployeeDay[employeeDayKey(emp.ID, d)]
			if len(indices) < 2 {
				continue
			}
			b.AddAtMostOne(vi.varsFor(indices)...)
		}
	}
}

// addWeeklyCap — hard constraint 2: at most 6 shifts/week.
func addWeeklyCap(b *cpmodel.CpModelBuilder, vi *VarIndex, employees []model.Employee) {
	for _, emp := range employees {
		indices := vi.byEmployee[emp.ID]
		if len(indices) == 0 {
			continue
		}
		expr := cpmodel.NewLinearExpr()
		for _, idx := range indices {
			expr.Add(vi.entry(idx).Var)
		}
		b.AddLessOrEqual(expr, cpmodel.NewConstant(maxShiftsPerWeek))
	}
}

// addWeekdayCap — hard constraint 3 (Open Question 2, default on): Mon-Fri ≤ 4.
func addWeekdayCap(b *cpmodel.CpModelBuilder, vi *VarIndex, employees []model.Employee) {
	for _, emp := range employees {
		expr := cpmodel.NewLinearExpr()
		any := false
		for d := model.Mon; d <= model.Fri; d++ {
			for _, idx := range vi.byEmployeeDay[employeeDayKey(emp.ID, d)] {
				expr.Add(vi.entry(idx).Var)
				any = true
			}
		}
		if any {
			b.AddLessOrEqual(expr, cpmodel.NewConstant(maxShiftsPerWeekday))
		}
	}
}

// addNoConsecutiveFullDays — hard constraint 4.
func addNoConsecutiveFullDays(b *cpmodel.CpModelBuilder, vi *VarIndex, employees []model.Employee) {
	for _, emp := range employees {
		fullByDay := map[model.Weekday]cpmodel.BoolVar{}
		for d := model.Mon; d <= model.Sun; d++ {
			for _, idx := range vi.byEmployeeDay[employeeDayKey(emp.ID, d)] {
				e := vi.entry(idx)
				if e.Template.Type == model.FULL {
					fullByDay[d] = e.Var
				}
			}
		}
		for d := model.Mon; d <= model.Fri+1 /* up to Sat, paired with Sun */ && d <= model.Sat; d++ {
			v1, ok1 := fullByDay[d]
			v2, ok2 := fullByDay[d+1]
			if ok1 && ok2 {
				b.AddAtMostOne(v1, v2)
			}
		}
	}
}

// addStudentCap — hard constraint 5: student total hours ≤ 20 (§4.4).
func addStudentCap(b *cpmodel.CpModelBuilder, vi *VarIndex, employees []model.Employee) {
	capTenths := int64(model.StudentMaxWeeklyHours * 10)
	for _, emp := range employees {
		if emp.Contract != model.Student {
			continue
		}
		expr := cpmodel.NewLinearExpr()
		for _, idx := range vi.byEmployee[emp.ID] {
			e := vi.entry(idx)
			expr.AddTerm(e.Var, hoursScale(int(e.Template.End-e.Template.Start)))
		}
		b.AddLessOrEqual(expr, cpmodel.NewConstant(capTenths))
	}
}

// coverageExprs builds the AM/PM/FULL/all-template linear sums for one (shop, day).
func coverageExprs(vi *VarIndex, shopID int, day model.Weekday) (am, pm, full, all *cpmodel.LinearExpr, amVars, pmVars, fullVars []cpmodel.BoolVar) {
	am, pm, full, all = cpmodel.NewLinearExpr(), cpmodel.NewLinearExpr(), cpmodel.NewLinearExpr(), cpmodel.NewLinearExpr()
	for _, idx := range vi.byShopDay[shopDayKey(shopID, day)] {
		e := vi.entry(idx)
		all.Add(e.Var)
		switch e.Template.Type {
		case model.AM:
			am.Add(e.Var)
			amVars = append(amVars, e.Var)
		case model.PM:
			pm.Add(e.Var)
			pmVars = append(pmVars, e.Var)
		case model.FULL:
			am.Add(e.Var) // FULL counts toward both halves (fullDayCountsAsBoth default)
			pm.Add(e.Var)
			full.Add(e.Var)
			fullVars = append(fullVars, e.Var)
		}
	}
	return
}

// addCoverageAndShapeConstraints — hard constraint 6.
func addCoverageAndShapeConstraints(b *cpmodel.CpModelBuilder, vi *VarIndex, demands map[string]model.DemandEntry, shops map[int]model.Shop) {
	for key, d := range demands {
		am, pm, _, all, amVars, pmVars, fullVars := coverageExprs(vi, d.ShopID, d.Day)
		_ = key

		b.AddGreaterOrEqual(am, cpmodel.NewConstant(int64(d.EffectiveAMFloor())))
		b.AddGreaterOrEqual(pm, cpmodel.NewConstant(int64(d.EffectivePMFloor())))

		if d.MaxStaff > 0 {
			b.AddLessOrEqual(all, cpmodel.NewConstant(int64(d.MaxStaff)))
		}

		// FULL-only cap: ≤ 2 FULL shifts per (shop, day), all cases.
		if len(fullVars) > 0 {
			fullExpr := cpmodel.NewLinearExpr()
			for _, v := range fullVars {
				fullExpr.Add(v)
			}
			b.AddLessOrEqual(fullExpr, cpmodel.NewConstant(2))
		}

		// Solo-day exclusivity: a chosen FULL excludes any AM/PM that day.
		if d.IsSolo {
			for _, f := range fullVars {
				for _, a := range amVars {
					b.AddAtMostOne(f, a)
				}
				for _, p := range pmVars {
					b.AddAtMostOne(f, p)
				}
			}
		}
	}
}

// addSpecialRequests — hard constraint 7.
func addSpecialRequests(b *cpmodel.CpModelBuilder, vi *VarIndex, requests []model.SpecialRequest) {
	for _, sr := range requests {
		var matches []cpmodel.BoolVar
		for _, idx := range vi.byEmployeeShopDay[employeeShopDayKey(sr.EmployeeID, sr.ShopID, sr.Day)] {
			e := vi.entry(idx)
			if e.Template.Type == sr.Type {
				matches = append(matches, e.Var)
			}
		}
		if len(matches) == 0 {
			// No eligible template exists to satisfy this mandatory request:
			// force infeasibility rather than silently dropping it (§8 property 5).
			b.AddGreaterOrEqual(cpmodel.NewConstant(0), cpmodel.NewConstant(1))
			continue
		}
		expr := cpmodel.NewLinearExpr()
		for _, v := range matches {
			expr.Add(v)
		}
		b.AddGreaterOrEqual(expr, cpmodel.NewConstant(1))
	}
}

// addCrossWeekDayInDayOut — hard constraint 8.
func addCrossWeekDayInDayOut(b *cpmodel.CpModelBuilder, vi *VarIndex, prev []model.PrevWeekSundayShift, shops map[int]model.Shop) {
	for _, pw := range prev {
		shop, ok := shops[pw.ShopID]
		if !ok || !shop.DayInDayOut {
			continue
		}
		for _, idx := range vi.byEmployeeShopDay[employeeShopDayKey(pw.EmployeeID, pw.ShopID, model.Mon)] {
			e := vi.entry(idx)
			b.AddEquality(e.Var, cpmodel.NewConstant(0))
		}
	}
}
