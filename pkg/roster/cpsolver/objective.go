package cpsolver

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/Ciantar0309/the-roster-system/pkg/roster/model"
)

// buildObjective assembles the full weighted objective from §4.4's table.
// Coverage minima are enforced as hard constraints in model.go; the
// "under-minimum coverage" weight is kept in weights.go purely so the
// objective table documented there has a one-to-one entry for every row —
// it never actually contributes a term here since that shortfall cannot
// occur in a feasible solution.
func buildObjective(b *cpmodel.CpModelBuilder, vi *VarIndex, employees []model.Employee, demands map[string]model.DemandEntry, shops map[int]model.Shop) *cpmodel.LinearExpr {
	obj := cpmodel.NewLinearExpr()

	addCrossShopAndFullShapeTerms(b, obj, vi, shops)
	addCoverageShapeTerms(b, obj, vi, demands, shops)
	addHoursTerms(b, obj, vi, employees)

	return obj
}

// addCrossShopAndFullShapeTerms — weights.weightCrossShop, weightFullAtSmallShop/LargeShop.
func addCrossShopAndFullShapeTerms(b *cpmodel.CpModelBuilder, obj *cpmodel.LinearExpr, vi *VarIndex, shops map[int]model.Shop) {
	for _, e := range vi.entries {
		shop := shops[e.Template.ShopID]
		if e.Employee.HasPrimaryShop && !e.Employee.IsPrimaryAt(e.Template.ShopID) {
			obj.AddTerm(e.Var, weightCrossShop)
		}
		if e.Template.Type == model.FULL {
			if model.IsLargeShop(shop.Name) {
				obj.AddTerm(e.Var, weightFullAtLargeShop)
			} else {
				obj.AddTerm(e.Var, weightFullAtSmallShop)
			}
		}
	}
}

// addCoverageShapeTerms — under-target shortfall, over-coverage, AM/PM imbalance.
func addCoverageShapeTerms(b *cpmodel.CpModelBuilder, obj *cpmodel.LinearExpr, vi *VarIndex, demands map[string]model.DemandEntry, shops map[int]model.Shop) {
	for key, d := range demands {
		am, pm, _, _, _, _, _ := coverageExprs(vi, d.ShopID, d.Day)

		underAM := newBoundedIntVar(b, fmt.Sprintf("underAM_%s", key), 0, int64(d.TargetAM))
		underPM := newBoundedIntVar(b, fmt.Sprintf("underPM_%s", key), 0, int64(d.TargetPM))
		amWithSlack := cpmodel.NewLinearExpr()
		amWithSlack.Add(am)
		amWithSlack.AddTerm(underAM, 1)
		b.AddGreaterOrEqual(amWithSlack, cpmodel.NewConstant(int64(d.TargetAM)))
		pmWithSlack := cpmodel.NewLinearExpr()
		pmWithSlack.Add(pm)
		pmWithSlack.AddTerm(underPM, 1)
		b.AddGreaterOrEqual(pmWithSlack, cpmodel.NewConstant(int64(d.TargetPM)))
		obj.AddTerm(underAM, weightUnderTargetCoverage)
		obj.AddTerm(underPM, weightUnderTargetCoverage)

		maxOver := int64(d.MaxStaff)
		if maxOver <= 0 {
			maxOver = 20
		}
		overAM := newBoundedIntVar(b, fmt.Sprintf("overAM_%s", key), 0, maxOver)
		overPM := newBoundedIntVar(b, fmt.Sprintf("overPM_%s", key), 0, maxOver)
		amMinusOver := cpmodel.NewLinearExpr()
		amMinusOver.Add(am)
		amMinusOver.AddTerm(overAM, -1)
		b.AddLessOrEqual(amMinusOver, cpmodel.NewConstant(int64(d.TargetAM)))
		pmMinusOver := cpmodel.NewLinearExpr()
		pmMinusOver.Add(pm)
		pmMinusOver.AddTerm(overPM, -1)
		b.AddLessOrEqual(pmMinusOver, cpmodel.NewConstant(int64(d.TargetPM)))
		obj.AddTerm(overAM, weightOverCoverage)
		obj.AddTerm(overPM, weightOverCoverage)

		shop := shops[d.ShopID]
		if model.IsLargeShop(shop.Name) {
			// am - pm == diffPos - diffNeg: diffNeg is the PM-exceeds-AM excess.
			diffPos := newBoundedIntVar(b, fmt.Sprintf("ampmPos_%s", key), 0, maxOver)
			diffNeg := newBoundedIntVar(b, fmt.Sprintf("ampmNeg_%s", key), 0, maxOver)
			lhs := cpmodel.NewLinearExpr()
			lhs.Add(am)
			lhs.AddTerm(diffPos, -1)
			lhs.AddTerm(diffNeg, 1)
			b.AddEquality(lhs, pm)
			obj.AddTerm(diffPos, weightAMPMImbalance)
			obj.AddTerm(diffNeg, weightAMPMImbalance+weightPMExceedsAM)
		}
	}
}

// addHoursTerms — per-hour-under-target and the 4-tier progressive overtime penalty.
func addHoursTerms(b *cpmodel.CpModelBuilder, obj *cpmodel.LinearExpr, vi *VarIndex, employees []model.Employee) {
	for _, emp := range employees {
		weekdayExpr := cpmodel.NewLinearExpr()
		for _, idx := range vi.byEmployee[emp.ID] {
			e := vi.entry(idx)
			if e.Template.Day == model.Sun {
				continue // Sunday hours excluded from the weekly-target sum (§4.4).
			}
			weekdayExpr.AddTerm(e.Var, hoursScale(int(e.Template.End-e.Template.Start)))
		}

		targetTenths := int64(emp.WeeklyTarget * 10)
		under := newBoundedIntVar(b, fmt.Sprintf("underHrs_e%d", emp.ID), 0, targetTenths)
		over := newBoundedIntVar(b, fmt.Sprintf("overHrs_e%d", emp.ID), 0, bigOvertimeCapTenths)

		eqLHS := cpmodel.NewLinearExpr()
		eqLHS.Add(weekdayExpr)
		eqLHS.AddTerm(under, 1)
		eqLHS.AddTerm(over, -1)
		b.AddEquality(eqLHS, cpmodel.NewConstant(targetTenths))
		obj.AddTerm(under, weightPerHourUnderTarget/10)

		tier1 := newBoundedIntVar(b, fmt.Sprintf("tier1_e%d", emp.ID), 0, tier1Cap*10)
		tier2 := newBoundedIntVar(b, fmt.Sprintf("tier2_e%d", emp.ID), 0, tier2Cap*10)
		tier3 := newBoundedIntVar(b, fmt.Sprintf("tier3_e%d", emp.ID), 0, tier3Cap*10)
		tier4 := newBoundedIntVar(b, fmt.Sprintf("tier4_e%d", emp.ID), 0, bigOvertimeCapTenths)

		tierSum := cpmodel.NewLinearExpr()
		tierSum.AddTerm(tier1, 1)
		tierSum.AddTerm(tier2, 1)
		tierSum.AddTerm(tier3, 1)
		tierSum.AddTerm(tier4, 1)
		overExpr := cpmodel.NewLinearExpr()
		overExpr.AddTerm(over, 1)
		b.AddEquality(tierSum, overExpr)

		// Each tier's extra weight stacks on the tiers below it, so every
		// further overtime hour costs more than the previous one.
		obj.AddTerm(tier1, weightOvertimeTier1/10)
		obj.AddTerm(tier2, (weightOvertimeTier1+weightOvertimeTier2Extra)/10)
		obj.AddTerm(tier3, (weightOvertimeTier1+weightOvertimeTier2Extra+weightOvertimeTier3Extra)/10)
		obj.AddTerm(tier4, (weightOvertimeTier1+weightOvertimeTier2Extra+weightOvertimeTier3Extra+weightOvertimeTier4Extra)/10)
	}
}

// newBoundedIntVar is a thin wrapper over the builder's integer-variable
// constructor, named for readability at each call site.
func newBoundedIntVar(b *cpmodel.CpModelBuilder, name string, lb, ub int64) cpmodel.IntVar {
	return b.NewIntVar(lb, ub).WithName(name)
}
