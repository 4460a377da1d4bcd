package cpsolver

import "github.com/Ciantar0309/the-roster-system/pkg/roster/model"

// eligibilityIndex 预先计算好的按员工维护的请假/固定休息日/排除集合，避免
// 在构建阶段对每个 (employee, template) 对重复线性扫描。
type eligibilityIndex struct {
	excludedIDs   map[int]bool
	leaveDays     map[int]map[model.Weekday]bool // employeeID -> days on approved leave
	fixedDaysOff  map[string]map[model.Weekday]bool // normalized name -> days off
	explicitShops map[int][]int                     // employeeID -> shop ids from ShopAssignment
	shopsByID     map[int]model.Shop
}

func buildEligibilityIndex(in model.SolveInput) *eligibilityIndex {
	idx := &eligibilityIndex{
		excludedIDs:   in.ExcludedEmployeeIDs,
		leaveDays:     map[int]map[model.Weekday]bool{},
		fixedDaysOff:  map[string]map[model.Weekday]bool{},
		explicitShops: map[int][]int{},
		shopsByID:     map[int]model.Shop{},
	}
	if idx.excludedIDs == nil {
		idx.excludedIDs = map[int]bool{}
	}

	for _, lr := range in.LeaveRequests {
		if !lr.Approved {
			continue
		}
		if idx.leaveDays[lr.EmployeeID] == nil {
			idx.leaveDays[lr.EmployeeID] = map[model.Weekday]bool{}
		}
		for d := range lr.Days {
			idx.leaveDays[lr.EmployeeID][d] = true
		}
	}
	for _, fo := range in.FixedDaysOff {
		idx.fixedDaysOff[model.NormalizeName(fo.EmployeeName)] = fo.Days
	}
	for _, a := range in.Assignments {
		idx.explicitShops[a.EmployeeID] = append(idx.explicitShops[a.EmployeeID], a.ShopID)
	}
	for _, s := range in.Shops {
		idx.shopsByID[s.ID] = s
	}
	return idx
}

// eligible 判定 (employee, template) 对是否满足 §4.4 的全部前置资格条件。
func (idx *eligibilityIndex) eligible(emp model.Employee, tpl model.ShiftTemplate) bool {
	if !emp.Active || idx.excludedIDs[emp.ID] {
		return false
	}

	shop, ok := idx.shopsByID[tpl.ShopID]
	if !ok || !shop.Active {
		return false
	}

	allowed := emp.EligibleShops(idx.explicitShops[emp.ID])
	if len(allowed) == 0 {
		// 回退：同公司全部在营门店（§4.4）。
		if emp.Company != "" && emp.Company != model.BothCompanies && emp.Company != shop.Company {
			return false
		}
	} else if !allowed[tpl.ShopID] {
		return false
	}

	if emp.Company != model.BothCompanies && emp.Company != "" && shop.Company != "" && emp.Company != shop.Company {
		return false
	}

	if idx.leaveDays[emp.ID][tpl.Day] {
		return false
	}
	if days, ok := idx.fixedDaysOff[model.NormalizeName(emp.Name)]; ok && days[tpl.Day] {
		return false
	}
	if emp.AMOnly && tpl.Type != model.AM {
		return false
	}
	return true
}
