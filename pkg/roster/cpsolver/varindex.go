// Package cpsolver 把 §3/§4.2/§4.3 派生的门店、员工、模板、需求翻译成一个
// CP-SAT 布尔满足/优化模型，求解后抽取指派结果（§4.4/§4.5）。
package cpsolver

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/Ciantar0309/the-roster-system/pkg/roster/model"
)

// varEntry 一个 (employee, template) 决策变量三元组。
type varEntry struct {
	Employee model.Employee
	Template model.ShiftTemplate
	Var      cpmodel.BoolVar
}

// VarIndex 稀疏决策变量表及其常用索引（§9 Design Notes：
// "store as a flat table ... index into it with hash maps"）。
type VarIndex struct {
	entries []varEntry

	byEmployee        map[int][]int    // employeeID -> entry indices
	byShopDay         map[string][]int // "{shopID}_{day}" -> entry indices
	byEmployeeDay     map[string][]int // "{employeeID}_{day}" -> entry indices
	byEmployeeShopDay map[string][]int // "{employeeID}_{shopID}_{day}" -> entry indices (one per employee/shop/day, across all its templates)
}

func newVarIndex() *VarIndex {
	return &VarIndex{
		byEmployee:        map[int][]int{},
		byShopDay:         map[string][]int{},
		byEmployeeDay:     map[string][]int{},
		byEmployeeShopDay: map[string][]int{},
	}
}

func shopDayKey(shopID int, day model.Weekday) string {
	return fmt.Sprintf("%d_%d", shopID, day)
}

func employeeDayKey(empID int, day model.Weekday) string {
	return fmt.Sprintf("%d_%d", empID, day)
}

func employeeShopDayKey(empID, shopID int, day model.Weekday) string {
	return fmt.Sprintf("%d_%d_%d", empID, shopID, day)
}

func (vi *VarIndex) add(emp model.Employee, tpl model.ShiftTemplate, v cpmodel.BoolVar) {
	idx := len(vi.entries)
	vi.entries = append(vi.entries, varEntry{Employee: emp, Template: tpl, Var: v})

	vi.byEmployee[emp.ID] = append(vi.byEmployee[emp.ID], idx)
	vi.byShopDay[shopDayKey(tpl.ShopID, tpl.Day)] = append(vi.byShopDay[shopDayKey(tpl.ShopID, tpl.Day)], idx)
	vi.byEmployeeDay[employeeDayKey(emp.ID, tpl.Day)] = append(vi.byEmployeeDay[employeeDayKey(emp.ID, tpl.Day)], idx)

	k := employeeShopDayKey(emp.ID, tpl.ShopID, tpl.Day)
	vi.byEmployeeShopDay[k] = append(vi.byEmployeeShopDay[k], idx)
}

func (vi *VarIndex) entry(i int) varEntry { return vi.entries[i] }

func (vi *VarIndex) varsFor(indices []int) []cpmodel.BoolVar {
	out := make([]cpmodel.BoolVar, len(indices))
	for i, idx := range indices {
		out[i] = vi.entries[idx].Var
	}
	return out
}
