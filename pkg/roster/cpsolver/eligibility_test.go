package cpsolver

import (
	"testing"

	"github.com/Ciantar0309/the-roster-system/pkg/roster/model"
)

func baseEmployee() model.Employee {
	return model.Employee{ID: 1, Name: "Anna Borg", Company: "A", Contract: model.FullTime, WeeklyTarget: 40, Active: true, HasPrimaryShop: true, PrimaryShopID: 10}
}

func baseShop() model.Shop {
	return model.Shop{ID: 10, Name: "Valletta", Company: "A", Active: true, Open: 8 * 60, Close: 20 * 60}
}

func baseTemplate(shopID int, day model.Weekday) model.ShiftTemplate {
	return model.ShiftTemplate{ID: "t", ShopID: shopID, Day: day, Type: model.AM, Start: 8 * 60, End: 14 * 60}
}

func TestEligible_ExcludedEmployee(t *testing.T) {
	in := model.SolveInput{
		Employees:           []model.Employee{baseEmployee()},
		Shops:               []model.Shop{baseShop()},
		ExcludedEmployeeIDs: map[int]bool{1: true},
	}
	idx := buildEligibilityIndex(in)
	if idx.eligible(baseEmployee(), baseTemplate(10, model.Mon)) {
		t.Fatal("excluded employee must not be eligible")
	}
}

func TestEligible_CompanyMismatch(t *testing.T) {
	emp := baseEmployee()
	emp.Company = "B"
	in := model.SolveInput{Employees: []model.Employee{emp}, Shops: []model.Shop{baseShop()}}
	idx := buildEligibilityIndex(in)
	if idx.eligible(emp, baseTemplate(10, model.Mon)) {
		t.Fatal("cross-company employee without BOTH tag must not be eligible")
	}
}

func TestEligible_BothCompaniesAllowed(t *testing.T) {
	emp := baseEmployee()
	emp.Company = model.BothCompanies
	in := model.SolveInput{Employees: []model.Employee{emp}, Shops: []model.Shop{baseShop()}}
	idx := buildEligibilityIndex(in)
	if !idx.eligible(emp, baseTemplate(10, model.Mon)) {
		t.Fatal("BOTH-company employee should be eligible at any same-company-tagged shop")
	}
}

func TestEligible_ApprovedLeaveBlocksDay(t *testing.T) {
	emp := baseEmployee()
	in := model.SolveInput{
		Employees: []model.Employee{emp},
		Shops:     []model.Shop{baseShop()},
		LeaveRequests: []model.LeaveRequest{
			{EmployeeID: emp.ID, Approved: true, Days: map[model.Weekday]bool{model.Tue: true}},
		},
	}
	idx := buildEligibilityIndex(in)
	if idx.eligible(emp, baseTemplate(10, model.Tue)) {
		t.Fatal("approved leave day must block eligibility")
	}
	if !idx.eligible(emp, baseTemplate(10, model.Wed)) {
		t.Fatal("other days must remain eligible")
	}
}

func TestEligible_UnapprovedLeaveIgnored(t *testing.T) {
	emp := baseEmployee()
	in := model.SolveInput{
		Employees: []model.Employee{emp},
		Shops:     []model.Shop{baseShop()},
		LeaveRequests: []model.LeaveRequest{
			{EmployeeID: emp.ID, Approved: false, Days: map[model.Weekday]bool{model.Tue: true}},
		},
	}
	idx := buildEligibilityIndex(in)
	if !idx.eligible(emp, baseTemplate(10, model.Tue)) {
		t.Fatal("unapproved leave must not block eligibility")
	}
}

func TestEligible_FixedDayOffByName(t *testing.T) {
	emp := baseEmployee()
	in := model.SolveInput{
		Employees:     []model.Employee{emp},
		Shops:         []model.Shop{baseShop()},
		FixedDaysOff:  []model.FixedDayOff{{EmployeeName: "ANNA borg", Days: map[model.Weekday]bool{model.Fri: true}}},
	}
	idx := buildEligibilityIndex(in)
	if idx.eligible(emp, baseTemplate(10, model.Fri)) {
		t.Fatal("fixed day off should match regardless of case/whitespace")
	}
}

func TestEligible_AMOnlyRestriction(t *testing.T) {
	emp := baseEmployee()
	emp.AMOnly = true
	in := model.SolveInput{Employees: []model.Employee{emp}, Shops: []model.Shop{baseShop()}}
	idx := buildEligibilityIndex(in)
	pm := baseTemplate(10, model.Mon)
	pm.Type = model.PM
	if idx.eligible(emp, pm) {
		t.Fatal("AM-only employee must not be eligible for PM templates")
	}
	if !idx.eligible(emp, baseTemplate(10, model.Mon)) {
		t.Fatal("AM-only employee should remain eligible for AM templates")
	}
}

func TestEligible_SecondaryShopExplicitAssignment(t *testing.T) {
	emp := baseEmployee()
	emp.HasPrimaryShop = false
	second := model.Shop{ID: 20, Name: "Sliema", Company: "A", Active: true}
	in := model.SolveInput{
		Employees:   []model.Employee{emp},
		Shops:       []model.Shop{baseShop(), second},
		Assignments: []model.ShopAssignment{{EmployeeID: emp.ID, ShopID: 20}},
	}
	idx := buildEligibilityIndex(in)
	if idx.eligible(emp, baseTemplate(10, model.Mon)) {
		t.Fatal("employee with an explicit shop set must not be eligible elsewhere")
	}
	if !idx.eligible(emp, baseTemplate(20, model.Mon)) {
		t.Fatal("employee should be eligible at their explicitly assigned shop")
	}
}

func TestEligible_InactiveShop(t *testing.T) {
	emp := baseEmployee()
	shop := baseShop()
	shop.Active = false
	in := model.SolveInput{Employees: []model.Employee{emp}, Shops: []model.Shop{shop}}
	idx := buildEligibilityIndex(in)
	if idx.eligible(emp, baseTemplate(10, model.Mon)) {
		t.Fatal("inactive shop must exclude all templates")
	}
}
