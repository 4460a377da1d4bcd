// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Ciantar0309/the-roster-system/internal/audit"
	"github.com/Ciantar0309/the-roster-system/internal/config"
	"github.com/Ciantar0309/the-roster-system/internal/loader"
	"github.com/Ciantar0309/the-roster-system/internal/metrics"
	apperrors "github.com/Ciantar0309/the-roster-system/pkg/errors"
	"github.com/Ciantar0309/the-roster-system/pkg/logger"
	"github.com/Ciantar0309/the-roster-system/pkg/roster/cpsolver"
	"github.com/Ciantar0309/the-roster-system/pkg/roster/demand"
	"github.com/Ciantar0309/the-roster-system/pkg/roster/fairness"
	"github.com/Ciantar0309/the-roster-system/pkg/roster/model"
	"github.com/Ciantar0309/the-roster-system/pkg/roster/result"
	"github.com/Ciantar0309/the-roster-system/pkg/roster/sanitycheck"
	"github.com/Ciantar0309/the-roster-system/pkg/roster/template"
	"github.com/Ciantar0309/the-roster-system/pkg/roster/trim"
)

// RosterHandler 负责 §6 输入契约的解码、整条求解流水线的驱动与输出契约的编码。
type RosterHandler struct {
	audit  *audit.Log
	solver config.SolverConfig
}

// NewRosterHandler 创建排班求解处理器；auditLog 可以是 nil（审计被禁用）。
func NewRosterHandler(auditLog *audit.Log, solverCfg config.SolverConfig) *RosterHandler {
	return &RosterHandler{audit: auditLog, solver: solverCfg}
}

// SolveRequest 一次求解调用的请求体，对应 §6 Input contract。
type SolveRequest struct {
	WeekStart                string                     `json:"weekStart"`
	Employees                 []loader.RawEmployee       `json:"employees"`
	Shops                     []loader.RawShop           `json:"shops"`
	Assignments               []ShopAssignmentInput      `json:"assignments"`
	LeaveRequests             []LeaveRequestInput        `json:"leaveRequests"`
	FixedDaysOff              map[string][]interface{}   `json:"fixedDaysOff"`
	PreviousWeekSundayShifts  []PrevWeekSundayShiftInput `json:"previousWeekSundayShifts"`
	SpecialRequests           []SpecialRequestInput      `json:"specialRequests"`
	ExcludedEmployeeIDs       []int                      `json:"excludedEmployeeIds"`
	AMOnlyEmployeeNames       []string                   `json:"amOnlyEmployeeNames"`
	TimeLimitSeconds          int                        `json:"timeLimitSeconds"`
}

// ShopAssignmentInput 显式 (employee, shop) 指派行。
type ShopAssignmentInput struct {
	EmployeeID int  `json:"employeeId"`
	ShopID     int  `json:"shopId"`
	IsPrimary  bool `json:"isPrimary"`
}

// LeaveRequestInput 一条请假记录；Days 为星期名称或星期序号的混合列表。
type LeaveRequestInput struct {
	EmployeeID int           `json:"employeeId"`
	Approved   bool          `json:"approved"`
	Days       []interface{} `json:"days"`
}

// PrevWeekSundayShiftInput 上周日在某门店工作过的 (shop, employee) 对。
type PrevWeekSundayShiftInput struct {
	ShopID     int `json:"shopId"`
	EmployeeID int `json:"employeeId"`
}

// SpecialRequestInput 必须满足的强制排班请求。
type SpecialRequestInput struct {
	EmployeeID    int    `json:"employeeId"`
	ShopID        int    `json:"shopId"`
	Day           string `json:"day"`
	Type          string `json:"type"`
	ExplicitStart string `json:"explicitStart,omitempty"`
	ExplicitEnd   string `json:"explicitEnd,omitempty"`
}

// Solve 处理 POST /api/v1/roster/solve：解析请求、跑完整条流水线、写出 §6 输出契约。
func (h *RosterHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, apperrors.New(apperrors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.Wrap(err, apperrors.CodeInvalidInput, "解析请求体失败"))
		return
	}
	if req.WeekStart == "" {
		respondError(w, apperrors.InvalidInput("weekStart", "不能为空"))
		return
	}

	in, shops, templates, demands, buildErr := buildSolveInput(req, h.solver)
	if buildErr != nil {
		respondError(w, buildErr)
		return
	}

	start := time.Now()
	sr, err := cpsolver.Solve(r.Context(), in, templates, demands)
	duration := time.Since(start)

	if err != nil {
		appErr, ok := err.(*apperrors.AppError)
		if !ok {
			appErr = apperrors.Wrap(err, apperrors.CodeInternal, "求解失败")
		}
		metrics.RecordSolve(string(appErr.Code), duration)
		h.recordAudit(r, req.WeekStart, string(appErr.Code), 0, duration)
		if appErr.Code == apperrors.CodeNoFeasibleSolution || appErr.Code == apperrors.CodeBudgetExhausted {
			status := model.StatusInfeasible
			if appErr.Code == apperrors.CodeBudgetExhausted {
				status = model.StatusUnknown
			}
			respondJSON(w, http.StatusOK, result.Response{
				Success: false,
				Status:  string(status),
				Message: appErr.Message,
			})
			return
		}
		respondError(w, appErr)
		return
	}

	sr.Shifts = trim.Apply(sr.Shifts, shops, demands, in.Employees)
	trimmedCount := 0
	hours := map[int]float64{}
	for _, s := range sr.Shifts {
		if s.IsTrimmed {
			trimmedCount++
		}
		if s.Day != model.Sun {
			hours[s.EmployeeID] += s.Hours()
		}
	}
	sr.EmployeeHours = hours
	metrics.RecordTrim("trim", trimmedCount)
	metrics.SetHoursGini(fairness.Gini(sr.EmployeeHours))

	if issues := sanitycheck.Check(sr.Shifts); len(issues) > 0 {
		logger.Warn().Int("count", len(issues)).Msg("微调后的指派未通过防御性复核")
	}

	metrics.RecordSolve(string(sr.Status), duration)
	h.recordAudit(r, req.WeekStart, string(sr.Status), len(sr.Shifts), duration)

	shopNames := make(map[int]string, len(shops))
	for _, s := range shops {
		shopNames[s.ID] = s.Name
	}

	respondJSON(w, http.StatusOK, result.FromSolve(req.WeekStart, shopNames, sr))
}

func (h *RosterHandler) recordAudit(r *http.Request, weekStart, status string, shiftCount int, duration time.Duration) {
	if h.audit == nil {
		return
	}
	h.audit.Record(r.Context(), audit.Record{
		WeekStart:   weekStart,
		Status:      status,
		ShiftCount:  shiftCount,
		DurationMS:  duration.Milliseconds(),
		RequestedAt: time.Now(),
	})
}

func buildSolveInput(req SolveRequest, solverCfg config.SolverConfig) (model.SolveInput, []model.Shop, []model.ShiftTemplate, []model.DemandEntry, *apperrors.AppError) {
	excluded := make(map[int]bool, len(req.ExcludedEmployeeIDs))
	for _, id := range req.ExcludedEmployeeIDs {
		excluded[id] = true
	}
	amOnly := make(map[string]bool, len(req.AMOnlyEmployeeNames))
	for _, n := range req.AMOnlyEmployeeNames {
		amOnly[model.NormalizeName(n)] = true
	}

	employees, err := loader.LoadEmployees(req.Employees, excluded, amOnly)
	if err != nil {
		return model.SolveInput{}, nil, nil, nil, toAppError(err)
	}
	shops, err := loader.LoadShops(req.Shops)
	if err != nil {
		return model.SolveInput{}, nil, nil, nil, toAppError(err)
	}

	assignments := make([]model.ShopAssignment, 0, len(req.Assignments))
	for _, a := range req.Assignments {
		assignments = append(assignments, model.ShopAssignment{
			EmployeeID: a.EmployeeID, ShopID: a.ShopID, IsPrimary: a.IsPrimary,
		})
	}

	leaves := make([]model.LeaveRequest, 0, len(req.LeaveRequests))
	for _, l := range req.LeaveRequests {
		days := map[model.Weekday]bool{}
		for _, v := range l.Days {
			switch t := v.(type) {
			case string:
				if d, ok := model.ParseWeekday(t); ok {
					days[d] = true
				}
			case float64:
				d := model.Weekday(int(t))
				if d >= model.Mon && d <= model.Sun {
					days[d] = true
				}
			}
		}
		leaves = append(leaves, model.LeaveRequest{EmployeeID: l.EmployeeID, Approved: l.Approved, Days: days})
	}

	fixedDaysOff := loader.LoadFixedDaysOff(req.FixedDaysOff)

	prevSundays := make([]model.PrevWeekSundayShift, 0, len(req.PreviousWeekSundayShifts))
	for _, p := range req.PreviousWeekSundayShifts {
		prevSundays = append(prevSundays, model.PrevWeekSundayShift{ShopID: p.ShopID, EmployeeID: p.EmployeeID})
	}

	specialRequests := make([]model.SpecialRequest, 0, len(req.SpecialRequests))
	for _, sreq := range req.SpecialRequests {
		day, ok := model.ParseWeekday(sreq.Day)
		if !ok {
			return model.SolveInput{}, nil, nil, nil, apperrors.InvalidInput("specialRequests.day", "无法识别的星期: "+sreq.Day)
		}
		sr := model.SpecialRequest{
			EmployeeID: sreq.EmployeeID, ShopID: sreq.ShopID, Day: day, Type: model.ShiftType(sreq.Type),
		}
		if sreq.ExplicitStart != "" && sreq.ExplicitEnd != "" {
			start, err1 := model.ParseHHMM(sreq.ExplicitStart)
			end, err2 := model.ParseHHMM(sreq.ExplicitEnd)
			if err1 == nil && err2 == nil {
				sr.ExplicitStart, sr.ExplicitEnd, sr.HasExplicit = start, end, true
			}
		}
		specialRequests = append(specialRequests, sr)
	}

	templates := template.Build(shops)
	demands := demand.Build(shops)

	timeLimit := req.TimeLimitSeconds
	if timeLimit <= 0 {
		timeLimit = int(solverCfg.DefaultTimeLimit.Seconds())
	}

	in := model.SolveInput{
		WeekStart:                req.WeekStart,
		Employees:                employees,
		Shops:                    shops,
		Assignments:              assignments,
		LeaveRequests:            leaves,
		FixedDaysOff:             fixedDaysOff,
		PreviousWeekSundayShifts: prevSundays,
		SpecialRequests:          specialRequests,
		ExcludedEmployeeIDs:      excluded,
		AMOnlyEmployeeNames:      amOnly,
		TimeLimitSeconds:         timeLimit,
		NumSearchWorkers:         solverCfg.Workers,
		EnableWeekdayCap:         solverCfg.EnableWeekdayCap,
	}
	return in, shops, templates, demands, nil
}

func toAppError(err error) *apperrors.AppError {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr
	}
	return apperrors.Wrap(err, apperrors.CodeInvalidInput, "输入数据解析失败")
}

// respondJSON 返回JSON响应
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 返回错误响应
func respondError(w http.ResponseWriter, err *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"code":    err.Code,
		"message": err.Message,
		"details": err.Details,
	})
}
