package cpsolver

import (
	"context"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	satparams "github.com/google/or-tools/ortools/sat/go/sat_parameters_go_proto"

	apperrors "github.com/Ciantar0309/the-roster-system/pkg/errors"
	"github.com/Ciantar0309/the-roster-system/pkg/logger"
	"github.com/Ciantar0309/the-roster-system/pkg/roster/model"
)

// defaultSearchWorkers 当 in.NumSearchWorkers 未设置（<=1）时套用的并行度。
const defaultSearchWorkers = 8

// Solve builds and runs the CP-SAT model for one week (§4.5), enforcing the
// wall-clock budget from in.TimeLimitSeconds and the parallel search-worker
// count from in.NumSearchWorkers via cpmodel.SolveCpModelWithParameters.
func Solve(_ context.Context, in model.SolveInput, templates []model.ShiftTemplate, demands []model.DemandEntry) (*model.SolveResult, error) {
	sched := logger.NewSchedulerLogger()
	sched.StartSchedule(in.WeekStart, len(in.Employees), 7)
	start := time.Now()

	assembled, err := Assemble(in, templates, demands)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "排班模型构建失败")
	}

	proto, err := assembled.Model.Model()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "CP 模型序列化失败")
	}

	maxTime := float64(in.TimeLimitSeconds)
	if maxTime <= 0 {
		maxTime = 30
	}
	workers := int32(in.NumSearchWorkers)
	if workers <= 1 {
		workers = defaultSearchWorkers
	}
	params := &satparams.SatParameters{
		MaxTimeInSeconds: &maxTime,
		NumSearchWorkers: &workers,
	}

	response, err := cpmodel.SolveCpModelWithParameters(proto, params)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "CP 求解器调用失败")
	}

	var status model.SolverStatus
	switch response.GetStatus().String() {
	case "OPTIMAL":
		status = model.StatusOptimal
	case "FEASIBLE":
		status = model.StatusFeasible
	case "INFEASIBLE":
		sched.ConstraintViolation("feasibility", "给定约束下不存在可行排班")
		return nil, apperrors.NoFeasibleSolution("给定约束下不存在可行排班")
	case "UNKNOWN":
		sched.ConstraintViolation("budget", "求解预算耗尽，未找到可行解")
		return nil, apperrors.BudgetExhausted("求解预算耗尽，未找到可行解")
	default:
		return nil, apperrors.New(apperrors.CodeInternal, "求解器返回未知状态: "+response.GetStatus().String())
	}

	var shifts []model.Assignment
	hours := map[int]float64{}
	for _, e := range assembled.Vars.entries {
		if !cpmodel.SolutionBooleanValue(response, e.Var) {
			continue
		}
		a := model.Assignment{
			ShopID:       e.Template.ShopID,
			EmployeeID:   e.Employee.ID,
			EmployeeName: e.Employee.Name,
			Day:          e.Template.Day,
			Start:        e.Template.Start,
			End:          e.Template.End,
			Type:         e.Template.Type,
		}
		shifts = append(shifts, a)
		if e.Template.Day != model.Sun {
			hours[e.Employee.ID] += a.Hours()
		}
	}

	sched.ScheduleComplete(in.WeekStart, time.Since(start), float64(len(shifts)))

	return &model.SolveResult{
		Success:       true,
		Status:        status,
		Shifts:        shifts,
		EmployeeHours: hours,
	}, nil
}
