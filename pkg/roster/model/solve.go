package model

// SolverStatus 求解结果状态（§6 输出契约）。
type SolverStatus string

const (
	StatusOptimal     SolverStatus = "OPTIMAL"
	StatusFeasible    SolverStatus = "FEASIBLE"
	StatusInfeasible  SolverStatus = "INFEASIBLE"
	StatusUnknown     SolverStatus = "UNKNOWN" // 预算耗尽且无可行解（§7）
	StatusError       SolverStatus = "ERROR"
)

// SolveInput 一次求解调用的全部输入（§6 Input contract）。
type SolveInput struct {
	WeekStart                string // ISO-8601 日期（周一）
	Employees                []Employee
	Shops                    []Shop
	Assignments              []ShopAssignment
	LeaveRequests            []LeaveRequest
	FixedDaysOff             []FixedDayOff
	PreviousWeekSundayShifts []PrevWeekSundayShift
	SpecialRequests          []SpecialRequest
	ExcludedEmployeeIDs      map[int]bool
	AMOnlyEmployeeNames      map[string]bool // 已 NormalizeName
	TimeLimitSeconds         int
	NumSearchWorkers         int  // CP-SAT 并行搜索工作线程数，<=1 时 cpsolver 改用 8
	EnableWeekdayCap         bool // Open Question 2：默认 true
}

// SolveResult 一次求解调用的全部输出（§6 Output contract）。
type SolveResult struct {
	Success       bool
	Status        SolverStatus
	Shifts        []Assignment
	EmployeeHours map[int]float64
	Message       string
}
