package model

// ContractKind 员工合同类型。
type ContractKind string

const (
	FullTime ContractKind = "full-time"
	PartTime ContractKind = "part-time"
	Student  ContractKind = "student"
)

// StudentMaxWeeklyHours 学生合同每周工时硬上限（§4.4 规则5）。
const StudentMaxWeeklyHours = 20

// BothCompanies 表示员工可跨两家公司工作的特殊公司标签。
const BothCompanies = "BOTH"

// Employee 一名可被分配班次的员工。
type Employee struct {
	ID             int
	Name           string
	Company        string
	Contract       ContractKind
	WeeklyTarget   int // 正整数，学生 ⇒ ≤ StudentMaxWeeklyHours
	Active         bool
	AMOnly         bool
	PrimaryShopID  int  // 0 表示未设置
	HasPrimaryShop bool
	SecondaryShops []int
}

// WeeklyTargetHours 周目标工时转换为浮点小时数。
func (e Employee) WeeklyTargetHours() float64 {
	return float64(e.WeeklyTarget)
}

// EligibleShops 返回该员工允许工作的门店集合：主店 ∪ 副店 ∪ 显式指派。
// explicitAssignments 为该员工在 ShopAssignment 列表中出现的门店 id。
// 若最终集合为空，调用方应回退到"同公司全部在营门店"（eligibility 在
// cpsolver 包中按此顺序解析，见 §4.4）。
func (e Employee) EligibleShops(explicitAssignments []int) map[int]bool {
	set := make(map[int]bool)
	if e.HasPrimaryShop {
		set[e.PrimaryShopID] = true
	}
	for _, id := range e.SecondaryShops {
		set[id] = true
	}
	for _, id := range explicitAssignments {
		set[id] = true
	}
	return set
}

// IsPrimaryAt 报告 shopID 是否是该员工的主店。
func (e Employee) IsPrimaryAt(shopID int) bool {
	return e.HasPrimaryShop && e.PrimaryShopID == shopID
}

// LeaveRequest 一段已批准的请假区间（以周内日期的绝对日序表示，由调用方在
// 装载阶段展开为 week 内的 Weekday 集合，见 internal/handler 的 buildSolveInput）。
type LeaveRequest struct {
	EmployeeID int
	Approved   bool
	Days       map[Weekday]bool // 本周内请假覆盖的星期
}

// FixedDayOff 员工固定休息日，按规范化姓名索引（§3：takes precedence）。
type FixedDayOff struct {
	EmployeeName string // 已经过 NormalizeName
	Days         map[Weekday]bool
}

// SpecialRequest 必须满足的强制排班请求。
type SpecialRequest struct {
	EmployeeID int
	ShopID     int
	Day        Weekday
	Type       ShiftType
	// ExplicitStart/ExplicitEnd 可选，覆盖模板默认起止时间；当前求解核心
	// 按模板匹配 (shop, day, type)；求解核心与结果格式化都不读取显式时间。
	ExplicitStart MinutesOfDay
	ExplicitEnd   MinutesOfDay
	HasExplicit   bool
}

// ShopAssignment 显式的 (employee, shop) 指派行，isPrimary 标记主店关系。
type ShopAssignment struct {
	EmployeeID int
	ShopID     int
	IsPrimary  bool
}

// PrevWeekSundayShift 上周日在某门店工作过的 (shop, employee) 对，用于
// day-in/day-out 门店的跨周周一阻断规则（§4.4 规则8）。
type PrevWeekSundayShift struct {
	ShopID     int
	EmployeeID int
}
