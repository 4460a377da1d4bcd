package model

// CoverageMode 门店的班次覆盖模式（§3 Staffing sub-config）。
type CoverageMode string

const (
	CoverageSplit       CoverageMode = "split"         // 只产生 AM / PM
	CoverageFlexible    CoverageMode = "flexible"       // AM / PM / FULL 都产生（默认）
	CoverageFullDayOnly CoverageMode = "full-day-only"  // 只产生 FULL
)

// DayStaffing 单个星期的每日人力配置。
type DayStaffing struct {
	MinAM       int
	MinPM       int
	TargetAM    int
	TargetPM    int
	MaxStaff    int
	IsMandatory bool
}

// StaffingConfig 门店的人力配置子结构。
type StaffingConfig struct {
	Mode CoverageMode
	// Days 按 Weekday 索引；缺失的 Weekday 表示"无专门配置"，Demand Builder
	// 套用 §4.3 的默认值 (min=1, target=2, max=10)。
	Days map[Weekday]DayStaffing
}

// SundayConfig 周日专属配置（§3）。
type SundayConfig struct {
	Closed      bool
	MaxStaff    int // 0 表示未设置
	HasMaxStaff bool
	CustomOpen  MinutesOfDay
	CustomClose MinutesOfDay
	HasCustom   bool
}

// TrimmingConfig 修剪子配置（§3 / §4.6）。
type TrimmingConfig struct {
	Enabled         bool
	TrimAM          bool
	TrimPM          bool
	TrimFromStart   float64 // 小时
	TrimFromEnd     float64 // 小时
	TrimWhenMoreThan int    // 人数阈值
}

// SpecialShift 门店层面预先声明的特殊班次时间窗（用于 Special Request 的
// 显式时间覆盖，可选）。
type SpecialShift struct {
	Day   Weekday
	Type  ShiftType
	Start MinutesOfDay
	End   MinutesOfDay
}

// Shop 一家门店。
type Shop struct {
	ID               int
	Name             string // 用于"大门店"集合匹配时按 NormalizeName 比较
	Company          string
	Open             MinutesOfDay
	Close            MinutesOfDay
	Active           bool
	CanBeSolo        bool
	MinStaffAtClose  int
	DayInDayOut      bool // 跨周日在/日出策略（Open Question 3 的决定：按店配置）
	ExtensionEligible bool // 是否参与 Sub-pass B 的工时延长（默认 true）
	Sunday           SundayConfig
	Staffing         StaffingConfig
	Trimming         TrimmingConfig
	SpecialShifts    []SpecialShift
}

// HoursFor 返回某一天的有效开/闭店时间，套用周日自定义时段覆盖。
func (s Shop) HoursFor(day Weekday) (open, close MinutesOfDay) {
	if day == Sun && s.Sunday.HasCustom {
		return s.Sunday.CustomOpen, s.Sunday.CustomClose
	}
	return s.Open, s.Close
}

// IsOpenOn 报告门店在给定星期是否营业。
func (s Shop) IsOpenOn(day Weekday) bool {
	if !s.Active {
		return false
	}
	if day == Sun && s.Sunday.Closed {
		return false
	}
	return true
}
