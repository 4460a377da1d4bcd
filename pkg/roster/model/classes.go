package model

// 命名门店分类集合：默认数据，来自既有部署观察到的业务划分。这些集合驱动
// §4.3/§4.4/§4.6 中"大门店"相关的需求/约束/修剪特例；调用方可以在装载阶段
// 通过门店自身字段（CanBeSolo、DayInDayOut、Trimming）覆盖这些默认值 —
// 本集合只提供未显式配置时的回退分类（见 internal/loader）。
var (
	// LargeShops 倾向于拆分 AM/PM 班次、适用大门店修剪策略的门店集合（按
	// NormalizeName 比较）。这只是覆盖率/目标函数权重上的分类，与是否允许
	// 单人运营无关——单人运营的豁免单独由 IsHamrun 控制（见下）。
	LargeShops = map[string]bool{
		"hamrun": true, "rabat": true, "siggiewi": true, "marsaxlokk": true,
	}

	// SplitPreferredShops 倾向于拆分 AM/PM 而非 FULL 班次的门店。
	SplitPreferredShops = map[string]bool{
		"rabat": true, "siggiewi": true, "marsaxlokk": true, "hamrun": true,
	}

	// FullPreferredShops 倾向于整日 FULL 班次的门店。
	FullPreferredShops = map[string]bool{
		"mellieha": true, "tigne point": true, "marsascala": true,
	}

	// DayInDayOutShops 采用跨周日在/日出策略的门店默认集合（Open Question 3）。
	DayInDayOutShops = map[string]bool{
		"tigne point": true, "mellieha": true, "marsascala": true,
	}

	// SoloEligibleShops 默认允许单人运营的门店名单。loader 与 demand 不读取
	// 该集合：单人运营只看 Shop.CanBeSolo，且只有 Hamrun 被强制排除。
	SoloEligibleShops = map[string]bool{
		"tigne point": true, "mellieha": true, "marsascala": true,
		"siggiewi": true, "marsaxlokk": true, "rabat": true,
	}
)

// IsLargeShop 报告门店名是否属于命名的大门店集合（拆分偏好/修剪策略专用，
// 不涉及单人运营豁免）。
func IsLargeShop(name string) bool {
	return LargeShops[NormalizeName(name)]
}

// IsHamrun 报告门店名是否为 Hamrun 本店。Hamrun 是唯一一家从不允许单人运营、
// 且在周日及 HamrunMandatoryWeekdays 指定的平日套用强制人力下限的门店——
// 这条规则只认 Hamrun，不与 LargeShops 的拆分偏好分类共享。
func IsHamrun(name string) bool {
	return NormalizeName(name) == "hamrun"
}

// HamrunMandatoryStaff Hamrun 在周日及 HamrunMandatoryWeekdays 指定平日的
// 专属 AM/PM 人力override（来自原始数据源的具名业务特例，§4.3 提到的
// "可能强制 minAM=minPM=2, maxStaff=4"）。
var HamrunMandatoryStaff = struct {
	AM, PM, Max int
}{AM: 2, PM: 2, Max: 4}

// HamrunMandatoryWeekdays Hamrun 在周日之外、同样套用 HamrunMandatoryStaff
// （强制下限 AM/PM 各 2 人、人数上限 4）的星期。
var HamrunMandatoryWeekdays = map[Weekday]bool{Mon: true, Sat: true}
