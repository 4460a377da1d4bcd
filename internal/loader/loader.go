package loader

import (
	"encoding/json"

	apperrors "github.com/Ciantar0309/the-roster-system/pkg/errors"
	"github.com/Ciantar0309/the-roster-system/pkg/roster/model"
)

// RawEmployee 输入边界处的员工记录；WeeklyTarget/Contract 等字段可能缺失。
type RawEmployee struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Company        string          `json:"company"`
	Contract       string          `json:"contract"`
	WeeklyTarget   int             `json:"weeklyTarget"`
	Active         *bool           `json:"active"`
	AMOnly         bool            `json:"amOnly"`
	PrimaryShopID  *int            `json:"primaryShopId"`
	SecondaryShops []int           `json:"secondaryShops"`
	ExcludeFromRoster bool         `json:"excludeFromRoster"`
}

// RawShop 输入边界处的门店记录；四个子配置字段可能是结构化对象或序列化字符串。
type RawShop struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Company         string          `json:"company"`
	Open            string          `json:"open"`
	Close           string          `json:"close"`
	Active          *bool           `json:"active"`
	CanBeSolo       *bool           `json:"canBeSolo"`
	MinStaffAtClose int             `json:"minStaffAtClose"`
	DayInDayOut     *bool           `json:"dayInDayOut"`
	ExtensionEligible *bool         `json:"extensionEligible"`
	Sunday          json.RawMessage `json:"sunday"`
	Staffing        json.RawMessage `json:"staffing"`
	Trimming        json.RawMessage `json:"trimming"`
}

// LoadEmployees 规范化原始员工记录，套用 excluded/inactive 过滤。
// 缺失 id 或 name 是结构性错误，其它字段容错退回默认值（§4.1）。
func LoadEmployees(raws []RawEmployee, excludedIDs map[int]bool, amOnlyNames map[string]bool) ([]model.Employee, error) {
	out := make([]model.Employee, 0, len(raws))
	for _, r := range raws {
		if r.Name == "" {
			return nil, apperrors.InvalidInput("employee.name", "missing mandatory field")
		}
		if r.ID == 0 {
			return nil, apperrors.InvalidInput("employee.id", "missing mandatory field")
		}
		if r.ExcludeFromRoster || excludedIDs[r.ID] {
			continue
		}

		active := true
		if r.Active != nil {
			active = *r.Active
		}

		contract := model.ContractKind(r.Contract)
		switch contract {
		case model.FullTime, model.PartTime, model.Student:
		default:
			contract = model.FullTime
		}

		target := r.WeeklyTarget
		if target <= 0 {
			if contract == model.Student {
				target = model.StudentMaxWeeklyHours
			} else {
				target = 40
			}
		}
		if contract == model.Student && target > model.StudentMaxWeeklyHours {
			target = model.StudentMaxWeeklyHours
		}

		emp := model.Employee{
			ID:             r.ID,
			Name:           r.Name,
			Company:        r.Company,
			Contract:       contract,
			WeeklyTarget:   target,
			Active:         active,
			AMOnly:         r.AMOnly || amOnlyNames[model.NormalizeName(r.Name)],
			SecondaryShops: append([]int(nil), r.SecondaryShops...),
		}
		if r.PrimaryShopID != nil {
			emp.PrimaryShopID = *r.PrimaryShopID
			emp.HasPrimaryShop = true
		}
		out = append(out, emp)
	}
	return out, nil
}

// LoadShops 规范化原始门店记录，容错解析 staffing/sunday/trimming 子配置，
// 并套用"Hamrun 本店不可单人运营"的覆盖（§4.1）。
func LoadShops(raws []RawShop) ([]model.Shop, error) {
	out := make([]model.Shop, 0, len(raws))
	for _, r := range raws {
		if r.Name == "" {
			return nil, apperrors.InvalidInput("shop.name", "missing mandatory field")
		}
		if r.ID == 0 {
			return nil, apperrors.InvalidInput("shop.id", "missing mandatory field")
		}

		open, err := model.ParseHHMM(r.Open)
		if err != nil {
			open = 9 * 60
		}
		closeT, err := model.ParseHHMM(r.Close)
		if err != nil || closeT <= open {
			closeT = 18 * 60
		}

		active := true
		if r.Active != nil {
			active = *r.Active
		}

		canBeSolo := true
		if r.CanBeSolo != nil {
			canBeSolo = *r.CanBeSolo
		}
		if model.IsHamrun(r.Name) {
			canBeSolo = false
		}

		dayInDayOut := model.DayInDayOutShops[model.NormalizeName(r.Name)]
		if r.DayInDayOut != nil {
			dayInDayOut = *r.DayInDayOut
		}

		extensionEligible := true
		if r.ExtensionEligible != nil {
			extensionEligible = *r.ExtensionEligible
		}

		shop := model.Shop{
			ID:                r.ID,
			Name:              r.Name,
			Company:           r.Company,
			Open:              open,
			Close:             closeT,
			Active:            active,
			CanBeSolo:         canBeSolo,
			MinStaffAtClose:   r.MinStaffAtClose,
			DayInDayOut:       dayInDayOut,
			ExtensionEligible: extensionEligible,
			Sunday:            parseSunday(r.Sunday),
			Staffing:          parseStaffing(r.Staffing),
			Trimming:          parseTrimming(r.Trimming),
		}
		out = append(out, shop)
	}
	return out, nil
}

func parseSunday(raw json.RawMessage) model.SundayConfig {
	m, _ := decodeFlexible(raw)
	cfg := model.SundayConfig{
		Closed: getBool(m, "closed", false),
	}
	if m != nil {
		if v, ok := m["maxStaff"]; ok && v != nil {
			cfg.MaxStaff = getInt(m, "maxStaff", 0)
			cfg.HasMaxStaff = true
		}
		if openS := getString(m, "open", ""); openS != "" {
			if o, err := model.ParseHHMM(openS); err == nil {
				if closeS := getString(m, "close", ""); closeS != "" {
					if c, err := model.ParseHHMM(closeS); err == nil && c > o {
						cfg.CustomOpen, cfg.CustomClose, cfg.HasCustom = o, c, true
					}
				}
			}
		}
	}
	return cfg
}

func parseStaffing(raw json.RawMessage) model.StaffingConfig {
	m, ok := decodeFlexible(raw)
	cfg := model.StaffingConfig{Mode: model.CoverageFlexible, Days: map[model.Weekday]model.DayStaffing{}}
	if !ok {
		return cfg
	}
	switch model.CoverageMode(getString(m, "mode", string(model.CoverageFlexible))) {
	case model.CoverageSplit:
		cfg.Mode = model.CoverageSplit
	case model.CoverageFullDayOnly:
		cfg.Mode = model.CoverageFullDayOnly
	default:
		cfg.Mode = model.CoverageFlexible
	}

	rawDays, _ := m["days"].(map[string]interface{})
	for key, v := range rawDays {
		day, ok := model.ParseWeekday(key)
		if !ok {
			continue
		}
		dm, _ := v.(map[string]interface{})
		cfg.Days[day] = model.DayStaffing{
			MinAM:       getInt(dm, "minAM", 1),
			MinPM:       getInt(dm, "minPM", 1),
			TargetAM:    getInt(dm, "targetAM", 2),
			TargetPM:    getInt(dm, "targetPM", 2),
			MaxStaff:    getInt(dm, "maxStaff", 10),
			IsMandatory: getBool(dm, "isMandatory", false),
		}
	}
	return cfg
}

func parseTrimming(raw json.RawMessage) model.TrimmingConfig {
	m, ok := decodeFlexible(raw)
	cfg := model.TrimmingConfig{
		Enabled:          true,
		TrimAM:           true,
		TrimPM:           true,
		TrimFromStart:    1,
		TrimFromEnd:      2,
		TrimWhenMoreThan: 2,
	}
	if !ok {
		return cfg
	}
	cfg.Enabled = getBool(m, "enabled", cfg.Enabled)
	cfg.TrimAM = getBool(m, "trimAM", cfg.TrimAM)
	cfg.TrimPM = getBool(m, "trimPM", cfg.TrimPM)
	cfg.TrimFromStart = getFloat(m, "trimFromStart", cfg.TrimFromStart)
	cfg.TrimFromEnd = getFloat(m, "trimFromEnd", cfg.TrimFromEnd)
	cfg.TrimWhenMoreThan = getInt(m, "trimWhenMoreThan", cfg.TrimWhenMoreThan)
	return cfg
}

// LoadFixedDaysOff 解析 {lowercased employee name: [day index or day name]}
// 容错映射，未知项被跳过而不是中止装载（原始来源：roster_solve.py 的
// fixed_days_off 循环）。
func LoadFixedDaysOff(raw map[string][]interface{}) []model.FixedDayOff {
	out := make([]model.FixedDayOff, 0, len(raw))
	for name, vals := range raw {
		days := map[model.Weekday]bool{}
		for _, v := range vals {
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
		if len(days) == 0 {
			continue
		}
		out = append(out, model.FixedDayOff{
			EmployeeName: model.NormalizeName(name),
			Days:         days,
		})
	}
	return out
}
