// Package demand 产生每个 (在营门店, 营业日) 的最小/目标人力与人数上限（§4.3）。
package demand

import "github.com/Ciantar0309/the-roster-system/pkg/roster/model"

// defaultMin/Target/Max 当门店没有对应星期的 staffing 条目时套用的默认值。
const (
	defaultMin    = 1
	defaultTarget = 2
	defaultMax    = 10
)

// Build 为给定门店集合的每个在营日生成一条需求条目。
func Build(shops []model.Shop) []model.DemandEntry {
	var out []model.DemandEntry
	for _, shop := range shops {
		if !shop.Active {
			continue
		}
		for d := model.Mon; d <= model.Sun; d++ {
			if !shop.IsOpenOn(d) {
				continue
			}
			out = append(out, buildDay(shop, d))
		}
	}
	return out
}

func buildDay(shop model.Shop, day model.Weekday) model.DemandEntry {
	staffing, has := shop.Staffing.Days[day]

	entry := model.DemandEntry{
		ShopID: shop.ID, Day: day,
		Mode: shop.Staffing.Mode,
	}
	if entry.Mode == "" {
		entry.Mode = model.CoverageFlexible
	}
	if has {
		entry.MinAM, entry.MinPM = staffing.MinAM, staffing.MinPM
		entry.TargetAM, entry.TargetPM = staffing.TargetAM, staffing.TargetPM
		entry.MaxStaff = staffing.MaxStaff
		entry.IsMandatory = staffing.IsMandatory
	} else {
		entry.MinAM, entry.MinPM = defaultMin, defaultMin
		entry.TargetAM, entry.TargetPM = defaultTarget, defaultTarget
		entry.MaxStaff = defaultMax
	}

	solo := shop.CanBeSolo && !model.IsHamrun(shop.Name)
	entry.IsSolo = solo
	if solo {
		entry.MinAM, entry.TargetAM = 1, 1
		entry.MinPM, entry.TargetPM = 1, 1
		entry.MaxStaff = 2
	}

	if day == model.Sun && shop.Sunday.HasMaxStaff && shop.Sunday.MaxStaff < entry.MaxStaff {
		entry.MaxStaff = shop.Sunday.MaxStaff
	}
	if model.IsHamrun(shop.Name) && (day == model.Sun || model.HamrunMandatoryWeekdays[day]) {
		applyHamrunMandatoryStaff(&entry)
	}

	return entry
}

// applyHamrunMandatoryStaff 套用 Hamrun 本店在周日及 HamrunMandatoryWeekdays
// 指定平日的专属人力下限（§4.3/§5），覆盖该日原本的 min/target/max。
func applyHamrunMandatoryStaff(entry *model.DemandEntry) {
	override := model.HamrunMandatoryStaff
	entry.MinAM, entry.TargetAM = override.AM, override.AM
	entry.MinPM, entry.TargetPM = override.PM, override.PM
	if entry.MaxStaff > override.Max || entry.MaxStaff == 0 {
		entry.MaxStaff = override.Max
	}
	entry.IsMandatory = true
}
