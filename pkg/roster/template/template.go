// Package template 从门店的营业时间与分日人力配置派生候选班次模板（§4.2）。
package template

import "github.com/Ciantar0309/the-roster-system/pkg/roster/model"

// shortDayMaxHours FULL 班次时长不超过该值时，AM/PM 拆分过短而不值得单独排班。
const shortDayMaxHours = 6

// Build 为给定门店集合的每一天生成候选班次模板。
func Build(shops []model.Shop) []model.ShiftTemplate {
	var out []model.ShiftTemplate
	for _, shop := range shops {
		if !shop.Active {
			continue
		}
		for d := model.Mon; d <= model.Sun; d++ {
			if !shop.IsOpenOn(d) {
				continue
			}
			out = append(out, buildDay(shop, d)...)
		}
	}
	return out
}

func buildDay(shop model.Shop, day model.Weekday) []model.ShiftTemplate {
	open, close := shop.HoursFor(day)
	if close <= open {
		return nil
	}
	mid := model.Midpoint(open, close)

	staffing, hasStaffing := shop.Staffing.Days[day]
	mandatory := hasStaffing && staffing.IsMandatory

	full := model.ShiftTemplate{
		ID: model.TemplateID(shop.ID, day, model.FULL), ShopID: shop.ID, Day: day,
		Type: model.FULL, Start: open, End: close, IsMandatory: mandatory,
	}

	fullHours := full.Hours()
	if fullHours <= shortDayMaxHours {
		return []model.ShiftTemplate{full}
	}

	am := model.ShiftTemplate{
		ID: model.TemplateID(shop.ID, day, model.AM), ShopID: shop.ID, Day: day,
		Type: model.AM, Start: open, End: mid, IsMandatory: mandatory,
	}
	pm := model.ShiftTemplate{
		ID: model.TemplateID(shop.ID, day, model.PM), ShopID: shop.ID, Day: day,
		Type: model.PM, Start: mid, End: close, IsMandatory: mandatory,
	}

	mode := shop.Staffing.Mode
	if mode == "" {
		mode = model.CoverageFlexible
	}
	switch mode {
	case model.CoverageSplit:
		return []model.ShiftTemplate{am, pm}
	case model.CoverageFullDayOnly:
		return []model.ShiftTemplate{full}
	default:
		return []model.ShiftTemplate{am, pm, full}
	}
}
