// Package trim 实现求解后的确定性微调：Sub-pass A 在不跌破覆盖底线的前提下
// 缩短超编班次，Sub-pass B 把工时不足的员工延伸进既有班次的空档（§4.6）。
package trim

import (
	"fmt"
	"sort"

	"github.com/Ciantar0309/the-roster-system/pkg/roster/model"
)

const maxShiftHours = 8

// Apply 依次执行 Sub-pass A 与 Sub-pass B，返回一份新的指派切片；两个子阶段
// 都是幂等的：对同一份输入重复调用得到相同结果（§8 property 10）。
func Apply(shifts []model.Assignment, shops []model.Shop, demands []model.DemandEntry, employees []model.Employee) []model.Assignment {
	out := append([]model.Assignment(nil), shifts...)

	shopByID := map[int]model.Shop{}
	for _, s := range shops {
		shopByID[s.ID] = s
	}
	demandByKey := map[string]model.DemandEntry{}
	for _, d := range demands {
		demandByKey[shopDayKey(d.ShopID, d.Day)] = d
	}

	out = trimOverstaffedShifts(out, shopByID, demandByKey)
	out = extendUnderHourEmployees(out, shopByID, employees)
	return out
}

func shopDayKey(shopID int, day model.Weekday) string {
	return fmt.Sprintf("%d_%d", shopID, day)
}

// trimOverstaffedShifts — Sub-pass A.
func trimOverstaffedShifts(shifts []model.Assignment, shops map[int]model.Shop, demands map[string]model.DemandEntry) []model.Assignment {
	groups := map[string][]int{}
	for i, s := range shifts {
		if s.Day == model.Sun {
			continue
		}
		key := shopDayKey(s.ShopID, s.Day)
		groups[key] = append(groups[key], i)
	}

	for key, idxs := range groups {
		d, ok := demands[key]
		if !ok || d.IsSolo || len(idxs) <= 2 {
			continue
		}
		shop, ok := shops[d.ShopID]
		if !ok || !shop.Trimming.Enabled {
			continue
		}

		if model.IsLargeShop(shop.Name) && countByType(shifts, idxs, model.AM)+countByType(shifts, idxs, model.FULL) >= 3 {
			trimLargeShopAnchors(shifts, idxs, shop)
			continue
		}

		if shop.Trimming.TrimAM {
			trimHalf(shifts, idxs, shop, d, model.AM, shop.Trimming.TrimFromStart)
		}
		if shop.Trimming.TrimPM {
			trimHalf(shifts, idxs, shop, d, model.PM, shop.Trimming.TrimFromEnd)
		}
	}
	return shifts
}

func countByType(shifts []model.Assignment, idxs []int, t model.ShiftType) int {
	n := 0
	for _, i := range idxs {
		if shifts[i].Type == t {
			n++
		}
	}
	return n
}

// trimHalf shortens the AM start (or PM end) of the longest shifts above
// shop.Trimming.TrimWhenMoreThan, longest first; employees' weekly hours
// play no part in the order. It does so without dropping the half-day
// coverage count below its floor or the headcount present at close below
// shop.MinStaffAtClose.
func trimHalf(shifts []model.Assignment, idxs []int, shop model.Shop, d model.DemandEntry, half model.ShiftType, trimHours float64) {
	var candidates []int
	for _, i := range idxs {
		if shifts[i].Type == half || shifts[i].Type == model.FULL {
			candidates = append(candidates, i)
		}
	}
	cov := len(candidates)
	floor := d.EffectiveAMFloor()
	if half == model.PM {
		floor = d.EffectivePMFloor()
	}

	numToTrim := cov - shop.Trimming.TrimWhenMoreThan
	if maxTrim := cov - floor; numToTrim > maxTrim {
		numToTrim = maxTrim
	}
	if numToTrim <= 0 {
		return
	}

	if half == model.PM {
		atClose := 0
		for _, i := range candidates {
			if shifts[i].End >= shop.Close {
				atClose++
			}
		}
		if maxTrim := atClose - shop.MinStaffAtClose; numToTrim > maxTrim {
			numToTrim = maxTrim
		}
		if numToTrim <= 0 {
			return
		}
	}

	// Candidates already marked IsTrimmed count toward numToTrim so a second
	// Apply over the same input doesn't pick a different shift to trim
	// (required for idempotency, §8 property 10). The flag does not record
	// which half was trimmed, so a FULL shift whose start the AM pass just
	// trimmed also counts toward the PM pass.
	alreadyTrimmed := 0
	for _, i := range candidates {
		if shifts[i].IsTrimmed {
			alreadyTrimmed++
		}
	}
	numToTrim -= alreadyTrimmed
	if numToTrim <= 0 {
		return
	}

	var untrimmed []int
	for _, i := range candidates {
		if !shifts[i].IsTrimmed {
			untrimmed = append(untrimmed, i)
		}
	}
	sort.Slice(untrimmed, func(i, j int) bool {
		return shifts[untrimmed[i]].Hours() > shifts[untrimmed[j]].Hours()
	})
	candidates = untrimmed

	trimMinutes := model.MinutesOfDay(trimHours * 60)
	for k := 0; k < numToTrim && k < len(candidates); k++ {
		i := candidates[k]
		if half == model.AM {
			newStart := shifts[i].Start + trimMinutes
			if newStart < shifts[i].End {
				shifts[i].Start = newStart
				shifts[i].IsTrimmed = true
			}
		} else {
			newEnd := shifts[i].End - trimMinutes
			if newEnd > shifts[i].Start {
				shifts[i].End = newEnd
				shifts[i].IsTrimmed = true
			}
		}
	}
}

// trimLargeShopAnchors implements the named large-shop special case: the two
// longest AM/FULL shifts stay full length as anchors, the rest are trimmed
// into a short mid-day slice (§4.6).
func trimLargeShopAnchors(shifts []model.Assignment, idxs []int, shop model.Shop) {
	var candidates []int
	for _, i := range idxs {
		if shifts[i].Type == model.AM || shifts[i].Type == model.FULL {
			candidates = append(candidates, i)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return shifts[candidates[i]].Hours() > shifts[candidates[j]].Hours()
	})

	startTrim := model.MinutesOfDay(shop.Trimming.TrimFromStart * 60)
	endTrim := model.MinutesOfDay(shop.Trimming.TrimFromEnd * 60)
	for k := 2; k < len(candidates); k++ {
		i := candidates[k]
		if shifts[i].IsTrimmed {
			continue // already anchored/trimmed by a prior Apply; keep idempotent.
		}
		newStart := shifts[i].Start + startTrim
		newEnd := shifts[i].End - endTrim
		if newEnd > newStart {
			shifts[i].Start = newStart
			shifts[i].End = newEnd
			shifts[i].IsTrimmed = true
		}
	}
}

// extendUnderHourEmployees — Sub-pass B.
func extendUnderHourEmployees(shifts []model.Assignment, shops map[int]model.Shop, employees []model.Employee) []model.Assignment {
	hours := map[int]float64{}
	for _, s := range shifts {
		if s.Day != model.Sun {
			hours[s.EmployeeID] += s.Hours()
		}
	}

	type shortfall struct {
		emp   model.Employee
		hours float64
	}
	var under []shortfall
	for _, e := range employees {
		need := e.WeeklyTargetHours() - hours[e.ID]
		if need > 0 {
			under = append(under, shortfall{emp: e, hours: need})
		}
	}
	sort.Slice(under, func(i, j int) bool { return under[i].hours > under[j].hours })

	byEmployee := map[int][]int{}
	for i, s := range shifts {
		byEmployee[s.EmployeeID] = append(byEmployee[s.EmployeeID], i)
	}

	for _, u := range under {
		budgetMinutes := model.MinutesOfDay(ceilHours(u.hours) * 60)
		for _, i := range byEmployee[u.emp.ID] {
			if budgetMinutes <= 0 {
				break
			}
			s := shifts[i]
			if s.Day == model.Sun {
				continue
			}
			shop, ok := shops[s.ShopID]
			if !ok || !shop.ExtensionEligible {
				continue
			}
			capMinutes := model.MinutesOfDay(maxShiftHours*60) - (s.End - s.Start)
			if capMinutes <= 0 {
				continue
			}
			grant := capMinutes
			if grant > budgetMinutes {
				grant = budgetMinutes
			}
			shifts[i].End += grant
			budgetMinutes -= grant
		}
	}
	return shifts
}

func ceilHours(h float64) int {
	n := int(h)
	if float64(n) < h {
		n++
	}
	return n
}
