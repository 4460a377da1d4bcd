// Package sanitycheck 在微调阶段之后对最终指派做一次防御性复核：每人每天至多
// 一班与起止合法已由 CP 模型和模板保证，但 trim 阶段会直接改写 Start/End，这里
// 独立重新验证。8 小时单班上限不在 CP 模型中：整日 FULL 模板覆盖整个营业时段，
// 可能超过 8 小时，此时本检查会报告 shift_too_long。
package sanitycheck

import (
	"fmt"

	"github.com/Ciantar0309/the-roster-system/pkg/roster/model"
)

// IssueType 复核发现的问题类别。
type IssueType string

const (
	IssueOverlap        IssueType = "overlap"       // 同一员工同一天存在时间重叠的班次
	IssueShiftTooLong   IssueType = "shift_too_long" // 单班超过 8 小时上限
	IssueZeroOrNegative IssueType = "invalid_span"   // 班次起止时间非法
)

// Issue 一条复核发现。
type Issue struct {
	Type       IssueType
	EmployeeID int
	Day        model.Weekday
	Message    string
}

const maxShiftHours = 8

// Check 对微调后的最终指派列表做复核，返回发现的问题（通常应为空）。
func Check(shifts []model.Assignment) []Issue {
	var issues []Issue
	byEmployeeDay := map[int]map[model.Weekday][]model.Assignment{}

	for _, s := range shifts {
		if s.End <= s.Start {
			issues = append(issues, Issue{
				Type: IssueZeroOrNegative, EmployeeID: s.EmployeeID, Day: s.Day,
				Message: fmt.Sprintf("班次起止时间非法: start=%s end=%s", s.Start, s.End),
			})
			continue
		}
		if s.Hours() > maxShiftHours {
			issues = append(issues, Issue{
				Type: IssueShiftTooLong, EmployeeID: s.EmployeeID, Day: s.Day,
				Message: fmt.Sprintf("单班 %.1f 小时，超过 %d 小时上限", s.Hours(), maxShiftHours),
			})
		}
		if byEmployeeDay[s.EmployeeID] == nil {
			byEmployeeDay[s.EmployeeID] = map[model.Weekday][]model.Assignment{}
		}
		byEmployeeDay[s.EmployeeID][s.Day] = append(byEmployeeDay[s.EmployeeID][s.Day], s)
	}

	for empID, byDay := range byEmployeeDay {
		for day, group := range byDay {
			if len(group) < 2 {
				continue
			}
			for i := 0; i < len(group); i++ {
				for j := i + 1; j < len(group); j++ {
					if overlaps(group[i], group[j]) {
						issues = append(issues, Issue{
							Type: IssueOverlap, EmployeeID: empID, Day: day,
							Message: "同一员工同一天存在时间重叠的班次",
						})
					}
				}
			}
		}
	}
	return issues
}

func overlaps(a, b model.Assignment) bool {
	return a.Start < b.End && b.Start < a.End
}
