// Package result 把求解/微调后的内部数据结构转换成 §6 定义的输出契约。
package result

import (
	"math"
	"sort"
	"time"

	"github.com/Ciantar0309/the-roster-system/pkg/roster/model"
)

// ShiftView 一条对外输出的班次记录。
type ShiftView struct {
	Date         string  `json:"date"`
	ShopID       int     `json:"shopId"`
	ShopName     string  `json:"shopName"`
	EmployeeID   int     `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Hours        float64 `json:"hours"`
	ShiftType    string  `json:"shiftType"`
	IsTrimmed    bool    `json:"isTrimmed"`
}

// Response 对外输出契约（§6）。
type Response struct {
	Success       bool            `json:"success"`
	Status        string          `json:"status"`
	Shifts        []ShiftView     `json:"shifts"`
	EmployeeHours map[int]float64 `json:"employeeHours"`
	Message       string          `json:"message,omitempty"`
}

// weekStartISO 是 yyyy-mm-dd 格式的周一日期，由调用方在边界处提供。
func dateForDay(weekStartISO string, day model.Weekday) string {
	t, err := time.Parse("2006-01-02", weekStartISO)
	if err != nil {
		return weekStartISO
	}
	return t.AddDate(0, 0, int(day)).Format("2006-01-02")
}

// FromSolve 把 model.SolveResult 转为 §6 输出结构，四舍五入到一位小数
// ("hours is a decimal number, one fractional digit sufficient")。
func FromSolve(weekStartISO string, shopNames map[int]string, sr *model.SolveResult) Response {
	resp := Response{
		Success:       sr.Success,
		Status:        string(sr.Status),
		EmployeeHours: roundMap(sr.EmployeeHours),
	}

	shifts := append([]model.Assignment(nil), sr.Shifts...)
	sort.Slice(shifts, func(i, j int) bool {
		if shifts[i].Day != shifts[j].Day {
			return shifts[i].Day < shifts[j].Day
		}
		if shifts[i].ShopID != shifts[j].ShopID {
			return shifts[i].ShopID < shifts[j].ShopID
		}
		return shifts[i].EmployeeID < shifts[j].EmployeeID
	})

	for _, a := range shifts {
		name := a.ShopName
		if name == "" {
			name = shopNames[a.ShopID]
		}
		resp.Shifts = append(resp.Shifts, ShiftView{
			Date:         dateForDay(weekStartISO, a.Day),
			ShopID:       a.ShopID,
			ShopName:     name,
			EmployeeID:   a.EmployeeID,
			EmployeeName: a.EmployeeName,
			StartTime:    a.Start.String(),
			EndTime:      a.End.String(),
			Hours:        round1(a.Hours()),
			ShiftType:    string(a.Type),
			IsTrimmed:    a.IsTrimmed,
		})
	}
	return resp
}

func roundMap(in map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(in))
	for k, v := range in {
		out[k] = round1(v)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
