// Package model 定义排班引擎的领域类型：员工、门店、班次模板、需求条目与最终排班结果。
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Weekday 星期索引，0=周一 … 6=周日，与门店每周配置数组下标一致。
type Weekday int

const (
	Mon Weekday = iota
	Tue
	Wed
	Thu
	Fri
	Sat
	Sun
)

// dayNames 周一到周日的标准长名称，下标即 Weekday 值。
var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// String 返回星期的标准长名称。
func (d Weekday) String() string {
	if d < Mon || d > Sun {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return dayNames[d]
}

// dayAliases 将短/长形式的星期名规范化为下标；取前三个字母小写后查表。
var dayAliases = map[string]Weekday{
	"mon": Mon, "tue": Tue, "wed": Wed, "thu": Thu, "fri": Fri, "sat": Sat, "sun": Sun,
}

// ParseWeekday 解析星期名（任意大小写的短/长形式）或数字字符串，失败返回 ok=false。
// 容错策略：输入的前三个字符（小写）用于归一化，数字字符串直接按下标解析。
func ParseWeekday(raw string) (Weekday, bool) {
	s := strings.TrimSpace(strings.ToLower(raw))
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, false
		}
		return Weekday(n), true
	}
	if len(s) < 3 {
		return 0, false
	}
	d, ok := dayAliases[s[:3]]
	return d, ok
}

// MinutesOfDay 自 00:00 起的分钟数，用于 HH:MM 的内部表示与算术运算。
type MinutesOfDay int

// ParseHHMM 解析 "HH:MM" 为自午夜起的分钟数。
func ParseHHMM(s string) (MinutesOfDay, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("model: invalid time %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("model: invalid hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("model: invalid minute in %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("model: time out of range %q", s)
	}
	return MinutesOfDay(h*60 + m), nil
}

// String 格式化为 "HH:MM"。
func (m MinutesOfDay) String() string {
	h := int(m) / 60
	mm := int(m) % 60
	return fmt.Sprintf("%02d:%02d", h, mm)
}

// Hours 返回以小时为单位的浮点值。
func (m MinutesOfDay) Hours() float64 {
	return float64(m) / 60.0
}

// Midpoint 返回 [a, b] 区间的整数分钟中点（向下取整）。
func Midpoint(a, b MinutesOfDay) MinutesOfDay {
	return a + (b-a)/2
}

// NormalizeName 规范化员工/门店名称：去除首尾空白并转小写，用于按名匹配
// （fixedDaysOff、excluded 列表等边界输入）。
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
