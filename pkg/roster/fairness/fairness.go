// Package fairness 计算一次求解结果在员工之间的工时分布不均度，供监控面板
// 观察目标工时软约束（cpsolver/weights.go 的 weightPerHourUnderTarget 与
// weightOvertimeTier*）在
// 实践中的效果，不参与求解本身。
package fairness

import "sort"

// Gini 返回 hours 的基尼系数：0 表示完全均等，趋近 1 表示高度不均。
func Gini(hours map[int]float64) float64 {
	if len(hours) == 0 {
		return 0
	}
	values := make([]float64, 0, len(hours))
	for _, h := range hours {
		values = append(values, h)
	}
	sort.Float64s(values)

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	if sum == 0 {
		return 0
	}

	n := len(values)
	cumulative := 0.0
	gini := 0.0
	for i, v := range values {
		cumulative += v
		gini += (2*float64(i+1) - float64(n) - 1) * v
	}
	_ = cumulative
	return gini / (float64(n) * sum)
}

// DeviationFromTarget 返回每位员工实际工时相对其周目标工时的偏差比例
// （(actual-target)/target），target 为 0 的员工被跳过。
func DeviationFromTarget(hours map[int]float64, targets map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(hours))
	for empID, actual := range hours {
		target := targets[empID]
		if target == 0 {
			continue
		}
		out[empID] = (actual - target) / target
	}
	return out
}
