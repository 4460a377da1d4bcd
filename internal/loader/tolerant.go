// Package loader 规范化原始门店/员工记录：每个子字段既可能以结构化值
// 到达，也可能以序列化字符串到达；loader 在读取失败、缺失或格式错误时一律
// 退回到文档化的默认值，绝不中止整个装载过程（唯一的例外是缺失强制字段，
// 见 errors.InvalidInput 的调用点）。
package loader

import (
	"encoding/json"
	"strings"
)

// decodeFlexible 把一个既可能是 JSON 对象、也可能是携带 JSON 文本的字符串
// 的 raw message 解出到 map[string]interface{}。任何失败都返回 ok=false，
// 调用方据此套用默认值而不是中止。
func decodeFlexible(raw json.RawMessage) (map[string]interface{}, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, false
	}

	var asMap map[string]interface{}
	if err := json.Unmarshal(raw, &asMap); err == nil {
		return asMap, true
	}

	// 可能到达的是一个被序列化成 JSON 字符串的对象，例如 `"{\"minAM\":2}"`。
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		asString = strings.TrimSpace(asString)
		if asString == "" {
			return nil, false
		}
		var inner map[string]interface{}
		if err := json.Unmarshal([]byte(asString), &inner); err == nil {
			return inner, true
		}
	}
	return nil, false
}

// getInt 从 map 容错取整数，接受 float64/int/int64/可解析字符串。
func getInt(m map[string]interface{}, key string, def int) int {
	if m == nil {
		return def
	}
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		if n, ok := parseIntLoose(v); ok {
			return n
		}
	}
	return def
}

// getFloat 从 map 容错取浮点数。
func getFloat(m map[string]interface{}, key string, def float64) float64 {
	if m == nil {
		return def
	}
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if f, ok := parseFloatLoose(v); ok {
			return f
		}
	}
	return def
}

// getBool 从 map 容错取布尔值，接受 bool 或 "true"/"false"/"1"/"0" 字符串。
func getBool(m map[string]interface{}, key string, def bool) bool {
	if m == nil {
		return def
	}
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return def
}

// getString 从 map 容错取字符串。
func getString(m map[string]interface{}, key string, def string) string {
	if m == nil {
		return def
	}
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return def
}

func parseIntLoose(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}

func parseFloatLoose(s string) (float64, bool) {
	var f float64
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &f); err != nil {
		return 0, false
	}
	return f, true
}
