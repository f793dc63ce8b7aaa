// Package conv 提供从 YAML/JSON 解析结果（map[string]any）中取值的工具，用于 Node 构建器。
package conv

import "fmt"

// ToFloat64 将 any 转为 float64。
// 支持 float64、float32、int、int64、int32。
func ToFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	default:
		return 0, false
	}
}

// SliceAnyToString 将 []any（即 []interface{}）转为 []string。
// 元素为 string 直接保留，为数字时格式化为 "%v"；其余元素被跳过。
func SliceAnyToString(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := e.(string); ok {
			out = append(out, s)
			continue
		}
		if f, ok := ToFloat64(e); ok {
			out = append(out, fmt.Sprintf("%v", f))
		}
	}
	return out
}

// ConfigGet 从 map[string]any 按 key 取 T，取不到或类型不符时返回 defaultVal。
func ConfigGet[T any](m map[string]any, key string, defaultVal T) T {
	v, ok := m[key]
	if !ok {
		return defaultVal
	}
	t, ok := v.(T)
	if !ok {
		return defaultVal
	}
	return t
}

// ConfigGetInt 从 config 取 int。YAML 常得到 int，JSON 常得到 float64，此处兼容。
func ConfigGetInt(m map[string]any, key string, defaultVal int) int {
	f, ok := ToFloat64(m[key])
	if !ok {
		return defaultVal
	}
	return int(f)
}

// ConfigGetFloat64 从 config 取 float64，兼容整数写法（如 `min_score: 3`）。
func ConfigGetFloat64(m map[string]any, key string, defaultVal float64) float64 {
	f, ok := ToFloat64(m[key])
	if !ok {
		return defaultVal
	}
	return f
}
