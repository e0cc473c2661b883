package binding

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// ParseData 解析 --data 传入的 JSON。数字保留原始写法，避免 1000000 被输出为 1e+06。
func ParseData(raw string) (any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
	}
	return data, nil
}

// Interpolate 将文本中的 ${path.to.value} 或 ${items[0].name} 替换为 data 中的值。
// 无法解析的占位符保持原样，其路径按出现顺序通过 missing 返回。
func Interpolate(text string, data any) (out string, missing []string) {
	if data == nil {
		return text, nil
	}
	out = exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(exprPattern.FindStringSubmatch(match)[1])
		if val, ok := Lookup(data, path); ok {
			return format(val)
		}
		missing = append(missing, path)
		return match
	})
	return out, missing
}

// Lookup resolves a dotted path with optional [index] suffixes.
func Lookup(data any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := splitSegment(segment)
		if !ok {
			return nil, false
		}
		if name != "" {
			obj, isObj := current.(map[string]any)
			if !isObj {
				return nil, false
			}
			if current, ok = obj[name]; !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			arr, isArr := current.([]any)
			if !isArr || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
		}
	}
	return current, true
}

// splitSegment 把 "items[1][0]" 拆成名字与下标列表。
func splitSegment(segment string) (string, []int, bool) {
	name, rest, found := strings.Cut(segment, "[")
	if !found {
		return name, nil, name != ""
	}
	var indexes []int
	rest = "[" + rest
	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if rest[0] != '[' || end == -1 {
			return "", nil, false
		}
		idx, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, idx)
		rest = rest[end+1:]
	}
	return name, indexes, true
}

func format(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}
