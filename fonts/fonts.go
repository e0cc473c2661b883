package fonts

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体的引用名，可直接作为 --font-path / --font-path-bold 的取值。
const (
	Regular = "embed:goregular"
	Bold    = "embed:gobold"
)

var builtin = map[string][]byte{
	"goregular":  goregular.TTF,
	"gobold":     gobold.TTF,
	"goitalic":   goitalic.TTF,
	"gomono":     gomono.TTF,
	"gomonobold": gomonobold.TTF,
}

// Load 返回字体的字节数据。src 可写为 "embed:gobold" 引用内置字体，其余按文件路径读取。
func Load(src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("字体路径为空")
	}
	if name, ok := strings.CutPrefix(src, "embed:"); ok {
		data, ok := builtin[name]
		if !ok {
			return nil, fmt.Errorf("找不到内置字体 %s（可选：%s）", src, strings.Join(Names(), ", "))
		}
		return data, nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("读取字体文件 %s 失败: %w", src, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("字体文件 %s 为空", src)
	}
	return data, nil
}

// Names lists the built-in font names.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
