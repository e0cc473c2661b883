package layout

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// 缺省前景/背景色。
var (
	Black = Color{R: 0, G: 0, B: 0}
	White = Color{R: 255, G: 255, B: 255}
)

// ParseColor 解析 #RGB 或 #RRGGBB 形式的颜色（# 可省略）。
func ParseColor(value string) (Color, error) {
	v := strings.TrimSpace(value)
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	if n := len(v) - 1; n != 3 && n != 6 {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析: 应为 #RGB 或 #RRGGBB", value)
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析: %w", value, err)
	}
	r, g, b := c.RGB255()
	return Color{R: int(r), G: int(g), B: int(b)}, nil
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
