package layout

import "fmt"

// 该文件定义布局结果，供渲染器绘制与调试 JSON 共用。坐标与尺寸单位均为像素。

// Result 保存画布尺寸与逐行排好位置的文本片段。
type Result struct {
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
	Margin     float64  `json:"margin"`
	Background Color    `json:"background"`
	Foreground Color    `json:"foreground"`
	Lines      []Line   `json:"lines"`
	UsedColors []string `json:"usedColors,omitempty"`
}

// Line 表示折行后的一行。Width/Height 为粗体字体下的测量值。
type Line struct {
	Content string   `json:"content"`
	Words   []string `json:"words"`
	Y       float64  `json:"y"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Runs    []Run    `json:"runs"`
}

// Run 是一次绘制调用：无高亮时为整行，有高亮时为单个词。Y 为行顶部。
type Run struct {
	Text  string    `json:"text"`
	X     float64   `json:"x"`
	Y     float64   `json:"y"`
	Style FontStyle `json:"style"`
	Color Color     `json:"color"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// FontStyle selects the regular or the bold font.
type FontStyle int

const (
	Regular FontStyle = iota
	Bold
)

func (s FontStyle) String() string {
	if s == Bold {
		return "bold"
	}
	return "regular"
}

// MarshalText 让调试 JSON 输出 "regular"/"bold" 而不是数字。
func (s FontStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *FontStyle) UnmarshalText(b []byte) error {
	switch string(b) {
	case "bold":
		*s = Bold
	case "regular", "":
		*s = Regular
	default:
		return fmt.Errorf("未知字体样式 %q", b)
	}
	return nil
}
