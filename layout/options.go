package layout

import (
	"log/slog"

	"github.com/ByLCY/txt2img/highlight"
)

// 命令行缺省值。
const (
	DefaultWidth  = 50
	DefaultMargin = 6
)

// BuildOptions 配置布局阶段所需的依赖与参数。
type BuildOptions struct {
	Measurer         Measurer
	Width            int // 每行字符数
	Margin           float64
	Foreground       Color
	Background       Color
	Highlights       highlight.Spec
	LegacyWhitespace bool
	Logger           *slog.Logger
}

// Measurer 测量一段文本在指定字体下的宽高（像素）。
type Measurer interface {
	Measure(text string, style FontStyle) (width, height float64)
}
