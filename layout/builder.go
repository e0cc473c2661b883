package layout

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/ByLCY/txt2img/highlight"
	"github.com/ByLCY/txt2img/logger"
)

// Build 归一化并折行文本，测量画布尺寸，再按文档顺序为每一行生成绘制片段。
//
// 画布尺寸始终使用粗体度量：粗体字形不窄于常规字形，高亮词不会越界。
func Build(text string, opts BuildOptions) (*Result, error) {
	if opts.Measurer == nil {
		return nil, fmt.Errorf("layout: 缺少测量后端 Measurer")
	}
	if opts.Margin < 0 {
		return nil, fmt.Errorf("layout: margin 不能为负数: %g", opts.Margin)
	}
	width := opts.Width
	if width == 0 {
		width = DefaultWidth
	}
	l := logger.OrDiscard(opts.Logger)

	if opts.LegacyWhitespace {
		text = NormalizeLegacy(text)
	} else {
		text = Normalize(text)
	}
	contents := Wrap(text, width)

	// 测量预处理：只用粗体。
	lines := make([]Line, len(contents))
	maxWidth, maxHeight := 0.0, 0.0
	for i, content := range contents {
		w, h := opts.Measurer.Measure(content, Bold)
		lines[i] = Line{
			Content: content,
			Words:   strings.Fields(content),
			Width:   w,
			Height:  h,
		}
		maxWidth = math.Max(maxWidth, w)
		maxHeight = math.Max(maxHeight, h)
	}

	res := &Result{
		Width:      math.Max(math.Ceil(maxWidth)+opts.Margin, 1),
		Height:     math.Max(float64(len(lines))*math.Ceil(maxHeight)+opts.Margin, 1),
		Margin:     opts.Margin,
		Background: opts.Background,
		Foreground: opts.Foreground,
		Lines:      lines,
	}

	b := &runBuilder{
		measurer: opts.Measurer,
		fg:       opts.Foreground,
		left:     opts.Margin / 2,
		colors:   map[string]Color{},
		logger:   l,
	}
	if len(opts.Highlights) > 0 {
		b.resolver = highlight.NewResolver(opts.Highlights, l)
	}

	offset := opts.Margin / 2
	for i := range res.Lines {
		line := &res.Lines[i]
		line.Y = offset
		line.Runs = b.lineRuns(line)
		offset += line.Height
	}
	if b.resolver != nil {
		res.UsedColors = b.resolver.Used()
	}
	return res, nil
}

// runBuilder 持有绘制循环中唯一的可变状态：颜色解析器（usedColors）。
type runBuilder struct {
	measurer Measurer
	resolver *highlight.Resolver
	fg       Color
	left     float64
	colors   map[string]Color
	logger   *slog.Logger
}

func (b *runBuilder) lineRuns(line *Line) []Run {
	if b.resolver == nil {
		return []Run{{Text: line.Content, X: b.left, Y: line.Y, Style: Regular, Color: b.fg}}
	}

	runs := make([]Run, 0, len(line.Words))
	x := b.left
	for i, word := range line.Words {
		style, col := Regular, b.fg
		if hex, ok := b.resolver.Resolve(line.Words, i); ok {
			style, col = Bold, b.color(hex)
		}
		runs = append(runs, Run{Text: word, X: x, Y: line.Y, Style: style, Color: col})
		advance, _ := b.measurer.Measure(word+" ", style)
		x += advance
	}
	return runs
}

// color 解析高亮颜色；解析失败时退回前景色，同一颜色只提示一次。
func (b *runBuilder) color(hex string) Color {
	if c, ok := b.colors[hex]; ok {
		return c
	}
	c, err := ParseColor(hex)
	if err != nil {
		b.logger.Warn("高亮颜色无效，改用前景色",
			slog.String("color", hex),
			slog.String("fallback", b.fg.Hex()),
			slog.String("error", err.Error()),
		)
		c = b.fg
	}
	b.colors[hex] = c
	return c
}
