package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/txt2img/binding"
	"github.com/ByLCY/txt2img/fonts"
	"github.com/ByLCY/txt2img/highlight"
	"github.com/ByLCY/txt2img/layout"
	"github.com/ByLCY/txt2img/logger"
	"github.com/ByLCY/txt2img/renderer"
	canvasrenderer "github.com/ByLCY/txt2img/renderer/canvas"
)

const defaultOutput = "output_img.png"

type options struct {
	inputFile        string
	output           string
	fontSize         int
	margin           int
	fontPath         string
	fontPathBold     string
	width            int
	foreground       string
	background       string
	highlights       highlightWords
	legacyWhitespace bool
	dataJSON         string
	debug            string
	quiet            bool
}

// highlightWords 收集 -hw 的取值；可重复传入，按顺序拼接。
type highlightWords []string

func (h *highlightWords) String() string { return strings.Join(*h, " ") }

func (h *highlightWords) Set(v string) error {
	*h = append(*h, v)
	return nil
}

// tokens returns every WORD-#RRGGBB token across all -hw values.
func (h highlightWords) tokens() []string {
	var out []string
	for _, v := range h {
		out = append(out, strings.Fields(v)...)
	}
	return out
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	level := slog.LevelInfo
	if opts.quiet {
		level = slog.LevelError
	}
	l := logger.New(nil, level)

	if err := run(opts, os.Stdin, l); err != nil {
		l.Error("生成图片失败", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if !opts.quiet {
		fmt.Printf("已生成图片：%s\n", opts.output)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("txt2img", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "从文本生成图片。文本来自 --input-file 指定的文件，未指定时读取标准输入。")
		fmt.Fprintln(stderr, "\nUsage: txt2img [flags]")
		fs.PrintDefaults()
	}

	str := func(p *string, short, long, value, usage string) {
		fs.StringVar(p, short, value, usage)
		fs.StringVar(p, long, value, usage)
	}
	num := func(p *int, short, long string, value int, usage string) {
		fs.IntVar(p, short, value, usage)
		fs.IntVar(p, long, value, usage)
	}

	str(&opts.inputFile, "i", "input-file", "", "读取文本的文件路径；为空时读取标准输入")
	str(&opts.output, "o", "output", defaultOutput, "输出图片路径，格式由扩展名决定 (png/jpg/gif/bmp/tiff/svg/pdf)")
	num(&opts.fontSize, "s", "font-size", canvasrenderer.DefaultFontSize, "字号（像素）")
	num(&opts.margin, "m", "margin", layout.DefaultMargin, "图片边缘与文字之间的边距（像素）")
	str(&opts.fontPath, "f", "font-path", fonts.Regular, "常规字体 (TrueType/OpenType) 路径，embed:<name> 使用内置字体")
	str(&opts.fontPathBold, "fb", "font-path-bold", fonts.Bold, "高亮词使用的粗体字体路径")
	num(&opts.width, "w", "width", layout.DefaultWidth, "每行字符数")
	str(&opts.foreground, "fg", "foreground-color", "#000000", "前景色")
	str(&opts.background, "bg", "background-color", "#ffffff", "背景色")
	fs.Var(&opts.highlights, "hw", "以空格分隔的 WORD-#RRGGBB 列表，可重复传入")
	fs.Var(&opts.highlights, "highlight-words", "以空格分隔的 WORD-#RRGGBB 列表，可重复传入")
	fs.BoolVar(&opts.legacyWhitespace, "legacy-whitespace", false, "只折叠成对的空格（兼容旧版输出）")
	fs.StringVar(&opts.dataJSON, "data", "", "绑定到文本中 ${path} 占位符的 JSON 数据")
	fs.StringVar(&opts.debug, "debug", "", "布局调试 JSON 输出路径")
	fs.BoolVar(&opts.quiet, "q", false, "只输出致命错误")
	fs.BoolVar(&opts.quiet, "quiet", false, "只输出致命错误")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("无法识别的参数: %s", strings.Join(fs.Args(), " "))
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return nil, err
	}
	return opts, nil
}

func (o *options) validate() error {
	if o.fontSize <= 0 {
		return fmt.Errorf("字号必须大于 0: %d", o.fontSize)
	}
	if o.margin < 0 {
		return fmt.Errorf("边距不能为负数: %d", o.margin)
	}
	if o.width < 1 {
		return fmt.Errorf("行宽必须至少为 1: %d", o.width)
	}
	if o.output == "" {
		return fmt.Errorf("输出路径不能为空")
	}
	return nil
}

// run 串联读取、排版与渲染。
func run(opts *options, stdin io.Reader, l *slog.Logger) error {
	if err := opts.validate(); err != nil {
		return err
	}
	fg, err := layout.ParseColor(opts.foreground)
	if err != nil {
		return fmt.Errorf("前景色无效: %w", err)
	}
	bg, err := layout.ParseColor(opts.background)
	if err != nil {
		return fmt.Errorf("背景色无效: %w", err)
	}
	if _, err := renderer.FormatFromPath(opts.output); err != nil {
		return err
	}

	text, err := readInput(opts.inputFile, stdin)
	if err != nil {
		return err
	}
	if opts.dataJSON != "" {
		data, err := binding.ParseData(opts.dataJSON)
		if err != nil {
			return err
		}
		var missing []string
		text, missing = binding.Interpolate(text, data)
		for _, path := range missing {
			l.Warn("占位符未解析", slog.String("path", path))
		}
	}

	r, err := newRenderer(opts)
	if err != nil {
		return err
	}

	result, err := layout.Build(text, layout.BuildOptions{
		Measurer:         r,
		Width:            opts.width,
		Margin:           float64(opts.margin),
		Foreground:       fg,
		Background:       bg,
		Highlights:       highlight.ParseTokens(opts.highlights.tokens(), l),
		LegacyWhitespace: opts.legacyWhitespace,
		Logger:           l,
	})
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if opts.debug != "" {
		if err := layout.WriteDebugJSON(result, opts.debug); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	if dir := filepath.Dir(opts.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录 %s 失败: %w", dir, err)
		}
	}
	return r.WriteFile(result, opts.output)
}

func newRenderer(opts *options) (renderer.Renderer, error) {
	r, err := canvasrenderer.NewRenderer(canvasrenderer.Options{
		Regular:  canvasrenderer.Resource{Path: opts.fontPath},
		Bold:     canvasrenderer.Resource{Path: opts.fontPathBold},
		FontSize: float64(opts.fontSize),
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("读取标准输入失败: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("无法读取输入文件 %s: %w", path, err)
	}
	return string(data), nil
}
