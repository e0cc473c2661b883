package canvasrenderer

import (
	"fmt"
	"image/color"
	"os"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/txt2img/fonts"
	"github.com/ByLCY/txt2img/layout"
	"github.com/ByLCY/txt2img/renderer"
)

// DefaultFontSize 是缺省字号（像素）。
const DefaultFontSize = 11

// Renderer draws layout results via github.com/tdewolff/canvas.
type Renderer struct {
	family *canvas.FontFamily
	sizePt float64

	faceMu sync.Mutex
	faces  map[faceKey]*canvas.FontFace
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Measurer   = (*Renderer)(nil)
)

type faceKey struct {
	style layout.FontStyle
	color layout.Color
}

// Options configures the canvas renderer.
type Options struct {
	Regular  Resource
	Bold     Resource
	FontSize float64 // 像素，<=0 时使用 DefaultFontSize
}

// Resource can be provided either by Bytes or by Path. Path accepts the
// "embed:" prefix for built-in fonts.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer loads both fonts. An empty resource falls back to the built-in
// Go font of the same style.
func NewRenderer(opts Options) (*Renderer, error) {
	size := opts.FontSize
	if size <= 0 {
		size = DefaultFontSize
	}
	family := canvas.NewFontFamily("txt2img")
	if err := loadInto(family, opts.Regular, fonts.Regular, canvas.FontRegular); err != nil {
		return nil, err
	}
	if err := loadInto(family, opts.Bold, fonts.Bold, canvas.FontBold); err != nil {
		return nil, err
	}
	return &Renderer{
		family: family,
		sizePt: layout.PxToPt(size),
		faces:  map[faceKey]*canvas.FontFace{},
	}, nil
}

func loadInto(family *canvas.FontFamily, res Resource, fallback string, style canvas.FontStyle) error {
	data, name, err := res.load(fallback)
	if err != nil {
		return err
	}
	if err := family.LoadFont(data, 0, style); err != nil {
		return fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	return nil
}

func (res Resource) load(fallback string) ([]byte, string, error) {
	if len(res.Bytes) > 0 {
		return res.Bytes, "<bytes>", nil
	}
	src := res.Path
	if src == "" {
		src = fallback
	}
	data, err := fonts.Load(src)
	if err != nil {
		return nil, src, err
	}
	return data, src, nil
}

// Measure implements layout.Measurer. Width is the advance width of text,
// height the font's line height, both in pixels.
func (r *Renderer) Measure(text string, style layout.FontStyle) (float64, float64) {
	face := r.face(style, layout.Black)
	return face.TextWidth(text), face.Metrics().LineHeight
}

// Render draws the result and encodes it as format.
func (r *Renderer) Render(result *layout.Result, format renderer.Format) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if result.Width <= 0 || result.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %gx%g", result.Width, result.Height)
	}

	c := canvas.New(result.Width, result.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	ctx.SetFillColor(colorFromLayout(result.Background))
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.DrawPath(0, 0, canvas.Rectangle(result.Width, result.Height))

	for _, line := range result.Lines {
		for _, run := range line.Runs {
			r.drawRun(ctx, run)
		}
	}
	return encode(c, result.Width, result.Height, format)
}

func (r *Renderer) drawRun(ctx *canvas.Context, run layout.Run) {
	if run.Text == "" {
		return
	}
	face := r.face(run.Style, run.Color)
	// 基线位置：行顶部加上字体上升部
	baseline := run.Y + face.Metrics().Ascent
	ctx.DrawText(run.X, baseline, canvas.NewTextLine(face, run.Text, canvas.Left))
}

func (r *Renderer) face(style layout.FontStyle, col layout.Color) *canvas.FontFace {
	key := faceKey{style: style, color: col}
	r.faceMu.Lock()
	defer r.faceMu.Unlock()

	if face, ok := r.faces[key]; ok {
		return face
	}
	face := r.family.Face(r.sizePt, colorFromLayout(col), canvasStyle(style), canvas.FontNormal)
	r.faces[key] = face
	return face
}

func canvasStyle(style layout.FontStyle) canvas.FontStyle {
	if style == layout.Bold {
		return canvas.FontBold
	}
	return canvas.FontRegular
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// WriteFile renders result into path, inferring the format from its extension.
func (r *Renderer) WriteFile(result *layout.Result, path string) error {
	format, err := renderer.FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := r.Render(result, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入图片文件 %s 失败: %w", path, err)
	}
	return nil
}
