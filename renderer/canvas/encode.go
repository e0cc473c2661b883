package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/ByLCY/txt2img/layout"
	"github.com/ByLCY/txt2img/renderer"
)

const jpegQuality = 95

func encode(c *canvas.Canvas, width, height float64, format renderer.Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case renderer.SVG:
		w := svg.New(&buf, width, height, nil)
		c.RenderTo(w)
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
		return buf.Bytes(), nil
	case renderer.PDF:
		w := pdf.New(&buf, width, height, nil)
		c.RenderTo(w)
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
		return buf.Bytes(), nil
	}

	img := rasterize(c)
	var err error
	switch format {
	case renderer.PNG:
		err = png.Encode(&buf, img)
	case renderer.JPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	case renderer.GIF:
		err = gif.Encode(&buf, img, nil)
	case renderer.BMP:
		err = bmp.Encode(&buf, img)
	case renderer.TIFF:
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return nil, fmt.Errorf("不支持的输出格式 %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("编码 %s 失败: %w", format, err)
	}
	return buf.Bytes(), nil
}

// rasterize 以 1 像素/mm 的分辨率光栅化画布。
func rasterize(c *canvas.Canvas) image.Image {
	return rasterizer.Draw(c, canvas.DPMM(layout.PxPerMm), canvas.DefaultColorSpace)
}
