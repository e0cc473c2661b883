package renderer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ByLCY/txt2img/layout"
)

// Format 是输出文件格式，由输出路径的扩展名推断。
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	SVG  Format = "svg"
	PDF  Format = "pdf"
)

var extensions = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
	".svg":  SVG,
	".pdf":  PDF,
}

// FormatFromPath infers the output format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("无法根据扩展名 %q 推断输出格式: %s", ext, path)
}

// Renderer 为排版提供字体度量，并将布局结果编码为指定格式的文件内容。
type Renderer interface {
	layout.Measurer
	Render(result *layout.Result, format Format) ([]byte, error)
	WriteFile(result *layout.Result, path string) error
}
