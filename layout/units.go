package layout

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// PxPerMm 是渲染分辨率：画布的 1mm 对应输出图像的 1 像素，布局中的像素值可直接当作 mm 使用。
const PxPerMm = 1.0

// PxToPt 将像素字号转换为字体系统使用的 pt。
func PxToPt(px float64) float64 { return px / PxPerMm * MmToPt }
