package layout

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// Wrap 按字符数贪心折行：一行放不下下一个词时换行，超长的词独占一行，词不会被拆开。
// width < 1 时按 1 处理。
// 宽度按终端显示列计算：东亚宽字符（中日韩文字等）占两列，其余字符占一列。
func Wrap(text string, width int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if width <= 1 {
		// 宽度为 1 时任何两个词都放不进同一行。
		return strings.Fields(text)
	}

	w := wordwrap.NewWriter(width)
	w.Breakpoints = nil // 连字符不作为断点
	_, _ = w.Write([]byte(text))
	_ = w.Close()

	var lines []string
	for _, ln := range strings.Split(w.String(), "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}
