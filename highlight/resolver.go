package highlight

import (
	"log/slog"
	"slices"

	"github.com/ByLCY/txt2img/logger"
)

// Resolver picks the color of every highlighted word. It must see the words
// in document order: top to bottom, left to right.
type Resolver struct {
	spec   Spec
	used   []string
	logger *slog.Logger
}

// NewResolver creates a resolver with an empty usedColors accumulator.
func NewResolver(spec Spec, l *slog.Logger) *Resolver {
	if spec == nil {
		spec = Spec{}
	}
	return &Resolver{spec: spec, logger: logger.OrDiscard(l)}
}

// Used returns the colors recorded so far, in the order they were assigned.
func (r *Resolver) Used() []string {
	return slices.Clone(r.used)
}

// Resolve 返回 words[i] 应使用的颜色；ok 为 false 表示该词不需要高亮。
//
// 只有一种颜色的词直接返回该颜色。多色词先取第一个未用过的颜色（用尽时停在最后一个），
// 记入 usedColors，再参考同一行里紧邻的前后词：后一个词若是单色高亮词且其颜色属于本词候选，
// 优先采用；否则再看前一个词。
func (r *Resolver) Resolve(words []string, i int) (string, bool) {
	if i < 0 || i >= len(words) {
		return "", false
	}
	key := Clean(words[i])
	colors := r.spec.Colors(key)
	switch len(colors) {
	case 0:
		return "", false
	case 1:
		return colors[0], true
	}

	idx := 0
	for idx < len(colors)-1 && slices.Contains(r.used, colors[idx]) {
		idx++
	}
	candidate := colors[idx]
	r.used = append(r.used, candidate)

	var prev, next string
	if i > 0 {
		prev = Clean(words[i-1])
	}
	if i+1 < len(words) {
		next = Clean(words[i+1])
	}
	if !r.spec.Has(prev) && !r.spec.Has(next) {
		return candidate, true
	}
	if c, ok := r.single(next); ok && slices.Contains(colors, c) {
		return c, true
	}
	if c, ok := r.single(prev); ok && slices.Contains(colors, c) {
		return c, true
	}
	r.logger.Warn("无法根据上下文确定高亮颜色",
		slog.String("word", words[i]),
		slog.String("previous", prev),
		slog.String("next", next),
		slog.String("color", candidate),
	)
	return candidate, true
}

func (r *Resolver) single(key string) (string, bool) {
	colors := r.spec.Colors(key)
	if len(colors) != 1 {
		return "", false
	}
	return colors[0], true
}
