package highlight

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/txt2img/logger"
)

// colorLen 是 "#RRGGBB" 的长度。
const colorLen = 7

var (
	// 每个 token 只由 "段" 与 "-" 组成；一段要么以 # 开头（颜色），要么是普通词。
	tokenLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Color", Pattern: `#[^-\s]*`},
		{Name: "Word", Pattern: `[^-\s]+`},
		{Name: "Dash", Pattern: `-`},
	})

	tokenParser = participle.MustBuild[Token](
		participle.Lexer(tokenLexer),
	)
)

// Token is one WORD-#RRGGBB entry of the highlight list.
type Token struct {
	Word  string `parser:"@(Color | Word)?"`
	Color string `parser:"'-' @(Color | Word)?"`
}

// Spec maps a clean word to the ordered colors it may be drawn with.
type Spec map[string][]string

// Colors returns the candidate colors of key, nil when key is not highlighted.
func (s Spec) Colors(key string) []string {
	if key == "" {
		return nil
	}
	return s[key]
}

// Has reports whether key is a highlight key.
func (s Spec) Has(key string) bool {
	return len(s.Colors(key)) > 0
}

// Parse splits s on whitespace and parses every token. Malformed tokens are
// reported through l and skipped; Parse never fails.
func Parse(s string, l *slog.Logger) Spec {
	return ParseTokens(strings.Fields(s), l)
}

// ParseTokens 逐个解析 token，同一个词可以出现多次，颜色按出现顺序追加。
func ParseTokens(tokens []string, l *slog.Logger) Spec {
	l = logger.OrDiscard(l)
	spec := Spec{}
	for _, raw := range tokens {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		tok, err := ParseToken(raw)
		if err != nil {
			l.Warn("跳过格式错误的高亮词", slog.String("token", raw), slog.String("reason", err.Error()))
			continue
		}
		key := Clean(tok.Word)
		if key == "" {
			l.Warn("跳过格式错误的高亮词", slog.String("token", raw), slog.String("reason", "词中没有字母"))
			continue
		}
		spec[key] = append(spec[key], tok.Color)
	}
	return spec
}

// ParseToken parses and validates a single WORD-#RRGGBB token.
func ParseToken(raw string) (*Token, error) {
	tok, err := tokenParser.ParseString("", raw)
	if err != nil {
		return nil, fmt.Errorf("应为 WORD-#RRGGBB 两段格式: %w", err)
	}
	if !strings.HasPrefix(tok.Color, "#") || len(tok.Color) != colorLen {
		return nil, fmt.Errorf("颜色 %q 不是 #RRGGBB 格式", tok.Color)
	}
	return tok, nil
}
