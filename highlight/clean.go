package highlight

import "strings"

// Clean 去掉词尾的所有格（'s 或单独的 '），再去掉所有非 ASCII 字母字符，得到匹配用的 key。
// 大小写保持不变。
func Clean(token string) string {
	token = trimPossessive(token)
	var b strings.Builder
	b.Grow(len(token))
	for i := 0; i < len(token); i++ {
		c := token[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func trimPossessive(token string) string {
	for _, suffix := range []string{"'s", "’s", "'", "’"} {
		if strings.HasSuffix(token, suffix) {
			return strings.TrimSuffix(token, suffix)
		}
	}
	return token
}
