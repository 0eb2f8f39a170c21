package utils

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

// Slugify 把运动名称转成 URL 友好的短横线形式，
// 汉字逐字转成拼音，其余字符转小写，非字母数字一律作为分隔符处理。
func Slugify(name string) string {
	var parts []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}

	for _, r := range name {
		switch {
		case unicode.Is(unicode.Han, r):
			flush()
			if py := pinyin.LazyConvert(string(r), nil); len(py) > 0 {
				parts = append(parts, py[0])
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			current.WriteRune(unicode.ToLower(r))
		default:
			flush()
		}
	}
	flush()

	return strings.Join(parts, "-")
}
