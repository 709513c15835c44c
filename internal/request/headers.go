package request

import (
	"strings"
)

// Headers はヘッダー名を小文字に正規化したマップ
// 同じ名前が複数回現れた場合は最後の値が残る
type Headers map[string]string

func NewHeaders() Headers {
	return make(Headers)
}

// parseLine は "Name: Value" 形式の1行を取り込む
// ": " を含まない行は無視する
func (h Headers) parseLine(line string) {
	name, value, ok := strings.Cut(line, headerKVDelim)
	if !ok {
		return
	}
	h.Set(name, value)
}

func (h Headers) Get(key string) string {
	return h[strings.ToLower(key)]
}

func (h Headers) Set(key, value string) {
	h[strings.ToLower(key)] = value
}
