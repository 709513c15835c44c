// Package router は (パス, メソッド) の組からハンドラを引くルーティング表を提供します。
//
// 表は Builder で組み立て、Build で固定します。固定後の Table は読み取り専用なので
// 複数の接続から同時に参照してもロックは不要です。
package router

import (
	"strings"

	"github.com/baytasmert/demo-webserver/internal/response"
)

// Handler はリクエストボディからレスポンスを生成する
// 接続やソケットには触れない
type Handler func(body []byte) (response.Response, error)

// Key はルートを識別する (パス, メソッド) の組
type Key struct {
	Path   string
	Method string // 常に大文字
}

func newKey(path, method string) Key {
	return Key{Path: path, Method: strings.ToUpper(method)}
}

// Builder はサーバー起動前にルートを登録するためのもの
type Builder struct {
	routes map[Key]Handler
}

func NewBuilder() *Builder {
	return &Builder{routes: make(map[Key]Handler)}
}

// Register はルートを登録する
// 同じキーへの再登録は前の登録を黙って置き換える
func (b *Builder) Register(path, method string, h Handler) *Builder {
	b.routes[newKey(path, method)] = h
	return b
}

// Build は現在の登録内容を複製した Table を返す
// 以降の Builder への変更は Table に影響しない
func (b *Builder) Build() *Table {
	routes := make(map[Key]Handler, len(b.routes))
	for k, h := range b.routes {
		routes[k] = h
	}
	return &Table{routes: routes}
}

// Table は固定済みのルーティング表
type Table struct {
	routes map[Key]Handler
}

// Lookup は完全一致でハンドラを探す
// メソッドは大文字化しないので "get" は "GET" の登録に一致しない
func (t *Table) Lookup(path, method string) (Handler, bool) {
	h, ok := t.routes[Key{Path: path, Method: method}]
	return h, ok
}
