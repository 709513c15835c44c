//go:build !linux

package server

import (
	"context"
	"net"
)

// listen は標準のリスナーを作成する
// バックログはOSの既定値になる。unix系では Go が SO_REUSEADDR を設定する。
func listen(addr string, _ int) (net.Listener, error) {
	var lc net.ListenConfig
	return lc.Listen(context.Background(), "tcp4", addr)
}
