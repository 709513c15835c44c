package server

import (
	"github.com/baytasmert/demo-webserver/internal/handlers"
	"github.com/baytasmert/demo-webserver/internal/render"
	"github.com/baytasmert/demo-webserver/internal/router"
)

// setupRoutes はルーティング表を組み立てる
// 起動時に1回だけ呼ばれ、以降は変更されない
func setupRoutes(renderer *render.Renderer) *router.Table {
	return router.NewBuilder().
		// トップページ
		Register("/", "GET", handlers.Index(renderer)).
		// APIエンドポイント
		Register("/api/hello", "GET", handlers.Hello).
		Register("/api/greet", "POST", handlers.Greet).
		Build()
}
