package main

import (
	"context"
	"log"

	"github.com/baytasmert/demo-webserver/internal/config"
	"github.com/baytasmert/demo-webserver/internal/server"
)

func main() {
	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// サーバーを作成
	srv := server.New(cfg)

	// バインドに失敗した場合は配信せずに終了する
	if err := srv.Start(context.Background()); err != nil {
		log.Printf("サーバーを終了します: %v", err)
		return
	}
}
