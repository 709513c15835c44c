// Package main はサーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/baytasmert/demo-webserver/internal/config"
	"github.com/baytasmert/demo-webserver/internal/server"
)

func main() {
	// コマンドラインオプション
	var (
		configFile  = flag.String("config", "", "設定ファイル (.yaml / .toml)")
		host        = flag.String("host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
		port        = flag.Int("port", 0, "サーバーのポート (デフォルト: 81)")
		staticDir   = flag.String("static", "", "静的ファイルのディレクトリ (デフォルト: ./static)")
		templateDir = flag.String("templates", "", "テンプレートのディレクトリ (デフォルト: ./templates)")
		logFile     = flag.String("log", "", "アクセスログのファイル (デフォルト: server.log)")
		sniff       = flag.Bool("sniff", false, "拡張子で判定できない静的ファイルの型を内容から推定する")
		help        = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("demo-webserver")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// 設定を読み込む
	var (
		cfg *config.Config
		err error
	)
	if *configFile != "" {
		cfg, err = config.LoadFile(*configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コマンドラインオプションで設定を上書き
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *staticDir != "" {
		cfg.Static.Dir = *staticDir
	}
	if *templateDir != "" {
		cfg.Template.Dir = *templateDir
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *sniff {
		cfg.Static.SniffContent = true
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定が不正です: %v", err)
	}

	srv := server.New(cfg)

	log.Printf("サーバーを起動します: %s", cfg.ServerAddress())
	if err := srv.Start(context.Background()); err != nil {
		log.Printf("サーバーを終了します: %v", err)
		return
	}
}
