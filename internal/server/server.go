package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/baytasmert/demo-webserver/internal/accesslog"
	"github.com/baytasmert/demo-webserver/internal/config"
	"github.com/baytasmert/demo-webserver/internal/render"
	"github.com/baytasmert/demo-webserver/internal/router"
	"github.com/baytasmert/demo-webserver/internal/static"
)

const (
	// 受け付けエラーが続いた場合の待機時間の初期値と上限
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = 1 * time.Second
)

// Server はTCPリスナーと接続ごとのディスパッチを管理する構造体
type Server struct {
	config  *config.Config
	routes  *router.Table
	static  *static.Resolver
	logger  *accesslog.Logger
	console *log.Logger

	listener net.Listener
	mu       sync.Mutex // isClosed と wg.Add を守る
	isClosed bool
	wg       sync.WaitGroup // 処理中の接続
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config) *Server {
	renderer := render.NewRenderer(cfg.Template.Dir)
	return NewWithRoutes(cfg, setupRoutes(renderer))
}

// NewWithRoutes は任意のルーティング表でServerを作成する
func NewWithRoutes(cfg *config.Config, routes *router.Table) *Server {
	console := log.Default()

	return &Server{
		config:  cfg,
		routes:  routes,
		static:  static.NewResolver(cfg.Static.Dir, cfg.Static.SniffContent),
		logger:  accesslog.New(cfg.Log.File, console),
		console: console,
	}
}

// Listen はログファイルを初期化し、リスニングソケットを作成する
func (s *Server) Listen() error {
	if err := s.logger.Reset(); err != nil {
		return err
	}

	ln, err := listen(s.config.ServerAddress(), s.config.Server.Backlog)
	if err != nil {
		return fmt.Errorf("リッスンに失敗: %w", err)
	}
	s.listener = ln

	return nil
}

// Addr は実際にリッスンしているアドレスを返す
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve は接続を受け付け続ける
// 接続ごとにゴルーチンを起動し、その終了は待たない。同時接続数の上限はない。
// 受け付けに失敗した場合は待機時間を倍にしながら再試行する。
func (s *Server) Serve() {
	var tempDelay time.Duration
	for {
		conn, err := s.listener.Accept()

		s.mu.Lock()
		if s.isClosed {
			s.mu.Unlock()
			if conn != nil {
				conn.Close()
			}
			return
		}

		if err != nil {
			s.mu.Unlock()
			if errors.Is(err, net.ErrClosed) {
				return
			}
			if tempDelay == 0 {
				tempDelay = minAcceptDelay
			} else {
				tempDelay *= 2
			}
			if tempDelay > maxAcceptDelay {
				tempDelay = maxAcceptDelay
			}
			s.console.Printf("接続の受け付けに失敗: %v; %v後に再試行します", err, tempDelay)
			time.Sleep(tempDelay)
			continue
		}
		tempDelay = 0

		s.wg.Add(1)
		s.mu.Unlock()

		go s.handle(conn)
	}
}

// Start はサーバーを起動する
// リッスンに失敗した場合は何も配信せずにエラーを返す。ログへの出力は呼び出し側で行う。
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	s.console.Printf("サーバーを起動しました: http://%s", s.Addr())

	go s.Serve()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
		s.console.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		s.console.Printf("シグナルを受信しました: %v", sig)
	}

	return s.Shutdown()
}

// Shutdown は新しい接続の受け付けを止め、処理中の接続を待つ
func (s *Server) Shutdown() error {
	s.console.Println("サーバーをシャットダウンしています...")

	s.mu.Lock()
	s.isClosed = true
	s.mu.Unlock()

	var closeErr error
	if s.listener != nil {
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			closeErr = fmt.Errorf("リスナーのクローズに失敗: %w", err)
		}
	}

	// 5秒のタイムアウトを設定
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		return errors.New("処理中の接続の終了待ちがタイムアウトしました")
	}

	if closeErr != nil {
		return closeErr
	}

	s.console.Println("サーバーが正常にシャットダウンされました")
	return nil
}
