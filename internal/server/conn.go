package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/google/uuid"

	"github.com/baytasmert/demo-webserver/internal/accesslog"
	"github.com/baytasmert/demo-webserver/internal/request"
	"github.com/baytasmert/demo-webserver/internal/response"
)

const (
	faultMethod = "ERROR"
	unknownPath = "UNKNOWN"
)

// exchange は1接続分の状態
type exchange struct {
	connID   string
	clientIP string
	method   string
	path     string // 解析前は unknownPath
}

// handle は1接続を 読み込み -> 解析 -> ルーティング -> ログ -> 送信 -> クローズ の順に処理する
// どの経路でも接続は defer で1回だけ閉じる
func (s *Server) handle(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	ex := &exchange{
		connID:   uuid.NewString(),
		clientIP: clientIP(conn.RemoteAddr()),
		path:     unknownPath,
	}
	s.console.Printf("[%s] 新しい接続を受け付けました: %s", ex.connID, conn.RemoteAddr())

	buf := make([]byte, s.config.Server.ReadBufferSize)
	n, err := conn.Read(buf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			s.fault(conn, ex, fmt.Errorf("受信に失敗: %w", err))
		}
		// クライアントが既に切断している
		return
	}

	req, err := request.Parse(buf[:n])
	if err != nil {
		s.fault(conn, ex, err)
		return
	}
	ex.method = req.Method
	ex.path = req.Path

	resp, err := s.dispatch(req)
	if err != nil {
		s.fault(conn, ex, err)
		return
	}

	s.record(ex, ex.method, resp.Status)

	if _, err := conn.Write(resp.Raw); err != nil {
		s.console.Printf("[%s] 送信に失敗: %v", ex.connID, err)
	}
}

// dispatch はリクエストを静的ファイル、登録済みハンドラ、404のいずれかに振り分ける
// ハンドラ内のpanicはエラーとして返す
func (s *Server) dispatch(req *request.Request) (resp response.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	prefix := s.config.Static.Prefix
	if req.Method == "GET" && strings.HasPrefix(req.Path, prefix) {
		return s.static.Resolve(req.Path[len(prefix):])
	}

	if h, ok := s.routes.Lookup(req.Path, req.Method); ok {
		return h(req.Body)
	}

	return response.NotFound(), nil
}

// fault は500を記録して送信する
func (s *Server) fault(conn net.Conn, ex *exchange, cause error) {
	s.console.Printf("[%s] %s - %s %s -> 500: %v", ex.connID, ex.clientIP, faultMethod, ex.path, cause)
	s.record(ex, faultMethod, response.StatusInternalServerError)

	if _, err := conn.Write(response.InternalError(cause).Raw); err != nil {
		s.console.Printf("[%s] 送信に失敗: %v", ex.connID, err)
	}
}

func (s *Server) record(ex *exchange, method string, status int) {
	err := s.logger.Log(accesslog.Entry{
		ConnID:   ex.connID,
		ClientIP: ex.clientIP,
		Method:   method,
		Path:     ex.path,
		Status:   status,
	})
	if err != nil {
		s.console.Printf("[%s] アクセスログの書き込みに失敗: %v", ex.connID, err)
	}
}

func clientIP(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
