package accesslog

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

// TimestampFormat はログ行の先頭に付けるISO 8601形式の時刻
const TimestampFormat = "2006-01-02T15:04:05.000000"

// Entry は完了または失敗した1リクエスト分の記録
type Entry struct {
	Time     time.Time
	ConnID   string // コンソール出力のみに使う
	ClientIP string
	Method   string
	Path     string
	Status   int
}

// String はファイルに書き込む1行（改行なし）を返す
func (e Entry) String() string {
	return fmt.Sprintf("%s - %s - %s %s -> %d",
		e.Time.Format(TimestampFormat), e.ClientIP, e.Method, e.Path, e.Status)
}

// Logger はアクセスログをファイルとコンソールに書き込む
// ファイルは書き込みのたびに開いて閉じる。行が混ざらないよう mu で直列化する。
type Logger struct {
	path    string
	console *log.Logger
	mu      sync.Mutex
}

// New は新しいLoggerを作成する
// console が nil の場合はコンソールに出力しない
func New(path string, console *log.Logger) *Logger {
	return &Logger{path: path, console: console}
}

// Reset はログファイルを空にする
// サーバー起動時に1回だけ呼ぶ
func (l *Logger) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.WriteFile(l.path, nil, 0o644); err != nil {
		return fmt.Errorf("ログファイルの初期化に失敗: %w", err)
	}
	return nil
}

// Log は1行をファイルに追記し、コンソールにも出力する
func (l *Logger) Log(e Entry) error {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	line := e.String()

	if err := l.appendLine(line); err != nil {
		return err
	}

	if l.console != nil {
		if e.ConnID != "" {
			l.console.Printf("[%s] %s", e.ConnID, line)
		} else {
			l.console.Print(line)
		}
	}
	return nil
}

func (l *Logger) appendLine(line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("ログファイルを開けません: %w", err)
	}

	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("ログの書き込みに失敗: %w", err)
	}

	return f.Close()
}
