// Package request は、接続から受信した生のバイト列をHTTPリクエストに変換します。
//
// 対応する文法は最小限です:
//   - リクエストラインは空白区切りでちょうど3トークン
//   - ヘッダーは空行まで、": " で1回だけ分割
//   - 空行以降はすべてボディ
//
// ヘッダーの折り返し、Content-Length の検証、未知メソッドの拒否は行いません。
package request

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

const (
	crlf          = "\r\n"
	headerEnd     = "\r\n\r\n"
	headerKVDelim = ": "
)

// ErrMalformedRequestLine はリクエストラインが "METHOD PATH VERSION" の形でない場合のエラー
var ErrMalformedRequestLine = errors.New("malformed request line")

// Request は解析済みのHTTPリクエスト
type Request struct {
	Method  string
	Path    string
	Version string
	Headers Headers
	Body    []byte
}

// Parse は1つの完全なリクエストを含む生データを解析する
func Parse(raw []byte) (*Request, error) {
	text := string(raw)
	lines := strings.Split(text, crlf)

	method, path, version, err := parseRequestLine(lines[0])
	if err != nil {
		return nil, err
	}

	req := &Request{
		Method:  method,
		Path:    path,
		Version: version,
		Headers: NewHeaders(),
		Body:    []byte{},
	}

	sep := strings.Index(text, headerEnd)
	if sep == -1 {
		return req, nil
	}

	for _, line := range lines[1:] {
		if line == "" {
			break
		}
		req.Headers.parseLine(line)
	}

	req.Body = bytes.Clone(raw[sep+len(headerEnd):])

	return req, nil
}

func parseRequestLine(line string) (method, path, version string, err error) {
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("%w: %q", ErrMalformedRequestLine, line)
	}

	return parts[0], parts[1], parts[2], nil
}
