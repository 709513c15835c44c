package response

import (
	"bytes"
	"fmt"
	"strconv"
)

const (
	StatusOK                  = 200
	StatusBadRequest          = 400
	StatusNotFound            = 404
	StatusInternalServerError = 500
)

const (
	ContentTypeText = "text/plain"
	ContentTypeJSON = "application/json"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// Response は送信可能な形にシリアライズ済みのレスポンス
type Response struct {
	Raw    []byte // ステータスライン + ヘッダー + ボディ
	Status int
}

// StatusText はステータスコードに対応する理由句を返す
func StatusText(code int) string {
	switch code {
	case StatusOK:
		return "OK"
	case StatusBadRequest:
		return "Bad Request"
	case StatusNotFound:
		return "Not Found"
	case StatusInternalServerError:
		return "Internal Server Error"
	default:
		return "Unknown"
	}
}

// Build はステータスライン、Content-Type と Content-Length、空行、ボディの順に組み立てる
func Build(status int, contentType string, body []byte) Response {
	var buf bytes.Buffer
	buf.Grow(64 + len(contentType) + len(body))

	fmt.Fprintf(&buf, "HTTP/1.1 %d %s\r\n", status, StatusText(status))
	buf.WriteString("Content-Type: " + contentType + "\r\n")
	buf.WriteString("Content-Length: " + strconv.Itoa(len(body)) + "\r\n")
	buf.WriteString("\r\n")
	buf.Write(body)

	return Response{Raw: buf.Bytes(), Status: status}
}

func Text(status int, msg string) Response {
	return Build(status, ContentTypeText, []byte(msg))
}

func JSON(status int, body []byte) Response {
	return Build(status, ContentTypeJSON, body)
}

func HTML(status int, body []byte) Response {
	return Build(status, ContentTypeHTML, body)
}

// NotFound は未登録ルートに返す既定の404
func NotFound() Response {
	return Text(StatusNotFound, "Not Found")
}

// InternalError はエラー内容を埋め込んだ500を返す
func InternalError(err error) Response {
	return Text(StatusInternalServerError, fmt.Sprintf("Internal Server Error: %v", err))
}
