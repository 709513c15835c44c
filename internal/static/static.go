package static

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/baytasmert/demo-webserver/internal/response"
)

const defaultContentType = "application/octet-stream"

// Resolver は静的ファイルのルート配下からファイルを返す
type Resolver struct {
	Root string

	// Sniff が有効な場合、拡張子から判定できないファイルは内容から推定する
	Sniff bool
}

// NewResolver は新しいResolverを作成する
func NewResolver(root string, sniff bool) *Resolver {
	return &Resolver{Root: root, Sniff: sniff}
}

// Resolve は接頭辞を除いたパスをルートに連結してファイルを返す
// 通常ファイルでなければ404、読み込みに失敗した場合はエラーを返す。
//
// パスは正規化せずに連結するので、末尾の "/" や途中の ".." はOSの解決に任される。
// NOTE: ".." の拒否は行わないため、ルートの外を指せる。
func (r *Resolver) Resolve(subPath string) (response.Response, error) {
	localPath := r.Root + string(filepath.Separator) + filepath.FromSlash(strings.TrimLeft(subPath, "/"))

	info, err := os.Stat(localPath)
	if err != nil || !info.Mode().IsRegular() {
		return response.Text(response.StatusNotFound, "File Not Found"), nil
	}

	content, err := os.ReadFile(localPath)
	if err != nil {
		return response.Response{}, fmt.Errorf("静的ファイルの読み込みに失敗: %w", err)
	}

	return response.Build(response.StatusOK, r.contentType(localPath, content), content), nil
}

func (r *Resolver) contentType(path string, content []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	if r.Sniff {
		return mimetype.Detect(content).String()
	}
	return defaultContentType
}
