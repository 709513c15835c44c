package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrTemplateNotFound はテンプレートファイルが存在しない場合のエラー
var ErrTemplateNotFound = errors.New("template not found")

// Context はプレースホルダー名と置換値の対応
type Context map[string]string

// Renderer はテンプレートのルートからファイルを読み、{{key}} を置換する
// 値はエスケープせずにそのまま埋め込む
type Renderer struct {
	Root string
}

// NewRenderer は新しいRendererを作成する
func NewRenderer(root string) *Renderer {
	return &Renderer{Root: root}
}

// Render は name のテンプレートを ctx で置換した結果を返す
func (r *Renderer) Render(name string, ctx Context) ([]byte, error) {
	path := filepath.Join(r.Root, name)

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("テンプレートの読み込みに失敗: %w", err)
	}

	return []byte(Substitute(string(data), ctx)), nil
}

// Substitute は content 内の {{key}} をすべて ctx の値に置き換える
// キーはソート順に1回ずつ適用する。対応するキーのないプレースホルダーは残る。
func Substitute(content string, ctx Context) string {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		content = strings.ReplaceAll(content, "{{"+k+"}}", ctx[k])
	}
	return content
}
