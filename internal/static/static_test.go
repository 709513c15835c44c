package static

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// splitResponse はレスポンスをヘッダー部とボディに分ける
func splitResponse(t *testing.T, raw []byte) (string, []byte) {
	t.Helper()
	idx := bytes.Index(raw, []byte("\r\n\r\n"))
	if idx == -1 {
		t.Fatalf("ヘッダーの終端がありません: %q", raw)
	}
	return string(raw[:idx]), raw[idx+4:]
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveRoundTrip(t *testing.T) {
	root := t.TempDir()

	testCases := []struct {
		name     string
		rel      string
		data     []byte
		wantType string
	}{
		{"JavaScript", "script.js", []byte("console.log('hi');\n"), "javascript"},
		{"CSS", "css/style.css", []byte("body { margin: 0 }"), "text/css"},
		{"PNGバイナリ", "img/dot.png", []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 0xff}, "image/png"},
		{"未知の拡張子", "data.unknownext", []byte("plain words"), "application/octet-stream"},
	}

	r := NewResolver(root, false)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			writeFile(t, filepath.Join(root, filepath.FromSlash(tc.rel)), tc.data)

			resp, err := r.Resolve(tc.rel)
			if err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
			if resp.Status != 200 {
				t.Fatalf("got %d, want 200", resp.Status)
			}

			head, body := splitResponse(t, resp.Raw)
			if !bytes.Equal(body, tc.data) {
				t.Errorf("内容が一致しません: got %q, want %q", body, tc.data)
			}
			if !strings.Contains(head, "Content-Type: ") || !strings.Contains(head, tc.wantType) {
				t.Errorf("Content-Type に %q が含まれていません: %q", tc.wantType, head)
			}
		})
	}
}

func TestResolveLeadingSlash(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), []byte("a"))

	resp, err := NewResolver(root, false).Resolve("/a.txt")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != 200 {
		t.Errorf("先頭のスラッシュは除去されるべきです: got %d", resp.Status)
	}
}

func TestResolveNotFound(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "dir"), 0o755); err != nil {
		t.Fatal(err)
	}

	writeFile(t, filepath.Join(root, "style.css"), []byte("body {}"))

	r := NewResolver(root, false)

	// 連結したパスをそのままOSに渡すので、ファイルの後ろの "/" や存在しないディレクトリ経由の ".." は解決できない
	for _, rel := range []string{"missing.js", "dir", "", "style.css/", "style.css/.", "nonexist/../style.css"} {
		resp, err := r.Resolve(rel)
		if err != nil {
			t.Fatalf("Resolve(%q): 予期しないエラー: %v", rel, err)
		}
		if resp.Status != 404 {
			t.Errorf("Resolve(%q): got %d, want 404", rel, resp.Status)
		}
		_, body := splitResponse(t, resp.Raw)
		if string(body) != "File Not Found" {
			t.Errorf("Resolve(%q): got body %q", rel, body)
		}
	}
}

// 親ディレクトリへの参照は拒否しない
func TestResolveParentSegments(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "static")
	if err := os.Mkdir(root, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(base, "outside.txt"), []byte("outside"))

	resp, err := NewResolver(root, false).Resolve("../outside.txt")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != 200 {
		t.Errorf("got %d, want 200", resp.Status)
	}
}

func TestResolveSniff(t *testing.T) {
	root := t.TempDir()
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	writeFile(t, filepath.Join(root, "blob"), png)

	resp, err := NewResolver(root, true).Resolve("blob")
	if err != nil {
		t.Fatal(err)
	}
	head, _ := splitResponse(t, resp.Raw)
	if !strings.Contains(head, "Content-Type: image/png") {
		t.Errorf("内容から image/png を推定するべきです: %q", head)
	}

	resp, err = NewResolver(root, false).Resolve("blob")
	if err != nil {
		t.Fatal(err)
	}
	head, _ = splitResponse(t, resp.Raw)
	if !strings.Contains(head, "Content-Type: application/octet-stream") {
		t.Errorf("推定が無効なら既定の型であるべきです: %q", head)
	}
}
