// Package handlers はルートごとのレスポンス生成関数を提供します。
//
// 各ハンドラはリクエストボディだけを受け取り、シリアライズ済みのレスポンスを返します。
// 接続やソケットには触れないため、サーバーを起動せずに直接呼び出せます。
package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/baytasmert/demo-webserver/internal/render"
	"github.com/baytasmert/demo-webserver/internal/response"
	"github.com/baytasmert/demo-webserver/internal/router"
)

// IndexTemplate はトップページのテンプレート名
const IndexTemplate = "index.html"

var validate = validator.New(validator.WithRequiredStructEnabled())

// messageBody は {"message": "..."} 形式のJSONを返す
func messageBody(msg string) ([]byte, error) {
	encoded, err := json.MarshalNoEscape(msg)
	if err != nil {
		return nil, err
	}
	body := make([]byte, 0, len(encoded)+14)
	body = append(body, `{"message": `...)
	body = append(body, encoded...)
	body = append(body, '}')
	return body, nil
}

// Hello は固定の挨拶を返す
func Hello(_ []byte) (response.Response, error) {
	body, err := messageBody("Hello, world!")
	if err != nil {
		return response.Response{}, err
	}
	return response.JSON(response.StatusOK, body), nil
}

// greetRequest は POST /api/greet のリクエストボディ
type greetRequest struct {
	Name    string `validate:"required"`
	Surname string
}

// Greet は名前と姓から挨拶を組み立てる
func Greet(body []byte) (response.Response, error) {
	// キーの大文字小文字を区別するため、構造体ではなくそのままの値として読み込む
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return response.Text(response.StatusBadRequest, err.Error()), nil
	}

	// 構文として正しいがオブジェクトでないJSONは内部エラーとして扱う
	data, ok := decoded.(map[string]any)
	if !ok {
		return response.InternalError(fmt.Errorf("JSONオブジェクトではありません: %T", decoded)), nil
	}

	name, err := stringField(data, "name")
	if err != nil {
		return response.InternalError(err), nil
	}
	surname, err := stringField(data, "surname")
	if err != nil {
		return response.InternalError(err), nil
	}

	req := greetRequest{
		Name:    strings.TrimSpace(name),
		Surname: strings.TrimSpace(surname),
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return response.Text(response.StatusBadRequest, validationMessage(verrs)), nil
		}
		return response.InternalError(err), nil
	}

	msg := strings.TrimSpace(fmt.Sprintf("Selam %s %s", req.Name, req.Surname))

	out, err := messageBody(msg)
	if err != nil {
		return response.InternalError(err), nil
	}
	return response.JSON(response.StatusOK, out), nil
}

// stringField は key と完全一致するフィールドを文字列として取り出す
// キーがなければ空文字列、文字列以外（null を含む）ならエラー
func stringField(data map[string]any, key string) (string, error) {
	v, ok := data[key]
	if !ok {
		return "", nil
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s alanı metin değil: %T", key, v)
	}
	return str, nil
}

func validationMessage(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s alanı gerekli.", strings.ToLower(fe.Field())))
	}
	return strings.Join(msgs, " ")
}

// Index はトップページを描画するハンドラを返す
func Index(renderer *render.Renderer) router.Handler {
	ctx := render.Context{
		"title":   "Ana Sayfa",
		"content": "Bu, basit HTTP sunucunuzun ana sayfasıdır.",
	}

	return func(_ []byte) (response.Response, error) {
		rendered, err := renderer.Render(IndexTemplate, ctx)
		if errors.Is(err, render.ErrTemplateNotFound) {
			return response.Text(response.StatusNotFound, "Template Not Found"), nil
		}
		if err != nil {
			return response.Response{}, err
		}
		return response.HTML(response.StatusOK, rendered), nil
	}
}
