// Package symbol は銘柄コード（ティッカー）の正規化と検証を提供します。
package symbol

import (
	"errors"
	"strings"
)

// ErrInvalidSymbol は正規化後の銘柄コードが空の場合に返されます。
// HTTP境界では400として扱われます。
var ErrInvalidSymbol = errors.New("symbol required")

// Normalize は前後の空白を除去し、大文字に変換した銘柄コードを返します。
// 何度適用しても結果は変わりません。
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Parse は銘柄コードを正規化し、空であれば ErrInvalidSymbol を返します。
// キャッシュや外部APIにアクセスする前に必ず呼び出してください。
func Parse(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return "", ErrInvalidSymbol
	}
	return s, nil
}
