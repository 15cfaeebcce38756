package auth

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAuthenticationFailed はログイン失敗を表します。ユーザー不在・パスワード
// 不一致・複数一致を区別せず、外部には同一の応答を返します。
var ErrAuthenticationFailed = errors.New("auth: authentication failed")

// ValidationError は利用者が修正可能な入力違反の集合です。
// サインアップ画面ではメッセージをそのまま表示します。
type ValidationError struct {
	Messages []string
}

// Error は error インターフェースを実装します。
func (e *ValidationError) Error() string {
	return "auth: validation failed: " + strings.Join(e.Messages, ", ")
}

// StoreError はストア層の失敗を表します。リトライせずに伝播させ、
// ハンドラー境界でログに残して汎用エラーページを返します。
type StoreError struct {
	Op  string
	Err error
}

// Error は error インターフェースを実装します。
func (e *StoreError) Error() string {
	return fmt.Sprintf("auth: %s: %v", e.Op, e.Err)
}

// Unwrap は元のエラーを返します。
func (e *StoreError) Unwrap() error {
	return e.Err
}
