// Package user はユーザーレコードの永続化を担います。
package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrDuplicateEmail は同じメールアドレスのユーザーが既に存在する場合に返されます。
var ErrDuplicateEmail = errors.New("user: email already registered")

// User は登録済みユーザーのレコードです。サインアップ時に作成され、以後更新されません。
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Credential はログイン照合用の射影です。username と password 以外は
// ストアから取り出しません。
type Credential struct {
	Username     string
	PasswordHash string
}

// New は ID を採番したユーザーレコードを作成します。
func New(username, email, passwordHash string) User {
	return User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
}

// Store はユーザーレコードの保存と検索のインターフェースです。
type Store interface {
	// Insert はユーザーを保存します。メールアドレスが重複している場合は
	// ErrDuplicateEmail を返します。
	Insert(ctx context.Context, u User) error
	// FindByEmail はメールアドレスに一致するユーザーの認証情報を返します。
	FindByEmail(ctx context.Context, email string) ([]Credential, error)
	// FindByUsername はユーザー名に一致するユーザーの認証情報を返します。
	FindByUsername(ctx context.Context, username string) ([]Credential, error)
}
