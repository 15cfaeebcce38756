// Package password はパスワードのハッシュ化と検証を提供します。
package password

import "golang.org/x/crypto/bcrypt"

// Cost は bcrypt のワークファクターです。
const Cost = 12

// Hash は平文パスワードからソルト付きハッシュを生成します。
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify は平文パスワードを保存済みハッシュと照合します。
// 不一致は (false, nil)。エラーはハッシュ値そのものが壊れている場合のみで、
// ストア整合性の問題として扱ってください。
func Verify(plain, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if err == nil {
		return true, nil
	}
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	return false, err
}
