// Package auth はサインアップ・ログインのフローとセッション管理を提供します。
package auth

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	SessionCookieName       = "mp_session"
	sessionKeyAuthenticated = "authenticated"
	sessionKeyUsername      = "username"
)

// セッションの有効期限。確立時点からの絶対期限で、アクセスによる延長はしない。
var sessionLifetime = time.Hour

// SessionMaxAgeSeconds はクッキーの MaxAge に利用する秒数を返します。
func SessionMaxAgeSeconds() int {
	return int(sessionLifetime.Seconds())
}

// Session はリクエストから見たセッション状態の読み取り専用ビューです。
type Session struct {
	Authenticated bool
	Username      string
}

// CurrentSession は現在のリクエストのセッション状態を返します。
// レコードが存在しない・期限切れ・フラグ未設定はすべて匿名として扱います。
func CurrentSession(c *gin.Context) Session {
	session := sessions.Default(c)

	authenticated, _ := session.Get(sessionKeyAuthenticated).(bool)
	username, _ := session.Get(sessionKeyUsername).(string)
	if !authenticated || username == "" {
		return Session{}
	}

	return Session{Authenticated: true, Username: username}
}

// establishSession はセッションを認証済み状態に遷移させます。
// Save 時にストア側の有効期限が確立時点から1時間に設定されます。
// 期限切れの検出はストアの TTL に任せ、アプリケーション側では判定しません。
func establishSession(c *gin.Context, username string) error {
	session := sessions.Default(c)
	session.Set(sessionKeyAuthenticated, true)
	session.Set(sessionKeyUsername, username)
	return session.Save()
}

// destroySession はセッションレコードをストアから即時削除します。
// アクティブなセッションが無い場合でも安全に呼べます。
func destroySession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}
