package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// contextMemberKey は、ハンドラー間で認証済みメンバー情報を共有するためのキーです。
const contextMemberKey = "auth.member"

// MemberContext は認証済みリクエストに明示的に引き回す情報です。
// ハンドラーはセッションを直接触らず、このコンテキストだけを参照します。
type MemberContext struct {
	Username string
}

// RequireMember はセッションを検証するミドルウェアを返します。
// 匿名（未認証・期限切れを含む）の場合は redirectTo へリダイレクトし、
// 保護対象のコンテンツには一切触れさせません。
func (m *Manager) RequireMember(redirectTo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := CurrentSession(c)
		if !s.Authenticated {
			c.Redirect(http.StatusFound, redirectTo)
			c.Abort()
			return
		}

		c.Set(contextMemberKey, MemberContext{Username: s.Username})
		c.Next()
	}
}

// MemberFrom はミドルウェアが設定したメンバー情報を取り出します。
func MemberFrom(c *gin.Context) (MemberContext, bool) {
	v, ok := c.Get(contextMemberKey)
	if !ok {
		return MemberContext{}, false
	}
	member, ok := v.(MemberContext)
	return member, ok
}
