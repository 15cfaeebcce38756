package auth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/member-portal/internal/config"
	"github.com/yourusername/member-portal/internal/password"
	"github.com/yourusername/member-portal/internal/user"
	"github.com/yourusername/member-portal/internal/validate"
)

const htmlContentType = "text/html; charset=utf-8"

// Manager は認証フローをまとめた構造体です。
type Manager struct {
	cfg   *config.Config
	users user.Store
}

// NewManager は認証マネージャーを作成します。
func NewManager(cfg *config.Config, users user.Store) *Manager {
	return &Manager{
		cfg:   cfg,
		users: users,
	}
}

// SubmitUser は POST /submitUser のハンドラーです。
// 検証 → ハッシュ化 → 保存 → セッション確立の順に進め、成功したら
// メンバーページへリダイレクトします。
func (m *Manager) SubmitUser(c *gin.Context) {
	input := bindInput(c, "username", "email", "password")

	u, err := m.signUp(c.Request.Context(), input)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			renderSignupErrors(c, vErr)
			return
		}
		m.failInternal(c, err)
		return
	}

	if err := establishSession(c, u.Username); err != nil {
		m.failInternal(c, &StoreError{Op: "save session", Err: err})
		return
	}

	c.Redirect(http.StatusFound, "/members")
}

// LogIn は POST /loggingin のハンドラーです。
// 失敗はすべて /login への同一リダイレクトに落とし、原因を外部に出しません。
func (m *Manager) LogIn(c *gin.Context) {
	input := bindInput(c, "email", "password")

	username, err := m.logIn(c.Request.Context(), input)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) || errors.Is(err, ErrAuthenticationFailed) {
			log.Printf("login failed: %v", err)
			c.Redirect(http.StatusFound, "/login")
			return
		}
		m.failInternal(c, err)
		return
	}

	if err := establishSession(c, username); err != nil {
		m.failInternal(c, &StoreError{Op: "save session", Err: err})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Logout は GET /logout のハンドラーです。2回呼ばれても安全です。
func (m *Manager) Logout(c *gin.Context) {
	if err := destroySession(c); err != nil {
		m.failInternal(c, &StoreError{Op: "destroy session", Err: err})
		return
	}
	c.Data(http.StatusOK, htmlContentType, []byte("You are logged out."))
}

// LoggedIn は GET /loggedin のハンドラーです。
func (m *Manager) LoggedIn(c *gin.Context) {
	member, ok := MemberFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	greeting := fmt.Sprintf("You are logged in! Hello, %s", html.EscapeString(member.Username))
	c.Data(http.StatusOK, htmlContentType, []byte(greeting))
}

// signUp はサインアップの中核フローです。検証に失敗した場合はストアに触れません。
func (m *Manager) signUp(ctx context.Context, input map[string]any) (user.User, error) {
	values, vErr := validate.SignupSchema.Validate(input)
	if vErr != nil {
		return user.User{}, &ValidationError{Messages: vErr.Messages}
	}

	hashed, err := password.Hash(values["password"])
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := user.New(values["username"], values["email"], hashed)
	if err := m.users.Insert(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return user.User{}, &ValidationError{Messages: []string{"email is already registered"}}
		}
		return user.User{}, &StoreError{Op: "insert user", Err: err}
	}

	return u, nil
}

// logIn はログインの中核フローです。メールアドレスに一致するレコードが
// ちょうど1件でない場合、およびパスワード不一致の場合は
// ErrAuthenticationFailed を返します。
func (m *Manager) logIn(ctx context.Context, input map[string]any) (string, error) {
	values, vErr := validate.LoginSchema.Validate(input)
	if vErr != nil {
		return "", &ValidationError{Messages: vErr.Messages}
	}

	creds, err := m.users.FindByEmail(ctx, values["email"])
	if err != nil {
		return "", &StoreError{Op: "find user", Err: err}
	}
	if len(creds) != 1 {
		return "", ErrAuthenticationFailed
	}

	ok, err := password.Verify(values["password"], creds[0].PasswordHash)
	if err != nil {
		// ハッシュ値の破損はストア整合性の問題として扱う
		return "", &StoreError{Op: "verify password", Err: err}
	}
	if !ok {
		return "", ErrAuthenticationFailed
	}

	return creds[0].Username, nil
}

// bindInput はフォームまたは JSON ボディから指定フィールドを取り出します。
// field[$op]=x 形式や繰り返しフィールド、JSON のオブジェクト値は構造のまま
// 保持し、型の判定はバリデーターに委ねます。
func bindInput(c *gin.Context, fields ...string) map[string]any {
	input := make(map[string]any, len(fields))

	if c.ContentType() == gin.MIMEJSON {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			return input
		}
		for _, f := range fields {
			if v, ok := body[f]; ok {
				input[f] = v
			}
		}
		return input
	}

	for _, f := range fields {
		if mv := c.PostFormMap(f); len(mv) > 0 {
			input[f] = mv
			continue
		}
		if vs, ok := c.GetPostFormArray(f); ok {
			if len(vs) == 1 {
				input[f] = vs[0]
			} else {
				input[f] = vs
			}
		}
	}
	return input
}

func renderSignupErrors(c *gin.Context, vErr *ValidationError) {
	var page string
	for _, msg := range vErr.Messages {
		page += fmt.Sprintf("<h3>Error: %s</h3>\n", html.EscapeString(msg))
	}
	page += `<a href="/createUser">Go back to signup</a>`
	c.Data(http.StatusOK, htmlContentType, []byte(page))
}

// failInternal はストア層などの内部エラーをログに残し、詳細を伏せた
// 汎用エラーページを返します。
func (m *Manager) failInternal(c *gin.Context, err error) {
	log.Printf("internal error: %v", err)
	c.Data(http.StatusInternalServerError, htmlContentType, []byte("Something went wrong. Please try again later."))
}
