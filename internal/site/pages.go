// Package site はサイトの各ページを提供します。
package site

import (
	"fmt"
	"html"
	"log"
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/member-portal/internal/auth"
	"github.com/yourusername/member-portal/internal/user"
	"github.com/yourusername/member-portal/internal/validate"
)

const htmlContentType = "text/html; charset=utf-8"

// メンバーページに表示する画像の候補
var memberImages = []string{"/img1.png", "/img2.png", "/img3.png"}

// Handler はページハンドラーをまとめた構造体です。
type Handler struct {
	users user.Store
}

// NewHandler はページハンドラーを作成します。
func NewHandler(users user.Store) *Handler {
	return &Handler{users: users}
}

// Home は GET / のハンドラーです。ログイン状態で表示を切り替えます。
func (h *Handler) Home(c *gin.Context) {
	s := auth.CurrentSession(c)
	if s.Authenticated {
		page := fmt.Sprintf(
			`<h1>Hello, %s!</h1><a href="/members">Go to Members Area</a> <a href="/logout">Logout</a>`,
			html.EscapeString(s.Username),
		)
		c.Data(http.StatusOK, htmlContentType, []byte(page))
		return
	}
	c.Data(http.StatusOK, htmlContentType, []byte(
		`<h1>Welcome to Our Site</h1><a href="/login">Login</a> <a href="/signup">Signup</a>`,
	))
}

// Members は GET /members のハンドラーです。RequireMember の背後に配置します。
func (h *Handler) Members(c *gin.Context) {
	member, ok := auth.MemberFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	image := memberImages[rand.Intn(len(memberImages))]
	log.Printf("serving image: %s", image)

	page := fmt.Sprintf(
		`<h1>Hello, %s</h1><img src="%s" alt="Random Image"><a href="/logout">Logout</a>`,
		html.EscapeString(member.Username), image,
	)
	c.Data(http.StatusOK, htmlContentType, []byte(page))
}

// SignupForm は GET /createUser のハンドラーです。
func (h *Handler) SignupForm(c *gin.Context) {
	page := `
    create user
    <form action='/submitUser' method='post'>
    <input name='username' type='text' placeholder='username'>
    <input name='email' type='email' placeholder='email'>
    <input name='password' type='password' placeholder='password'>
    <button>Submit</button>
    </form>
    `
	c.Data(http.StatusOK, htmlContentType, []byte(page))
}

// LoginForm は GET /login のハンドラーです。
func (h *Handler) LoginForm(c *gin.Context) {
	page := `
    log in
    <form action='/loggingin' method='post'>
    <input name='email' type='email' placeholder='email'>
    <input name='password' type='password' placeholder='password'>
    <button>Submit</button>
    </form>
    `
	c.Data(http.StatusOK, htmlContentType, []byte(page))
}

// InjectionProbe は GET /nosql-injection のハンドラーです。
// user[$ne]=name のような構造化パラメータはマップとして届くため、
// バリデーターの型検査で弾かれ、ストアへの問い合わせには到達しません。
func (h *Handler) InjectionProbe(c *gin.Context) {
	var value any
	if m := c.QueryMap("user"); len(m) > 0 {
		value = m
	} else if raw, ok := c.GetQuery("user"); ok {
		value = raw
	}

	if value == nil {
		c.Data(http.StatusOK, htmlContentType, []byte(
			`<h3>no user provided - try /nosql-injection?user=name</h3> <h3>or /nosql-injection?user[$ne]=name</h3>`,
		))
		return
	}

	if vErr := validate.Scalar("user", value, "required,max=20"); vErr != nil {
		log.Printf("injection probe rejected: %v", vErr)
		c.Data(http.StatusOK, htmlContentType, []byte(
			`<h1 style='color:darkred;'>A NoSQL injection attack was detected!!</h1>`,
		))
		return
	}

	username := value.(string)
	result, err := h.users.FindByUsername(c.Request.Context(), username)
	if err != nil {
		log.Printf("internal error: %v", err)
		c.Data(http.StatusInternalServerError, htmlContentType, []byte("Something went wrong. Please try again later."))
		return
	}
	log.Printf("probe matched %d user(s)", len(result))

	page := fmt.Sprintf("<h1>Hello %s</h1>", html.EscapeString(username))
	c.Data(http.StatusOK, htmlContentType, []byte(page))
}

// About は GET /about のハンドラーです。
func (h *Handler) About(c *gin.Context) {
	color := c.Query("color")
	page := fmt.Sprintf("<h1 style='color:%s;'>Patrick Guichon</h1>", html.EscapeString(color))
	c.Data(http.StatusOK, htmlContentType, []byte(page))
}

// Contact は GET /contact のハンドラーです。
func (h *Handler) Contact(c *gin.Context) {
	page := `
        email address:
        <form action='/submitEmail' method='post'>
            <input name='email' type='text' placeholder='email'>
            <button>Submit</button>
        </form>
    `
	if c.Query("missing") != "" {
		page += "<br> email is required"
	}
	c.Data(http.StatusOK, htmlContentType, []byte(page))
}

// SubmitEmail は POST /submitEmail のハンドラーです。
func (h *Handler) SubmitEmail(c *gin.Context) {
	email := c.PostForm("email")
	if email == "" {
		c.Redirect(http.StatusFound, "/contact?missing=1")
		return
	}
	page := "Thanks for subscribing with your email: " + html.EscapeString(email)
	c.Data(http.StatusOK, htmlContentType, []byte(page))
}

// Cat は GET /cat/:id のハンドラーです。
func (h *Handler) Cat(c *gin.Context) {
	cat := c.Param("id")

	switch cat {
	case "1":
		c.Data(http.StatusOK, htmlContentType, []byte("Fluffy: <img src='/fluffy.gif' style='width:250px;'>"))
	case "2":
		c.Data(http.StatusOK, htmlContentType, []byte("Socks: <img src='/socks.gif' style='width:250px;'>"))
	default:
		c.Data(http.StatusOK, htmlContentType, []byte("Invalid cat id: "+html.EscapeString(cat)))
	}
}
