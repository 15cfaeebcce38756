// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	sessionsredis "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yourusername/member-portal/internal/auth"
	"github.com/yourusername/member-portal/internal/config"
	"github.com/yourusername/member-portal/internal/site"
	"github.com/yourusername/member-portal/internal/user"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()

	// セッションストアへの到達性を起動時に確認（フェイルファスト）
	redisOpt, err := goredis.ParseURL(cfg.SessionRedisURL)
	if err != nil {
		log.Fatalf("Failed to parse SESSION_REDIS_URL: %v", err)
	}
	pingSessionStore(redisOpt)

	// セッションストアの設定（署名鍵とペイロード暗号化鍵は必須）
	store, err := sessionsredis.NewStore(10, "tcp", redisOpt.Addr, redisOpt.Username, redisOpt.Password,
		[]byte(cfg.SessionSecret), []byte(cfg.SessionStoreSecret))
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   auth.SessionMaxAgeSeconds(),
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteStrictMode,
	})
	router.Use(sessions.Sessions(auth.SessionCookieName, store))

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	// CORS許可オリジンを設定（カンマ区切りの文字列を配列に変換）
	origins := strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowOrigins = origins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
		"Authorization",
	}
	router.Use(cors.New(corsConfig))

	// ユーザーデータベースへの接続とマイグレーション
	users, err := user.NewPostgresStore(cfg.DatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to open user database: %v", err)
	}
	defer users.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := users.RunMigrations(migrateCtx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// ルーティングの設定
	setupRoutes(router, cfg, users)

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s (mode: %s)", addr, cfg.GinMode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// pingSessionStore はセッションストアに疎通確認を行い、失敗したら起動を中断します。
func pingSessionStore(opt *goredis.Options) {
	client := goredis.NewClient(opt)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to reach session store: %v", err)
	}
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "member-portal-api",
		"version": "0.1.0",
	})
}

// setupRoutes はページと認証周りの配線を行います。
func setupRoutes(router *gin.Engine, cfg *config.Config, users user.Store) {
	// まずは誰でも叩けるヘルスチェックを登録
	router.GET("/health", handleHealth)

	authManager := auth.NewManager(cfg, users)
	pages := site.NewHandler(users)

	// 公開ページ
	router.GET("/", pages.Home)
	router.GET("/createUser", pages.SignupForm)
	router.GET("/login", pages.LoginForm)
	router.GET("/nosql-injection", pages.InjectionProbe)
	router.GET("/about", pages.About)
	router.GET("/contact", pages.Contact)
	router.POST("/submitEmail", pages.SubmitEmail)
	router.GET("/cat/:id", pages.Cat)

	// 認証フロー
	router.POST("/submitUser", authManager.SubmitUser)
	router.POST("/loggingin", authManager.LogIn)
	router.GET("/logout", authManager.Logout)

	// 保護ページ
	router.GET("/loggedin", authManager.RequireMember("/login"), authManager.LoggedIn)
	router.GET("/members", authManager.RequireMember("/"), pages.Members)

	// 静的ファイルと404フォールバック
	router.NoRoute(site.StaticOrNotFound(cfg.PublicDir))
}
