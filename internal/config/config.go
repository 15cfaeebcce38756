// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// ユーザーデータベース設定
	DatabaseHost     string // Postgresホスト名
	DatabaseUser     string // Postgres接続ユーザー
	DatabasePassword string // Postgres接続パスワード
	DatabaseName     string // ユーザーレコードを保持するデータベース名

	// セッションストア設定
	SessionRedisURL    string // セッションストア用Redis接続URL
	SessionStoreSecret string // 保存ペイロードの暗号化鍵
	SessionSecret      string // セッションクッキー署名用の秘密鍵

	// サーバー設定
	Port    string // APIサーバーのポート番号
	GinMode string // Ginの実行モード (debug, release, test)

	// CORS設定
	CORSAllowedOrigins string // CORS許可オリジン（カンマ区切り）

	// 静的ファイル設定
	PublicDir string // 公開ディレクトリのパス
}

// Load は環境変数から設定を読み込みます。
// .env.local ファイルが存在する場合はそこから読み込みます。
func Load() (*Config, error) {
	// .env.local ファイルを読み込む（存在しない場合はスキップ）
	loadEnvFile()

	config := &Config{
		// ユーザーデータベース設定
		DatabaseHost:     getEnv("DATABASE_HOST", ""),
		DatabaseUser:     getEnv("DATABASE_USER", ""),
		DatabasePassword: getEnv("DATABASE_PASSWORD", ""),
		DatabaseName:     getEnv("DATABASE_NAME", ""),

		// セッションストア設定
		SessionRedisURL:    getEnv("SESSION_REDIS_URL", ""),
		SessionStoreSecret: getEnv("SESSION_STORE_SECRET", ""),
		SessionSecret:      getEnv("SESSION_SECRET", ""),

		// サーバー設定
		Port:    getEnv("PORT", ""),
		GinMode: getEnv("GIN_MODE", "debug"),

		// CORS設定
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		// 静的ファイル設定
		PublicDir: getEnv("PUBLIC_DIR", "./public"),
	}

	// 必須設定のバリデーション
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

// Validate は設定の妥当性を検証します。
// 接続情報と秘密鍵は起動時に必須とし、欠けている場合は即座に失敗させます。
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"DATABASE_HOST", c.DatabaseHost},
		{"DATABASE_USER", c.DatabaseUser},
		{"DATABASE_PASSWORD", c.DatabasePassword},
		{"DATABASE_NAME", c.DatabaseName},
		{"SESSION_REDIS_URL", c.SessionRedisURL},
		{"SESSION_STORE_SECRET", c.SessionStoreSecret},
		{"SESSION_SECRET", c.SessionSecret},
		{"PORT", c.Port},
	}

	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}

	return nil
}

// DatabaseDSN はユーザーデータベースへの接続文字列を組み立てます。
func (c *Config) DatabaseDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DatabaseUser, c.DatabasePassword),
		Host:   c.DatabaseHost,
		Path:   c.DatabaseName,
	}
	return u.String()
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
