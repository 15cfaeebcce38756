package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/yourusername/member-portal/internal/user/migrations"
)

const uniqueViolation = "23505"

// PostgresStore は Store の Postgres 実装です。
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore は DSN で接続した PostgresStore を作成します。
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// RunMigrations は埋め込みマイグレーションを適用します。
func (s *PostgresStore) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, s.db, "."); err != nil {
		return err
	}

	return nil
}

// Close は接続プールを閉じます。
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Insert はユーザーを保存します。
func (s *PostgresStore) Insert(ctx context.Context, u User) error {
	query :=
		`INSERT INTO users (id, username, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 `

	_, err := s.db.ExecContext(ctx, query, u.ID, u.Username, u.Email, u.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// FindByEmail はメールアドレスに一致する認証情報を返します。
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) ([]Credential, error) {
	query :=
		`SELECT username, password_hash FROM users
		 WHERE email = $1
		 `

	return s.findCredentials(ctx, query, email)
}

// FindByUsername はユーザー名に一致する認証情報を返します。
func (s *PostgresStore) FindByUsername(ctx context.Context, username string) ([]Credential, error) {
	query :=
		`SELECT username, password_hash FROM users
		 WHERE username = $1
		 `

	return s.findCredentials(ctx, query, username)
}

func (s *PostgresStore) findCredentials(ctx context.Context, query string, arg string) ([]Credential, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var creds []Credential
	for rows.Next() {
		var c Credential
		if err := rows.Scan(&c.Username, &c.PasswordHash); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		creds = append(creds, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return creds, nil
}
