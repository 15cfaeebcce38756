// Package validate はリクエスト入力のスキーマ検証を提供します。
//
// 検証はストア層に到達する前の最初の防壁です。期待される型が文字列である
// 箇所に構造体（マップや配列）が渡された場合は、ルール評価以前に型不一致
// として拒否します。これにより field[$ne]=x のような演算子構文をクエリに
// 流し込むインジェクション攻撃を遮断します。
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = validator.New()

// Field はスキーマ内の1項目です。Rules は go-playground/validator のタグ文字列です。
type Field struct {
	Name  string
	Rules string
}

// Schema は名前付き入力スキーマです。
type Schema struct {
	Fields []Field
}

// SignupSchema はサインアップ入力のスキーマです。
var SignupSchema = Schema{
	Fields: []Field{
		{Name: "username", Rules: "required,alphanum,max=20"},
		{Name: "email", Rules: "required,email"},
		{Name: "password", Rules: "required,min=6,max=20"},
	},
}

// LoginSchema はログイン入力のスキーマです。
// パスワードは存在のみを要求し、形式の制約は課しません。
var LoginSchema = Schema{
	Fields: []Field{
		{Name: "email", Rules: "required,email"},
		{Name: "password", Rules: "required"},
	},
}

// Error は違反したすべての制約をメッセージとして保持します。
type Error struct {
	Messages []string
}

// Error は error インターフェースを実装します。
func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Messages, ", ")
}

// Validate は入力を検証し、検証済みのスカラー値を返します。
// 違反がある場合は全違反を列挙した *Error を返し、値は返しません。
// 副作用はありません。
func (s Schema) Validate(input map[string]any) (map[string]string, *Error) {
	values := make(map[string]string, len(s.Fields))
	var messages []string

	for _, f := range s.Fields {
		raw, ok := input[f.Name]
		if !ok || raw == nil {
			messages = append(messages, f.Name+" is required")
			continue
		}

		// 型不一致はルール評価より先に弾く
		str, ok := raw.(string)
		if !ok {
			messages = append(messages, f.Name+" must be a plain string")
			continue
		}

		if err := v.Var(str, f.Rules); err != nil {
			messages = append(messages, describe(f.Name, err)...)
			continue
		}

		values[f.Name] = str
	}

	if len(messages) > 0 {
		return nil, &Error{Messages: messages}
	}
	return values, nil
}

// Scalar は単一の値を検証します。クエリパラメータの検証などに使います。
func Scalar(name string, value any, rules string) *Error {
	if value == nil {
		return &Error{Messages: []string{name + " is required"}}
	}
	str, ok := value.(string)
	if !ok {
		return &Error{Messages: []string{name + " must be a plain string"}}
	}
	if err := v.Var(str, rules); err != nil {
		return &Error{Messages: describe(name, err)}
	}
	return nil
}

func describe(name string, err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{name + " is invalid"}
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, name+" is required")
		case "alphanum":
			messages = append(messages, name+" must only contain alphanumeric characters")
		case "email":
			messages = append(messages, name+" must be a valid email")
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters long", name, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters long", name, fe.Param()))
		default:
			messages = append(messages, name+" is invalid")
		}
	}
	return messages
}
