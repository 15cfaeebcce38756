package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignupSchemaValid(t *testing.T) {
	values, vErr := SignupSchema.Validate(map[string]any{
		"username": "alice",
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.Nil(t, vErr)
	require.Equal(t, "alice", values["username"])
	require.Equal(t, "a@x.com", values["email"])
	require.Equal(t, "secret1", values["password"])
}

func TestSignupSchemaRejectsNonAlphanumUsername(t *testing.T) {
	_, vErr := SignupSchema.Validate(map[string]any{
		"username": "alice!",
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.NotNil(t, vErr)
	require.Contains(t, vErr.Messages, "username must only contain alphanumeric characters")
}

func TestSignupSchemaRejectsLongUsername(t *testing.T) {
	_, vErr := SignupSchema.Validate(map[string]any{
		"username": strings.Repeat("a", 21),
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.NotNil(t, vErr)
	require.Contains(t, vErr.Messages, "username must be at most 20 characters long")
}

func TestSignupSchemaRejectsBadEmail(t *testing.T) {
	_, vErr := SignupSchema.Validate(map[string]any{
		"username": "alice",
		"email":    "notanemail",
		"password": "secret1",
	})
	require.NotNil(t, vErr)
	require.Contains(t, vErr.Messages, "email must be a valid email")
}

func TestSignupSchemaPasswordBounds(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"abcde", false},
		{"abcdef", true},
		{strings.Repeat("p", 20), true},
		{strings.Repeat("p", 21), false},
	}
	for _, tc := range cases {
		_, vErr := SignupSchema.Validate(map[string]any{
			"username": "alice",
			"email":    "a@x.com",
			"password": tc.password,
		})
		if tc.ok {
			require.Nil(t, vErr, "password %q should pass", tc.password)
		} else {
			require.NotNil(t, vErr, "password %q should fail", tc.password)
		}
	}
}

func TestSignupSchemaListsEveryViolation(t *testing.T) {
	_, vErr := SignupSchema.Validate(map[string]any{
		"username": "al ice",
		"email":    "nope",
		"password": "short",
	})
	require.NotNil(t, vErr)
	require.Len(t, vErr.Messages, 3)
}

func TestSignupSchemaMissingFields(t *testing.T) {
	_, vErr := SignupSchema.Validate(map[string]any{})
	require.NotNil(t, vErr)
	require.Contains(t, vErr.Messages, "username is required")
	require.Contains(t, vErr.Messages, "email is required")
	require.Contains(t, vErr.Messages, "password is required")
}

func TestSchemaRejectsStructuredValue(t *testing.T) {
	_, vErr := LoginSchema.Validate(map[string]any{
		"email":    map[string]any{"$ne": nil},
		"password": "x",
	})
	require.NotNil(t, vErr)
	require.Contains(t, vErr.Messages, "email must be a plain string")
}

func TestSchemaRejectsArrayValue(t *testing.T) {
	_, vErr := LoginSchema.Validate(map[string]any{
		"email":    []string{"a@x.com", "b@x.com"},
		"password": "x",
	})
	require.NotNil(t, vErr)
	require.Contains(t, vErr.Messages, "email must be a plain string")
}

func TestLoginSchemaPasswordHasNoFormatConstraint(t *testing.T) {
	values, vErr := LoginSchema.Validate(map[string]any{
		"email":    "a@x.com",
		"password": "x",
	})
	require.Nil(t, vErr)
	require.Equal(t, "x", values["password"])
}

func TestScalarValid(t *testing.T) {
	require.Nil(t, Scalar("user", "alice", "required,max=20"))
}

func TestScalarRejectsMap(t *testing.T) {
	vErr := Scalar("user", map[string]string{"$ne": "name"}, "required,max=20")
	require.NotNil(t, vErr)
	require.Contains(t, vErr.Messages, "user must be a plain string")
}

func TestScalarRejectsTooLong(t *testing.T) {
	vErr := Scalar("user", strings.Repeat("u", 21), "required,max=20")
	require.NotNil(t, vErr)
	require.Contains(t, vErr.Messages, "user must be at most 20 characters long")
}

func TestScalarRejectsNil(t *testing.T) {
	vErr := Scalar("user", nil, "required,max=20")
	require.NotNil(t, vErr)
	require.Contains(t, vErr.Messages, "user is required")
}
