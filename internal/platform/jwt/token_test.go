package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewGenerator は各種設定でGeneratorが正しく生成されることを検証します。
func TestNewGenerator(t *testing.T) {
	t.Parallel()

	gen, ok := NewGenerator("my-secret-key", time.Hour).(*generator)
	require.True(t, ok)
	assert.Equal(t, []byte("my-secret-key"), gen.secret)
	assert.Equal(t, time.Hour, gen.expiration)
	assert.NotNil(t, gen.now)
}

// TestGenerator_GenerateToken は生成されたトークンが正しいクレームを含むことを検証します。
func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	issued := time.Now().Truncate(time.Second)
	gen := &generator{secret: []byte("secret"), expiration: time.Hour, now: func() time.Time { return issued }}

	tokenStr, err := gen.GenerateToken(42, "user@example.com")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	assert.Equal(t, jwt.SigningMethodHS256, token.Method)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "user@example.com", claims["email"])
	assert.Equal(t, float64(issued.Unix()), claims["iat"])
	assert.Equal(t, float64(issued.Add(time.Hour).Unix()), claims["exp"])
}

// TestParseUserID は生成したトークンからユーザーIDを取り出せること、不正なトークンを拒否することを検証します。
func TestParseUserID(t *testing.T) {
	t.Parallel()

	const secret = "test-secret"
	valid, err := NewGenerator(secret, time.Hour).GenerateToken(7, "a@example.com")
	require.NoError(t, err)

	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	noSubStr, _ := noSub.SignedString([]byte(secret))

	tests := []struct {
		name      string
		token     string
		expected  uint
		expectErr error
	}{
		{"valid", valid, 7, nil},
		{"malformed", "not.a.token", 0, ErrInvalidToken},
		{"wrong secret", createTokenWithSecret("other", 1, time.Hour), 0, ErrInvalidToken},
		{"expired", createTokenWithSecret(secret, 1, -time.Hour), 0, ErrInvalidToken},
		{"missing subject", noSubStr, 0, ErrMissingSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, err := ParseUserID(secret, tt.token)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

// TestGenerator_DifferentUsersProduceDifferentTokens は異なるユーザーで異なるトークンが生成されることを検証します。
func TestGenerator_DifferentUsersProduceDifferentTokens(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("secret", time.Hour)
	a, err := gen.GenerateToken(1, "a@example.com")
	require.NoError(t, err)
	b, err := gen.GenerateToken(2, "b@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

// createTokenWithSecret はテスト用に指定されたシークレットとユーザーIDで署名済みJWTトークンを生成します。
func createTokenWithSecret(secret string, userID uint, expiration time.Duration) string {
	claims := jwt.MapClaims{
		"sub":   float64(userID),
		"exp":   time.Now().Add(expiration).Unix(),
		"iat":   time.Now().Unix(),
		"email": "test@example.com",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(secret))
	return signed
}
