/* Supabase 액세스 토큰(HS256) 검증 */

package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

var ErrNoSecret = errors.New("SUPABASE_JWT_SECRET not set")

// Claims Supabase 액세스 토큰 페이로드 중 사용하는 값
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type Validator struct {
	secret []byte
}

func NewValidator(secret string) *Validator {
	return &Validator{secret: []byte(secret)}
}

// Enabled 시크릿이 없으면 토큰 검증을 수행하지 않음
func (v *Validator) Enabled() bool {
	return v != nil && len(v.secret) > 0
}

// JWT 토큰 검증
func (v *Validator) ValidateToken(tokenString string) (*Claims, error) {
	if !v.Enabled() {
		return nil, ErrNoSecret
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Email == "" {
		return nil, errors.New("token has no email claim")
	}
	return claims, nil
}
