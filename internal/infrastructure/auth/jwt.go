package authinfra

import (
	"context"
	"errors"
	"sync"
	"time"

	"alfozan-insights/internal/domain/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTIssuer 實作 TokenIssuer，產生/驗證 JWT access token。
// 登出後的 token 會進入黑名單，直到自然過期為止。
type JWTIssuer struct {
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> expiry
}

// NewJWTIssuer 建立 JWT 簽發器。
func NewJWTIssuer(secret string, accessTTL time.Duration) *JWTIssuer {
	return &JWTIssuer{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		now:       time.Now,
		revoked:   map[string]time.Time{},
	}
}

// Claims 定義 access token 的 payload。
type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Issue 產生 access token。
func (j *JWTIssuer) Issue(_ context.Context, user auth.User) (auth.AccessToken, error) {
	now := j.now()
	exp := now.Add(j.accessTTL)
	claims := Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return auth.AccessToken{}, err
	}
	return auth.AccessToken{Token: signed, ExpiresAt: exp}, nil
}

// Revoke 將 token 加入黑名單。無法解析的 token 視為已失效。
func (j *JWTIssuer) Revoke(_ context.Context, token string) error {
	claims, err := j.parse(token)
	if err != nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revoked[claims.ID] = claims.ExpiresAt.Time
	j.sweepLocked()
	return nil
}

// ParseAccessToken 驗證並解析 access token，回傳 userID 與 role。
func (j *JWTIssuer) ParseAccessToken(token string) (Claims, error) {
	claims, err := j.parse(token)
	if err != nil {
		return Claims{}, err
	}
	j.mu.Lock()
	_, revoked := j.revoked[claims.ID]
	j.mu.Unlock()
	if revoked {
		return Claims{}, errors.New("token revoked")
	}
	return claims, nil
}

func (j *JWTIssuer) parse(token string) (Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return j.now() }))
	if err != nil {
		return Claims{}, err
	}
	if !tkn.Valid {
		return Claims{}, errors.New("invalid token")
	}
	return claims, nil
}

// sweepLocked 清掉黑名單中已自然過期的項目，呼叫端需持鎖。
func (j *JWTIssuer) sweepLocked() {
	now := j.now()
	for id, exp := range j.revoked {
		if exp.Before(now) {
			delete(j.revoked, id)
		}
	}
}
