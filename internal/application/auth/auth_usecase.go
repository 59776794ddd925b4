package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"alfozan-insights/internal/domain/auth"
)

// UserRepository 存取使用者。
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (auth.User, error)
	FindByID(ctx context.Context, id string) (auth.User, error)
}

// PasswordHasher 驗證密碼。
type PasswordHasher interface {
	Compare(hashed, plain string) bool
}

// TokenIssuer 簽發/作廢 token。
type TokenIssuer interface {
	Issue(ctx context.Context, user auth.User) (auth.AccessToken, error)
	Revoke(ctx context.Context, token string) error
}

// ErrInvalidCredentials 表示帳密不符；對外不洩漏帳號是否存在。
var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginUseCase 驗證帳密並簽發 token。
type LoginUseCase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time
}

func NewLoginUseCase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *LoginUseCase {
	return &LoginUseCase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	User  auth.User
	Token auth.AccessToken
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (LoginResult, error) {
	var out LoginResult
	username := strings.TrimSpace(strings.ToLower(input.Username))
	if username == "" || input.Password == "" {
		return out, errors.New("username and password required")
	}

	user, err := uc.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, fmt.Errorf("find user: %w", err)
	}
	if !user.IsActive() {
		return out, errors.New("user disabled")
	}
	if !uc.hasher.Compare(user.Password, input.Password) {
		return out, ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(ctx, user)
	if err != nil {
		return out, fmt.Errorf("issue token: %w", err)
	}

	out.User = user
	out.Token = token
	return out, nil
}

// LogoutUseCase 將 access token 作廢。
type LogoutUseCase struct {
	tokens TokenIssuer
}

func NewLogoutUseCase(tokens TokenIssuer) *LogoutUseCase {
	return &LogoutUseCase{tokens: tokens}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token required")
	}
	return uc.tokens.Revoke(ctx, token)
}
