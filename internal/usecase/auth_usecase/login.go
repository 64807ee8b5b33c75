package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user inactive")
)

// bcryptハッシュと平文を比較
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// アクセストークンを発行する約束。実装はmain側（JWT）
type TokenIssuer interface {
	Issue(userID int64, isAdmin bool, now time.Time) (string, time.Time, error)
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	User      model.User
	Token     string
	ExpiresAt time.Time
}

// LoginUsecaseはログイン処理。
type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   TokenIssuer
	clock    Clock
}

// DI
func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return out, ErrInvalidCredentials
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return out, ErrInvalidCredentials
	}
	if err != nil {
		return out, err
	}

	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return out, ErrInvalidCredentials
	}

	//メール認証が済んでいないユーザーは拒否
	if !user.IsActive {
		return out, ErrUserInactive
	}

	now := u.clock.Now()
	token, expiresAt, err := u.issuer.Issue(user.ID, user.IsAdmin, now)
	if err != nil {
		return out, err
	}

	out.User = user
	out.Token = token
	out.ExpiresAt = expiresAt
	return out, nil
}
