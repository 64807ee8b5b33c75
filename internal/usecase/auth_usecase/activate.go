package auth

import (
	"context"
	"errors"
	"strings"

	"app/internal/repository"
)

var (
	ErrInvalidActivation = errors.New("invalid activation token")
	ErrActivationExpired = errors.New("activation token expired")
)

// ActivateUserUsecaseはメール認証リンクの処理。
type ActivateUserUsecase struct {
	userRepo       repository.UserRepository
	activationRepo repository.ActivationTokenRepository
	clock          Clock
}

// DI
func NewActivateUserUsecase(
	userRepo repository.UserRepository,
	activationRepo repository.ActivationTokenRepository,
	clock Clock,
) *ActivateUserUsecase {
	return &ActivateUserUsecase{
		userRepo:       userRepo,
		activationRepo: activationRepo,
		clock:          clock,
	}
}

func (u *ActivateUserUsecase) Execute(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidActivation
	}

	t, err := u.activationRepo.FindByToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidActivation
	}
	if err != nil {
		return err
	}

	//使用済みは再利用不可
	if t.UsedAt != nil {
		return ErrInvalidActivation
	}
	if u.clock.Now().After(t.ExpiresAt) {
		return ErrActivationExpired
	}

	if err := u.userRepo.Activate(ctx, t.UserID); err != nil {
		return err
	}
	return u.activationRepo.MarkUsed(ctx, t.ID)
}
