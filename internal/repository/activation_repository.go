package repository

import (
	"context"

	"app/internal/domain/model"
)

type ActivationTokenRepository interface {
	Create(ctx context.Context, t model.ActivationToken) error
	FindByToken(ctx context.Context, token string) (model.ActivationToken, error)
	MarkUsed(ctx context.Context, id int64) error
}
