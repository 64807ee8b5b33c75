package repository

import (
	"context"

	"app/internal/domain/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	List(ctx context.Context, page int, limit int) ([]model.User, int64, error)

	//emailが重複しているときはErrConflict
	Create(ctx context.Context, u model.User) (int64, error)
	Update(ctx context.Context, u model.User) error
	Activate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
