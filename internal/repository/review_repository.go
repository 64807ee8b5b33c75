package repository

import (
	"context"

	"app/internal/domain/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, r model.Review) (int64, error)
	ListByProductID(ctx context.Context, productID int64) ([]model.Review, error)

	//同じユーザーが同じ商品に二重投稿していないか
	ExistsForUser(ctx context.Context, productID int64, userID int64) (bool, error)
}
