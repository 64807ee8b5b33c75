package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// 一覧検索
type ProductListQuery struct {
	Page     int
	Limit    int
	Q        string
	Category string
	Sort     string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
	UpdateImage(ctx context.Context, id int64, image string) error
	UpdateRating(ctx context.Context, id int64, rating decimal.Decimal, numReviews int64) error
}

// 在庫操作の約束。
type InventoryRepository interface {
	//在庫が足りるときだけ減らす。足りなければfalse
	DecrementStockIfAvailable(ctx context.Context, productID int64, qty int64) (bool, error)
	IncrementStock(ctx context.Context, productID int64, qty int64) error
	SetStock(ctx context.Context, productID int64, newCount int64) error
}
