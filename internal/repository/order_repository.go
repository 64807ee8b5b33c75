package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	//管理者用の全注文一覧
	ListAll(ctx context.Context, page int, limit int) ([]model.Order, int64, error)

	MarkPaid(ctx context.Context, orderID int64, at time.Time) error
	MarkDelivered(ctx context.Context, orderID int64, at time.Time) error
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}

type ShippingAddressRepository interface {
	Create(ctx context.Context, addr model.ShippingAddress) (int64, error)
	FindByOrderID(ctx context.Context, orderID int64) (model.ShippingAddress, error)
}
