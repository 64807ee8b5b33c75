package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	products   repo.ProductRepository
	inventory  repo.InventoryRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	addresses  repo.ShippingAddressRepository
	users      repo.UserRepository
	reviews    repo.ReviewRepository
}

func (r *txReposGorm) Products() repo.ProductRepository                  { return r.products }
func (r *txReposGorm) Inventory() repo.InventoryRepository               { return r.inventory }
func (r *txReposGorm) Orders() repo.OrderRepository                      { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository              { return r.orderItems }
func (r *txReposGorm) ShippingAddresses() repo.ShippingAddressRepository { return r.addresses }
func (r *txReposGorm) Users() repo.UserRepository                        { return r.users }
func (r *txReposGorm) Reviews() repo.ReviewRepository                    { return r.reviews }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			products:   NewProductGormRepository(tx),
			inventory:  NewInventoryGormRepository(tx),
			orders:     NewOrderGormRepository(tx),
			orderItems: NewOrderItemGormRepository(tx),
			addresses:  NewShippingAddressGormRepository(tx),
			users:      NewUserGormRepository(tx),
			reviews:    NewReviewGormRepository(tx),
		}
		return fn(r)
	})
}
