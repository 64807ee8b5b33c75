package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ShippingAddressGormRepository struct {
	db *gorm.DB
}

func NewShippingAddressGormRepository(db *gorm.DB) *ShippingAddressGormRepository {
	return &ShippingAddressGormRepository{db: db}
}

func (r *ShippingAddressGormRepository) Create(ctx context.Context, addr model.ShippingAddress) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&addr).Error; err != nil {
		return 0, err
	}
	return addr.ID, nil
}

func (r *ShippingAddressGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.ShippingAddress, error) {
	var a model.ShippingAddress
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ShippingAddress{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ShippingAddress{}, err
	}
	return a, nil
}
