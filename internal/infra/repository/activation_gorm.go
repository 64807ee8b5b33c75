package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ActivationTokenGormRepository struct {
	db *gorm.DB
}

func NewActivationTokenGormRepository(db *gorm.DB) *ActivationTokenGormRepository {
	return &ActivationTokenGormRepository{db: db}
}

func (r *ActivationTokenGormRepository) Create(ctx context.Context, t model.ActivationToken) error {
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return err
	}
	return nil
}

func (r *ActivationTokenGormRepository) FindByToken(ctx context.Context, token string) (model.ActivationToken, error) {
	var t model.ActivationToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ActivationToken{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ActivationToken{}, err
	}
	return t, nil
}

func (r *ActivationTokenGormRepository) MarkUsed(ctx context.Context, id int64) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&model.ActivationToken{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
