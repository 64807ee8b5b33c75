package usecase

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

// GET /products の入力DTO
type ListProductsInput struct {
	Page     int
	Limit    int
	Q        string
	Category string
	Sort     string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewValidationError("invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewValidationError("invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewValidationError("q too long")
	}
	switch in.Sort {
	case "", "new", "price_asc", "price_desc", "rating":
	default:
		return ProductListOutput{}, NewValidationError("invalid sort")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Q:        strings.TrimSpace(in.Q),
		Category: strings.TrimSpace(in.Category),
		Sort:     in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewPersistenceError("db error")
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewValidationError("invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewNotFoundError("product not found")
	}
	if err != nil {
		return model.Product{}, NewPersistenceError("db error")
	}
	return p, nil
}

// AdminCreateProduct は編集前提のサンプル商品を作る。
func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, requester Requester) (model.Product, error) {
	if requester.ID <= 0 {
		return model.Product{}, NewUnauthorizedError("unauthorized")
	}
	if !requester.IsAdmin {
		return model.Product{}, NewForbiddenError("admin only")
	}

	ownerID := requester.ID
	p, err := u.productRepo.Create(ctx, model.Product{
		OwnerID:      &ownerID,
		Name:         "Sample Product",
		Brand:        "Sample Brand",
		Category:     "Sample Category",
		Description:  "",
		Price:        decimal.Zero,
		CountInStock: 0,
		Rating:       decimal.Zero,
		NumReviews:   0,
	})
	if err != nil {
		return model.Product{}, NewPersistenceError("db error")
	}
	return p, nil
}

type AdminUpdateProductInput struct {
	Name         string
	Brand        string
	Category     string
	Description  string
	Price        decimal.Decimal
	CountInStock int64
}

func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, requester Requester, productID int64, in AdminUpdateProductInput) (model.Product, error) {
	if requester.ID <= 0 {
		return model.Product{}, NewUnauthorizedError("unauthorized")
	}
	if !requester.IsAdmin {
		return model.Product{}, NewForbiddenError("admin only")
	}
	if productID <= 0 {
		return model.Product{}, NewValidationError("invalid product id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewValidationError("name required")
	}
	if in.Price.IsNegative() {
		return model.Product{}, NewValidationError("price must be >= 0")
	}
	if in.CountInStock < 0 {
		return model.Product{}, NewValidationError("stock must be >= 0")
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:           productID,
		Name:         strings.TrimSpace(in.Name),
		Brand:        in.Brand,
		Category:     in.Category,
		Description:  in.Description,
		Price:        in.Price,
		CountInStock: in.CountInStock,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewNotFoundError("product not found")
	}
	if err != nil {
		return model.Product{}, NewPersistenceError("db error")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return model.Product{}, NewPersistenceError("db error")
	}
	return p, nil
}

// AdminDeleteProduct は商品を削除する。
// 過去の注文明細のスナップショットはそのまま残る。
func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, requester Requester, productID int64) error {
	if requester.ID <= 0 {
		return NewUnauthorizedError("unauthorized")
	}
	if !requester.IsAdmin {
		return NewForbiddenError("admin only")
	}
	if productID <= 0 {
		return NewValidationError("invalid product id")
	}

	err := u.productRepo.Delete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("product not found")
	}
	if err != nil {
		return NewPersistenceError("db error")
	}
	return nil
}

func (u *ProductUsecase) AdminSetStock(ctx context.Context, requester Requester, productID int64, newCount int64) error {
	if requester.ID <= 0 {
		return NewUnauthorizedError("unauthorized")
	}
	if !requester.IsAdmin {
		return NewForbiddenError("admin only")
	}
	if productID <= 0 {
		return NewValidationError("invalid product id")
	}
	if newCount < 0 {
		return NewValidationError("stock must be >= 0")
	}

	err := u.inventoryRepo.SetStock(ctx, productID, newCount)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("product not found")
	}
	if err != nil {
		return NewPersistenceError("db error")
	}
	return nil
}

// AdminSetImage はアップロード済み画像のパスを商品に紐付ける。
func (u *ProductUsecase) AdminSetImage(ctx context.Context, requester Requester, productID int64, image string) error {
	if requester.ID <= 0 {
		return NewUnauthorizedError("unauthorized")
	}
	if !requester.IsAdmin {
		return NewForbiddenError("admin only")
	}
	if productID <= 0 {
		return NewValidationError("invalid product id")
	}
	if strings.TrimSpace(image) == "" {
		return NewValidationError("image required")
	}

	err := u.productRepo.UpdateImage(ctx, productID, image)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("product not found")
	}
	if err != nil {
		return NewPersistenceError("db error")
	}
	return nil
}
