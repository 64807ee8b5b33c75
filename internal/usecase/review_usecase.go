package usecase

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type ReviewUsecase struct {
	tx repo.TransactionManager
}

func NewReviewUsecase(tx repo.TransactionManager) *ReviewUsecase {
	return &ReviewUsecase{tx: tx}
}

type CreateReviewInput struct {
	Rating  int
	Comment string
}

// CreateReview はレビュー作成と商品の集計値更新を1トランザクションで行う。
func (u *ReviewUsecase) CreateReview(ctx context.Context, requester Requester, productID int64, in CreateReviewInput) (model.Review, error) {
	if requester.ID <= 0 {
		return model.Review{}, NewUnauthorizedError("unauthorized")
	}
	if productID <= 0 {
		return model.Review{}, NewValidationError("invalid product id")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return model.Review{}, NewValidationError("rating must be 1-5")
	}

	var out model.Review

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewNotFoundError("product not found")
			}
			return NewPersistenceError("db error")
		}

		//同じ商品への二重投稿は拒否
		exists, err := r.Reviews().ExistsForUser(ctx, productID, requester.ID)
		if err != nil {
			return NewPersistenceError("db error")
		}
		if exists {
			return NewConflictError("product already reviewed")
		}

		user, err := r.Users().FindByID(ctx, requester.ID)
		if err != nil {
			return NewPersistenceError("db error")
		}

		name := user.FirstName
		if name == "" {
			name = user.Email
		}

		userID := requester.ID
		review := model.Review{
			ProductID: productID,
			UserID:    &userID,
			Name:      name,
			Rating:    in.Rating,
			Comment:   in.Comment,
		}

		reviewID, err := r.Reviews().Create(ctx, review)
		if err != nil {
			return NewPersistenceError("db error")
		}
		review.ID = reviewID

		//集計し直して商品に反映
		reviews, err := r.Reviews().ListByProductID(ctx, productID)
		if err != nil {
			return NewPersistenceError("db error")
		}

		var sum int64
		for _, rv := range reviews {
			sum += int64(rv.Rating)
		}
		count := int64(len(reviews))
		avg := decimal.NewFromInt(sum).Div(decimal.NewFromInt(count)).Round(1)

		if err := r.Products().UpdateRating(ctx, productID, avg, count); err != nil {
			return NewPersistenceError("db error")
		}

		out = review
		return nil
	})

	if err != nil {
		return model.Review{}, err
	}
	return out, nil
}

// ListReviews は商品のレビュー一覧（新しい順）。
func (u *ReviewUsecase) ListReviews(ctx context.Context, productID int64) ([]model.Review, error) {
	if productID <= 0 {
		return []model.Review{}, NewValidationError("invalid product id")
	}

	var out []model.Review

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewNotFoundError("product not found")
			}
			return NewPersistenceError("db error")
		}

		reviews, err := r.Reviews().ListByProductID(ctx, productID)
		if err != nil {
			return NewPersistenceError("db error")
		}
		out = reviews
		return nil
	})

	if err != nil {
		return []model.Review{}, err
	}
	return out, nil
}
