package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReview_UpdatesProductAggregates(t *testing.T) {
	store := newMemStore()
	taro := seedUser(store, "taro@example.com", "Taro", false)
	jiro := seedUser(store, "jiro@example.com", "", false)
	product := seedProduct(store, "Keyboard", "10.00", 5)

	uc := NewReviewUsecase(newFakeTxManager(store))

	r1, err := uc.CreateReview(context.Background(), Requester{ID: taro.ID}, product.ID, CreateReviewInput{Rating: 4, Comment: "good"})
	require.NoError(t, err)
	assert.NotZero(t, r1.ID)
	assert.Equal(t, "Taro", r1.Name)

	p := store.products[product.ID]
	assert.True(t, p.Rating.Equal(dec("4")), "got %s", p.Rating)
	assert.Equal(t, int64(1), p.NumReviews)

	// FirstNameが無いユーザーはemailが表示名になる
	r2, err := uc.CreateReview(context.Background(), Requester{ID: jiro.ID}, product.ID, CreateReviewInput{Rating: 5, Comment: "great"})
	require.NoError(t, err)
	assert.Equal(t, "jiro@example.com", r2.Name)

	p = store.products[product.ID]
	assert.True(t, p.Rating.Equal(dec("4.5")), "got %s", p.Rating)
	assert.Equal(t, int64(2), p.NumReviews)
}

func TestCreateReview_DuplicateRejected(t *testing.T) {
	store := newMemStore()
	taro := seedUser(store, "taro@example.com", "Taro", false)
	product := seedProduct(store, "Keyboard", "10.00", 5)

	uc := NewReviewUsecase(newFakeTxManager(store))

	_, err := uc.CreateReview(context.Background(), Requester{ID: taro.ID}, product.ID, CreateReviewInput{Rating: 4})
	require.NoError(t, err)

	_, err = uc.CreateReview(context.Background(), Requester{ID: taro.ID}, product.ID, CreateReviewInput{Rating: 1})
	assertKind(t, err, KindConflict)

	// 集計は1件目のまま
	p := store.products[product.ID]
	assert.Equal(t, int64(1), p.NumReviews)
	assert.True(t, p.Rating.Equal(dec("4")))
}

func TestCreateReview_InvalidRating(t *testing.T) {
	store := newMemStore()
	taro := seedUser(store, "taro@example.com", "Taro", false)
	product := seedProduct(store, "Keyboard", "10.00", 5)

	uc := NewReviewUsecase(newFakeTxManager(store))

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.CreateReview(context.Background(), Requester{ID: taro.ID}, product.ID, CreateReviewInput{Rating: rating})
		assertKind(t, err, KindValidation)
	}
}

func TestCreateReview_ProductNotFound(t *testing.T) {
	store := newMemStore()
	taro := seedUser(store, "taro@example.com", "Taro", false)

	uc := NewReviewUsecase(newFakeTxManager(store))

	_, err := uc.CreateReview(context.Background(), Requester{ID: taro.ID}, 9999, CreateReviewInput{Rating: 4})
	assertKind(t, err, KindNotFound)
}

func TestListReviews(t *testing.T) {
	store := newMemStore()
	taro := seedUser(store, "taro@example.com", "Taro", false)
	jiro := seedUser(store, "jiro@example.com", "Jiro", false)
	product := seedProduct(store, "Keyboard", "10.00", 5)

	uc := NewReviewUsecase(newFakeTxManager(store))

	_, err := uc.CreateReview(context.Background(), Requester{ID: taro.ID}, product.ID, CreateReviewInput{Rating: 4})
	require.NoError(t, err)
	_, err = uc.CreateReview(context.Background(), Requester{ID: jiro.ID}, product.ID, CreateReviewInput{Rating: 5})
	require.NoError(t, err)

	reviews, err := uc.ListReviews(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	_, err = uc.ListReviews(context.Background(), 9999)
	assertKind(t, err, KindNotFound)
}
