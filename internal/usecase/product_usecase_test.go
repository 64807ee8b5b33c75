package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductUC(store *memStore) *ProductUsecase {
	return NewProductUsecase(&fakeProductRepo{store: store}, &fakeInventoryRepo{store: store})
}

func TestListProducts_Validation(t *testing.T) {
	store := newMemStore()
	uc := newProductUC(store)

	_, err := uc.ListProducts(context.Background(), ListProductsInput{Page: 0, Limit: 10})
	assertKind(t, err, KindValidation)

	_, err = uc.ListProducts(context.Background(), ListProductsInput{Page: 1, Limit: 101})
	assertKind(t, err, KindValidation)

	_, err = uc.ListProducts(context.Background(), ListProductsInput{Page: 1, Limit: 10, Sort: "bogus"})
	assertKind(t, err, KindValidation)
}

func TestListProducts_FilterAndSort(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "Cheap Keyboard", "5.00", 1)
	seedProduct(store, "Pricey Keyboard", "50.00", 1)
	mouse := seedProduct(store, "Mouse", "20.00", 1)

	uc := newProductUC(store)

	out, err := uc.ListProducts(context.Background(), ListProductsInput{Page: 1, Limit: 10, Q: "keyboard"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Total)

	out, err = uc.ListProducts(context.Background(), ListProductsInput{Page: 1, Limit: 10, Sort: "price_asc"})
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	assert.Equal(t, "Cheap Keyboard", out.Items[0].Name)
	assert.Equal(t, "Pricey Keyboard", out.Items[2].Name)

	out, err = uc.ListProducts(context.Background(), ListProductsInput{Page: 1, Limit: 10, Q: "mouse"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, mouse.ID, out.Items[0].ID)
}

func TestGetProductDetail(t *testing.T) {
	store := newMemStore()
	product := seedProduct(store, "Keyboard", "10.00", 5)

	uc := newProductUC(store)

	p, err := uc.GetProductDetail(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keyboard", p.Name)

	_, err = uc.GetProductDetail(context.Background(), 9999)
	assertKind(t, err, KindNotFound)
}

func TestAdminCreateProduct(t *testing.T) {
	store := newMemStore()
	admin := seedUser(store, "admin@example.com", "Admin", true)
	user := seedUser(store, "taro@example.com", "Taro", false)

	uc := newProductUC(store)

	// 一般ユーザーは403
	_, err := uc.AdminCreateProduct(context.Background(), Requester{ID: user.ID})
	assertKind(t, err, KindForbidden)

	p, err := uc.AdminCreateProduct(context.Background(), Requester{ID: admin.ID, IsAdmin: true})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "Sample Product", p.Name)
	require.NotNil(t, p.OwnerID)
	assert.Equal(t, admin.ID, *p.OwnerID)
}

func TestAdminUpdateProduct(t *testing.T) {
	store := newMemStore()
	admin := seedUser(store, "admin@example.com", "Admin", true)
	product := seedProduct(store, "Keyboard", "10.00", 5)

	uc := newProductUC(store)
	req := Requester{ID: admin.ID, IsAdmin: true}

	// 名前必須
	_, err := uc.AdminUpdateProduct(context.Background(), req, product.ID, AdminUpdateProductInput{Name: " ", Price: dec("10.00")})
	assertKind(t, err, KindValidation)

	// 負の価格は拒否
	_, err = uc.AdminUpdateProduct(context.Background(), req, product.ID, AdminUpdateProductInput{Name: "Keyboard", Price: dec("-1")})
	assertKind(t, err, KindValidation)

	p, err := uc.AdminUpdateProduct(context.Background(), req, product.ID, AdminUpdateProductInput{
		Name:         "Mechanical Keyboard",
		Brand:        "Acme",
		Price:        dec("25.00"),
		CountInStock: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, "Mechanical Keyboard", p.Name)
	assert.True(t, p.Price.Equal(dec("25.00")))
	assert.Equal(t, int64(9), p.CountInStock)

	_, err = uc.AdminUpdateProduct(context.Background(), req, 9999, AdminUpdateProductInput{Name: "X", Price: dec("1")})
	assertKind(t, err, KindNotFound)
}

func TestAdminDeleteProduct(t *testing.T) {
	store := newMemStore()
	admin := seedUser(store, "admin@example.com", "Admin", true)
	product := seedProduct(store, "Keyboard", "10.00", 5)

	uc := newProductUC(store)

	require.NoError(t, uc.AdminDeleteProduct(context.Background(), Requester{ID: admin.ID, IsAdmin: true}, product.ID))
	assert.NotContains(t, store.products, product.ID)

	err := uc.AdminDeleteProduct(context.Background(), Requester{ID: admin.ID, IsAdmin: true}, product.ID)
	assertKind(t, err, KindNotFound)
}

func TestAdminSetStock(t *testing.T) {
	store := newMemStore()
	admin := seedUser(store, "admin@example.com", "Admin", true)
	user := seedUser(store, "taro@example.com", "Taro", false)
	product := seedProduct(store, "Keyboard", "10.00", 5)

	uc := newProductUC(store)

	err := uc.AdminSetStock(context.Background(), Requester{ID: user.ID}, product.ID, 10)
	assertKind(t, err, KindForbidden)

	err = uc.AdminSetStock(context.Background(), Requester{ID: admin.ID, IsAdmin: true}, product.ID, -1)
	assertKind(t, err, KindValidation)

	require.NoError(t, uc.AdminSetStock(context.Background(), Requester{ID: admin.ID, IsAdmin: true}, product.ID, 10))
	assert.Equal(t, int64(10), store.products[product.ID].CountInStock)
}

func TestAdminSetImage(t *testing.T) {
	store := newMemStore()
	admin := seedUser(store, "admin@example.com", "Admin", true)
	product := seedProduct(store, "Keyboard", "10.00", 5)

	uc := newProductUC(store)
	req := Requester{ID: admin.ID, IsAdmin: true}

	err := uc.AdminSetImage(context.Background(), req, product.ID, " ")
	assertKind(t, err, KindValidation)

	require.NoError(t, uc.AdminSetImage(context.Background(), req, product.ID, "/uploads/abc.png"))
	assert.Equal(t, "/uploads/abc.png", store.products[product.ID].Image)
}
