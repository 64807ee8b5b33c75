package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func TestGetProfile(t *testing.T) {
	store := newMemStore()
	user := seedUser(store, "taro@example.com", "Taro", false)

	uc := NewUserUsecase(&fakeUserRepo{store: store}, fakeHasher{})

	got, err := uc.GetProfile(context.Background(), Requester{ID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, "taro@example.com", got.Email)

	_, err = uc.GetProfile(context.Background(), Requester{ID: 9999})
	assertKind(t, err, KindNotFound)
}

func TestUpdateProfile(t *testing.T) {
	store := newMemStore()
	user := seedUser(store, "taro@example.com", "Taro", false)

	uc := NewUserUsecase(&fakeUserRepo{store: store}, fakeHasher{})

	// パスワード短すぎは400
	_, err := uc.UpdateProfile(context.Background(), Requester{ID: user.ID}, UpdateProfileInput{
		FirstName: "Taro",
		Password:  "short",
	})
	assertKind(t, err, KindValidation)

	got, err := uc.UpdateProfile(context.Background(), Requester{ID: user.ID}, UpdateProfileInput{
		FirstName: " Ichiro ",
		LastName:  "Suzuki",
		Password:  "newpassword123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ichiro", got.FirstName)
	assert.Equal(t, "Suzuki", got.LastName)
	assert.Equal(t, "hashed:newpassword123", store.users[user.ID].PasswordHash)

	// 空パスワードは変更しない
	_, err = uc.UpdateProfile(context.Background(), Requester{ID: user.ID}, UpdateProfileInput{FirstName: "Ichiro"})
	require.NoError(t, err)
	assert.Equal(t, "hashed:newpassword123", store.users[user.ID].PasswordHash)
}

func TestAdminListUsers(t *testing.T) {
	store := newMemStore()
	admin := seedUser(store, "admin@example.com", "Admin", true)
	seedUser(store, "taro@example.com", "Taro", false)

	uc := NewUserUsecase(&fakeUserRepo{store: store}, fakeHasher{})

	_, _, err := uc.AdminListUsers(context.Background(), Requester{ID: 2}, 1, 50)
	assertKind(t, err, KindForbidden)

	users, total, err := uc.AdminListUsers(context.Background(), Requester{ID: admin.ID, IsAdmin: true}, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)
}

func TestAdminUpdateUser(t *testing.T) {
	store := newMemStore()
	admin := seedUser(store, "admin@example.com", "Admin", true)
	taro := seedUser(store, "taro@example.com", "Taro", false)
	seedUser(store, "jiro@example.com", "Jiro", false)

	uc := NewUserUsecase(&fakeUserRepo{store: store}, fakeHasher{})
	req := Requester{ID: admin.ID, IsAdmin: true}

	// 不正なemailは400
	_, err := uc.AdminUpdateUser(context.Background(), req, taro.ID, AdminUpdateUserInput{FirstName: "Taro", Email: "not-an-email"})
	assertKind(t, err, KindValidation)

	// 使用中のemailは409
	_, err = uc.AdminUpdateUser(context.Background(), req, taro.ID, AdminUpdateUserInput{FirstName: "Taro", Email: "jiro@example.com"})
	assertKind(t, err, KindConflict)

	got, err := uc.AdminUpdateUser(context.Background(), req, taro.ID, AdminUpdateUserInput{
		FirstName: "Taro",
		Email:     "taro2@example.com",
		IsAdmin:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "taro2@example.com", got.Email)
	assert.True(t, got.IsAdmin)
}

func TestAdminDeleteUser(t *testing.T) {
	store := newMemStore()
	admin := seedUser(store, "admin@example.com", "Admin", true)
	taro := seedUser(store, "taro@example.com", "Taro", false)

	uc := NewUserUsecase(&fakeUserRepo{store: store}, fakeHasher{})
	req := Requester{ID: admin.ID, IsAdmin: true}

	// 自分自身は消せない
	err := uc.AdminDeleteUser(context.Background(), req, admin.ID)
	assertKind(t, err, KindConflict)

	require.NoError(t, uc.AdminDeleteUser(context.Background(), req, taro.ID))
	assert.NotContains(t, store.users, taro.ID)

	err = uc.AdminDeleteUser(context.Background(), req, taro.ID)
	assertKind(t, err, KindNotFound)
}
