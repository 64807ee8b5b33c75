package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 平文パスワードからハッシュへ
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type UserUsecase struct {
	userRepo repo.UserRepository
	hasher   PasswordHasher
}

func NewUserUsecase(userRepo repo.UserRepository, hasher PasswordHasher) *UserUsecase {
	return &UserUsecase{userRepo: userRepo, hasher: hasher}
}

func (u *UserUsecase) GetProfile(ctx context.Context, requester Requester) (model.User, error) {
	if requester.ID <= 0 {
		return model.User{}, NewUnauthorizedError("unauthorized")
	}

	user, err := u.userRepo.FindByID(ctx, requester.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.User{}, NewNotFoundError("user not found")
	}
	if err != nil {
		return model.User{}, NewPersistenceError("db error")
	}
	return user, nil
}

type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Password  string //空なら変更しない
}

func (u *UserUsecase) UpdateProfile(ctx context.Context, requester Requester, in UpdateProfileInput) (model.User, error) {
	if requester.ID <= 0 {
		return model.User{}, NewUnauthorizedError("unauthorized")
	}

	user, err := u.userRepo.FindByID(ctx, requester.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.User{}, NewNotFoundError("user not found")
	}
	if err != nil {
		return model.User{}, NewPersistenceError("db error")
	}

	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)

	if in.Password != "" {
		if len(in.Password) < 8 {
			return model.User{}, NewValidationError("password too short")
		}
		hashed, err := u.hasher.Hash(in.Password)
		if err != nil {
			return model.User{}, NewPersistenceError("hash error")
		}
		user.PasswordHash = hashed
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return model.User{}, NewPersistenceError("db error")
	}
	return user, nil
}

func (u *UserUsecase) AdminListUsers(ctx context.Context, requester Requester, page int, limit int) ([]model.User, int64, error) {
	if requester.ID <= 0 {
		return []model.User{}, 0, NewUnauthorizedError("unauthorized")
	}
	if !requester.IsAdmin {
		return []model.User{}, 0, NewForbiddenError("admin only")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	users, total, err := u.userRepo.List(ctx, page, limit)
	if err != nil {
		return []model.User{}, 0, NewPersistenceError("db error")
	}
	return users, total, nil
}

func (u *UserUsecase) AdminGetUser(ctx context.Context, requester Requester, userID int64) (model.User, error) {
	if requester.ID <= 0 {
		return model.User{}, NewUnauthorizedError("unauthorized")
	}
	if !requester.IsAdmin {
		return model.User{}, NewForbiddenError("admin only")
	}
	if userID <= 0 {
		return model.User{}, NewValidationError("invalid id")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.User{}, NewNotFoundError("user not found")
	}
	if err != nil {
		return model.User{}, NewPersistenceError("db error")
	}
	return user, nil
}

type AdminUpdateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
}

func (u *UserUsecase) AdminUpdateUser(ctx context.Context, requester Requester, userID int64, in AdminUpdateUserInput) (model.User, error) {
	if requester.ID <= 0 {
		return model.User{}, NewUnauthorizedError("unauthorized")
	}
	if !requester.IsAdmin {
		return model.User{}, NewForbiddenError("admin only")
	}
	if userID <= 0 {
		return model.User{}, NewValidationError("invalid id")
	}

	email := strings.TrimSpace(in.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return model.User{}, NewValidationError("invalid email")
		}
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.User{}, NewNotFoundError("user not found")
	}
	if err != nil {
		return model.User{}, NewPersistenceError("db error")
	}

	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	if email != "" {
		user.Email = email
	}
	user.IsAdmin = in.IsAdmin

	err = u.userRepo.Update(ctx, user)
	if errors.Is(err, repo.ErrConflict) {
		return model.User{}, NewConflictError("email already used")
	}
	if err != nil {
		return model.User{}, NewPersistenceError("db error")
	}
	return user, nil
}

func (u *UserUsecase) AdminDeleteUser(ctx context.Context, requester Requester, userID int64) error {
	if requester.ID <= 0 {
		return NewUnauthorizedError("unauthorized")
	}
	if !requester.IsAdmin {
		return NewForbiddenError("admin only")
	}
	if userID <= 0 {
		return NewValidationError("invalid id")
	}

	//自分自身は消せない
	if userID == requester.ID {
		return NewConflictError("cannot delete own account")
	}

	err := u.userRepo.Delete(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("user not found")
	}
	if err != nil {
		return NewPersistenceError("db error")
	}
	return nil
}
