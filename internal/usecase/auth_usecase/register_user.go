package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

var (
	// 入力が不正
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrNameRequired       = errors.New("name required")

	// 競合
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// 会員登録の入力
type RegisterUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// 会員登録の出力。アクティベーションリンクはhandler側で組み立てる
type RegisterUserOutput struct {
	User            model.User
	ActivationToken string
}

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// UUID等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// アクティベーショントークンの有効期間
const activationTTL = 48 * time.Hour

// RegisterUserUsecaseは会員登録の処理。
// ユーザーはメール認証が済むまでis_active=falseで作られる。
type RegisterUserUsecase struct {
	userRepo       repository.UserRepository
	activationRepo repository.ActivationTokenRepository
	hasher         PasswordHasher
	idGen          IDGenerator
	clock          Clock
}

// DI
func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	activationRepo repository.ActivationTokenRepository,
	hasher PasswordHasher,
	idGen IDGenerator,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo:       userRepo,
		activationRepo: activationRepo,
		hasher:         hasher,
		idGen:          idGen,
		clock:          clock,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	email := strings.TrimSpace(in.Email)
	if email == "" {
		return out, ErrInvalidEmailFormat
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return out, ErrInvalidEmailFormat
	}
	if strings.TrimSpace(in.FirstName) == "" {
		return out, ErrNameRequired
	}
	if len(in.Password) < 8 {
		return out, ErrPasswordTooShort
	}

	// email重複チェック
	if _, err := u.userRepo.FindByEmail(ctx, email); err == nil {
		return out, ErrEmailAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return out, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	user := model.User{
		Email:        email,
		PasswordHash: hashed,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		IsAdmin:      false,
		IsActive:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	userID, err := u.userRepo.Create(ctx, user)
	if errors.Is(err, repository.ErrConflict) {
		//FindByEmailとCreateの間に同じemailが入った場合
		return out, ErrEmailAlreadyExists
	}
	if err != nil {
		return out, err
	}
	user.ID = userID

	token := u.idGen.NewID()
	if err := u.activationRepo.Create(ctx, model.ActivationToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(activationTTL),
		CreatedAt: now,
	}); err != nil {
		return out, err
	}

	out.User = user
	out.ActivationToken = token
	return out, nil
}
