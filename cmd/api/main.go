package main

import (
	"log"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, isAdmin bool, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub": userID,
		"adm": isAdmin,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無くても起動できる（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.ActivationToken{},
		&model.Product{},
		&model.Review{},
		&model.Order{},
		&model.OrderItem{},
		&model.ShippingAddress{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	activationRepo := infraRepo.NewActivationTokenGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 24 * time.Hour,
	}

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, activationRepo, hasher, idGen, clock)
	activateUC := auth.NewActivateUserUsecase(userRepo, activationRepo, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)

	productUC := usecase.NewProductUsecase(productRepo, inventoryRepo)
	reviewUC := usecase.NewReviewUsecase(txManager)
	orderUC := usecase.NewOrderUsecase(txManager)
	userUC := usecase.NewUserUsecase(userRepo, hasher)

	//Handler生成
	authH := handler.NewAuthHandler(registerUC, activateUC, loginUC, cfg)
	productH := handler.NewProductHandler(productUC, reviewUC)
	orderH := handler.NewOrderHandler(orderUC)
	userH := handler.NewUserHandler(userUC)
	adminProductH := handler.NewAdminProductHandler(productUC, cfg)
	adminUserH := handler.NewAdminUserHandler(userUC)

	//Server起動
	e := server.New(cfg, authH, productH, orderH, userH, adminProductH, adminUserH)
	if err := server.Start(e, cfg); err != nil {
		log.Fatal(err)
	}
}
