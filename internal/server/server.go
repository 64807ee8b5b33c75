package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// ルート登録できるhandlerの約束
type RouteRegistrar interface {
	RegisterRoutes(e *echo.Echo, cfg config.Config)
}

// NewはEchoを組み立てて全handlerのルートを登録する
func New(cfg config.Config, handlers ...RouteRegistrar) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.FEURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.Validator = validator.New()

	//商品画像の配信
	e.Static("/uploads", cfg.UploadDir)

	for _, h := range handlers {
		h.RegisterRoutes(e, cfg)
	}

	return e
}

// Startはサーバーを起動する
func Start(e *echo.Echo, cfg config.Config) error {
	return e.Start(":" + cfg.Port)
}
