package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /admin/products の管理者API
type AdminProductHandler struct {
	uc        *usecase.ProductUsecase
	uploadDir string
}

// DI
func NewAdminProductHandler(uc *usecase.ProductUsecase, cfg config.Config) *AdminProductHandler {
	return &AdminProductHandler{uc: uc, uploadDir: cfg.UploadDir}
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/admin/products")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.POST("/:id/image", h.uploadImage)
	g.PUT("/:id/stock", h.setStock)
}

func (h *AdminProductHandler) create(c echo.Context) error {
	requester, ok := requesterFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	p, err := h.uc.AdminCreateProduct(c.Request().Context(), requester)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

type adminUpdateProductRequest struct {
	Name         string          `json:"name" validate:"required"`
	Brand        string          `json:"brand"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CountInStock int64           `json:"count_in_stock" validate:"gte=0"`
}

func (h *AdminProductHandler) update(c echo.Context) error {
	requester, ok := requesterFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req adminUpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed"})
	}

	p, err := h.uc.AdminUpdateProduct(c.Request().Context(), requester, id, usecase.AdminUpdateProductInput{
		Name:         req.Name,
		Brand:        req.Brand,
		Category:     req.Category,
		Description:  req.Description,
		Price:        req.Price,
		CountInStock: req.CountInStock,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AdminProductHandler) delete(c echo.Context) error {
	requester, ok := requesterFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.AdminDeleteProduct(c.Request().Context(), requester, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"detail": "product deleted"})
}

func (h *AdminProductHandler) uploadImage(c echo.Context) error {
	requester, ok := requesterFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "image required"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid image"})
	}
	defer src.Close()

	//ファイル名は衝突しないように付け直す
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	name := uuid.NewString() + ext

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "upload failed"})
	}

	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "upload failed"})
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "upload failed"})
	}

	image := "/uploads/" + name
	if err := h.uc.AdminSetImage(c.Request().Context(), requester, id, image); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"detail": "image uploaded", "image": image})
}

type setStockRequest struct {
	CountInStock int64 `json:"count_in_stock" validate:"gte=0"`
}

func (h *AdminProductHandler) setStock(c echo.Context) error {
	requester, ok := requesterFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req setStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed"})
	}

	if err := h.uc.AdminSetStock(c.Request().Context(), requester, id, req.CountInStock); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"detail": "stock updated"})
}
