package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderLineInput struct {
	ProductID int64
	Quantity  int64
}

type ShippingAddressInput struct {
	Address    string
	City       string
	PostalCode string
	Country    string
}

type PlaceOrderInput struct {
	Items           []OrderLineInput
	ShippingAddress ShippingAddressInput
	PaymentMethod   string
	TaxPrice        decimal.Decimal
	ShippingPrice   decimal.Decimal
	TotalPrice      decimal.Decimal
}

// PlaceOrder は注文確定処理。
// 在庫減算・注文ヘッダ・明細・配送先の作成を1トランザクションで行い、
// 途中で失敗したら何も書き込まれない。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, requester Requester, in PlaceOrderInput) (OrderView, error) {
	if requester.ID <= 0 {
		return OrderView{}, NewUnauthorizedError("unauthorized")
	}
	if len(in.Items) == 0 {
		return OrderView{}, NewValidationError("no order items")
	}
	for _, line := range in.Items {
		if line.ProductID <= 0 {
			return OrderView{}, NewValidationError("invalid product id")
		}
		if line.Quantity < 1 {
			return OrderView{}, NewValidationError("invalid quantity")
		}
	}
	if err := validateShippingAddress(in.ShippingAddress); err != nil {
		return OrderView{}, err
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return OrderView{}, NewValidationError("payment method required")
	}
	if in.TaxPrice.IsNegative() || in.ShippingPrice.IsNegative() {
		return OrderView{}, NewValidationError("negative amount")
	}

	var out OrderView

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		itemsSum := decimal.Zero

		for _, line := range in.Items {
			//商品取得。1つでも見つからなければ全体を失敗させる
			p, err := r.Products().FindByID(ctx, line.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewNotFoundError("product not found")
			}
			if err != nil {
				return NewPersistenceError("db error")
			}

			//在庫減算（足りなければfalse）
			ok, err := r.Inventory().DecrementStockIfAvailable(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return NewPersistenceError("db error")
			}
			if !ok {
				return NewInsufficientStockError("insufficient stock")
			}

			//スナップショット。以後の商品編集は過去の注文に影響しない
			productID := p.ID
			orderItems = append(orderItems, model.OrderItem{
				ProductID: &productID,
				Name:      p.Name,
				Image:     p.Image,
				Price:     p.Price,
				Quantity:  line.Quantity,
			})

			itemsSum = itemsSum.Add(p.Price.Mul(decimal.NewFromInt(line.Quantity)))
		}

		//合計はサーバ側で再計算し、クライアント申告と一致しなければ拒否する
		expected := itemsSum.Add(in.TaxPrice).Add(in.ShippingPrice)
		if !expected.Equal(in.TotalPrice) {
			return NewValidationError("total price mismatch")
		}

		userID := requester.ID
		now := time.Now()
		order := model.Order{
			UserID:        &userID,
			PaymentMethod: strings.TrimSpace(in.PaymentMethod),
			TaxPrice:      in.TaxPrice,
			ShippingPrice: in.ShippingPrice,
			TotalPrice:    in.TotalPrice,
			CreatedAt:     now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewPersistenceError("db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewPersistenceError("db error")
		}

		addr := model.ShippingAddress{
			OrderID:       orderID,
			Address:       strings.TrimSpace(in.ShippingAddress.Address),
			City:          strings.TrimSpace(in.ShippingAddress.City),
			PostalCode:    strings.TrimSpace(in.ShippingAddress.PostalCode),
			Country:       strings.TrimSpace(in.ShippingAddress.Country),
			ShippingPrice: in.ShippingPrice,
		}
		addrID, err := r.ShippingAddresses().Create(ctx, addr)
		if err != nil {
			return NewPersistenceError("db error")
		}
		addr.ID = addrID

		order.ID = orderID

		user, err := u.loadOrderUser(ctx, r, order.UserID)
		if err != nil {
			return err
		}

		out = ComposeOrderView(order, orderItems, &addr, user)
		return nil
	})

	if err != nil {
		return OrderView{}, err
	}
	return out, nil
}

// GetOrder は所有者か管理者だけに注文を見せる。
func (u *OrderUsecase) GetOrder(ctx context.Context, requester Requester, orderID int64) (OrderView, error) {
	if requester.ID <= 0 {
		return OrderView{}, NewUnauthorizedError("unauthorized")
	}
	if orderID <= 0 {
		return OrderView{}, NewValidationError("invalid id")
	}

	var out OrderView

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("order not found")
		}
		if err != nil {
			return NewPersistenceError("db error")
		}

		//認可はデータを返す前に判定する
		if !requester.IsAdmin {
			if o.UserID == nil || *o.UserID != requester.ID {
				return NewForbiddenError("not authorized to view this order")
			}
		}

		view, err := u.composeOrder(ctx, r, o)
		if err != nil {
			return err
		}
		out = view
		return nil
	})

	if err != nil {
		return OrderView{}, err
	}
	return out, nil
}

// ListMyOrders は自分の注文一覧（新しい順）。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, requester Requester) ([]OrderView, error) {
	if requester.ID <= 0 {
		return []OrderView{}, NewUnauthorizedError("unauthorized")
	}

	var outs []OrderView

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, requester.ID, 1, 50)
		if err != nil {
			return NewPersistenceError("db error")
		}

		outs = make([]OrderView, 0, len(orders))
		for _, o := range orders {
			view, err := u.composeOrder(ctx, r, o)
			if err != nil {
				return err
			}
			outs = append(outs, view)
		}
		return nil
	})

	if err != nil {
		return []OrderView{}, err
	}
	return outs, nil
}

// ListAllOrders は管理者専用の全注文一覧。
func (u *OrderUsecase) ListAllOrders(ctx context.Context, requester Requester, page int, limit int) ([]OrderView, error) {
	if requester.ID <= 0 {
		return []OrderView{}, NewUnauthorizedError("unauthorized")
	}
	if !requester.IsAdmin {
		return []OrderView{}, NewForbiddenError("admin only")
	}

	var outs []OrderView

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListAll(ctx, page, limit)
		if err != nil {
			return NewPersistenceError("db error")
		}

		outs = make([]OrderView, 0, len(orders))
		for _, o := range orders {
			view, err := u.composeOrder(ctx, r, o)
			if err != nil {
				return err
			}
			outs = append(outs, view)
		}
		return nil
	})

	if err != nil {
		return []OrderView{}, err
	}
	return outs, nil
}

// MarkPaid は支払済みフラグを立てる（所有者か管理者）。
func (u *OrderUsecase) MarkPaid(ctx context.Context, requester Requester, orderID int64) error {
	if requester.ID <= 0 {
		return NewUnauthorizedError("unauthorized")
	}
	if orderID <= 0 {
		return NewValidationError("invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("order not found")
		}
		if err != nil {
			return NewPersistenceError("db error")
		}

		if !requester.IsAdmin {
			if o.UserID == nil || *o.UserID != requester.ID {
				return NewForbiddenError("not authorized")
			}
		}
		if o.IsPaid {
			return NewConflictError("order already paid")
		}

		if err := r.Orders().MarkPaid(ctx, orderID, time.Now()); err != nil {
			return NewPersistenceError("db error")
		}
		return nil
	})
}

// MarkDelivered は配達済みフラグを立てる（管理者のみ、支払済みが前提）。
func (u *OrderUsecase) MarkDelivered(ctx context.Context, requester Requester, orderID int64) error {
	if requester.ID <= 0 {
		return NewUnauthorizedError("unauthorized")
	}
	if !requester.IsAdmin {
		return NewForbiddenError("admin only")
	}
	if orderID <= 0 {
		return NewValidationError("invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("order not found")
		}
		if err != nil {
			return NewPersistenceError("db error")
		}

		if !o.IsPaid {
			return NewConflictError("order not paid")
		}
		if o.IsDelivered {
			return NewConflictError("order already delivered")
		}

		if err := r.Orders().MarkDelivered(ctx, orderID, time.Now()); err != nil {
			return NewPersistenceError("db error")
		}
		return nil
	})
}

// 注文1件分のViewを組み立てる
func (u *OrderUsecase) composeOrder(ctx context.Context, r repo.TxRepos, o model.Order) (OrderView, error) {
	items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderView{}, NewPersistenceError("db error")
	}

	var addr *model.ShippingAddress
	a, err := r.ShippingAddresses().FindByOrderID(ctx, o.ID)
	if err == nil {
		addr = &a
	} else if !errors.Is(err, repo.ErrNotFound) {
		return OrderView{}, NewPersistenceError("db error")
	}

	user, err := u.loadOrderUser(ctx, r, o.UserID)
	if err != nil {
		return OrderView{}, err
	}

	return ComposeOrderView(o, items, addr, user), nil
}

// 注文主を取得。削除済み（NULL/行なし）ならnil
func (u *OrderUsecase) loadOrderUser(ctx context.Context, r repo.TxRepos, userID *int64) (*model.User, error) {
	if userID == nil {
		return nil, nil
	}
	user, err := r.Users().FindByID(ctx, *userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, NewPersistenceError("db error")
	}
	return &user, nil
}

func validateShippingAddress(in ShippingAddressInput) error {
	if strings.TrimSpace(in.Address) == "" {
		return NewValidationError("address required")
	}
	if strings.TrimSpace(in.City) == "" {
		return NewValidationError("city required")
	}
	if strings.TrimSpace(in.PostalCode) == "" {
		return NewValidationError("postal code required")
	}
	if strings.TrimSpace(in.Country) == "" {
		return NewValidationError("country required")
	}
	return nil
}
