package usecase

import (
	"time"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

type UserSummary struct {
	ID          *int64 `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

type OrderItemView struct {
	ProductID *int64          `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

type ShippingAddressView struct {
	Address       string          `json:"address"`
	City          string          `json:"city"`
	PostalCode    string          `json:"postal_code"`
	Country       string          `json:"country"`
	ShippingPrice decimal.Decimal `json:"shipping_price"`
}

type OrderView struct {
	ID            int64           `json:"id"`
	PaymentMethod string          `json:"payment_method"`
	TaxPrice      decimal.Decimal `json:"tax_price"`
	ShippingPrice decimal.Decimal `json:"shipping_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	IsPaid        bool            `json:"is_paid"`
	PaidAt        *time.Time      `json:"paid_at"`
	IsDelivered   bool            `json:"is_delivered"`
	DeliveredAt   *time.Time      `json:"delivered_at"`
	CreatedAt     time.Time       `json:"created_at"`

	Items           []OrderItemView      `json:"items"`
	ShippingAddress *ShippingAddressView `json:"shipping_address"`
	User            UserSummary          `json:"user"`
}

// ComposeOrderView は永続化済みの注文・明細・住所・ユーザーから
// 表示用の集約を組み立てる。ストレージにもトランスポートにも依存しない。
func ComposeOrderView(o model.Order, items []model.OrderItem, addr *model.ShippingAddress, user *model.User) OrderView {
	outItems := make([]OrderItemView, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemView{
			ProductID: it.ProductID,
			Name:      it.Name,
			Image:     it.Image,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	//住所は注文確定後なら必ずあるはずだが、無くても落とさない
	var addrView *ShippingAddressView
	if addr != nil {
		addrView = &ShippingAddressView{
			Address:       addr.Address,
			City:          addr.City,
			PostalCode:    addr.PostalCode,
			Country:       addr.Country,
			ShippingPrice: addr.ShippingPrice,
		}
	}

	return OrderView{
		ID:              o.ID,
		PaymentMethod:   o.PaymentMethod,
		TaxPrice:        o.TaxPrice,
		ShippingPrice:   o.ShippingPrice,
		TotalPrice:      o.TotalPrice,
		IsPaid:          o.IsPaid,
		PaidAt:          o.PaidAt,
		IsDelivered:     o.IsDelivered,
		DeliveredAt:     o.DeliveredAt,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
		ShippingAddress: addrView,
		User:            toUserSummary(user),
	}
}

// ユーザー削除済みの注文は "Unknown"/"N/A" で表示する
func toUserSummary(user *model.User) UserSummary {
	if user == nil {
		return UserSummary{ID: nil, DisplayName: "Unknown", Email: "N/A"}
	}

	name := user.FirstName
	if name == "" {
		name = user.Email
	}

	id := user.ID
	return UserSummary{ID: &id, DisplayName: name, Email: user.Email}
}
