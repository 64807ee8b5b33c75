package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//注文主。ユーザー削除後も注文はNULLで残す
	UserID *int64 `gorm:"index" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`

	PaymentMethod string `gorm:"type:varchar(200);not null" json:"payment_method"`

	TaxPrice      decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"tax_price"`
	ShippingPrice decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"shipping_price"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"total_price"`

	IsPaid      bool       `gorm:"not null;default:false" json:"is_paid"`
	PaidAt      *time.Time `json:"paid_at"`
	IsDelivered bool       `gorm:"not null;default:false" json:"is_delivered"`
	DeliveredAt *time.Time `json:"delivered_at"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
