package model

import "github.com/shopspring/decimal"

// 配送先住所。注文と1:1
type ShippingAddress struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64  `gorm:"not null;uniqueIndex" json:"order_id"`
	Order   *Order `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`

	Address    string `gorm:"type:varchar(200);not null" json:"address"`
	City       string `gorm:"type:varchar(200);not null" json:"city"`
	PostalCode string `gorm:"type:varchar(20);not null" json:"postal_code"`
	Country    string `gorm:"type:varchar(100);not null" json:"country"`

	ShippingPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"shipping_price"`
}
