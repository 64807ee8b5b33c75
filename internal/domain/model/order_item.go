package model

import "github.com/shopspring/decimal"

// 注文明細。name/price/imageは注文時点のスナップショット
type OrderItem struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64  `gorm:"not null;index" json:"order_id"`
	Order   *Order `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`

	//商品削除後はNULLになるが、スナップショットは残る
	ProductID *int64   `gorm:"index" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"-"`

	Name     string          `gorm:"type:varchar(255);not null" json:"name"`
	Image    string          `gorm:"type:varchar(255)" json:"image"`
	Price    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Quantity int64           `gorm:"not null" json:"quantity"`
}
