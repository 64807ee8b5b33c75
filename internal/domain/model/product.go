package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//登録した管理者。ユーザー削除後はNULLで残る
	OwnerID *int64 `gorm:"index" json:"owner_id"`
	Owner   *User  `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"-"`

	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Brand       string `gorm:"type:varchar(255)" json:"brand"`
	Category    string `gorm:"type:varchar(255)" json:"category"`
	Description string `gorm:"type:text" json:"description"`
	Image       string `gorm:"type:varchar(255)" json:"image"`

	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	CountInStock int64           `gorm:"not null;default:0" json:"count_in_stock"`

	//レビューの集計値
	Rating     decimal.Decimal `gorm:"type:numeric(3,1);not null;default:0" json:"rating"`
	NumReviews int64           `gorm:"not null;default:0" json:"num_reviews"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
