package model

import "time"

type Review struct {
	ID        int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64    `gorm:"not null;index" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`

	UserID *int64 `gorm:"index" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`

	//投稿時点の表示名
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
