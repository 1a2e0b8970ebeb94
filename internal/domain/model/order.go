package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// 注文はProfileに紐づく（Userに直接ではない）。
// total_priceは確定時点の合計。以後の商品価格変更の影響を受けない。
type Order struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileUserID int64           `gorm:"not null;index" json:"profile_user_id"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
