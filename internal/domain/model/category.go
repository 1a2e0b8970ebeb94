package model

// 商品カテゴリ
// nameは一意。カテゴリ削除時は配下の商品もまとめて消す（repo側で明示的にカスケード）。
type Category struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}
