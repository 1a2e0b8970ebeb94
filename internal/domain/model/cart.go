package model

import "time"

// ユーザーのカート
// 1ユーザーが複数行持ち得るが、業務上は「最新の1つ」をそのユーザーのカートとして扱う。
type Cart struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
