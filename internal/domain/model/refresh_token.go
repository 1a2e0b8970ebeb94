package model

import "time"

// リフレッシュトークンの現在値（のハッシュ）。1ユーザー1行。
// ログイン/ローテーションで置き換え、ログアウトで削除する。
// 行が無い・ハッシュ不一致のトークンは署名が有効でも失効扱い。
type RefreshToken struct {
	UserID    int64     `gorm:"primaryKey" json:"user_id"`
	TokenHash string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
