package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// リフレッシュトークンの現在値は1ユーザー1行で保持する。
type RefreshTokenRepository interface {
	//ログイン/ローテーションで現在値を置き換える
	Upsert(ctx context.Context, token model.RefreshToken) error
	FindByUserID(ctx context.Context, userID int64) (model.RefreshToken, error)
	//ログアウト＝行削除で失効
	DeleteByUserID(ctx context.Context, userID int64) error
}
