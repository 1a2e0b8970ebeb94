package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	//最新のカートを取得し、無ければ作成
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)

	//最新のカートを取得（無ければErrNotFound）
	FindLatestByUserID(ctx context.Context, userID int64) (model.Cart, error)

	Create(ctx context.Context, userID int64) (model.Cart, error)

	//指定カートの明細を全削除（カート行自体は残す）
	ClearItems(ctx context.Context, cartID int64) error

	//ユーザーのカートを明細ごと全削除（退会用）
	DeleteAllByUserID(ctx context.Context, userID int64) error
}
