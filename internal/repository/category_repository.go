package repository

import (
	"context"

	"app/internal/domain/model"
)

// カテゴリの永続化（保存・取得）だけを約束。
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, categoryID int64) (model.Category, error)

	//名前で探して無ければ作る（一意制約前提のupsert）
	GetOrCreateByName(ctx context.Context, name string) (model.Category, error)

	Create(ctx context.Context, c model.Category) (model.Category, error)

	//カテゴリ削除。配下の商品も同一トランザクションで削除する。
	DeleteCascade(ctx context.Context, categoryID int64) error
}
