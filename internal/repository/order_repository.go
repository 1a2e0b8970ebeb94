package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByProfileUserID(ctx context.Context, userID int64) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (model.Order, error)

	//管理用の直接更新のみ。状態遷移のワークフローは持たない。
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	//注文をハード削除。明細も同一トランザクションで削除する。
	DeleteCascade(ctx context.Context, orderID int64) error
}
