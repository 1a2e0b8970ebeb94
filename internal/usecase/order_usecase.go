package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// 注文確認メールを送る外部コラボレータ。
type Mailer interface {
	Send(to string, subject string, body string) error
}

type OrderUsecase struct {
	tx          repo.TransactionManager
	orderRepo   repo.OrderRepository
	itemRepo    repo.OrderItemRepository
	profileRepo repo.ProfileRepository
	catalog     *CatalogUsecase
	productRepo repo.ProductRepository
	mailer      Mailer
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	itemRepo repo.OrderItemRepository,
	profileRepo repo.ProfileRepository,
	catalog *CatalogUsecase,
	productRepo repo.ProductRepository,
	mailer Mailer,
) *OrderUsecase {
	return &OrderUsecase{
		tx:          tx,
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		profileRepo: profileRepo,
		catalog:     catalog,
		productRepo: productRepo,
		mailer:      mailer,
	}
}

type OrderItemDTO struct {
	ID       int64      `json:"id"`
	Product  ProductDTO `json:"product"`
	Quantity int64      `json:"quantity"`
	Price    float64    `json:"price"`
}

type OrderDTO struct {
	ID         int64          `json:"id"`
	User       string         `json:"user"`
	TotalPrice float64        `json:"total_price"`
	Status     string         `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	OrderItems []OrderItemDTO `json:"order_items"`
}

// PlaceOrder はカートを注文に変換する。
// 注文作成・明細作成・カートクリアは1トランザクションで行う。
// 途中で失敗したら何も残さない。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64) (OrderDTO, error) {
	//プロフィール必須
	profile, err := u.profileRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return OrderDTO{}, NewHTTPError(http.StatusPreconditionFailed, "Profile does not exist for this user.")
	}
	if err != nil {
		return OrderDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var (
		createdOrder model.Order
		createdItems []model.OrderItem
	)

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//最新カート取得
		cart, err := r.Carts().FindLatestByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusPreconditionFailed, "Cart is empty. Add products before placing an order.")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusPreconditionFailed, "Cart is empty. Add products before placing an order.")
		}

		//合計＝Σ(数量×現在価格)。明細には現在価格をスナップショット。
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		total := decimal.Zero

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusPreconditionFailed, "Product no longer exists.")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID: ci.ProductID,
				Quantity:  ci.Quantity,
				Price:     p.Price,
			})

			total = total.Add(p.Price.Mul(qtyDecimal(ci.Quantity)))
		}

		//注文作成
		order, err := r.Orders().Create(ctx, model.Order{
			ProfileUserID: profile.UserID,
			TotalPrice:    total,
			Status:        model.OrderStatusPending,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細作成
		if err := r.OrderItems().CreateBulk(ctx, order.ID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートを空にする（カート行は次回のために残す）
		if err := r.Carts().ClearItems(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, order.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		createdOrder = order
		createdItems = items
		return nil
	})

	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return OrderDTO{}, err
		}
		return OrderDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildOrderDTO(ctx, createdOrder, createdItems, profile.Username)
}

// ListByUser はユーザーの注文履歴を返す。
func (u *OrderUsecase) ListByUser(ctx context.Context, userID int64) ([]OrderDTO, error) {
	profile, err := u.profileRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return []OrderDTO{}, nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	orders, err := u.orderRepo.ListByProfileUserID(ctx, profile.UserID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		items, err := u.itemRepo.ListByOrderID(ctx, o.ID)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		dto, err := u.buildOrderDTO(ctx, o, items, profile.Username)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

// DeleteOrder は注文のハード削除。
// 見つからなくてもエラーにせず success=false を返す。
func (u *OrderUsecase) DeleteOrder(ctx context.Context, orderID int64) DeleteResult {
	err := u.orderRepo.DeleteCascade(ctx, orderID)
	if err == repo.ErrNotFound {
		return DeleteResult{Success: false, Message: "Order not found."}
	}
	if err != nil {
		return DeleteResult{Success: false, Message: "Failed to delete order."}
	}
	return DeleteResult{Success: true, Message: "Order deleted successfully."}
}

// Notify は注文確認メールを送る。
// 失敗しても呼び出し元へはエラーを返さず、結果を文字列で伝える。
func (u *OrderUsecase) Notify(ctx context.Context, orderID int64) string {
	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return "Order not found"
	}
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	profile, err := u.profileRepo.FindByUserID(ctx, order.ProfileUserID)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	subject := fmt.Sprintf("Order #%d Confirmation", order.ID)
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Thank you for your order! We're excited to let you know that your order #%d has been successfully received and is now being processed.\n\n"+
			"Here are your Order Details\n\n"+
			"----------------------------------------------------\n\n"+
			"Order ID: %d\n"+
			"Total: ₹%s\n"+
			"Status: %s\n"+
			"Placed on: %s\n\n"+
			"Shipping Address\n"+
			"%s\n\n"+
			"----------------------------------------------------\n\n"+
			"We'll notify you when it's shipped!\n\n"+
			"Thank you for choosing ShopifyFR!\n\n"+
			"Warm regards, \nShopifyFR\n\n",
		profile.FirstName,
		order.ID,
		order.ID,
		order.TotalPrice.StringFixed(2),
		order.Status,
		order.CreatedAt.Format("2006-01-02 15:04"),
		profile.Address,
	)

	if err := u.mailer.Send(profile.Email, subject, body); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	return "Email sent successfully"
}

func (u *OrderUsecase) buildOrderDTO(ctx context.Context, o model.Order, items []model.OrderItem, username string) (OrderDTO, error) {
	dtoItems := make([]OrderItemDTO, 0, len(items))

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil && err != repo.ErrNotFound {
			return OrderDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		pdto, err := u.catalog.toProductDTO(ctx, p)
		if err != nil {
			return OrderDTO{}, err
		}

		dtoItems = append(dtoItems, OrderItemDTO{
			ID:       it.ID,
			Product:  pdto,
			Quantity: it.Quantity,
			//明細は確定時点のスナップショット価格
			Price: it.Price.InexactFloat64(),
		})
	}

	return OrderDTO{
		ID:         o.ID,
		User:       username,
		TotalPrice: o.TotalPrice.InexactFloat64(),
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		OrderItems: dtoItems,
	}, nil
}
