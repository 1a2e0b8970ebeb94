package usecase

import (
	"context"
	"net/http"
	"time"

	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

func qtyDecimal(q int64) decimal.Decimal {
	return decimal.NewFromInt(q)
}

// CartUsecase はカートの業務ロジックです。
// Cart と CartItem のRepositoryを分離して受け取ります。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	catalog      *CatalogUsecase
	userRepo     repo.UserRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	catalog *CatalogUsecase,
	userRepo repo.UserRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		catalog:      catalog,
		userRepo:     userRepo,
	}
}

type CartItemDTO struct {
	ID       int64      `json:"id"`
	Product  ProductDTO `json:"product"`
	Quantity int64      `json:"quantity"`
	Subtotal float64    `json:"subtotal"`
}

type CartDTO struct {
	ID        int64         `json:"id"`
	User      string        `json:"user"`
	Items     []CartItemDTO `json:"items"`
	CreatedAt time.Time     `json:"created_at"`
}

// GetCart はカート取得。カートが無いのはエラーではなく「無し」(nil)。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (*CartDTO, error) {
	cart, err := u.cartRepo.FindLatestByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dto, err := u.buildCartDTO(ctx, cart.ID, cart.UserID, cart.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// CreateCart はカートを明示的に作成する。
func (u *CartUsecase) CreateCart(ctx context.Context, userID int64) (CartDTO, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return CartDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return CartDTO{}, NewHTTPError(http.StatusNotFound, "User not found.")
	}

	cart, err := u.cartRepo.Create(ctx, userID)
	if err != nil {
		return CartDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CartDTO{
		ID:        cart.ID,
		User:      user.Username,
		Items:     []CartItemDTO{},
		CreatedAt: cart.CreatedAt,
	}, nil
}

// AddItem はカートに追加（同一商品は数量加算）。カートは無ければ作る。
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, productID int64, quantity int64) (CartDTO, error) {
	if quantity < 1 {
		return CartDTO{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	//商品チェック
	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return CartDTO{}, NewHTTPError(http.StatusNotFound, "Product not found.")
		}
		return CartDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//最新カート取得（無ければ作成）
	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// Upsert（同一商品は加算）
	if err := u.cartItemRepo.UpsertByCartAndProduct(ctx, cart.ID, productID, quantity); err != nil {
		return CartDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartDTO(ctx, cart.ID, cart.UserID, cart.CreatedAt)
}

// RemoveItem はカートから商品を取り除く。
// カートが無い・商品が入っていない場合はNotFound。
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, productID int64) (CartDTO, error) {
	cart, err := u.cartRepo.FindLatestByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CartDTO{}, NewHTTPError(http.StatusNotFound, "Cart not found.")
	}
	if err != nil {
		return CartDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item, err := u.cartItemRepo.FindByCartAndProduct(ctx, cart.ID, productID)
	if err == repo.ErrNotFound {
		return CartDTO{}, NewHTTPError(http.StatusNotFound, "Product not in cart.")
	}
	if err != nil {
		return CartDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, item.ID); err != nil {
		if err == repo.ErrNotFound {
			return CartDTO{}, NewHTTPError(http.StatusNotFound, "Product not in cart.")
		}
		return CartDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartDTO(ctx, cart.ID, cart.UserID, cart.CreatedAt)
}

// SetItemQuantity は数量の上書き。0以下は削除として扱う。
func (u *CartUsecase) SetItemQuantity(ctx context.Context, userID int64, productID int64, quantity int64) (CartDTO, error) {
	cart, err := u.cartRepo.FindLatestByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CartDTO{}, NewHTTPError(http.StatusNotFound, "Cart not found.")
	}
	if err != nil {
		return CartDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item, err := u.cartItemRepo.FindByCartAndProduct(ctx, cart.ID, productID)
	if err == repo.ErrNotFound {
		return CartDTO{}, NewHTTPError(http.StatusNotFound, "Product not in cart.")
	}
	if err != nil {
		return CartDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if quantity > 0 {
		if err := u.cartItemRepo.UpdateQuantity(ctx, item.ID, quantity); err != nil {
			return CartDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	} else {
		if err := u.cartItemRepo.DeleteByID(ctx, item.ID); err != nil {
			return CartDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return u.buildCartDTO(ctx, cart.ID, cart.UserID, cart.CreatedAt)
}

// cartIDの明細をまとめてCartDTOを作る。
func (u *CartUsecase) buildCartDTO(ctx context.Context, cartID int64, userID int64, createdAt time.Time) (CartDTO, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return CartDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	username := ""
	if user != nil {
		username = user.Username
	}

	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dtoItems := make([]CartItemDTO, 0, len(items))
	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}

		pdto, err := u.catalog.toProductDTO(ctx, p)
		if err != nil {
			return CartDTO{}, err
		}

		//小計は数量×現在価格（保存しない）
		subtotal := p.Price.Mul(qtyDecimal(it.Quantity))

		dtoItems = append(dtoItems, CartItemDTO{
			ID:       it.ID,
			Product:  pdto,
			Quantity: it.Quantity,
			Subtotal: subtotal.InexactFloat64(),
		})
	}

	return CartDTO{
		ID:        cartID,
		User:      username,
		Items:     dtoItems,
		CreatedAt: createdAt,
	}, nil
}
