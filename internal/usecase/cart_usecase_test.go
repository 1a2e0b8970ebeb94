package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartUsecase(
	cartRepo *CartRepoMock,
	cartItemRepo *CartItemRepoMock,
	productRepo *ProductRepoMock,
	categoryRepo *CategoryRepoMock,
	userRepo *UserRepoMock,
) *usecase.CartUsecase {
	catalog := usecase.NewCatalogUsecase(categoryRepo, productRepo)
	return usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo, catalog, userRepo)
}

func TestCartUsecase_GetCart_NoCartIsNil(t *testing.T) {
	cartRepo := new(CartRepoMock)
	cartRepo.On("FindLatestByUserID", mock.Anything, int64(7)).Return(model.Cart{}, repo.ErrNotFound)

	uc := newCartUsecase(cartRepo, new(CartItemRepoMock), new(ProductRepoMock), new(CategoryRepoMock), new(UserRepoMock))

	dto, err := uc.GetCart(context.Background(), 7)

	// カート無しはエラーではなくnil
	assert.NoError(t, err)
	assert.Nil(t, dto)
}

func TestCartUsecase_AddItem_UpsertsAndBuildsCart(t *testing.T) {
	cartRepo := new(CartRepoMock)
	cartItemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	categoryRepo := new(CategoryRepoMock)
	userRepo := new(UserRepoMock)

	product := model.Product{
		ID:         10,
		Name:       "Denim Jacket",
		Price:      decimal.RequireFromString("999.99"),
		CategoryID: 3,
		Gender:     model.GenderUnisex,
	}

	productRepo.On("FindByID", mock.Anything, int64(10)).Return(product, nil)
	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).
		Return(model.Cart{ID: 5, UserID: 1, CreatedAt: time.Now()}, nil)
	cartItemRepo.On("UpsertByCartAndProduct", mock.Anything, int64(5), int64(10), int64(2)).Return(nil)

	// DTO組み立て分
	userRepo.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Username: "alice"}, nil)
	cartItemRepo.On("ListByCartID", mock.Anything, int64(5)).
		Return([]model.CartItem{{ID: 1, CartID: 5, ProductID: 10, Quantity: 3}}, nil)
	categoryRepo.On("FindByID", mock.Anything, int64(3)).Return(model.Category{ID: 3, Name: "Jackets"}, nil)

	uc := newCartUsecase(cartRepo, cartItemRepo, productRepo, categoryRepo, userRepo)

	dto, err := uc.AddItem(context.Background(), 1, 10, 2)

	assert.NoError(t, err)
	assert.Equal(t, "alice", dto.User)
	if assert.Len(t, dto.Items, 1) {
		// 小計は数量×現在価格
		assert.Equal(t, int64(3), dto.Items[0].Quantity)
		assert.InDelta(t, 2999.97, dto.Items[0].Subtotal, 0.001)
	}
	cartItemRepo.AssertExpectations(t)
}

func TestCartUsecase_AddItem_ProductNotFound(t *testing.T) {
	productRepo := new(ProductRepoMock)
	productRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	uc := newCartUsecase(new(CartRepoMock), new(CartItemRepoMock), productRepo, new(CategoryRepoMock), new(UserRepoMock))

	_, err := uc.AddItem(context.Background(), 1, 99, 1)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Equal(t, "Product not found.", he.Message)
}

func TestCartUsecase_AddItem_RejectsZeroQuantity(t *testing.T) {
	uc := newCartUsecase(new(CartRepoMock), new(CartItemRepoMock), new(ProductRepoMock), new(CategoryRepoMock), new(UserRepoMock))

	_, err := uc.AddItem(context.Background(), 1, 10, 0)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestCartUsecase_SetItemQuantity_ZeroDeletesItem(t *testing.T) {
	cartRepo := new(CartRepoMock)
	cartItemRepo := new(CartItemRepoMock)
	userRepo := new(UserRepoMock)

	cartRepo.On("FindLatestByUserID", mock.Anything, int64(1)).
		Return(model.Cart{ID: 5, UserID: 1}, nil)
	cartItemRepo.On("FindByCartAndProduct", mock.Anything, int64(5), int64(10)).
		Return(model.CartItem{ID: 8, CartID: 5, ProductID: 10, Quantity: 2}, nil)
	// 0以下は数量更新ではなく削除
	cartItemRepo.On("DeleteByID", mock.Anything, int64(8)).Return(nil)

	userRepo.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Username: "alice"}, nil)
	cartItemRepo.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{}, nil)

	uc := newCartUsecase(cartRepo, cartItemRepo, new(ProductRepoMock), new(CategoryRepoMock), userRepo)

	dto, err := uc.SetItemQuantity(context.Background(), 1, 10, 0)

	assert.NoError(t, err)
	assert.Empty(t, dto.Items)
	cartItemRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
	cartItemRepo.AssertCalled(t, "DeleteByID", mock.Anything, int64(8))
}

func TestCartUsecase_RemoveItem_CartNotFound(t *testing.T) {
	cartRepo := new(CartRepoMock)
	cartRepo.On("FindLatestByUserID", mock.Anything, int64(1)).Return(model.Cart{}, repo.ErrNotFound)

	uc := newCartUsecase(cartRepo, new(CartItemRepoMock), new(ProductRepoMock), new(CategoryRepoMock), new(UserRepoMock))

	_, err := uc.RemoveItem(context.Background(), 1, 10)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Equal(t, "Cart not found.", he.Message)
}

func TestCartUsecase_RemoveItem_ProductNotInCart(t *testing.T) {
	cartRepo := new(CartRepoMock)
	cartItemRepo := new(CartItemRepoMock)

	cartRepo.On("FindLatestByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5, UserID: 1}, nil)
	cartItemRepo.On("FindByCartAndProduct", mock.Anything, int64(5), int64(10)).
		Return(model.CartItem{}, repo.ErrNotFound)

	uc := newCartUsecase(cartRepo, cartItemRepo, new(ProductRepoMock), new(CategoryRepoMock), new(UserRepoMock))

	_, err := uc.RemoveItem(context.Background(), 1, 10)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, "Product not in cart.", he.Message)
}
