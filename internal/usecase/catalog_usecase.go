package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// CatalogUsecase はカテゴリ・商品の閲覧と管理ロジック。
type CatalogUsecase struct {
	categoryRepo repo.CategoryRepository
	productRepo  repo.ProductRepository
}

// DI
func NewCatalogUsecase(
	categoryRepo repo.CategoryRepository,
	productRepo repo.ProductRepository,
) *CatalogUsecase {
	return &CatalogUsecase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

type CategoryDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type ProductDTO struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Category    CategoryDTO `json:"category"`
	Image1      *string     `json:"image1"`
	Image2      *string     `json:"image2"`
	Gender      string      `json:"gender"`
}

type AddProductInput struct {
	Name        string
	Description string
	Price       float64
	CategoryID  int64
	Image1      *string
	Image2      *string
	Gender      string
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	cats, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]CategoryDTO, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryDTO(c))
	}
	return out, nil
}

func (u *CatalogUsecase) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	products, err := u.productRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dto, err := u.toProductDTO(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

// AddProduct は商品を新規作成する。カテゴリが無ければエラー。
func (u *CatalogUsecase) AddProduct(ctx context.Context, in AddProductInput) (ProductDTO, error) {
	if strings.TrimSpace(in.Name) == "" {
		return ProductDTO{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if in.Price < 0 {
		return ProductDTO{}, NewHTTPError(http.StatusBadRequest, "invalid price")
	}

	cat, err := u.categoryRepo.FindByID(ctx, in.CategoryID)
	if err == repo.ErrNotFound {
		return ProductDTO{}, NewHTTPError(http.StatusNotFound, "Category not found.")
	}
	if err != nil {
		return ProductDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	gender := model.Gender(in.Gender)
	switch gender {
	case model.GenderMale, model.GenderFemale, model.GenderUnisex:
	default:
		return ProductDTO{}, NewHTTPError(http.StatusBadRequest, "invalid gender")
	}

	now := time.Now()
	p := model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       decimal.NewFromFloat(in.Price).Round(2),
		CategoryID:  cat.ID,
		Image1:      strOrEmpty(in.Image1),
		Image2:      strOrEmpty(in.Image2),
		Gender:      gender,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return ProductDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductDTO{
		ID:          created.ID,
		Name:        created.Name,
		Description: created.Description,
		Price:       created.Price.InexactFloat64(),
		Category:    toCategoryDTO(cat),
		Image1:      emptyToNil(created.Image1),
		Image2:      emptyToNil(created.Image2),
		Gender:      string(created.Gender),
	}, nil
}

// DeleteCategory はカテゴリと配下の商品を削除する。
func (u *CatalogUsecase) DeleteCategory(ctx context.Context, categoryID int64) error {
	err := u.categoryRepo.DeleteCascade(ctx, categoryID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Category not found.")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 商品＋カテゴリをDTOに組み立てる。
func (u *CatalogUsecase) toProductDTO(ctx context.Context, p model.Product) (ProductDTO, error) {
	cat, err := u.categoryRepo.FindByID(ctx, p.CategoryID)
	if err != nil && err != repo.ErrNotFound {
		return ProductDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Category:    toCategoryDTO(cat),
		Image1:      emptyToNil(p.Image1),
		Image2:      emptyToNil(p.Image2),
		Gender:      string(p.Gender),
	}, nil
}

func toCategoryDTO(c model.Category) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: emptyToNil(c.Description),
	}
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
