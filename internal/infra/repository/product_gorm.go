package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) List(ctx context.Context) ([]model.Product, error) {
	var items []model.Product
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.Product{}, err
	}
	return items, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", productID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":        p.Name,
			"description": p.Description,
			"price":       p.Price,
			"category_id": p.CategoryID,
			"image1":      p.Image1,
			"image2":      p.Image2,
			"gender":      p.Gender,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 名前で探して、あれば更新・無ければ作成（インポート用）
func (r *ProductGormRepository) UpsertByName(ctx context.Context, p model.Product) (model.Product, error) {
	var out model.Product

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Product

		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", p.Name).
			Order("id asc").
			First(&existing).Error

		if findErr == nil {
			existing.Description = p.Description
			existing.Price = p.Price
			existing.CategoryID = p.CategoryID
			existing.Image1 = p.Image1
			existing.Image2 = p.Image2
			existing.Gender = p.Gender
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			out = existing
			return nil
		}

		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		out = p
		return nil
	})

	if err != nil {
		return model.Product{}, err
	}
	return out, nil
}
