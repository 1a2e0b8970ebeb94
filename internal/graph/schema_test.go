package graph_test

import (
	"context"
	"encoding/json"
	"testing"

	"app/internal/domain/model"
	"app/internal/graph"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type categoryRepoFake struct{ categories []model.Category }

func (f *categoryRepoFake) List(ctx context.Context) ([]model.Category, error) {
	return f.categories, nil
}

func (f *categoryRepoFake) FindByID(ctx context.Context, id int64) (model.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Category{}, repo.ErrNotFound
}

func (f *categoryRepoFake) GetOrCreateByName(ctx context.Context, name string) (model.Category, error) {
	return model.Category{}, nil
}

func (f *categoryRepoFake) Create(ctx context.Context, c model.Category) (model.Category, error) {
	return c, nil
}

func (f *categoryRepoFake) DeleteCascade(ctx context.Context, id int64) error { return nil }

type productRepoFake struct{ products []model.Product }

func (f *productRepoFake) List(ctx context.Context) ([]model.Product, error) {
	return f.products, nil
}

func (f *productRepoFake) FindByID(ctx context.Context, id int64) (model.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, repo.ErrNotFound
}

func (f *productRepoFake) Create(ctx context.Context, p model.Product) (model.Product, error) {
	return p, nil
}

func (f *productRepoFake) Update(ctx context.Context, p model.Product) error { return nil }

func (f *productRepoFake) UpsertByName(ctx context.Context, p model.Product) (model.Product, error) {
	return p, nil
}

func newTestSchema(t *testing.T, catalog *usecase.CatalogUsecase) graphql.Schema {
	t.Helper()
	schema, err := graph.NewSchema(&graph.Resolver{Catalog: catalog})
	assert.NoError(t, err)
	return schema
}

func TestNewSchema_Builds(t *testing.T) {
	schema, err := graph.NewSchema(&graph.Resolver{})
	assert.NoError(t, err)

	queries := schema.QueryType().Fields()
	for _, name := range []string{"categories", "products", "profile", "cart", "orders", "me"} {
		assert.Contains(t, queries, name)
	}

	mutations := schema.MutationType().Fields()
	for _, name := range []string{
		"add_product", "delete_category", "create_cart", "place_order", "delete_order",
		"add_product_to_cart", "delete_product_from_cart", "update_cart_product",
		"delete_profile", "edit_profile", "notify_order",
		"login", "logout", "register", "refresh_token",
	} {
		assert.Contains(t, mutations, name)
	}
}

func TestSchema_CategoriesQuery(t *testing.T) {
	catalog := usecase.NewCatalogUsecase(&categoryRepoFake{categories: []model.Category{
		{ID: 1, Name: "Jackets", Description: "Outerwear"},
		{ID: 2, Name: "Dresses"},
	}}, &productRepoFake{})

	schema := newTestSchema(t, catalog)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ categories { id name description } }`,
		Context:       context.Background(),
	})

	assert.Empty(t, result.Errors)

	raw, _ := json.Marshal(result.Data)
	assert.JSONEq(t, `{
		"categories": [
			{"id": 1, "name": "Jackets", "description": "Outerwear"},
			{"id": 2, "name": "Dresses", "description": null}
		]
	}`, string(raw))
}

func TestSchema_ProductsQuery_SnakeCaseFields(t *testing.T) {
	catalog := usecase.NewCatalogUsecase(
		&categoryRepoFake{categories: []model.Category{{ID: 3, Name: "Jackets"}}},
		&productRepoFake{products: []model.Product{{
			ID:         10,
			Name:       "Denim Jacket",
			Price:      decimal.RequireFromString("999.99"),
			CategoryID: 3,
			Image1:     "img/a.jpg",
			Gender:     model.GenderUnisex,
		}}},
	)

	schema := newTestSchema(t, catalog)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ products { id name price gender image1 image2 category { name } } }`,
		Context:       context.Background(),
	})

	assert.Empty(t, result.Errors)

	raw, _ := json.Marshal(result.Data)
	assert.JSONEq(t, `{
		"products": [{
			"id": 10,
			"name": "Denim Jacket",
			"price": 999.99,
			"gender": "Unisex",
			"image1": "img/a.jpg",
			"image2": null,
			"category": {"name": "Jackets"}
		}]
	}`, string(raw))
}
