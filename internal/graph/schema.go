package graph

import (
	"errors"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/graphql-go/graphql"
)

// Resolver はGraphQLのルートフィールドをusecaseへ橋渡しする。
type Resolver struct {
	Catalog  *usecase.CatalogUsecase
	Cart     *usecase.CartUsecase
	Orders   *usecase.OrderUsecase
	Profiles *usecase.ProfileUsecase
	Auth     *usecase.AuthUsecase
}

// NewSchema はQuery/Mutationを組み立てる。
func NewSchema(r *Resolver) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"categories": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(categoryType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Catalog.ListCategories(p.Context)
					return out, gqlError(err)
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Catalog.ListProducts(p.Context)
					return out, gqlError(err)
				},
			},
			"profile": &graphql.Field{
				Type: profileType,
				Args: graphql.FieldConfigArgument{
					"user_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					dto, err := r.Profiles.Get(p.Context, argInt64(p, "user_id"))
					if err != nil {
						return nil, gqlError(err)
					}
					if dto == nil {
						return nil, nil
					}
					return dto, nil
				},
			},
			"cart": &graphql.Field{
				Type: cartType,
				Args: graphql.FieldConfigArgument{
					"user_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					//カート無しはエラーではなくnull
					dto, err := r.Cart.GetCart(p.Context, argInt64(p, "user_id"))
					if err != nil {
						return nil, gqlError(err)
					}
					if dto == nil {
						return nil, nil
					}
					return dto, nil
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(orderType))),
				Args: graphql.FieldConfigArgument{
					"user_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Orders.ListByUser(p.Context, argInt64(p, "user_id"))
					return out, gqlError(err)
				},
			},
			"me": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					//有効なアクセストークン必須
					id, ok := middleware.IdentityFrom(p.Context)
					if !ok {
						return nil, errors.New("unauthorized")
					}
					out, err := r.Auth.Me(p.Context, id.UserID)
					return out, gqlError(err)
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"add_product": &graphql.Field{
				Type: graphql.NewNonNull(productType),
				Args: graphql.FieldConfigArgument{
					"name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"price":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"category_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"image1":      &graphql.ArgumentConfig{Type: graphql.String},
					"image2":      &graphql.ArgumentConfig{Type: graphql.String},
					"gender":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Catalog.AddProduct(p.Context, usecase.AddProductInput{
						Name:        argString(p, "name"),
						Description: argString(p, "description"),
						Price:       argFloat(p, "price"),
						CategoryID:  argInt64(p, "category_id"),
						Image1:      optString(p, "image1"),
						Image2:      optString(p, "image2"),
						Gender:      argString(p, "gender"),
					})
					return out, gqlError(err)
				},
			},
			"delete_category": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"category_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					//配下の商品ごと削除
					if err := r.Catalog.DeleteCategory(p.Context, argInt64(p, "category_id")); err != nil {
						return false, gqlError(err)
					}
					return true, nil
				},
			},
			"create_cart": &graphql.Field{
				Type: graphql.NewNonNull(cartType),
				Args: graphql.FieldConfigArgument{
					"user_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Cart.CreateCart(p.Context, argInt64(p, "user_id"))
					return out, gqlError(err)
				},
			},
			"place_order": &graphql.Field{
				Type: graphql.NewNonNull(orderType),
				Args: graphql.FieldConfigArgument{
					"user_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Orders.PlaceOrder(p.Context, argInt64(p, "user_id"))
					return out, gqlError(err)
				},
			},
			"delete_order": &graphql.Field{
				Type: graphql.NewNonNull(deleteResponseType),
				Args: graphql.FieldConfigArgument{
					"order_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					//見つからなくてもエラーにしない
					return r.Orders.DeleteOrder(p.Context, argInt64(p, "order_id")), nil
				},
			},
			"add_product_to_cart": &graphql.Field{
				Type: graphql.NewNonNull(cartType),
				Args: graphql.FieldConfigArgument{
					"user_id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"product_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"quantity":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Cart.AddItem(p.Context, argInt64(p, "user_id"), argInt64(p, "product_id"), argInt64(p, "quantity"))
					return out, gqlError(err)
				},
			},
			"delete_product_from_cart": &graphql.Field{
				Type: graphql.NewNonNull(cartType),
				Args: graphql.FieldConfigArgument{
					"user_id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"product_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Cart.RemoveItem(p.Context, argInt64(p, "user_id"), argInt64(p, "product_id"))
					return out, gqlError(err)
				},
			},
			"update_cart_product": &graphql.Field{
				Type: graphql.NewNonNull(cartType),
				Args: graphql.FieldConfigArgument{
					"user_id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"product_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"quantity":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					//0以下は削除扱い
					out, err := r.Cart.SetItemQuantity(p.Context, argInt64(p, "user_id"), argInt64(p, "product_id"), argInt64(p, "quantity"))
					return out, gqlError(err)
				},
			},
			"delete_profile": &graphql.Field{
				Type: graphql.NewNonNull(deleteResponseType),
				Args: graphql.FieldConfigArgument{
					"user_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Profiles.Delete(p.Context, argInt64(p, "user_id")), nil
				},
			},
			"edit_profile": &graphql.Field{
				Type: graphql.NewNonNull(profileType),
				Args: graphql.FieldConfigArgument{
					"user_id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"username":     &graphql.ArgumentConfig{Type: graphql.String},
					"address":      &graphql.ArgumentConfig{Type: graphql.String},
					"first_name":   &graphql.ArgumentConfig{Type: graphql.String},
					"last_name":    &graphql.ArgumentConfig{Type: graphql.String},
					"phone_number": &graphql.ArgumentConfig{Type: graphql.String},
					"image":        &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Profiles.Edit(p.Context, argInt64(p, "user_id"), usecase.EditProfileInput{
						Username:    optString(p, "username"),
						Address:     optString(p, "address"),
						FirstName:   optString(p, "first_name"),
						LastName:    optString(p, "last_name"),
						PhoneNumber: optString(p, "phone_number"),
						Image:       optString(p, "image"),
					})
					return out, gqlError(err)
				},
			},
			"notify_order": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Args: graphql.FieldConfigArgument{
					"order_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					//この操作は失敗しても常に文字列で結果を返す
					return r.Orders.Notify(p.Context, argInt64(p, "order_id")), nil
				},
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Auth.Login(p.Context, argString(p, "username"), argString(p, "password"))
					if err != nil {
						return nil, gqlError(err)
					}

					//cookie交換エンドポイント経由ならcookieにも積む
					if sink := middleware.SinkFrom(p.Context); sink != nil {
						sink.Pair = &usecase.TokenPair{
							AccessToken:  out.AccessToken,
							RefreshToken: out.RefreshToken,
						}
					}
					return out, nil
				},
			},
			"logout": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := middleware.IdentityFrom(p.Context)
					if !ok {
						return nil, errors.New("unauthorized")
					}

					out, err := r.Auth.Logout(p.Context, id.UserID)
					if err != nil {
						return nil, gqlError(err)
					}

					if sink := middleware.SinkFrom(p.Context); sink != nil {
						sink.Clear = true
					}
					return out, nil
				},
			},
			"register": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Auth.Register(p.Context, argString(p, "username"), argString(p, "email"), argString(p, "password"))
					return out, gqlError(err)
				},
			},
			"refresh_token": &graphql.Field{
				Type: graphql.NewNonNull(tokenPairType),
				Args: graphql.FieldConfigArgument{
					"refresh_token": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Auth.Refresh(p.Context, argString(p, "refresh_token"))
					if err != nil {
						return nil, gqlError(err)
					}

					if sink := middleware.SinkFrom(p.Context); sink != nil {
						pair := out
						sink.Pair = &pair
					}
					return out, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

// usecaseのHTTPErrorはメッセージだけをGraphQLエラーへ出す
func gqlError(err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return errors.New(he.Message)
	}
	return err
}

func argInt64(p graphql.ResolveParams, name string) int64 {
	v, _ := p.Args[name].(int)
	return int64(v)
}

func argString(p graphql.ResolveParams, name string) string {
	v, _ := p.Args[name].(string)
	return v
}

func argFloat(p graphql.ResolveParams, name string) float64 {
	switch v := p.Args[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func optString(p graphql.ResolveParams, name string) *string {
	v, ok := p.Args[name].(string)
	if !ok {
		return nil
	}
	return &v
}
