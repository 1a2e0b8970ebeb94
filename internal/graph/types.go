package graph

import "github.com/graphql-go/graphql"

// GraphQLの出力型。フィールド名はAPI互換のためsnake_case。
// 値の解決はusecaseのDTO（jsonタグ）に任せる。

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CategoryType",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.String},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProductType",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"price":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"category":    &graphql.Field{Type: graphql.NewNonNull(categoryType)},
		"image1":      &graphql.Field{Type: graphql.String},
		"image2":      &graphql.Field{Type: graphql.String},
		"gender":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var profileType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProfileType",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"user":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"address":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"first_name":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"last_name":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"phone_number": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"image":        &graphql.Field{Type: graphql.String},
	},
})

var cartItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CartItemType",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"product":  &graphql.Field{Type: graphql.NewNonNull(productType)},
		"quantity": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		//小計は数量×現在価格の計算値
		"subtotal": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var cartType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CartType",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"user":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"items":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(cartItemType)))},
		"created_at": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var orderItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrderItemType",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"product":  &graphql.Field{Type: graphql.NewNonNull(productType)},
		"quantity": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		//確定時点のスナップショット価格
		"price": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrderType",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"user":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"total_price": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"status":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"created_at":  &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"order_items": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(orderItemType)))},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UserType",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"username": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var authPayloadType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AuthPayload",
	Fields: graphql.Fields{
		"user":          &graphql.Field{Type: graphql.NewNonNull(userType)},
		"access_token":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"refresh_token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var tokenPairType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TokenPair",
	Fields: graphql.Fields{
		"access_token":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"refresh_token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

// delete_order / delete_profile 用のソフトエラー型
var deleteResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DeleteResponse",
	Fields: graphql.Fields{
		"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})
