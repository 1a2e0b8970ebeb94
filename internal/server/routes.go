package server

import (
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/graphql-go/graphql"
	gqlhandler "github.com/graphql-go/handler"
	"github.com/labstack/echo/v4"
)

// エンドポイントは2つ。
//   - /graphql : Bearerトークンのみ
//   - /auth    : 同じスキーマをcookieトークン交換付きで公開
func RegisterRoutes(e *echo.Echo, cfg config.Config, schema graphql.Schema, authUC *usecase.AuthUsecase) {
	h := gqlhandler.New(&gqlhandler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})
	gql := echo.WrapHandler(h)

	g := e.Group("/graphql")
	g.Use(middleware.AuthContext(authUC))
	g.Any("", gql)

	a := e.Group("/auth")
	a.Use(middleware.CookieExchange(authUC, cfg.RefreshTokenTTL))
	a.Any("", gql)

	//アバター画像の配信
	e.Static("/media", cfg.MediaRoot)
}
