package server

import (
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// New はechoを組み立てて返す。起動は呼び出し側で行う。
func New(cfg config.Config, logger zerolog.Logger, schema graphql.Schema, authUC *usecase.AuthUsecase) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLogger(logger))

	RegisterRoutes(e, cfg, schema, authUC)

	return e
}
