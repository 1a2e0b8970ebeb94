package main

import (
	"os"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/graph"
	"app/internal/infra/db"
	"app/internal/infra/mail"
	infraRepo "app/internal/infra/repository"
	"app/internal/infra/storage"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect failed")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Category{},
		&model.Product{},
		&model.Profile{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		logger.Fatal().Err(err).Msg("migrate failed")
	}

	//Repository（GORM実装）生成
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	profileRepo := infraRepo.NewProfileGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//外部コラボレータ
	mailer := mail.NewGomailSender(cfg)
	avatars, err := storage.NewFileAvatarStore(cfg.MediaRoot)
	if err != nil {
		logger.Fatal().Err(err).Msg("media root setup failed")
	}

	//Usecase生成
	catalogUC := usecase.NewCatalogUsecase(categoryRepo, productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, productRepo, catalogUC, userRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderItemRepo, profileRepo, catalogUC, productRepo, mailer)
	profileUC := usecase.NewProfileUsecase(txManager, profileRepo, userRepo, avatars)
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, profileRepo, txManager, validator.NewAuthValidator(userRepo))

	//GraphQLスキーマ
	schema, err := graph.NewSchema(&graph.Resolver{
		Catalog:  catalogUC,
		Cart:     cartUC,
		Orders:   orderUC,
		Profiles: profileUC,
		Auth:     authUC,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("schema build failed")
	}

	//Server起動
	e := server.New(cfg, logger, schema, authUC)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("listening")

	if err := e.Start(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
