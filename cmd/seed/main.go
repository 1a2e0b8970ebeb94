package main

import (
	"context"
	"flag"
	"os"

	"app/internal/domain/model"
	"app/internal/importer"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// カタログのCSVインポートジョブ。
// 商品は名前でupsertするので何度流しても増殖しない。
func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	path := flag.String("file", "Dataset_ShopifyFR.csv", "csv file path")
	flag.Parse()

	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect failed")
	}

	if err := gormDB.AutoMigrate(&model.Category{}, &model.Product{}); err != nil {
		logger.Fatal().Err(err).Msg("migrate failed")
	}

	f, err := os.Open(*path)
	if err != nil {
		logger.Fatal().Err(err).Str("file", *path).Msg("csv open failed")
	}
	defer f.Close()

	imp := importer.New(
		infraRepo.NewCategoryGormRepository(gormDB),
		infraRepo.NewProductGormRepository(gormDB),
		logger,
	)

	n, err := imp.Run(context.Background(), f)
	if err != nil {
		logger.Fatal().Err(err).Msg("import failed")
	}

	logger.Info().Int("products", n).Msg("import finished")
}
