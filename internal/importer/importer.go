package importer

import (
	"context"
	"io"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// データセットの1行。
type csvRow struct {
	Name       string `csv:"Product Name"`
	Price      string `csv:"Price"`
	Details    string `csv:"Details"`
	Categories string `csv:"Categories"`
	Gender     string `csv:"Gender"`
	Images     string `csv:"Product Image"`
}

type Importer struct {
	categories repo.CategoryRepository
	products   repo.ProductRepository
	logger     zerolog.Logger
}

func New(categories repo.CategoryRepository, products repo.ProductRepository, logger zerolog.Logger) *Importer {
	return &Importer{
		categories: categories,
		products:   products,
		logger:     logger,
	}
}

// Run はCSVを読み、カテゴリをget-or-create・商品を名前でupsertする。
// 壊れた行はスキップして続行する（ベストエフォート）。
func (i *Importer) Run(ctx context.Context, r io.Reader) (int, error) {
	var rows []csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return 0, err
	}

	count := 0
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}

		price, err := ParsePrice(row.Price)
		if err != nil {
			i.logger.Warn().Str("product", name).Str("price", row.Price).Msg("skip: bad price")
			continue
		}

		//カテゴリは全部get-or-create、商品には先頭のカテゴリを付ける
		var category model.Category
		for idx, catName := range strings.Split(row.Categories, ", ") {
			catName = strings.TrimSpace(catName)
			if catName == "" {
				continue
			}
			c, err := i.categories.GetOrCreateByName(ctx, catName)
			if err != nil {
				return count, err
			}
			if idx == 0 {
				category = c
			}
		}
		if category.ID == 0 {
			i.logger.Warn().Str("product", name).Msg("skip: no category")
			continue
		}

		image1, image2 := ParseImageField(row.Images)

		gender := model.Gender(strings.TrimSpace(row.Gender))
		switch gender {
		case model.GenderMale, model.GenderFemale:
		default:
			gender = model.GenderUnisex
		}

		now := time.Now()
		if _, err := i.products.UpsertByName(ctx, model.Product{
			Name:        name,
			Description: row.Details,
			Price:       price,
			CategoryID:  category.ID,
			Image1:      image1,
			Image2:      image2,
			Gender:      gender,
			CreatedAt:   now,
			UpdatedAt:   now,
		}); err != nil {
			return count, err
		}

		count++
	}

	return count, nil
}

// ParsePrice は「₹1,299.00」のような通貨プレフィックス付き文字列を金額にする。
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, ",", "")
	return decimal.NewFromString(s)
}

// ParseImageField は「[{'url1': ...}, {'url2': ...}]」形式の文字列から
// 2つのキーを取り出す。形式が崩れていても空文字で返すだけにする。
func ParseImageField(s string) (string, string) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	parts := strings.SplitN(s, ", ", 2)

	keys := [2]string{}
	for idx, part := range parts {
		if idx >= 2 {
			break
		}
		keys[idx] = dictKey(part)
	}

	return keys[0], keys[1]
}

// 「{'key': 'value'}」からkeyだけを抜く
func dictKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")

	i := strings.Index(s, "':")
	if i <= 0 {
		return ""
	}

	return strings.Trim(s[:i], "'")
}
