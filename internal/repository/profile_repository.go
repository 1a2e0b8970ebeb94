package repository

import (
	"context"

	"app/internal/domain/model"
)

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID int64) (model.Profile, error)
	Create(ctx context.Context, p model.Profile) error
	Update(ctx context.Context, p model.Profile) error
	DeleteByUserID(ctx context.Context, userID int64) error
}
