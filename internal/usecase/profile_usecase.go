package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// アバター画像の保存先。
// dataURIを受け取り、保存した相対パスを返す。
type AvatarStore interface {
	Save(dataURI string) (string, error)
}

type ProfileUsecase struct {
	tx          repo.TransactionManager
	profileRepo repo.ProfileRepository
	userRepo    repo.UserRepository
	avatars     AvatarStore
}

func NewProfileUsecase(
	tx repo.TransactionManager,
	profileRepo repo.ProfileRepository,
	userRepo repo.UserRepository,
	avatars AvatarStore,
) *ProfileUsecase {
	return &ProfileUsecase{
		tx:          tx,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		avatars:     avatars,
	}
}

type ProfileDTO struct {
	ID          int64   `json:"id"`
	User        string  `json:"user"`
	Address     string  `json:"address"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phone_number"`
	Image       *string `json:"image"`
}

// 部分更新。nilのフィールドは触らない。
type EditProfileInput struct {
	Username    *string
	Address     *string
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Image       *string
}

// Get はプロフィール取得。無ければnil（エラーではない）。
func (u *ProfileUsecase) Get(ctx context.Context, userID int64) (*ProfileDTO, error) {
	p, err := u.profileRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dto := toProfileDTO(p)
	return &dto, nil
}

// Edit はプロフィールの部分更新。
// 画像はdata:imageのdataURIならファイルとして保存してパスを持たせる。
func (u *ProfileUsecase) Edit(ctx context.Context, userID int64, in EditProfileInput) (ProfileDTO, error) {
	profile, err := u.profileRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return ProfileDTO{}, NewHTTPError(http.StatusNotFound, "Profile does not exist for this user.")
	}
	if err != nil {
		return ProfileDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return ProfileDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return ProfileDTO{}, NewHTTPError(http.StatusNotFound, "User does not exist.")
	}

	if in.Username != nil {
		user.Username = *in.Username
		if err := u.userRepo.Update(ctx, user); err != nil {
			return ProfileDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		profile.Username = *in.Username
	}

	if in.Address != nil {
		profile.Address = *in.Address
	}
	if in.FirstName != nil {
		profile.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		profile.LastName = *in.LastName
	}
	if in.PhoneNumber != nil {
		profile.PhoneNumber = *in.PhoneNumber
	}

	if in.Image != nil {
		if strings.HasPrefix(*in.Image, "data:image") {
			path, err := u.avatars.Save(*in.Image)
			if err != nil {
				return ProfileDTO{}, NewHTTPError(http.StatusBadRequest, "invalid image")
			}
			profile.Image = path
		} else {
			//dataURIでない入力は検証せずそのまま通す
			profile.Image = *in.Image
		}
	}

	if err := u.profileRepo.Update(ctx, profile); err != nil {
		return ProfileDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toProfileDTO(profile), nil
}

// Delete はプロフィールとユーザー本体を1トランザクションで削除する。
// カートも消すが、注文は履歴として残す。
// 見つからなくてもエラーにせず success=false を返す。
func (u *ProfileUsecase) Delete(ctx context.Context, userID int64) DeleteResult {
	profile, err := u.profileRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return DeleteResult{Success: false, Message: "Profile not found."}
	}
	if err != nil {
		return DeleteResult{Success: false, Message: "Failed to delete profile."}
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return DeleteResult{Success: false, Message: "Failed to delete profile."}
	}
	if user == nil {
		return DeleteResult{Success: false, Message: "User not found."}
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Carts().DeleteAllByUserID(ctx, userID); err != nil {
			return err
		}
		if err := r.Profiles().DeleteByUserID(ctx, profile.UserID); err != nil {
			return err
		}
		//refresh tokenも失効させる（残っていなくても構わない）
		if err := r.RefreshTokens().DeleteByUserID(ctx, userID); err != nil && err != repo.ErrRefreshTokenNotFound {
			return err
		}
		return r.Users().Delete(ctx, userID)
	})

	if err != nil {
		return DeleteResult{Success: false, Message: "Failed to delete profile."}
	}

	return DeleteResult{Success: true, Message: "Profile and user deleted successfully."}
}

func toProfileDTO(p model.Profile) ProfileDTO {
	return ProfileDTO{
		ID:          p.UserID,
		User:        p.Username,
		Address:     p.Address,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
		PhoneNumber: p.PhoneNumber,
		Image:       emptyToNil(p.Image),
	}
}
