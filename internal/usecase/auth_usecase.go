package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// トークン種別。accessとrefreshは相互に使い回せない。
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, username string, email string, password string) error
	ValidateLogin(ctx context.Context, username string, password string) error
}

type AuthUsecase struct {
	cfg         config.Config
	users       repo.UserRepository
	rtRepo      repo.RefreshTokenRepository
	profileRepo repo.ProfileRepository
	tx          repo.TransactionManager
	validator   AuthValidator
}

func NewAuthUsecase(
	cfg config.Config,
	users repo.UserRepository,
	rtRepo repo.RefreshTokenRepository,
	profileRepo repo.ProfileRepository,
	tx repo.TransactionManager,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:         cfg,
		users:       users,
		rtRepo:      rtRepo,
		profileRepo: profileRepo,
		tx:          tx,
		validator:   validator,
	}
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthPayload struct {
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// アクセストークンから復元した呼び出し元の身元。
type Identity struct {
	UserID   int64
	Username string
}

// Register は会員登録。登録してもログイン状態にはしない。
// username/emailの一意チェックを先に行い、User+Profileを1トランザクションで作る。
func (u *AuthUsecase) Register(ctx context.Context, username string, email string, password string) (UserDTO, error) {
	//usernameは小文字に正規化
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.TrimSpace(email)

	if err := u.validator.ValidateRegister(ctx, username, email, password); err != nil {
		if he, ok := AsHTTPError(err); ok {
			return UserDTO{}, he
		}
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(pwHash),
	}

	//User作成とProfile自動作成をまとめて行う。片方だけ残さない。
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Users().Create(ctx, user); err != nil {
			return err
		}
		return r.Profiles().Create(ctx, model.Profile{
			UserID:   user.ID,
			Username: username,
			Email:    email,
		})
	})
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusConflict, "Could not register user.")
	}

	return UserDTO{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

// Login は認証してaccess/refreshのトークンペアを発行する。
// refreshのハッシュはユーザーごとに1つだけ保存し、失効判定に使う。
func (u *AuthUsecase) Login(ctx context.Context, username string, password string) (AuthPayload, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	if err := u.validator.ValidateLogin(ctx, username, password); err != nil {
		return AuthPayload{}, NewHTTPError(http.StatusBadRequest, "Invalid username or password")
	}

	user, err := u.users.FindByUsername(ctx, username)
	if err != nil || user == nil {
		return AuthPayload{}, NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return AuthPayload{}, NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}

	pair, err := u.issueTokenPair(ctx, user)
	if err != nil {
		return AuthPayload{}, err
	}

	return AuthPayload{
		User:         UserDTO{ID: user.ID, Username: user.Username, Email: user.Email},
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout は保存済みrefreshの現在値を失効させる。
// 署名の有効期限が残っていても、以後そのrefreshは使えない。
func (u *AuthUsecase) Logout(ctx context.Context, userID int64) (bool, error) {
	if userID <= 0 {
		return false, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := u.rtRepo.DeleteByUserID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrRefreshTokenNotFound) {
			//すでに失効済みでもログアウトは成功扱い
			return true, nil
		}
		return false, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return true, nil
}

// Me は認証済みユーザー自身を返す。
func (u *AuthUsecase) Me(ctx context.Context, userID int64) (UserDTO, error) {
	if userID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	return UserDTO{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

// Refresh はrefreshトークンを検証して新しいペアへ交換する（ローテーション）。
// 署名・期限・種別に加えて、保存済みの現在値と一致することを要求する。
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := u.parseToken(refreshToken)
	if err != nil {
		return TokenPair{}, NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}
	if claims.TokenType != TokenTypeRefresh {
		return TokenPair{}, NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	stored, err := u.rtRepo.FindByUserID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	//失効チェック：現在値と違えばrevoke済み
	if stored.TokenHash != hashToken(refreshToken) {
		return TokenPair{}, NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}
	if stored.ExpiresAt.Before(time.Now()) {
		_ = u.rtRepo.DeleteByUserID(ctx, claims.UserID)
		return TokenPair{}, NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	user, err := u.users.FindByID(ctx, claims.UserID)
	if err != nil || user == nil {
		return TokenPair{}, NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	return u.issueTokenPair(ctx, user)
}

// VerifyAccess はアクセストークンを検証して身元を返す。
// refreshトークンをここに渡しても通らない。
func (u *AuthUsecase) VerifyAccess(tokenString string) (Identity, error) {
	claims, err := u.parseToken(tokenString)
	if err != nil {
		return Identity{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if claims.TokenType != TokenTypeAccess {
		return Identity{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	return Identity{UserID: claims.UserID, Username: claims.Username}, nil
}

type tokenClaims struct {
	UserID    int64
	Username  string
	TokenType string
}

// access+refreshを発行してrefreshの現在値を保存する。
func (u *AuthUsecase) issueTokenPair(ctx context.Context, user *model.User) (TokenPair, error) {
	now := time.Now()

	access, err := u.signToken(jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"type":     TokenTypeAccess,
		"iat":      now.Unix(),
		"exp":      now.Add(u.cfg.AccessTokenTTL).Unix(),
	})
	if err != nil {
		return TokenPair{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	refreshExp := now.Add(u.cfg.RefreshTokenTTL)
	refresh, err := u.signToken(jwt.MapClaims{
		"sub":  user.ID,
		"type": TokenTypeRefresh,
		"iat":  now.Unix(),
		"exp":  refreshExp.Unix(),
	})
	if err != nil {
		return TokenPair{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	//現在値を置き換え（1ユーザー1トークン）
	if err := u.rtRepo.Upsert(ctx, model.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refresh),
		ExpiresAt: refreshExp,
	}); err != nil {
		return TokenPair{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (u *AuthUsecase) signToken(claims jwt.MapClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(u.cfg.JWTSecret))
}

// 署名と期限を検証してclaimsを取り出す。
func (u *AuthUsecase) parseToken(tokenString string) (tokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(u.cfg.JWTSecret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return tokenClaims{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return tokenClaims{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return tokenClaims{}, errors.New("invalid sub")
	}

	tokenType, _ := claims["type"].(string)
	username, _ := claims["username"].(string)

	return tokenClaims{
		UserID:    int64(sub),
		Username:  username,
		TokenType: tokenType,
	}, nil
}

// refreshはDBに平文では置かない。
func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
