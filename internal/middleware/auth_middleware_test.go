package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type mwUserFake struct{ user *model.User }

func (f *mwUserFake) Create(ctx context.Context, user *model.User) error { return nil }

func (f *mwUserFake) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	if f.user != nil && f.user.ID == userID {
		return f.user, nil
	}
	return nil, nil
}

func (f *mwUserFake) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if f.user != nil && f.user.Username == username {
		return f.user, nil
	}
	return nil, nil
}

func (f *mwUserFake) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, nil
}

func (f *mwUserFake) Update(ctx context.Context, user *model.User) error { return nil }
func (f *mwUserFake) Delete(ctx context.Context, userID int64) error     { return nil }

type mwRTFake struct{ rows map[int64]model.RefreshToken }

func (f *mwRTFake) Upsert(ctx context.Context, token model.RefreshToken) error {
	f.rows[token.UserID] = token
	return nil
}

func (f *mwRTFake) FindByUserID(ctx context.Context, userID int64) (model.RefreshToken, error) {
	t, ok := f.rows[userID]
	if !ok {
		return model.RefreshToken{}, repo.ErrRefreshTokenNotFound
	}
	return t, nil
}

func (f *mwRTFake) DeleteByUserID(ctx context.Context, userID int64) error {
	delete(f.rows, userID)
	return nil
}

type noopValidator struct{}

func (noopValidator) ValidateRegister(ctx context.Context, username, email, password string) error {
	return nil
}

func (noopValidator) ValidateLogin(ctx context.Context, username, password string) error {
	return nil
}

// ログイン済みユーザー1人分のAuthUsecaseを用意する
func newMWAuthUsecase(t *testing.T) (*usecase.AuthUsecase, usecase.AuthPayload) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	assert.NoError(t, err)

	users := &mwUserFake{user: &model.User{
		ID:           1,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	}}
	rts := &mwRTFake{rows: map[int64]model.RefreshToken{}}

	cfg := config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	uc := usecase.NewAuthUsecase(cfg, users, rts, nil, nil, noopValidator{})

	payload, err := uc.Login(context.Background(), "alice", "password123")
	assert.NoError(t, err)

	return uc, payload
}

func identityEchoHandler(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c.Request().Context())
	if !ok {
		return c.String(http.StatusOK, "anonymous")
	}
	return c.String(http.StatusOK, id.Username)
}

func TestAuthContext_BearerToken(t *testing.T) {
	uc, payload := newMWAuthUsecase(t)

	e := echo.New()
	e.Use(middleware.AuthContext(uc))
	e.GET("/", identityEchoHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+payload.AccessToken)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())
}

func TestAuthContext_NoTokenStillPasses(t *testing.T) {
	uc, _ := newMWAuthUsecase(t)

	e := echo.New()
	e.Use(middleware.AuthContext(uc))
	e.GET("/", identityEchoHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// 未認証でもリクエストは通す（保護はresolver側）
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestAuthContext_RefreshTokenRejected(t *testing.T) {
	uc, payload := newMWAuthUsecase(t)

	e := echo.New()
	e.Use(middleware.AuthContext(uc))
	e.GET("/", identityEchoHandler)

	// refreshトークンはaccessとして使えない
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+payload.RefreshToken)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestCookieExchange_RefreshCookieRotates(t *testing.T) {
	uc, payload := newMWAuthUsecase(t)

	e := echo.New()
	e.Use(middleware.CookieExchange(uc, 7*24*time.Hour))
	e.GET("/", identityEchoHandler)

	// access cookie無し・refresh cookieのみ
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: payload.RefreshToken})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "alice", rec.Body.String())

	// 新しいペアがcookieで返る
	cookies := rec.Result().Cookies()
	names := map[string]string{}
	for _, c := range cookies {
		names[c.Name] = c.Value
	}
	assert.NotEmpty(t, names["access_token"])
	assert.NotEmpty(t, names["refresh_token"])
}

func TestCookieExchange_ClearExpiresCookies(t *testing.T) {
	uc, payload := newMWAuthUsecase(t)

	e := echo.New()
	e.Use(middleware.CookieExchange(uc, 7*24*time.Hour))
	e.GET("/", func(c echo.Context) error {
		sink := middleware.SinkFrom(c.Request().Context())
		if assert.NotNil(t, sink) {
			sink.Clear = true
		}
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: payload.AccessToken})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == "access_token" || c.Name == "refresh_token" {
			assert.Equal(t, -1, c.MaxAge)
			assert.Empty(t, c.Value)
		}
	}
}
