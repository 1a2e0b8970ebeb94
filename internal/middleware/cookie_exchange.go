package middleware

import (
	"context"
	"net/http"
	"time"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	accessCookieName  = "access_token"
	refreshCookieName = "refresh_token"

	sinkKey ctxKey = "token_sink"
)

// TokenSink はresolverからcookie操作を依頼するための入れ物。
// loginは発行したペアを置き、logoutはClearを立てる。
type TokenSink struct {
	Pair  *usecase.TokenPair
	Clear bool
}

// SinkFrom はcontextからTokenSinkを取り出す。
// cookie交換エンドポイント以外ではnil。
func SinkFrom(ctx context.Context) *TokenSink {
	sink, _ := ctx.Value(sinkKey).(*TokenSink)
	return sink
}

// CookieExchange はcookieベースのトークン交換を行う。
//   - access cookieが有効ならその身元で通す
//   - 無効/期限切れでもrefresh cookieが有効なら新しいペアへ交換して通す
//   - レスポンス時にresolverが積んだペアをcookieへ反映する
func CookieExchange(authUC *usecase.AuthUsecase, refreshTTL time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := req.Context()

			sink := &TokenSink{}
			ctx = context.WithValue(ctx, sinkKey, sink)

			authed := false

			//Bearerヘッダ優先
			if raw := bearerToken(c); raw != "" {
				if id, err := authUC.VerifyAccess(raw); err == nil {
					ctx = WithIdentity(ctx, id)
					authed = true
				}
			}

			if !authed {
				if cookie, err := c.Cookie(accessCookieName); err == nil {
					if id, verr := authUC.VerifyAccess(cookie.Value); verr == nil {
						ctx = WithIdentity(ctx, id)
						authed = true
					}
				}
			}

			//accessが使えなければrefreshで交換（ローテーション）
			if !authed {
				if cookie, err := c.Cookie(refreshCookieName); err == nil {
					if pair, rerr := authUC.Refresh(ctx, cookie.Value); rerr == nil {
						if id, verr := authUC.VerifyAccess(pair.AccessToken); verr == nil {
							ctx = WithIdentity(ctx, id)
							sink.Pair = &pair
						}
					}
				}
			}

			c.SetRequest(req.WithContext(ctx))

			err := next(c)

			//resolver側の指示をcookieへ反映
			if sink.Clear {
				expireCookie(c, accessCookieName)
				expireCookie(c, refreshCookieName)
			} else if sink.Pair != nil {
				setTokenCookie(c, accessCookieName, sink.Pair.AccessToken, refreshTTL)
				setTokenCookie(c, refreshCookieName, sink.Pair.RefreshToken, refreshTTL)
			}

			return err
		}
	}
}

func setTokenCookie(c echo.Context, name string, value string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
	})
}

func expireCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
