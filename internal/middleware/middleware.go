package middleware

import (
	"net/http"

	"user-hub/internal/config"
	"user-hub/internal/database"
	"user-hub/internal/model"
	"user-hub/internal/service"
	"user-hub/internal/store"

	"github.com/labstack/echo/v4"
)

// ContextUserKey 存放已解析的當前使用者 (*model.User)
const ContextUserKey = "user"

// 測試可覆寫下列變數
var (
	verifyAccessToken = service.VerifyAccessToken
	getUserByEmail    = store.GetUserByEmail
)

// resolveUser 從 cookie 取出令牌、驗證後向資料庫解析出使用者。
// 無 cookie、令牌無效、subject 缺漏或查無使用者一律回應 401，
// 僅訊息不同以利除錯；資料庫故障原樣回傳（由 echo 轉為 500）
func resolveUser(c echo.Context, db database.DB, cfg config.Auth) (*model.User, error) {
	cookie, err := c.Cookie(service.AccessTokenCookie)
	if err != nil || cookie.Value == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	claims, err := verifyAccessToken(cfg, cookie.Value)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if claims.Subject == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	user, err := getUserByEmail(c.Request().Context(), db, claims.Subject)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "user not found")
		}
		return nil, err
	}
	return user, nil
}

// RequireAuth 驗證 cookie 會話並將使用者放入 context
func RequireAuth(db database.DB, cfg config.Auth) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := resolveUser(c, db, cfg)
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// RequireAdmin 在 RequireAuth 之上要求 is_admin，否則回應 403
func RequireAdmin(db database.DB, cfg config.Auth) echo.MiddlewareFunc {
	requireAuth := RequireAuth(db, cfg)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return requireAuth(func(c echo.Context) error {
			user := c.Get(ContextUserKey).(*model.User)
			if !user.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
			}
			return next(c)
		})
	}
}
