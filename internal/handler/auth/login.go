// File: internal/handler/auth/login.go
package auth

import (
	"net/http"
	"strings"

	"user-hub/internal/api"
	"user-hub/internal/config"
	"user-hub/internal/database"
	"user-hub/internal/service"
	"user-hub/internal/store"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Email/Password 驗證並回傳存取令牌，
// 同時寫入 access_token cookie 供後續請求使用。
// 查無帳號與密碼錯誤皆回應同一訊息，避免帳號枚舉
// @Summary     登入使用者
// @Description 使用 Email 與 Password 進行驗證，回傳存取令牌與到期時間，並設定 HttpOnly cookie
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       email    formData string true "Email"
// @Param       password formData string true "密碼"
// @Success     200 {object} api.LoginResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB, cfg config.Auth) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := getUserByEmail(c.Request().Context(), db, strings.ToLower(req.Email))
		if err != nil {
			if store.IsNotFound(err) {
				return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		if err := authenticateUser(*user, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
		}

		token, expiresAt, err := issueAccessToken(cfg, *user)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to issue token"})
		}

		c.SetCookie(&http.Cookie{
			Name:     service.AccessTokenCookie,
			Value:    token,
			Path:     "/",
			Expires:  expiresAt,
			MaxAge:   int(cfg.TokenTTL.Seconds()),
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})

		return c.JSON(http.StatusOK, api.LoginResponse{AccessToken: token, ExpiresAt: expiresAt})
	}
}
