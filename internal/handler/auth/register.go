// File: internal/handler/auth/register.go
package auth

import (
	"net/http"
	"net/mail"
	"strings"

	"user-hub/internal/api"
	"user-hub/internal/config"
	"user-hub/internal/database"
	"user-hub/internal/service"
	"user-hub/internal/store"

	"github.com/labstack/echo/v4"
)

// 測試可覆寫下列變數
var (
	hashPassword     = service.HashPassword
	authenticateUser = service.AuthenticateUser
	issueAccessToken = service.IssueAccessToken
	createUser       = store.CreateUser
	getUserByEmail   = store.GetUserByEmail
)

// RegisterHandler 公開註冊端點，建立一般（非管理員）帳號
// @Summary     註冊使用者
// @Description 以表單資料建立新帳號 (Email 會自動轉小寫)，一律為非管理員
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       first_name      formData string true  "名"
// @Param       last_name       formData string true  "姓"
// @Param       other_name      formData string false "中間名"
// @Param       email           formData string true  "Email (lowercase)"
// @Param       password        formData string true  "密碼"
// @Param       phone           formData string false "電話"
// @Param       birthday        formData string false "生日 (YYYY-MM-DD)"
// @Param       city            formData string false "城市"
// @Param       additional_info formData string false "備註"
// @Success     201 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(db database.DB, cfg config.Auth) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		req.Email = strings.ToLower(req.Email)
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
		}

		u, err := req.User()
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid birthday format"})
		}

		hash, err := hashPassword(cfg, req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
		}
		u.PasswordHash = hash

		user, err := createUser(c.Request().Context(), db, &u)
		if err != nil {
			if store.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "email already registered"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusCreated, api.NewUserResponse(*user))
	}
}
