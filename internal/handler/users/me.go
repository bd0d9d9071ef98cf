// File: internal/handler/users/me.go
package users

import (
	"net/http"
	"net/mail"
	"strings"

	"user-hub/internal/api"
	"user-hub/internal/config"
	"user-hub/internal/database"
	"user-hub/internal/middleware"
	"user-hub/internal/model"
	"user-hub/internal/store"

	"github.com/labstack/echo/v4"
)

func currentUser(c echo.Context) *model.User {
	return c.Get(middleware.ContextUserKey).(*model.User)
}

// GetMeHandler 回傳當前使用者個人資料
// @Summary     取得當前使用者
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Router      /users/me [get]
func GetMeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, api.NewUserResponse(*currentUser(c)))
	}
}

// UpdateMeHandler 更新當前使用者個人資料，不含密碼與 is_admin
// @Summary     更新當前使用者
// @Tags        users
// @Accept      application/x-www-form-urlencoded
// @Param       first_name      formData string true  "名"
// @Param       last_name       formData string true  "姓"
// @Param       other_name      formData string false "中間名"
// @Param       email           formData string true  "Email (lowercase)"
// @Param       phone           formData string false "電話"
// @Param       birthday        formData string false "生日 (YYYY-MM-DD)"
// @Param       city            formData string false "城市"
// @Param       additional_info formData string false "備註"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/me [put]
func UpdateMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdateMeRequest
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
		u.ID = currentUser(c).ID

		if err := updateUserProfile(c.Request().Context(), db, &u); err != nil {
			if store.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "email already registered"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// UpdateMyPasswordHandler 驗證舊密碼後重新哈希並儲存新密碼。
// 這是唯一會改動 password_hash 的更新路徑
// @Summary     更新當前使用者密碼
// @Tags        users
// @Accept      application/x-www-form-urlencoded
// @Param       old_password formData string true "舊密碼"
// @Param       new_password formData string true "新密碼"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/me/password [patch]
func UpdateMyPasswordHandler(db database.DB, cfg config.Auth) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdateMyPasswordRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user := currentUser(c)
		if err := authenticateUser(*user, req.OldPassword); err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
		}

		hash, err := hashPassword(cfg, req.NewPassword)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
		}

		if err := updateUserPassword(c.Request().Context(), db, user.ID, hash); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// DeleteMeHandler 刪除當前使用者帳號
// @Summary     刪除當前使用者
// @Tags        users
// @Success     204 "No Content"
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/me [delete]
func DeleteMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := deleteUser(c.Request().Context(), db, currentUser(c).ID); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
