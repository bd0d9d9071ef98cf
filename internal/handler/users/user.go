// File: internal/handler/users/user.go
package users

import (
	"net/http"
	"net/mail"
	"strconv"
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
	hashPassword       = service.HashPassword
	authenticateUser   = service.AuthenticateUser
	createUser         = store.CreateUser
	getUserByID        = store.GetUserByID
	updateUser         = store.UpdateUser
	updateUserProfile  = store.UpdateUserProfile
	updateUserPassword = store.UpdateUserPassword
	deleteUser         = store.DeleteUser
	listUsers          = store.ListUsers
)

const (
	defaultPage = 1
	defaultSize = 10
	maxSize     = 100
)

// ListUsersHandler 分頁列出所有使用者（管理員專用）
// @Summary     列出使用者
// @Description 依 page/size 分頁回傳使用者清單與總筆數
// @Tags        users
// @Produce     json
// @Param       page query int false "頁碼 (>=1，預設 1)"
// @Param       size query int false "每頁筆數 (1-100，預設 10)"
// @Success     200 {object} api.UsersListResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := defaultPage
		if v := c.QueryParam("page"); v != "" {
			p, err := strconv.Atoi(v)
			if err != nil || p < 1 {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid page"})
			}
			page = p
		}
		size := defaultSize
		if v := c.QueryParam("size"); v != "" {
			s, err := strconv.Atoi(v)
			if err != nil || s < 1 || s > maxSize {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid size"})
			}
			size = s
		}

		users, total, err := listUsers(c.Request().Context(), db, size, (page-1)*size)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		data := make([]api.UserResponse, 0, len(users))
		for _, u := range users {
			data = append(data, api.NewUserResponse(u))
		}
		return c.JSON(http.StatusOK, api.UsersListResponse{
			Data: data,
			Meta: api.ListMeta{Pagination: api.Pagination{Total: total, Page: page, Size: size}},
		})
	}
}

// CreateUserHandler 建立使用者（管理員專用），可指定 is_admin
// @Summary     建立使用者
// @Tags        users
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       first_name      formData string  true  "名"
// @Param       last_name       formData string  true  "姓"
// @Param       other_name      formData string  false "中間名"
// @Param       email           formData string  true  "Email (lowercase)"
// @Param       password        formData string  true  "密碼"
// @Param       phone           formData string  false "電話"
// @Param       birthday        formData string  false "生日 (YYYY-MM-DD)"
// @Param       city            formData string  false "城市"
// @Param       additional_info formData string  false "備註"
// @Param       is_admin        formData boolean false "是否為管理員"
// @Success     201 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users [post]
func CreateUserHandler(db database.DB, cfg config.Auth) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
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

// GetUserHandler 以 ID 查詢使用者（管理員專用）
// @Summary     取得使用者
// @Tags        users
// @Produce     json
// @Param       user_id path int true "使用者 ID"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/{user_id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			if store.IsNotFound(err) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(*user))
	}
}

// UpdateUserHandler 以 ID 更新使用者（管理員專用），可改 is_admin，
// 但不會改動密碼
// @Summary     更新使用者
// @Tags        users
// @Accept      application/x-www-form-urlencoded
// @Param       user_id         path     int     true  "使用者 ID"
// @Param       first_name      formData string  true  "名"
// @Param       last_name       formData string  true  "姓"
// @Param       other_name      formData string  false "中間名"
// @Param       email           formData string  true  "Email (lowercase)"
// @Param       phone           formData string  false "電話"
// @Param       birthday        formData string  false "生日 (YYYY-MM-DD)"
// @Param       city            formData string  false "城市"
// @Param       additional_info formData string  false "備註"
// @Param       is_admin        formData boolean false "是否為管理員"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/{user_id} [put]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}

		var req api.UpdateUserRequest
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
		u.ID = id

		if err := updateUser(c.Request().Context(), db, &u); err != nil {
			if store.IsNotFound(err) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			if store.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "email already registered"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// DeleteUserHandler 以 ID 刪除使用者（管理員專用）
// @Summary     刪除使用者
// @Tags        users
// @Param       user_id path int true "使用者 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/{user_id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		if err := deleteUser(c.Request().Context(), db, id); err != nil {
			if store.IsNotFound(err) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
