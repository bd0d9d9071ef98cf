// File: internal/router/router.go
package router

import (
	"user-hub/internal/cache"
	"user-hub/internal/config"
	"user-hub/internal/database"
	"user-hub/internal/handler"
	"user-hub/internal/handler/auth"
	"user-hub/internal/handler/users"
	"user-hub/internal/middleware"

	"github.com/labstack/echo/v4"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, cfg config.Auth) {
	api := e.Group("/api")

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(db, rdb), middleware.RequireAuth(db, cfg))

	// 註冊與登入
	api.POST("/auth/register", auth.RegisterHandler(db, cfg))
	api.POST("/auth/login", auth.LoginHandler(db, cfg))

	// 管理員專屬 Users CRUD 與分頁列表
	apiUsers := api.Group("/users", middleware.RequireAdmin(db, cfg))
	apiUsers.GET("", users.ListUsersHandler(db))
	apiUsers.POST("", users.CreateUserHandler(db, cfg))
	apiUsers.GET("/:user_id", users.GetUserHandler(db))
	apiUsers.PUT("/:user_id", users.UpdateUserHandler(db))
	apiUsers.DELETE("/:user_id", users.DeleteUserHandler(db))

	// 取得、更新、刪除當前使用者個人資料
	apiUsersMe := api.Group("/users/me", middleware.RequireAuth(db, cfg))
	apiUsersMe.GET("", users.GetMeHandler())
	apiUsersMe.PUT("", users.UpdateMeHandler(db))
	apiUsersMe.DELETE("", users.DeleteMeHandler(db))
	apiUsersMe.PATCH("/password", users.UpdateMyPasswordHandler(db, cfg))
}
