// File: internal/service/authentication.go
package service

import (
	"errors"

	"user-hub/internal/model"
)

// AuthenticateUser 比對明文密碼與使用者儲存的哈希。
// 失敗原因不對外區分，一律回傳相同錯誤
func AuthenticateUser(user model.User, password string) error {
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return errors.New("invalid credentials")
	}
	return nil
}
