// File: internal/service/password.go
package service

import (
	"user-hub/internal/config"

	"golang.org/x/crypto/bcrypt"
)

// 測試可覆寫下列變數
var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// HashPassword 以 bcrypt 哈希明文密碼，cost 取自設定。
// 每次呼叫都產生不同的鹽，同一密碼的兩次哈希結果必不相同
func HashPassword(cfg config.Auth, password string) (string, error) {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// ComparePassword 比對明文密碼與 bcrypt 哈希，成功回傳 nil。
// 哈希格式損毀時同樣回傳錯誤而非 panic
func ComparePassword(hash, password string) error {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password))
}
