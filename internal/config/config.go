// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL 為存取令牌預設有效期限
const DefaultTokenTTL = 30 * time.Minute

// Auth 核心認證設定，於啟動時建立後即不再變動，
// 由呼叫端顯式傳入令牌簽發與密碼哈希流程
type Auth struct {
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

// Config 服務執行期設定
type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Auth          Auth
}

// Load 讀取環境變數並組成 Config，缺少必要設定即回傳錯誤
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}

	redisDBStr := os.Getenv("REDIS_DB")
	if redisDBStr == "" {
		return nil, fmt.Errorf("環境變數 REDIS_DB 未設定")
	}
	redisDB, err := strconv.Atoi(redisDBStr)
	if err != nil {
		return nil, fmt.Errorf("無效的 REDIS_DB: %v", err)
	}
	cfg.RedisDB = redisDB

	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if cfg.RedisPassword == "" {
		return nil, fmt.Errorf("環境變數 REDIS_PASSWORD 未設定")
	}

	cfg.Auth.Secret = os.Getenv("JWT_SECRET")
	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("環境變數 JWT_SECRET 未設定")
	}

	cfg.Auth.TokenTTL = DefaultTokenTTL
	if v := os.Getenv("ACCESS_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("無效的 ACCESS_TOKEN_TTL: %q", v)
		}
		cfg.Auth.TokenTTL = ttl
	}

	cfg.Auth.BcryptCost = bcrypt.DefaultCost
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("無效的 BCRYPT_COST: %q", v)
		}
		cfg.Auth.BcryptCost = cost
	}

	return cfg, nil
}
