// File: internal/service/token.go
package service

import (
	"fmt"
	"time"

	"user-hub/internal/config"
	"user-hub/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenCookie 為存放存取令牌的 cookie 名稱，
// 登入 handler 寫入、middleware 讀取，皆以此為準
const AccessTokenCookie = "access_token"

// 測試可覆寫下列變數
var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// IssueAccessToken 簽發 HS256 存取令牌，claims 僅含 sub (email) 與
// iat/exp，有效期限與密鑰取自設定。回傳令牌與到期時間
func IssueAccessToken(cfg config.Auth, user model.User) (string, time.Time, error) {
	if cfg.Secret == "" {
		return "", time.Time{}, fmt.Errorf("auth secret not configured")
	}

	now := timeNow()
	expiresAt := now.Add(cfg.TokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   user.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// VerifyAccessToken 驗證並解析存取令牌。簽章不符、演算法不符、
// 格式損毀或已逾期皆回傳錯誤；逾期判定不留寬限時間
func VerifyAccessToken(cfg config.Auth, tokenString string) (*jwt.RegisteredClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("auth secret not configured")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := parseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
