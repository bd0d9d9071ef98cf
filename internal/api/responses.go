// File: internal/api/responses.go
package api

import (
	"time"

	"user-hub/internal/model"
)

// ErrorResponse 全域錯誤響應模型
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	// message 錯誤描述
	Message string `json:"message"`
}

// swagger:model api.LoginResponse
type LoginResponse struct {
	AccessToken string    `json:"access_token" example:"eyJhbGciOi..."`
	ExpiresAt   time.Time `json:"expires_at" example:"2025-05-09T15:04:05Z"`
}

// UserResponse 對外的使用者視圖，永不包含密碼哈希
// swagger:model api.UserResponse
type UserResponse struct {
	ID             int       `json:"id" example:"42"`
	FirstName      string    `json:"first_name" example:"Alice"`
	LastName       string    `json:"last_name" example:"Smith"`
	OtherName      *string   `json:"other_name,omitempty" example:"Marie"`
	Email          string    `json:"email" example:"alice@example.com"`
	Phone          *string   `json:"phone,omitempty" example:"+886912345678"`
	Birthday       *string   `json:"birthday,omitempty" example:"1990-04-01"`
	City           *string   `json:"city,omitempty" example:"Taipei"`
	AdditionalInfo *string   `json:"additional_info,omitempty" example:"likes cats"`
	IsAdmin        bool      `json:"is_admin" example:"false"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUserResponse 由 model.User 建立對外視圖
func NewUserResponse(u model.User) UserResponse {
	resp := UserResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		OtherName:      u.OtherName,
		Email:          u.Email,
		Phone:          u.Phone,
		City:           u.City,
		AdditionalInfo: u.AdditionalInfo,
		IsAdmin:        u.IsAdmin,
		CreatedAt:      u.CreatedAt,
	}
	if u.Birthday != nil {
		birthday := u.Birthday.Format(birthdayLayout)
		resp.Birthday = &birthday
	}
	return resp
}

// swagger:model api.Pagination
type Pagination struct {
	Total int `json:"total" example:"57"`
	Page  int `json:"page" example:"1"`
	Size  int `json:"size" example:"10"`
}

// swagger:model api.ListMeta
type ListMeta struct {
	Pagination Pagination `json:"pagination"`
}

// swagger:model api.UsersListResponse
type UsersListResponse struct {
	Data []UserResponse `json:"data"`
	Meta ListMeta       `json:"meta"`
}
