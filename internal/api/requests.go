// File: internal/api/requests.go
package api

import (
	"time"

	"user-hub/internal/model"
)

const birthdayLayout = "2006-01-02"

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	FirstName      string `form:"first_name" validate:"required" example:"Alice"`
	LastName       string `form:"last_name" validate:"required" example:"Smith"`
	OtherName      string `form:"other_name" example:"Marie"`
	Email          string `form:"email" validate:"required,email" example:"alice@example.com"`
	Password       string `form:"password" validate:"required,min=8" example:"Secret123!"`
	Phone          string `form:"phone" example:"+886912345678"`
	Birthday       string `form:"birthday" validate:"omitempty,datetime=2006-01-02" example:"1990-04-01"`
	City           string `form:"city" example:"Taipei"`
	AdditionalInfo string `form:"additional_info" example:"likes cats"`
}

// User 將表單欄位轉為 model.User，空白的選填欄位轉為 NULL
func (r RegisterRequest) User() (model.User, error) {
	u := model.User{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		OtherName:      optional(r.OtherName),
		Email:          r.Email,
		Phone:          optional(r.Phone),
		City:           optional(r.City),
		AdditionalInfo: optional(r.AdditionalInfo),
	}
	if r.Birthday != "" {
		birthday, err := time.Parse(birthdayLayout, r.Birthday)
		if err != nil {
			return model.User{}, err
		}
		u.Birthday = &birthday
	}
	return u, nil
}

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `form:"email" validate:"required,email" example:"alice@example.com"`
	Password string `form:"password" validate:"required" example:"Secret123!"`
}

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	RegisterRequest
	IsAdmin bool `form:"is_admin" example:"false"`
}

// User 同 RegisterRequest.User，另帶入 is_admin
func (r CreateUserRequest) User() (model.User, error) {
	u, err := r.RegisterRequest.User()
	if err != nil {
		return model.User{}, err
	}
	u.IsAdmin = r.IsAdmin
	return u, nil
}

// swagger:model api.UpdateMeRequest
type UpdateMeRequest struct {
	FirstName      string `form:"first_name" validate:"required" example:"Alice"`
	LastName       string `form:"last_name" validate:"required" example:"Smith"`
	OtherName      string `form:"other_name" example:"Marie"`
	Email          string `form:"email" validate:"required,email" example:"alice@example.com"`
	Phone          string `form:"phone" example:"+886912345678"`
	Birthday       string `form:"birthday" validate:"omitempty,datetime=2006-01-02" example:"1990-04-01"`
	City           string `form:"city" example:"Taipei"`
	AdditionalInfo string `form:"additional_info" example:"likes cats"`
}

// User 將表單欄位轉為 model.User，id 由呼叫端填入
func (r UpdateMeRequest) User() (model.User, error) {
	u := model.User{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		OtherName:      optional(r.OtherName),
		Email:          r.Email,
		Phone:          optional(r.Phone),
		City:           optional(r.City),
		AdditionalInfo: optional(r.AdditionalInfo),
	}
	if r.Birthday != "" {
		birthday, err := time.Parse(birthdayLayout, r.Birthday)
		if err != nil {
			return model.User{}, err
		}
		u.Birthday = &birthday
	}
	return u, nil
}

// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	UpdateMeRequest
	IsAdmin bool `form:"is_admin" example:"false"`
}

// User 同 UpdateMeRequest.User，另帶入 is_admin
func (r UpdateUserRequest) User() (model.User, error) {
	u, err := r.UpdateMeRequest.User()
	if err != nil {
		return model.User{}, err
	}
	u.IsAdmin = r.IsAdmin
	return u, nil
}

// swagger:model api.UpdateMyPasswordRequest
type UpdateMyPasswordRequest struct {
	OldPassword string `form:"old_password" validate:"required" example:"OldSecret123!"`
	NewPassword string `form:"new_password" validate:"required,min=8" example:"NewSecret456!"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
