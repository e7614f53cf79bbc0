package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

const ErrCodeInvalidCredentials = "AUTH_001"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}
