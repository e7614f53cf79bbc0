package model

import (
	"pos-admin-gateway/internal/infrastructure/posapi"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// ========================================
// Request DTOs
// ========================================

type CreateCategoryRequest struct {
	CategoryName string `json:"categoryName"`
	Description  string `json:"description"`
	Active       bool   `json:"active"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CategoryName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Length(0, 500)),
	)
}

func (r CreateCategoryRequest) ToUpstream() posapi.CreateCategoryRequest {
	return posapi.CreateCategoryRequest{
		CategoryName: r.CategoryName,
		Description:  r.Description,
		Active:       r.Active,
	}
}

type CreateTagRequest struct {
	TagName string `json:"tagName"`
}

func (r CreateTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TagName, validation.Required, validation.Length(1, 50)),
	)
}

func (r CreateTagRequest) ToUpstream() posapi.CreateTagRequest {
	return posapi.CreateTagRequest{TagName: r.TagName}
}

type CreateProductRequest struct {
	ProductName string          `json:"productName"`
	CategoryID  int64           `json:"categoryId"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	TagIDs      []int64         `json:"tagIds"`
	Active      bool            `json:"active"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.CategoryID, validation.Required, validation.Min(1)),
		validation.Field(&r.Stock, validation.Min(0)),
		validation.Field(&r.Price, validation.By(nonNegativeDecimal)),
	)
}

func nonNegativeDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok || d.IsNegative() {
		return validation.NewError("validation_price", "must be a non-negative amount")
	}
	return nil
}

func (r CreateProductRequest) ToUpstream() posapi.CreateProductRequest {
	return posapi.CreateProductRequest{
		ProductName: r.ProductName,
		CategoryID:  r.CategoryID,
		Price:       r.Price,
		Stock:       r.Stock,
		TagIDs:      r.TagIDs,
		Active:      r.Active,
	}
}

type CreateCustomerRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

func (r CreateCustomerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.PhoneNumber, validation.Length(0, 20)),
	)
}

func (r CreateCustomerRequest) ToUpstream() posapi.CreateCustomerRequest {
	return posapi.CreateCustomerRequest{
		Name:        r.Name,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
		Address:     r.Address,
	}
}
