package posapi

import (
	"github.com/shopspring/decimal"
)

// Wire types for the POS backend. Field names follow the backend's
// camelCase JSON contract exactly.

type Category struct {
	ID           int64  `json:"id"`
	CategoryName string `json:"categoryName"`
	Description  string `json:"description"`
	Active       bool   `json:"active"`
}

type Tag struct {
	ID      int64  `json:"id"`
	TagName string `json:"tagName"`
}

type Product struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"productName"`
	CategoryID  int64           `json:"categoryId"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
	TagIDs      []int64         `json:"tagIds,omitempty"`
}

type Customer struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

type TransactionDetail struct {
	ProductID int64           `json:"productId"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type Transaction struct {
	ID              int64               `json:"id"`
	CustomerID      int64               `json:"customerId"`
	PaymentMethod   string              `json:"paymentMethod"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	TransactionDate string              `json:"transactionDate"`
	Details         []TransactionDetail `json:"details"`
}

// Create payloads

type CreateCategoryRequest struct {
	CategoryName string `json:"categoryName"`
	Description  string `json:"description"`
	Active       bool   `json:"active"`
}

type CreateTagRequest struct {
	TagName string `json:"tagName"`
}

type CreateProductRequest struct {
	ProductName string          `json:"productName"`
	CategoryID  int64           `json:"categoryId"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	TagIDs      []int64         `json:"tagIds"`
	Active      bool            `json:"active"`
}

type CreateCustomerRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

type CreateTransactionRequest struct {
	CustomerID    int64               `json:"customerId"`
	PaymentMethod string              `json:"paymentMethod"`
	Details       []TransactionDetail `json:"details"`
}
