package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// ========================================
// REQUEST DTOs
// ========================================

// AddItemRequest - POST /cart/items
type AddItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID,
			validation.Required.Error("product_id is required"),
		),
		validation.Field(&r.Quantity,
			validation.Min(0).Error("quantity must not be negative"),
			validation.Max(100).Error("quantity must not exceed 100"),
		),
	)
}

// AdjustQuantityRequest - PATCH /cart/items/:product_id
type AdjustQuantityRequest struct {
	Delta int `json:"delta"`
}

func (r AdjustQuantityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Delta,
			validation.Required.Error("delta is required and must not be zero"),
		),
	)
}

// SetCustomerRequest - PUT /cart/customer
type SetCustomerRequest struct {
	CustomerID int64 `json:"customer_id"`
}

func (r SetCustomerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CustomerID,
			validation.Required.Error("customer_id is required"),
		),
	)
}

// SetPaymentMethodRequest - PUT /cart/payment-method
type SetPaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method"`
}

func (r SetPaymentMethodRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PaymentMethod,
			validation.Required.Error("payment_method is required"),
			validation.In(string(PaymentCash), string(PaymentQRIS), string(PaymentTransfer)).
				Error("payment_method must be Cash, QRIS or Transfer"),
		),
	)
}

// CheckoutRequest - POST /cart/checkout. Both fields are optional
// overrides; when omitted the cart's stored selection is used.
type CheckoutRequest struct {
	CustomerID    *int64 `json:"customer_id,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

func (r CheckoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PaymentMethod,
			validation.In(string(PaymentCash), string(PaymentQRIS), string(PaymentTransfer)).
				Error("payment_method must be Cash, QRIS or Transfer"),
		),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

type CartLineResponse struct {
	ProductID      int64           `json:"product_id"`
	ProductName    string          `json:"product_name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	AvailableStock int             `json:"available_stock"`
	Quantity       int             `json:"quantity"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	Lines         []CartLineResponse `json:"lines"`
	ItemsCount    int                `json:"items_count"`
	CustomerID    *int64             `json:"customer_id,omitempty"`
	PaymentMethod PaymentMethod      `json:"payment_method"`
	GrandTotal    decimal.Decimal    `json:"grand_total"`
}

// ToResponse maps the cart to its API shape; totals are derived here,
// never read from stored state.
func (c *Cart) ToResponse() *CartResponse {
	lines := make([]CartLineResponse, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, CartLineResponse{
			ProductID:      l.ProductID,
			ProductName:    l.ProductName,
			UnitPrice:      l.UnitPrice,
			AvailableStock: l.AvailableStock,
			Quantity:       l.Quantity,
			Subtotal:       l.Subtotal(),
		})
	}

	return &CartResponse{
		Lines:         lines,
		ItemsCount:    len(lines),
		CustomerID:    c.CustomerID,
		PaymentMethod: c.PaymentMethod,
		GrandTotal:    c.Total(),
	}
}
