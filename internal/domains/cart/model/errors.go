package model

import "errors"

// Checkout / cart error codes surfaced in the API envelope.
const (
	ErrCodeStockExhausted    = "STOCK_EXHAUSTED"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeMaxStock          = "MAX_STOCK"
	ErrCodeLineNotFound      = "LINE_NOT_FOUND"
	ErrCodeCustomerRequired  = "CUSTOMER_REQUIRED"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeInvalidPayment    = "INVALID_PAYMENT_METHOD"
	ErrCodeCheckoutFailed    = "CHECKOUT_FAILED"
)

var (
	// ErrStockExhausted: the product has no stock at all.
	ErrStockExhausted = errors.New("product is out of stock")

	// ErrInsufficientStock: adding the requested quantity would exceed
	// the product's available stock.
	ErrInsufficientStock = errors.New("quantity exceeds available stock")

	// ErrMaxStock: a quantity adjustment would push the line past its
	// stock snapshot. The previous quantity is retained.
	ErrMaxStock = errors.New("maximum stock reached")

	ErrLineNotFound     = errors.New("product is not in the cart")
	ErrCustomerRequired = errors.New("customer must be selected before checkout")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidPayment   = errors.New("invalid payment method")
	ErrProductNotFound  = errors.New("product not found")
)
