package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the fixed set the POS backend accepts.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Cash"
	PaymentQRIS     PaymentMethod = "QRIS"
	PaymentTransfer PaymentMethod = "Transfer"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentQRIS, PaymentTransfer:
		return true
	}
	return false
}

// ProductSnapshot is the catalog state of a product at add-time.
type ProductSnapshot struct {
	ID    int64
	Name  string
	Price decimal.Decimal
	Stock int
}

// CartLine is one product selected for purchase. Quantity stays within
// [1, AvailableStock]; AvailableStock and UnitPrice are snapshots taken
// when the product was (last) added.
type CartLine struct {
	ProductID      int64           `json:"product_id"`
	ProductName    string          `json:"product_name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	AvailableStock int             `json:"available_stock"`
	Quantity       int             `json:"quantity"`
}

// Subtotal is UnitPrice * Quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds the checkout session state: ordered lines (insertion
// order = add order), the selected customer and the payment method.
type Cart struct {
	Lines         []CartLine    `json:"lines"`
	CustomerID    *int64        `json:"customer_id,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func NewCart() *Cart {
	return &Cart{
		Lines:         []CartLine{},
		PaymentMethod: PaymentCash,
		UpdatedAt:     time.Now(),
	}
}

func (c *Cart) findLine(productID int64) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem adds a product to the cart or increments its existing line.
// The cart is left untouched on any rejection.
func (c *Cart) AddItem(p ProductSnapshot, qty int) error {
	if qty <= 0 {
		qty = 1
	}

	if p.Stock <= 0 {
		return ErrStockExhausted
	}

	if i := c.findLine(p.ID); i >= 0 {
		if c.Lines[i].Quantity+qty > p.Stock {
			return ErrInsufficientStock
		}
		// Refresh the snapshot alongside the increment; the catalog
		// may have moved since the line was first added.
		c.Lines[i].Quantity += qty
		c.Lines[i].ProductName = p.Name
		c.Lines[i].UnitPrice = p.Price
		c.Lines[i].AvailableStock = p.Stock
		c.UpdatedAt = time.Now()
		return nil
	}

	if qty > p.Stock {
		return ErrInsufficientStock
	}

	c.Lines = append(c.Lines, CartLine{
		ProductID:      p.ID,
		ProductName:    p.Name,
		UnitPrice:      p.Price,
		AvailableStock: p.Stock,
		Quantity:       qty,
	})
	c.UpdatedAt = time.Now()
	return nil
}

// AdjustQuantity changes a line's quantity by delta. A result below 1
// is a no-op (the previous quantity stands); a result above the stock
// snapshot is rejected with ErrMaxStock.
func (c *Cart) AdjustQuantity(productID int64, delta int) error {
	i := c.findLine(productID)
	if i < 0 {
		return ErrLineNotFound
	}

	newQty := c.Lines[i].Quantity + delta
	if newQty < 1 {
		return nil
	}
	if newQty > c.Lines[i].AvailableStock {
		return ErrMaxStock
	}

	c.Lines[i].Quantity = newQty
	c.UpdatedAt = time.Now()
	return nil
}

// RemoveItem removes the product's line; no-op when absent.
func (c *Cart) RemoveItem(productID int64) {
	i := c.findLine(productID)
	if i < 0 {
		return
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	c.UpdatedAt = time.Now()
}

// Total recomputes the grand total from the lines on every call.
// It is never stored, so it cannot go stale.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clear empties the cart after a successful checkout: lines dropped,
// customer reset, payment method back to the default.
func (c *Cart) Clear() {
	c.Lines = []CartLine{}
	c.CustomerID = nil
	c.PaymentMethod = PaymentCash
	c.UpdatedAt = time.Now()
}
