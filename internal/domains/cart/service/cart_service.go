package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"

	"pos-admin-gateway/internal/domains/cart/model"
	"pos-admin-gateway/internal/domains/cart/store"
	"pos-admin-gateway/internal/infrastructure/posapi"

	"github.com/rs/zerolog/log"
)

// ProductFetcher is the slice of the catalog the cart engine needs.
type ProductFetcher interface {
	GetProduct(ctx context.Context, id int64) (*posapi.Product, error)
}

// TransactionCreator submits the checkout payload. One call, no
// partial submission, no automatic retry.
type TransactionCreator interface {
	CreateTransaction(ctx context.Context, req posapi.CreateTransactionRequest) (*posapi.Transaction, error)
}

// ServiceInterface is the cart engine boundary. Every operation
// returns the updated cart or a typed failure; rejected mutations
// leave the stored cart untouched.
type ServiceInterface interface {
	GetCart(ctx context.Context, sessionID string) (*model.Cart, error)
	AddItem(ctx context.Context, sessionID string, req model.AddItemRequest) (*model.Cart, error)
	AdjustQuantity(ctx context.Context, sessionID string, productID int64, delta int) (*model.Cart, error)
	RemoveItem(ctx context.Context, sessionID string, productID int64) (*model.Cart, error)
	SetCustomer(ctx context.Context, sessionID string, customerID int64) (*model.Cart, error)
	SetPaymentMethod(ctx context.Context, sessionID string, method model.PaymentMethod) (*model.Cart, error)
	Checkout(ctx context.Context, sessionID string, req model.CheckoutRequest) (*posapi.Transaction, error)
}

// lockStripes bounds the lock table; sessions hash onto a fixed set of
// mutexes so memory stays constant under session churn.
const lockStripes = 64

type cartService struct {
	store        store.Store
	products     ProductFetcher
	transactions TransactionCreator

	// locks serializes load-mutate-save per session so concurrent
	// requests from the same session cannot lose updates.
	locks [lockStripes]sync.Mutex
}

func NewService(s store.Store, products ProductFetcher, transactions TransactionCreator) ServiceInterface {
	return &cartService{
		store:        s,
		products:     products,
		transactions: transactions,
	}
}

func (s *cartService) lockSession(sessionID string) func() {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	mu := &s.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*model.Cart, error) {
	return s.store.Get(ctx, sessionID)
}

func (s *cartService) AddItem(ctx context.Context, sessionID string, req model.AddItemRequest) (*model.Cart, error) {
	product, err := s.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		var apiErr *posapi.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("fetch product %d: %w", req.ProductID, err)
	}

	defer s.lockSession(sessionID)()

	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	snapshot := model.ProductSnapshot{
		ID:    product.ID,
		Name:  product.ProductName,
		Price: product.Price,
		Stock: product.Stock,
	}
	if err := cart.AddItem(snapshot, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) AdjustQuantity(ctx context.Context, sessionID string, productID int64, delta int) (*model.Cart, error) {
	defer s.lockSession(sessionID)()

	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := cart.AdjustQuantity(productID, delta); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID string, productID int64) (*model.Cart, error) {
	defer s.lockSession(sessionID)()

	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID)

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) SetCustomer(ctx context.Context, sessionID string, customerID int64) (*model.Cart, error) {
	defer s.lockSession(sessionID)()

	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.CustomerID = &customerID

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) SetPaymentMethod(ctx context.Context, sessionID string, method model.PaymentMethod) (*model.Cart, error) {
	if !method.Valid() {
		return nil, model.ErrInvalidPayment
	}

	defer s.lockSession(sessionID)()

	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.PaymentMethod = method

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Checkout submits the cart as one transaction. On success the stored
// cart is cleared; on any failure the cart stays intact so the user
// can retry, and the upstream error is surfaced verbatim.
func (s *cartService) Checkout(ctx context.Context, sessionID string, req model.CheckoutRequest) (*posapi.Transaction, error) {
	defer s.lockSession(sessionID)()

	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		cart.CustomerID = req.CustomerID
	}
	if req.PaymentMethod != "" {
		method := model.PaymentMethod(req.PaymentMethod)
		if !method.Valid() {
			return nil, model.ErrInvalidPayment
		}
		cart.PaymentMethod = method
	}

	if cart.CustomerID == nil {
		return nil, model.ErrCustomerRequired
	}
	if cart.IsEmpty() {
		return nil, model.ErrEmptyCart
	}

	details := make([]posapi.TransactionDetail, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		details = append(details, posapi.TransactionDetail{
			ProductID: line.ProductID,
			Qty:       line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	tx, err := s.transactions.CreateTransaction(ctx, posapi.CreateTransactionRequest{
		CustomerID:    *cart.CustomerID,
		PaymentMethod: string(cart.PaymentMethod),
		Details:       details,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("transaction_id", tx.ID).
		Int("items", len(details)).
		Str("payment_method", string(cart.PaymentMethod)).
		Msg("Checkout completed")

	cart.Clear()
	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		// Transaction already exists upstream; only the local reset failed.
		log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to clear cart after checkout")
	}

	return tx, nil
}
