package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"pos-admin-gateway/internal/domains/cart/model"
	"pos-admin-gateway/internal/domains/cart/store"
	"pos-admin-gateway/internal/infrastructure/posapi"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducts struct {
	products map[int64]*posapi.Product
	err      error
}

func (f *fakeProducts) GetProduct(_ context.Context, id int64) (*posapi.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, &posapi.APIError{StatusCode: 404, Body: "not found"}
	}
	return p, nil
}

type fakeTransactions struct {
	created []posapi.CreateTransactionRequest
	result  *posapi.Transaction
	err     error
}

func (f *fakeTransactions) CreateTransaction(_ context.Context, req posapi.CreateTransactionRequest) (*posapi.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	return f.result, nil
}

func newTestService(products map[int64]*posapi.Product, tx *fakeTransactions) (ServiceInterface, store.Store) {
	s := store.NewMemoryStore(time.Minute)
	return NewService(s, &fakeProducts{products: products}, tx), s
}

func product(id int64, name string, price int64, stock int) *posapi.Product {
	return &posapi.Product{
		ID:          id,
		ProductName: name,
		Price:       decimal.NewFromInt(price),
		Stock:       stock,
	}
}

func TestAddItemFetchesProduct(t *testing.T) {
	svc, _ := newTestService(map[int64]*posapi.Product{
		1: product(1, "Kopi Susu", 15000, 10),
	}, &fakeTransactions{})

	cart, err := svc.AddItem(context.Background(), "sess", model.AddItemRequest{ProductID: 1, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "Kopi Susu", cart.Lines[0].ProductName)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _ := newTestService(map[int64]*posapi.Product{}, &fakeTransactions{})

	_, err := svc.AddItem(context.Background(), "sess", model.AddItemRequest{ProductID: 42, Quantity: 1})
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestAddItemRejectionNotPersisted(t *testing.T) {
	svc, s := newTestService(map[int64]*posapi.Product{
		1: product(1, "Kopi Susu", 15000, 2),
	}, &fakeTransactions{})

	_, err := svc.AddItem(context.Background(), "sess", model.AddItemRequest{ProductID: 1, Quantity: 5})
	assert.ErrorIs(t, err, model.ErrInsufficientStock)

	stored, err := s.Get(context.Background(), "sess")
	require.NoError(t, err)
	assert.True(t, stored.IsEmpty())
}

func TestCartsAreIsolatedPerSession(t *testing.T) {
	svc, _ := newTestService(map[int64]*posapi.Product{
		1: product(1, "Kopi Susu", 15000, 10),
	}, &fakeTransactions{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "alice", model.AddItemRequest{ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	bob, err := svc.GetCart(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, bob.IsEmpty())
}

func TestCheckoutRequiresCustomer(t *testing.T) {
	svc, _ := newTestService(map[int64]*posapi.Product{
		1: product(1, "Kopi Susu", 15000, 10),
	}, &fakeTransactions{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess", model.AddItemRequest{ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, "sess", model.CheckoutRequest{})
	assert.ErrorIs(t, err, model.ErrCustomerRequired)
}

func TestCheckoutRequiresItems(t *testing.T) {
	svc, _ := newTestService(map[int64]*posapi.Product{}, &fakeTransactions{})
	customerID := int64(7)

	_, err := svc.Checkout(context.Background(), "sess", model.CheckoutRequest{CustomerID: &customerID})
	assert.ErrorIs(t, err, model.ErrEmptyCart)
}

func TestCheckoutSubmitsLinesInOrderAndClearsCart(t *testing.T) {
	tx := &fakeTransactions{result: &posapi.Transaction{ID: 101}}
	svc, s := newTestService(map[int64]*posapi.Product{
		1: product(1, "Kopi Susu", 15000, 10),
		2: product(2, "Teh Manis", 5000, 10),
	}, tx)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess", model.AddItemRequest{ProductID: 1, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "sess", model.AddItemRequest{ProductID: 2, Quantity: 3})
	require.NoError(t, err)

	customerID := int64(7)
	result, err := svc.Checkout(ctx, "sess", model.CheckoutRequest{
		CustomerID:    &customerID,
		PaymentMethod: "QRIS",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(101), result.ID)

	require.Len(t, tx.created, 1)
	req := tx.created[0]
	assert.Equal(t, int64(7), req.CustomerID)
	assert.Equal(t, "QRIS", req.PaymentMethod)
	require.Len(t, req.Details, 2)
	assert.Equal(t, int64(1), req.Details[0].ProductID)
	assert.Equal(t, 2, req.Details[0].Qty)
	assert.Equal(t, int64(2), req.Details[1].ProductID)
	assert.Equal(t, 3, req.Details[1].Qty)

	stored, err := s.Get(ctx, "sess")
	require.NoError(t, err)
	assert.True(t, stored.IsEmpty())
	assert.Nil(t, stored.CustomerID)
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	tx := &fakeTransactions{err: &posapi.APIError{StatusCode: 500, Body: "Insufficient stock for product 1"}}
	svc, s := newTestService(map[int64]*posapi.Product{
		1: product(1, "Kopi Susu", 15000, 10),
	}, tx)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess", model.AddItemRequest{ProductID: 1, Quantity: 2})
	require.NoError(t, err)

	customerID := int64(7)
	_, err = svc.Checkout(ctx, "sess", model.CheckoutRequest{CustomerID: &customerID})

	var apiErr *posapi.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Error(), "Insufficient stock")

	stored, err := s.Get(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, stored.Lines, 1)
	assert.Equal(t, 2, stored.Lines[0].Quantity)
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	svc, _ := newTestService(map[int64]*posapi.Product{
		1: product(1, "Kopi Susu", 15000, 10),
	}, &fakeTransactions{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess", model.AddItemRequest{ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	customerID := int64(7)
	_, err = svc.Checkout(ctx, "sess", model.CheckoutRequest{
		CustomerID:    &customerID,
		PaymentMethod: "Barter",
	})
	assert.ErrorIs(t, err, model.ErrInvalidPayment)
}

func TestConcurrentAddsSameSessionLoseNothing(t *testing.T) {
	const workers = 16

	products := make(map[int64]*posapi.Product, workers)
	for i := int64(1); i <= workers; i++ {
		products[i] = product(i, fmt.Sprintf("Produk %d", i), 1000, 10)
	}
	svc, s := newTestService(products, &fakeTransactions{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := int64(1); i <= workers; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := svc.AddItem(ctx, "sess", model.AddItemRequest{ProductID: id, Quantity: 1})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	stored, err := s.Get(ctx, "sess")
	require.NoError(t, err)
	assert.Len(t, stored.Lines, workers)
}

func TestSetPaymentMethod(t *testing.T) {
	svc, _ := newTestService(map[int64]*posapi.Product{}, &fakeTransactions{})
	ctx := context.Background()

	cart, err := svc.SetPaymentMethod(ctx, "sess", model.PaymentTransfer)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentTransfer, cart.PaymentMethod)

	_, err = svc.SetPaymentMethod(ctx, "sess", model.PaymentMethod("IOU"))
	assert.ErrorIs(t, err, model.ErrInvalidPayment)
}
