package posapi

import (
	"context"
	"fmt"
	"net/url"
)

// TransactionClient talks to the Transaction side of the POS backend.
type TransactionClient struct {
	*Client
}

func NewTransactionClient(c *Client) *TransactionClient {
	return &TransactionClient{Client: c}
}

type transactionListResponse struct {
	Data         []Transaction `json:"data"`
	TotalRecords int           `json:"totalRecords"`
}

func (c *TransactionClient) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*Transaction, error) {
	var out Transaction
	if err := c.post(ctx, "/TransactionsApi", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *TransactionClient) ListTransactions(ctx context.Context, page, pageSize int) ([]Transaction, int, error) {
	var out transactionListResponse
	if err := c.get(ctx, "/TransactionsApi", listQuery(page, pageSize, ""), &out); err != nil {
		return nil, 0, err
	}
	return out.Data, out.TotalRecords, nil
}

func (c *TransactionClient) GetTransaction(ctx context.Context, id int64) (*Transaction, error) {
	var out Transaction
	if err := c.get(ctx, fmt.Sprintf("/TransactionsApi/%d", id), url.Values{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
