package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"pos-admin-gateway/internal/infrastructure/posapi"
	"pos-admin-gateway/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// TransactionAPI is the upstream slice backing the history views.
type TransactionAPI interface {
	ListTransactions(ctx context.Context, page, pageSize int) ([]posapi.Transaction, int, error)
	GetTransaction(ctx context.Context, id int64) (*posapi.Transaction, error)
}

// Handler exposes read-only transaction history. Writes go through the
// cart checkout, never through here.
type Handler struct {
	api TransactionAPI
}

func NewHandler(api TransactionAPI) *Handler {
	return &Handler{api: api}
}

// ListTransactions handles GET /transactions
func (h *Handler) ListTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if page < 1 {
		page = defaultPage
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	transactions, total, err := h.api.ListTransactions(c.Request.Context(), page, pageSize)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, transactions, &response.Meta{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

// GetTransaction handles GET /transactions/:id
func (h *Handler) GetTransaction(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid transaction id")
		return
	}

	tx, err := h.api.GetTransaction(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tx)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var apiErr *posapi.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusNotFound {
			response.NotFound(c, "transaction not found")
			return
		}
		response.BadGateway(c, apiErr.Error())
		return
	}
	response.BadGateway(c, err.Error())
}
