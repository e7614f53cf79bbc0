package handler

import (
	"errors"
	"net/http"
	"strconv"

	"pos-admin-gateway/internal/domains/cart/model"
	"pos-admin-gateway/internal/domains/cart/service"
	"pos-admin-gateway/internal/infrastructure/posapi"
	"pos-admin-gateway/internal/shared/middleware"
	"pos-admin-gateway/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the checkout cart.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(s service.ServiceInterface) *Handler {
	return &Handler{service: s}
}

// sessionID resolves the cart key for the current caller; one cart
// per authenticated admin session.
func sessionID(c *gin.Context) (string, bool) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		response.Unauthorized(c, "session required")
		return "", false
	}
	return sess.UserID, true
}

func productIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return 0, false
	}
	return id, true
}

// GetCart handles GET /cart
func (h *Handler) GetCart(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	cart, err := h.service.GetCart(c.Request.Context(), sid)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, cart.ToResponse())
}

// AddItem handles POST /cart/items
func (h *Handler) AddItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req model.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	cart, err := h.service.AddItem(c.Request.Context(), sid, req)
	if err != nil {
		h.writeCartError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, cart.ToResponse())
}

// AdjustQuantity handles PATCH /cart/items/:product_id
func (h *Handler) AdjustQuantity(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	var req model.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	cart, err := h.service.AdjustQuantity(c.Request.Context(), sid, productID, req.Delta)
	if err != nil {
		h.writeCartError(c, err)
		return
	}

	response.Success(c, http.StatusOK, cart.ToResponse())
}

// RemoveItem handles DELETE /cart/items/:product_id
// Destructive-action confirmation is the caller's job; the engine
// takes no UI hooks.
func (h *Handler) RemoveItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	cart, err := h.service.RemoveItem(c.Request.Context(), sid, productID)
	if err != nil {
		h.writeCartError(c, err)
		return
	}

	response.Success(c, http.StatusOK, cart.ToResponse())
}

// SetCustomer handles PUT /cart/customer
func (h *Handler) SetCustomer(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req model.SetCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	cart, err := h.service.SetCustomer(c.Request.Context(), sid, req.CustomerID)
	if err != nil {
		h.writeCartError(c, err)
		return
	}

	response.Success(c, http.StatusOK, cart.ToResponse())
}

// SetPaymentMethod handles PUT /cart/payment-method
func (h *Handler) SetPaymentMethod(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req model.SetPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	cart, err := h.service.SetPaymentMethod(c.Request.Context(), sid, model.PaymentMethod(req.PaymentMethod))
	if err != nil {
		h.writeCartError(c, err)
		return
	}

	response.Success(c, http.StatusOK, cart.ToResponse())
}

// Checkout handles POST /cart/checkout
func (h *Handler) Checkout(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req model.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	tx, err := h.service.Checkout(c.Request.Context(), sid, req)
	if err != nil {
		h.writeCartError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, tx)
}

// writeCartError maps the engine's failure taxonomy onto HTTP.
func (h *Handler) writeCartError(c *gin.Context, err error) {
	var apiErr *posapi.APIError
	switch {
	case errors.Is(err, model.ErrStockExhausted):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeStockExhausted, err.Error())
	case errors.Is(err, model.ErrInsufficientStock):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeInsufficientStock, err.Error())
	case errors.Is(err, model.ErrMaxStock):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeMaxStock, err.Error())
	case errors.Is(err, model.ErrLineNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeLineNotFound, err.Error())
	case errors.Is(err, model.ErrProductNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrCustomerRequired):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, model.ErrCodeCustomerRequired, err.Error())
	case errors.Is(err, model.ErrEmptyCart):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, model.ErrCodeEmptyCart, err.Error())
	case errors.Is(err, model.ErrInvalidPayment):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, model.ErrCodeInvalidPayment, err.Error())
	case errors.As(err, &apiErr):
		// Surface the upstream rejection verbatim so the user can act on it.
		response.ErrorResponse(c, http.StatusBadGateway, model.ErrCodeCheckoutFailed, apiErr.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}
