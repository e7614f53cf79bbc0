package handler

import (
	"errors"
	"net/http"
	"strconv"

	"pos-admin-gateway/internal/domains/catalog/model"
	"pos-admin-gateway/internal/domains/catalog/service"
	"pos-admin-gateway/internal/infrastructure/posapi"
	"pos-admin-gateway/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// Handler exposes the catalog proxy endpoints.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(s service.ServiceInterface) *Handler {
	return &Handler{service: s}
}

// listParams reads page, page_size and search from the query string.
func listParams(c *gin.Context) (page, pageSize int, search string) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if page < 1 {
		page = defaultPage
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	return page, pageSize, c.Query("search")
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

// writeUpstreamError surfaces backend rejections without rewording
// them. Client-level upstream statuses pass through; everything else
// is a gateway problem.
func writeUpstreamError(c *gin.Context, err error) {
	var apiErr *posapi.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.StatusCode
		if status < 400 || status > 499 {
			status = http.StatusBadGateway
		}
		response.ErrorResponse(c, status, "UPSTREAM_ERROR", apiErr.Error())
		return
	}
	response.BadGateway(c, err.Error())
}

// ========================================
// Categories
// ========================================

// ListCategories handles GET /categories
func (h *Handler) ListCategories(c *gin.Context) {
	page, pageSize, search := listParams(c)

	categories, total, err := h.service.ListCategories(c.Request.Context(), page, pageSize, search)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, categories, &response.Meta{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

// CreateCategory handles POST /categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var req model.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), req.ToUpstream())
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, category)
}

// DeleteCategory handles DELETE /categories/:id
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		writeUpstreamError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// ========================================
// Tags
// ========================================

// ListTags handles GET /tags
func (h *Handler) ListTags(c *gin.Context) {
	page, pageSize, search := listParams(c)

	tags, total, err := h.service.ListTags(c.Request.Context(), page, pageSize, search)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, tags, &response.Meta{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

// CreateTag handles POST /tags
func (h *Handler) CreateTag(c *gin.Context) {
	var req model.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	tag, err := h.service.CreateTag(c.Request.Context(), req.ToUpstream())
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, tag)
}

// DeleteTag handles DELETE /tags/:id
func (h *Handler) DeleteTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTag(c.Request.Context(), id); err != nil {
		writeUpstreamError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// ========================================
// Products
// ========================================

// ListProducts handles GET /products
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize, search := listParams(c)

	products, total, err := h.service.ListProducts(c.Request.Context(), page, pageSize, search)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, products, &response.Meta{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

// GetProduct handles GET /products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	response.Success(c, http.StatusOK, product)
}

// CreateProduct handles POST /products
func (h *Handler) CreateProduct(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), req.ToUpstream())
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, product)
}

// DeleteProduct handles DELETE /products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		writeUpstreamError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// ========================================
// Customers
// ========================================

// ListCustomers handles GET /customers
func (h *Handler) ListCustomers(c *gin.Context) {
	page, pageSize, search := listParams(c)

	customers, total, err := h.service.ListCustomers(c.Request.Context(), page, pageSize, search)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, customers, &response.Meta{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

// CreateCustomer handles POST /customers
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req model.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	customer, err := h.service.CreateCustomer(c.Request.Context(), req.ToUpstream())
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, customer)
}

// DeleteCustomer handles DELETE /customers/:id
func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		writeUpstreamError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}
