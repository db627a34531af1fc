package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"sales-service/internal/domain"
)

type CustomerService interface {
	Save(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	Get(ctx context.Context, id uint64) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, id uint64, patch domain.CustomerPatch) error
	Delete(ctx context.Context, id uint64) error
}

func (h *Handler) registerCustomerRoutes(api *gin.RouterGroup) {
	customer := api.Group("/customer")
	customer.POST("", h.CreateCustomer)
	customer.GET("", h.ListCustomers)
	customer.GET("/:id", h.GetCustomer)
	customer.PATCH("/:id", h.UpdateCustomer)
	customer.DELETE("/:id", h.DeleteCustomer)
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, bindingErrors(err))
		return
	}

	customer, err := h.customers.Save(c.Request.Context(), req.ToCustomer())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, customer)
}

func (h *Handler) ListCustomers(c *gin.Context) {
	all, err := h.customers.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, all)
}

func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	customer, err := h.customers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, customer)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, bindingErrors(err))
		return
	}
	patch := req.ToPatch()
	if patch.IsEmpty() {
		respondBadRequest(c, []FieldError{{Field: "body", Message: "no updatable field supplied"}})
		return
	}

	ctx := c.Request.Context()
	if err := h.customers.Update(ctx, id, patch); err != nil {
		respondError(c, err)
		return
	}
	customer, err := h.customers.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, customer)
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.customers.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}
