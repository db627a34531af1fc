package http

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"sales-service/internal/domain"
	"sales-service/internal/platform/logger"
)

type QuoteService interface {
	Save(ctx context.Context, draft *domain.QuoteDraft) (*domain.QuoteAggregate, error)
	Get(ctx context.Context, id uint64) (*domain.QuoteAggregate, error)
	Update(ctx context.Context, id uint64, patch domain.QuotePatch) error
	Delete(ctx context.Context, id uint64) error
	GetItem(ctx context.Context, id uint64) (*domain.QuoteItem, error)
}

type OrderService interface {
	Save(ctx context.Context, draft *domain.OrderDraft) (*domain.OrderAggregate, error)
	Get(ctx context.Context, id uint64) (*domain.OrderAggregate, error)
	Update(ctx context.Context, id uint64, patch domain.OrderPatch) error
	Delete(ctx context.Context, id uint64) error
	GetItem(ctx context.Context, id uint64) (*domain.OrderItem, error)
}

type Handler struct {
	customers CustomerService
	quotes    QuoteService
	orders    OrderService
	log       *logger.Logger
}

func NewHandler(cs CustomerService, q QuoteService, o OrderService, log *logger.Logger) *Handler {
	useJSONFieldNames()
	return &Handler{customers: cs, quotes: q, orders: o, log: log}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	h.registerCustomerRoutes(api)

	quote := api.Group("/quote")
	quote.POST("", h.CreateQuote)
	quote.GET("/item/:id", h.GetQuoteItem)
	quote.GET("/:id", h.GetQuote)
	quote.PATCH("/:id", h.UpdateQuote)
	quote.DELETE("/:id", h.DeleteQuote)

	order := api.Group("/order")
	order.POST("", h.CreateOrder)
	order.GET("/item/:id", h.GetOrderItem)
	order.GET("/:id", h.GetOrder)
	order.PATCH("/:id", h.UpdateOrder)
	order.DELETE("/:id", h.DeleteOrder)
}

func (h *Handler) CreateQuote(c *gin.Context) {
	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, bindingErrors(err))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondBadRequest(c, errs)
		return
	}

	agg, err := h.quotes.Save(c.Request.Context(), req.ToDraft())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, agg)
}

func (h *Handler) GetQuote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	agg, err := h.quotes.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, agg)
}

func (h *Handler) UpdateQuote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, bindingErrors(err))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondBadRequest(c, errs)
		return
	}
	patch := req.ToPatch()
	if patch.IsEmpty() {
		respondBadRequest(c, []FieldError{{Field: "body", Message: "no updatable field supplied"}})
		return
	}

	ctx := c.Request.Context()
	if err := h.quotes.Update(ctx, id, patch); err != nil {
		respondError(c, err)
		return
	}
	agg, err := h.quotes.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, agg)
}

func (h *Handler) DeleteQuote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.quotes.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}

func (h *Handler) GetQuoteItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.quotes.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, item)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, bindingErrors(err))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondBadRequest(c, errs)
		return
	}

	agg, err := h.orders.Save(c.Request.Context(), req.ToDraft())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, agg)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	agg, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, agg)
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, bindingErrors(err))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondBadRequest(c, errs)
		return
	}
	patch := req.ToPatch()
	if patch.IsEmpty() {
		respondBadRequest(c, []FieldError{{Field: "body", Message: "no updatable field supplied"}})
		return
	}

	ctx := c.Request.Context()
	if err := h.orders.Update(ctx, id, patch); err != nil {
		respondError(c, err)
		return
	}
	agg, err := h.orders.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, agg)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}

func (h *Handler) GetOrderItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.orders.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, item)
}

// pathID parses the :id segment and writes a bad request when it is not a
// positive integer.
func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondBadRequest(c, []FieldError{{Field: "id", Message: "must be a positive integer"}})
		return 0, false
	}
	return id, true
}
