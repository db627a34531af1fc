package http

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"sales-service/internal/domain"
)

const dateLayout = "2006-01-02"

type ContactRequest struct {
	FirstName   string  `json:"first_name" binding:"required,max=50"`
	LastName    string  `json:"last_name" binding:"required,max=50"`
	DateOfBirth *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=male female others"`
	Address     string  `json:"address" binding:"required,max=255"`
	ZipCode     string  `json:"zip_code" binding:"required,max=20"`
	Email       string  `json:"email" binding:"required,email,max=50"`
}

type ItemRequest struct {
	Name      string           `json:"name" binding:"required,max=50"`
	Price     *decimal.Decimal `json:"price" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,min=1,max=999999"`
	ProductID uint64           `json:"product_id" binding:"required"`
	RowTotal  *decimal.Decimal `json:"row_total" binding:"required"`
}

type PaymentRequest struct {
	Method     string           `json:"method" binding:"required,max=10"`
	Name       string           `json:"name" binding:"required,max=50"`
	Grandtotal *decimal.Decimal `json:"grandtotal" binding:"required"`
	Status     string           `json:"status" binding:"omitempty,oneof=pending paid declined system_error"`
}

type CreateQuoteRequest struct {
	CustomerID uint64 `json:"customer_id" binding:"required"`
	IsActive   *bool  `json:"is_active"`
	ContactRequest
	Subtotal   *decimal.Decimal `json:"subtotal" binding:"required"`
	Grandtotal *decimal.Decimal `json:"grandtotal" binding:"required"`
	Items      []ItemRequest    `json:"items" binding:"omitempty,dive"`
	Payment    *PaymentRequest  `json:"payment"`
}

type CreateOrderRequest struct {
	CustomerID uint64  `json:"customer_id" binding:"required"`
	QuoteID    *uint64 `json:"quote_id" binding:"omitempty,min=1"`
	Status     string  `json:"status" binding:"omitempty,oneof=pending processing complete cancelled"`
	ContactRequest
	Subtotal   *decimal.Decimal `json:"subtotal" binding:"required"`
	Grandtotal *decimal.Decimal `json:"grandtotal" binding:"required"`
	Items      []ItemRequest    `json:"items" binding:"omitempty,dive"`
	Payment    *PaymentRequest  `json:"payment"`
}

type ContactPatchRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,max=50"`
	LastName    *string `json:"last_name" binding:"omitempty,max=50"`
	DateOfBirth *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=male female others"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	ZipCode     *string `json:"zip_code" binding:"omitempty,max=20"`
	Email       *string `json:"email" binding:"omitempty,email,max=50"`
}

type ItemPatchRequest struct {
	ID        uint64           `json:"id" binding:"required"`
	Name      *string          `json:"name" binding:"omitempty,max=50"`
	Price     *decimal.Decimal `json:"price"`
	Quantity  *int             `json:"quantity" binding:"omitempty,min=1,max=999999"`
	ProductID *uint64          `json:"product_id" binding:"omitempty,min=1"`
	RowTotal  *decimal.Decimal `json:"row_total"`
}

type PaymentPatchRequest struct {
	Method     *string          `json:"method" binding:"omitempty,max=10"`
	Name       *string          `json:"name" binding:"omitempty,max=50"`
	Grandtotal *decimal.Decimal `json:"grandtotal"`
	Status     *string          `json:"status" binding:"omitempty,oneof=pending paid declined system_error"`
}

type UpdateQuoteRequest struct {
	CustomerID *uint64 `json:"customer_id" binding:"omitempty,min=1"`
	IsActive   *bool   `json:"is_active"`
	ContactPatchRequest
	Subtotal   *decimal.Decimal     `json:"subtotal"`
	Grandtotal *decimal.Decimal     `json:"grandtotal"`
	Items      []ItemPatchRequest   `json:"items" binding:"omitempty,dive"`
	Payment    *PaymentPatchRequest `json:"payment"`
}

type UpdateOrderRequest struct {
	CustomerID *uint64 `json:"customer_id" binding:"omitempty,min=1"`
	QuoteID    *uint64 `json:"quote_id" binding:"omitempty,min=1"`
	Status     *string `json:"status" binding:"omitempty,oneof=pending processing complete cancelled"`
	ContactPatchRequest
	Subtotal   *decimal.Decimal     `json:"subtotal"`
	Grandtotal *decimal.Decimal     `json:"grandtotal"`
	Items      []ItemPatchRequest   `json:"items" binding:"omitempty,dive"`
	Payment    *PaymentPatchRequest `json:"payment"`
}

// amount names a money field by its JSON path.
type amount struct {
	field string
	value *decimal.Decimal
}

const msgNegativeAmount = "must not be negative"

func negativeAmounts(amounts []amount) []FieldError {
	var out []FieldError
	for _, a := range amounts {
		if a.value != nil && a.value.IsNegative() {
			out = append(out, FieldError{Field: a.field, Message: msgNegativeAmount})
		}
	}
	return out
}

func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

func (r ContactRequest) toDomain() domain.Contact {
	c := domain.Contact{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		DateOfBirth: parseDate(r.DateOfBirth),
		Address:     r.Address,
		ZipCode:     r.ZipCode,
		Email:       r.Email,
	}
	if r.Gender != nil {
		g := domain.Gender(*r.Gender)
		c.Gender = &g
	}
	return c
}

func (r ItemRequest) toLine() domain.Line {
	return domain.Line{
		Name:      r.Name,
		Price:     *r.Price,
		Quantity:  r.Quantity,
		ProductID: r.ProductID,
		RowTotal:  *r.RowTotal,
	}
}

func (r *PaymentRequest) toPayment() domain.Payment {
	status := domain.PaymentPending
	if r.Status != "" {
		status = domain.PaymentStatus(r.Status)
	}
	return domain.Payment{
		Method:     r.Method,
		Name:       r.Name,
		Grandtotal: *r.Grandtotal,
		Status:     status,
	}
}

func itemAmounts(items []ItemRequest) []amount {
	out := make([]amount, 0, 2*len(items))
	for i, it := range items {
		out = append(out,
			amount{fmt.Sprintf("items[%d].price", i), it.Price},
			amount{fmt.Sprintf("items[%d].row_total", i), it.RowTotal},
		)
	}
	return out
}

func createAmounts(subtotal, grandtotal *decimal.Decimal, items []ItemRequest, pay *PaymentRequest) []amount {
	out := append([]amount{{"subtotal", subtotal}, {"grandtotal", grandtotal}}, itemAmounts(items)...)
	if pay != nil {
		out = append(out, amount{"payment.grandtotal", pay.Grandtotal})
	}
	return out
}

// Validate reports the money fields holding negative values.
func (r *CreateQuoteRequest) Validate() []FieldError {
	return negativeAmounts(createAmounts(r.Subtotal, r.Grandtotal, r.Items, r.Payment))
}

func (r *CreateQuoteRequest) ToDraft() *domain.QuoteDraft {
	draft := &domain.QuoteDraft{
		Quote: domain.Quote{
			CustomerID: r.CustomerID,
			IsActive:   r.IsActive == nil || *r.IsActive,
			Contact:    r.ContactRequest.toDomain(),
			Subtotal:   *r.Subtotal,
			Grandtotal: *r.Grandtotal,
		},
	}
	for _, it := range r.Items {
		draft.Items = append(draft.Items, domain.QuoteItem{Line: it.toLine()})
	}
	if r.Payment != nil {
		draft.Payment = &domain.QuotePayment{Payment: r.Payment.toPayment()}
	}
	return draft
}

func (r *CreateOrderRequest) Validate() []FieldError {
	return negativeAmounts(createAmounts(r.Subtotal, r.Grandtotal, r.Items, r.Payment))
}

func (r *CreateOrderRequest) ToDraft() *domain.OrderDraft {
	status := domain.StatusPending
	if r.Status != "" {
		status = domain.OrderStatus(r.Status)
	}
	draft := &domain.OrderDraft{
		Order: domain.Order{
			CustomerID: r.CustomerID,
			QuoteID:    r.QuoteID,
			Status:     status,
			Contact:    r.ContactRequest.toDomain(),
			Subtotal:   *r.Subtotal,
			Grandtotal: *r.Grandtotal,
		},
	}
	for _, it := range r.Items {
		draft.Items = append(draft.Items, domain.OrderItem{Line: it.toLine()})
	}
	if r.Payment != nil {
		draft.Payment = &domain.OrderPayment{Payment: r.Payment.toPayment()}
	}
	return draft
}

func (r ContactPatchRequest) toDomain() domain.ContactPatch {
	p := domain.ContactPatch{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		DateOfBirth: parseDate(r.DateOfBirth),
		Address:     r.Address,
		ZipCode:     r.ZipCode,
		Email:       r.Email,
	}
	if r.Gender != nil {
		g := domain.Gender(*r.Gender)
		p.Gender = &g
	}
	return p
}

func linePatches(items []ItemPatchRequest) []domain.LinePatch {
	if len(items) == 0 {
		return nil
	}
	out := make([]domain.LinePatch, len(items))
	for i, it := range items {
		out[i] = domain.LinePatch{
			ID:        it.ID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			ProductID: it.ProductID,
			RowTotal:  it.RowTotal,
		}
	}
	return out
}

func (r *PaymentPatchRequest) toDomain() *domain.PaymentPatch {
	if r == nil {
		return nil
	}
	p := &domain.PaymentPatch{Method: r.Method, Name: r.Name, Grandtotal: r.Grandtotal}
	if r.Status != nil {
		s := domain.PaymentStatus(*r.Status)
		p.Status = &s
	}
	return p
}

func patchAmounts(subtotal, grandtotal *decimal.Decimal, items []ItemPatchRequest, pay *PaymentPatchRequest) []amount {
	out := []amount{{"subtotal", subtotal}, {"grandtotal", grandtotal}}
	for i, it := range items {
		out = append(out,
			amount{fmt.Sprintf("items[%d].price", i), it.Price},
			amount{fmt.Sprintf("items[%d].row_total", i), it.RowTotal},
		)
	}
	if pay != nil {
		out = append(out, amount{"payment.grandtotal", pay.Grandtotal})
	}
	return out
}

func (r *UpdateQuoteRequest) Validate() []FieldError {
	return negativeAmounts(patchAmounts(r.Subtotal, r.Grandtotal, r.Items, r.Payment))
}

func (r *UpdateQuoteRequest) ToPatch() domain.QuotePatch {
	return domain.QuotePatch{
		CustomerID: r.CustomerID,
		IsActive:   r.IsActive,
		Contact:    r.ContactPatchRequest.toDomain(),
		Subtotal:   r.Subtotal,
		Grandtotal: r.Grandtotal,
		Items:      linePatches(r.Items),
		Payment:    r.Payment.toDomain(),
	}
}

func (r *UpdateOrderRequest) Validate() []FieldError {
	return negativeAmounts(patchAmounts(r.Subtotal, r.Grandtotal, r.Items, r.Payment))
}

func (r *UpdateOrderRequest) ToPatch() domain.OrderPatch {
	p := domain.OrderPatch{
		CustomerID: r.CustomerID,
		QuoteID:    r.QuoteID,
		Contact:    r.ContactPatchRequest.toDomain(),
		Subtotal:   r.Subtotal,
		Grandtotal: r.Grandtotal,
		Items:      linePatches(r.Items),
		Payment:    r.Payment.toDomain(),
	}
	if r.Status != nil {
		s := domain.OrderStatus(*r.Status)
		p.Status = &s
	}
	return p
}

type CreateCustomerRequest struct {
	FirstName   string  `json:"first_name" binding:"required,max=50"`
	LastName    string  `json:"last_name" binding:"required,max=50"`
	DateOfBirth *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=male female others"`
	Address     string  `json:"address" binding:"omitempty,max=255"`
	ZipCode     string  `json:"zip_code" binding:"omitempty,max=20"`
	Email       string  `json:"email" binding:"required,email,max=50"`
}

type UpdateCustomerRequest struct {
	ContactPatchRequest
}

func (r *CreateCustomerRequest) ToCustomer() *domain.Customer {
	contact := ContactRequest{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		DateOfBirth: r.DateOfBirth,
		Gender:      r.Gender,
		Address:     r.Address,
		ZipCode:     r.ZipCode,
		Email:       r.Email,
	}
	return &domain.Customer{Contact: contact.toDomain()}
}

func (r *UpdateCustomerRequest) ToPatch() domain.CustomerPatch {
	return domain.CustomerPatch{Contact: r.ContactPatchRequest.toDomain()}
}
