package domain

import "github.com/shopspring/decimal"

// LinePatch carries the optional columns of an item update. ID selects the row.
type LinePatch struct {
	ID        uint64
	Name      *string
	Price     *decimal.Decimal
	Quantity  *int
	ProductID *uint64
	RowTotal  *decimal.Decimal
}

func (p LinePatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Price != nil {
		cols["price"] = *p.Price
	}
	if p.Quantity != nil {
		cols["quantity"] = *p.Quantity
	}
	if p.ProductID != nil {
		cols["product_id"] = *p.ProductID
	}
	if p.RowTotal != nil {
		cols["row_total"] = *p.RowTotal
	}
	return cols
}

func (p LinePatch) ItemID() uint64 { return p.ID }

// PaymentPatch carries the optional payment columns. The payment row is
// resolved from the parent, so no id is supplied by callers.
type PaymentPatch struct {
	Method     *string
	Name       *string
	Grandtotal *decimal.Decimal
	Status     *PaymentStatus
}

func (p PaymentPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Method != nil {
		cols["method"] = *p.Method
	}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Grandtotal != nil {
		cols["grandtotal"] = *p.Grandtotal
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	return cols
}
