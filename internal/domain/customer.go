package domain

import "time"

// Customer is the account a quote or order belongs to.
type Customer struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Contact             `gorm:"embedded"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Customer) TableName() string { return "customer" }

type CustomerPatch struct {
	Contact ContactPatch
}

func (p CustomerPatch) Columns() map[string]any {
	cols := map[string]any{}
	p.Contact.apply(cols)
	return cols
}

func (p CustomerPatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}
