package domain

import (
	"errors"
	"time"
)

// ErrAggregateNotLoaded is returned by child reads called without a persisted parent.
var ErrAggregateNotLoaded = errors.New("aggregate not loaded or does not exist")

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOthers Gender = "others"
)

// Contact holds the personal details of a customer. Quotes and orders keep
// their own snapshot of it.
type Contact struct {
	FirstName   string     `json:"first_name" gorm:"size:50;not null"`
	LastName    string     `json:"last_name" gorm:"size:50;not null"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty" gorm:"type:date"`
	Gender      *Gender    `json:"gender,omitempty" gorm:"type:enum('male','female','others')"`
	Address     string     `json:"address" gorm:"size:255;not null"`
	ZipCode     string     `json:"zip_code" gorm:"size:20;not null"`
	Email       string     `json:"email" gorm:"size:50;not null"`
}

// ContactPatch carries the optional contact columns of a partial update.
type ContactPatch struct {
	FirstName   *string
	LastName    *string
	DateOfBirth *time.Time
	Gender      *Gender
	Address     *string
	ZipCode     *string
	Email       *string
}

func (p ContactPatch) apply(cols map[string]any) {
	if p.FirstName != nil {
		cols["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		cols["last_name"] = *p.LastName
	}
	if p.DateOfBirth != nil {
		cols["date_of_birth"] = *p.DateOfBirth
	}
	if p.Gender != nil {
		cols["gender"] = string(*p.Gender)
	}
	if p.Address != nil {
		cols["address"] = *p.Address
	}
	if p.ZipCode != nil {
		cols["zip_code"] = *p.ZipCode
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
}
