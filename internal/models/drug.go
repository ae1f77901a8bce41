package models

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
)

// Drug is an inventory line. Stock is a plain counter with no movement history.
type Drug struct {
	Base
	TenantID string `gorm:"type:varchar(36);not null;index" json:"tenantId"`
	Name     string `gorm:"size:200;not null;index" json:"name"`
	Stock    int    `gorm:"not null;default:0;check:chk_drugs_stock,stock >= 0" json:"stock"`
	Unit     string `gorm:"size:50;not null" json:"unit"`

	Tenant *Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
}

// Quantity is a whole-number count in a request body. Numbers without a
// fractional part are accepted in either form: 10 and 10.0.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var f float64
	if err := json.Unmarshal(data, &f); err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return &json.UnmarshalTypeError{Value: jsonKind(data), Type: reflect.TypeOf(0)}
	}
	*q = Quantity(f)
	return nil
}

func jsonKind(data []byte) string {
	if len(data) == 0 {
		return "value"
	}
	switch data[0] {
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case '[':
		return "array"
	case '{':
		return "object"
	}
	return "number " + string(data)
}

// Stock is a pointer so that an explicit 0 passes "required".
type CreateDrugInput struct {
	Name  string    `json:"name" binding:"required,max=200"`
	Stock *Quantity `json:"stock" binding:"required,min=0"`
	Unit  string    `json:"unit" binding:"required,max=50"`
}

type UpdateDrugStockInput struct {
	Stock *Quantity `json:"stock" binding:"required,min=0"`
}
