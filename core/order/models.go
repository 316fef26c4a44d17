package order

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"
)

// Common statuses; Status remains free-form.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

type Order struct {
	ID                 string      `json:"id"`
	UserID             string      `json:"user_id"`
	TotalAmount        float64     `json:"total_amount"`
	Status             string      `json:"status"`
	DeliveryAddress    null.String `json:"delivery_address,omitempty"`
	TrackingNumber     null.String `json:"tracking_number,omitempty"`
	EstimatedDelivery  null.Time   `json:"estimated_delivery,omitempty"`
	ActualDeliveryDate null.Time   `json:"actual_delivery_date,omitempty"`
	Notes              null.String `json:"notes,omitempty"`
	CreatedAt          time.Time   `json:"created_at"` // UTC
	UpdatedAt          time.Time   `json:"updated_at"` // UTC
}

// NewOrder contains information needed to place a new Order.
// Identifier, owner and timestamps are assigned by the storage backend.
type NewOrder struct {
	TotalAmount       float64     `json:"total_amount" validate:"gte=0"`
	Status            string      `json:"status"`
	DeliveryAddress   null.String `json:"delivery_address"`
	EstimatedDelivery null.Time   `json:"estimated_delivery"`
	Notes             null.String `json:"notes"`
}

func (no *NewOrder) Validate() error {
	no.Status = core.CleanString(no.Status, true /* lower */)
	if no.EstimatedDelivery.Valid && no.EstimatedDelivery.Time.Before(time.Now().UTC()) {
		return core.NewValidationError(nil, core.FieldError{Field: "estimated_delivery", Error: "cannot be in the past"})
	}
	return core.Validate.Struct(no)
}

// UpdateOrder defines what information may be provided to modify an existing Order.
// Unset fields are left untouched.
type UpdateOrder struct {
	TotalAmount        null.Float64 `json:"total_amount"`
	Status             null.String  `json:"status"`
	DeliveryAddress    null.String  `json:"delivery_address"`
	TrackingNumber     null.String  `json:"tracking_number"`
	EstimatedDelivery  null.Time    `json:"estimated_delivery"`
	ActualDeliveryDate null.Time    `json:"actual_delivery_date"`
	Notes              null.String  `json:"notes"`
}
