package activity

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"
)

// CacheCap is the maximum number of activities kept in the local cache.
const CacheCap = 10

// Common activity types
const (
	TypeOrder    = "order"
	TypeRequest  = "request"
	TypeTutoring = "tutoring"
	TypeReminder = "reminder"
)

// Common statuses; Status remains free-form.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

type Activity struct {
	ID          string                 `json:"id"`
	UserID      string                 `json:"user_id"`
	Type        string                 `json:"type"`
	Title       string                 `json:"title"`
	Description null.String            `json:"description,omitempty"`
	Status      string                 `json:"status"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at"` // UTC
	UpdatedAt   time.Time              `json:"updated_at"` // UTC
}

// NewActivity contains information needed to record a new Activity.
// Identifier, owner and timestamps are assigned by the storage backend.
type NewActivity struct {
	Type        string                 `json:"type" validate:"required"`
	Title       string                 `json:"title" validate:"required"`
	Description null.String            `json:"description"`
	Status      string                 `json:"status"`
	Metadata    map[string]interface{} `json:"metadata"`
}

func (na *NewActivity) Validate() error {
	na.Type = core.CleanString(na.Type, true /* lower */)
	na.Title = core.CleanString(na.Title)
	return core.Validate.Struct(na)
}

// UpdateActivity defines what information may be provided to modify an existing Activity.
// Unset fields are left untouched.
type UpdateActivity struct {
	Title       null.String            `json:"title"`
	Description null.String            `json:"description"`
	Status      null.String            `json:"status"`
	Metadata    map[string]interface{} `json:"metadata"`
}
