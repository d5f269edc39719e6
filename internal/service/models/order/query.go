package order

import (
	"time"

	"github.com/google/uuid"
)

// QueryOrdersModel represents filter parameters for querying orders.
// StartDate and EndDate bound the DATE component of the order date,
// inclusive on both ends; time-of-day is ignored.
type QueryOrdersModel struct {
	OrderIDs  []uuid.UUID `json:"orderIds,omitempty"`
	UserIDs   []uuid.UUID `json:"userIds,omitempty"`
	StartDate *time.Time  `json:"startDate,omitempty"`
	EndDate   *time.Time  `json:"endDate,omitempty"`
}
