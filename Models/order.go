package Models

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses.
const (
	OrderStatusPlanned    = "planned"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order is the work commitment created when a quote is accepted. Customer and
// total amount are read through the linked quote, never stored twice.
type Order struct {
	gorm.Model
	Number         string     `json:"number" gorm:"size:50;uniqueIndex;not null"`
	QuoteID        uint       `json:"quote_id" gorm:"not null;index"`
	Status         string     `json:"status" gorm:"size:30;not null;default:'planned'"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	ProjectManager string     `json:"project_manager" gorm:"size:255"`
	Notes          string     `json:"notes" gorm:"type:text"`

	Quote Quote `json:"quote,omitempty" gorm:"foreignKey:QuoteID"`
}

var orderTransitions = map[string][]string{
	OrderStatusPlanned:    {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// CanTransition reports whether an order may move to the given status.
func (o *Order) CanTransition(to string) bool {
	for _, allowed := range orderTransitions[o.Status] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ActiveOrderForQuote returns the non-cancelled order linked to a quote, or
// nil when there is none. At most one active order may exist per quote; a
// cancelled one stays on file, so this is a business rule rather than a
// database constraint.
func ActiveOrderForQuote(tx *gorm.DB, quoteID uint) (*Order, error) {
	var order Order
	err := tx.Where("quote_id = ? AND status <> ?", quoteID, OrderStatusCancelled).
		Order("id DESC").First(&order).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
