package Models

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"Handwerk/Format"
)

// Quote lifecycle statuses.
const (
	QuoteStatusDraft             = "draft"
	QuoteStatusSent              = "sent"
	QuoteStatusAccepted          = "accepted"
	QuoteStatusRejected          = "rejected"
	QuoteStatusAcceptedCancelled = "accepted_cancelled"
)

// LineItem types.
const (
	ItemTypeStandard = "standard"
	ItemTypeLabor    = "labor"
)

// SubItem kinds.
const (
	KindOrderedPart = "ordered_part"
	KindLabor       = "labor_operation"
	KindOther       = "other"
)

type Quote struct {
	gorm.Model
	Number             string     `json:"number" gorm:"size:50;uniqueIndex;not null"`
	CustomerID         uint       `json:"customer_id" gorm:"not null;index"`
	ProjectDescription string     `json:"project_description" gorm:"type:text"`
	Status             string     `json:"status" gorm:"size:30;not null;default:'draft'"`
	MarkupPercent      float64    `json:"markup_percent" gorm:"not null;default:15"`
	ValidUntil         *time.Time `json:"valid_until"`
	TotalAmount        float64    `json:"total_amount" gorm:"not null;default:0"`

	Customer    Customer     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	LineItems   []LineItem   `json:"line_items,omitempty" gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	Attachments []Attachment `json:"attachments,omitempty" gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
}

type LineItem struct {
	gorm.Model
	QuoteID     uint    `json:"quote_id" gorm:"not null;index"`
	Position    int     `json:"position" gorm:"not null;default:0"`
	Description string  `json:"description" gorm:"type:text"`
	Quantity    float64 `json:"quantity" gorm:"not null;default:0"`
	UnitPrice   float64 `json:"unit_price" gorm:"not null;default:0"`
	TotalPrice  float64 `json:"total_price" gorm:"not null;default:0"`
	ItemType    string  `json:"item_type" gorm:"size:20;not null;default:'standard'"`

	SubItems []SubItem `json:"sub_items,omitempty" gorm:"foreignKey:LineItemID;constraint:OnDelete:CASCADE"`
}

// SubItem is the finest-grained priced unit. One record shape covers all
// three kinds; the fields a kind does not use stay zeroed.
type SubItem struct {
	gorm.Model
	LineItemID uint   `json:"line_item_id" gorm:"not null;index"`
	SubNumber  string `json:"sub_number" gorm:"size:20"`
	Kind       string `json:"kind" gorm:"size:30;not null"`

	// ordered_part
	RequiresOrder bool    `json:"requires_order"`
	SupplierName  string  `json:"supplier_name" gorm:"size:255"`
	PartNumber    string  `json:"part_number" gorm:"size:100"`
	PartQuantity  string  `json:"part_quantity" gorm:"size:100"`
	PartPrice     float64 `json:"part_price"`

	// labor_operation
	Hours      float64 `json:"hours"`
	HourlyRate float64 `json:"hourly_rate"`

	// other
	Quantity  string  `json:"quantity" gorm:"size:100"`
	UnitPrice float64 `json:"unit_price"`

	Price float64 `json:"price" gorm:"not null;default:0"`
}

// quoteTransitions is the single place quote status changes are allowed from.
// An accepted quote has no outgoing transitions here: it only becomes
// accepted_cancelled when its order is cancelled, which writes the status
// directly in the same transaction.
var quoteTransitions = map[string][]string{
	QuoteStatusDraft:             {QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected},
	QuoteStatusSent:              {QuoteStatusDraft, QuoteStatusAccepted, QuoteStatusRejected},
	QuoteStatusAccepted:          {},
	QuoteStatusRejected:          {QuoteStatusDraft, QuoteStatusSent},
	QuoteStatusAcceptedCancelled: {QuoteStatusAccepted, QuoteStatusRejected},
}

// CanTransition reports whether a quote may move from one status to another.
func (q *Quote) CanTransition(to string) bool {
	for _, allowed := range quoteTransitions[q.Status] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Editable reports whether line items may still be changed. Acceptance is a
// freeze barrier until the linked order is cancelled.
func (q *Quote) Editable() bool {
	return q.Status != QuoteStatusAccepted
}

// CalculatePrice computes a sub-item's price from its kind and fields.
// Labor operations with no rate of their own fall back to the given standard
// rate. "Other" items whose quantity text carries no leading number use the
// unit price alone, not zero. Negative inputs pass through unvalidated.
func (s *SubItem) CalculatePrice(defaultHourlyRate float64) float64 {
	switch s.Kind {
	case KindLabor:
		rate := s.HourlyRate
		if rate == 0 {
			rate = defaultHourlyRate
		}
		return s.Hours * rate
	case KindOther:
		qty, ok := Format.ParseQuantity(s.Quantity)
		if !ok {
			return s.UnitPrice
		}
		return qty * s.UnitPrice
	case KindOrderedPart:
		return s.PartPrice
	}
	return 0
}

// CalculatePrice computes a line item's price. Sub-items win over the item's
// own quantity and unit price, and are always recomputed rather than read
// from their cached Price column.
func (li *LineItem) CalculatePrice(defaultHourlyRate float64) float64 {
	if len(li.SubItems) > 0 {
		var sum float64
		for i := range li.SubItems {
			sum += li.SubItems[i].CalculatePrice(defaultHourlyRate)
		}
		return sum
	}
	return li.Quantity * li.UnitPrice
}

// CalculatePriceWithMarkup is a display-only view used on rendered documents.
// Markup is persisted once at the quote level, never onto the line item.
func (li *LineItem) CalculatePriceWithMarkup(defaultHourlyRate, markupPercent float64) float64 {
	price := li.CalculatePrice(defaultHourlyRate)
	if markupPercent > 0 {
		price *= 1 + markupPercent/100
	}
	return price
}

// NetTotal is the pre-markup base, recomputed from sub-items directly so a
// stale line item cache can never leak into the quote total.
func (q *Quote) NetTotal(defaultHourlyRate float64) float64 {
	var sum float64
	for i := range q.LineItems {
		sum += q.LineItems[i].CalculatePrice(defaultHourlyRate)
	}
	return sum
}

// MarkupAmount is zero when the markup percentage is zero or negative.
func (q *Quote) MarkupAmount(defaultHourlyRate float64) float64 {
	if q.MarkupPercent <= 0 {
		return 0
	}
	return q.NetTotal(defaultHourlyRate) * q.MarkupPercent / 100
}

// CalculatedTotal is the billed amount: net total plus markup.
func (q *Quote) CalculatedTotal(defaultHourlyRate float64) float64 {
	return q.NetTotal(defaultHourlyRate) + q.MarkupAmount(defaultHourlyRate)
}

// RecalculateQuote is the only code path that writes the cached Price,
// TotalPrice and TotalAmount columns. It reloads the full aggregate, refreshes
// every cache and the dotted sub-numbers in one pass, and persists the result
// on the given transaction. Every handler that touches pricing-relevant data
// runs it before committing.
func RecalculateQuote(tx *gorm.DB, quoteID uint) (*Quote, error) {
	var quote Quote
	err := tx.Preload("LineItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}).Preload("LineItems.SubItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&quote, quoteID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: quote %d", ErrNotFound, quoteID)
		}
		return nil, err
	}

	rate := DefaultHourlyRate(tx)

	for i := range quote.LineItems {
		li := &quote.LineItems[i]
		for j := range li.SubItems {
			sub := &li.SubItems[j]
			sub.SubNumber = fmt.Sprintf("%d.%d", li.Position, j+1)
			sub.Price = sub.CalculatePrice(rate)
			if err := tx.Model(&SubItem{}).Where("id = ?", sub.ID).
				Updates(map[string]interface{}{"sub_number": sub.SubNumber, "price": sub.Price}).Error; err != nil {
				return nil, err
			}
		}
		li.TotalPrice = li.CalculatePrice(rate)
		if err := tx.Model(&LineItem{}).Where("id = ?", li.ID).
			Update("total_price", li.TotalPrice).Error; err != nil {
			return nil, err
		}
	}

	quote.TotalAmount = quote.CalculatedTotal(rate)
	if err := tx.Model(&Quote{}).Where("id = ?", quote.ID).
		Update("total_amount", quote.TotalAmount).Error; err != nil {
		return nil, err
	}

	return &quote, nil
}
