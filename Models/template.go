package Models

import "gorm.io/gorm"

// PositionTemplate is a reusable line item preset. Applying one to a quote
// copies it into a fresh LineItem with its sub-items.
type PositionTemplate struct {
	gorm.Model
	Name        string  `json:"name" gorm:"size:255;not null"`
	Description string  `json:"description" gorm:"type:text"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	ItemType    string  `json:"item_type" gorm:"size:20;not null;default:'standard'"`

	SubItems []PositionTemplateSubItem `json:"sub_items,omitempty" gorm:"foreignKey:PositionTemplateID;constraint:OnDelete:CASCADE"`
}

type PositionTemplateSubItem struct {
	gorm.Model
	PositionTemplateID uint   `json:"position_template_id" gorm:"not null;index"`
	Kind               string `json:"kind" gorm:"size:30;not null"`

	RequiresOrder bool    `json:"requires_order"`
	SupplierName  string  `json:"supplier_name" gorm:"size:255"`
	PartNumber    string  `json:"part_number" gorm:"size:100"`
	PartQuantity  string  `json:"part_quantity" gorm:"size:100"`
	PartPrice     float64 `json:"part_price"`
	Hours         float64 `json:"hours"`
	HourlyRate    float64 `json:"hourly_rate"`
	Quantity      string  `json:"quantity" gorm:"size:100"`
	UnitPrice     float64 `json:"unit_price"`
}

// ToLineItem materializes the template as a line item for the given quote at
// the given position. Prices are left to the recalculation pipeline.
func (t *PositionTemplate) ToLineItem(quoteID uint, position int) LineItem {
	li := LineItem{
		QuoteID:     quoteID,
		Position:    position,
		Description: t.Description,
		Quantity:    t.Quantity,
		UnitPrice:   t.UnitPrice,
		ItemType:    t.ItemType,
	}
	if li.Description == "" {
		li.Description = t.Name
	}
	for _, ts := range t.SubItems {
		li.SubItems = append(li.SubItems, SubItem{
			Kind:          ts.Kind,
			RequiresOrder: ts.RequiresOrder,
			SupplierName:  ts.SupplierName,
			PartNumber:    ts.PartNumber,
			PartQuantity:  ts.PartQuantity,
			PartPrice:     ts.PartPrice,
			Hours:         ts.Hours,
			HourlyRate:    ts.HourlyRate,
			Quantity:      ts.Quantity,
			UnitPrice:     ts.UnitPrice,
		})
	}
	return li
}
