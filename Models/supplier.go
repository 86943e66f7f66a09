package Models

import "gorm.io/gorm"

type Supplier struct {
	gorm.Model
	Name          string `json:"name" gorm:"size:255;not null;uniqueIndex"`
	ContactPerson string `json:"contact_person" gorm:"size:255"`
	Email         string `json:"email" gorm:"size:255"`
	Phone         string `json:"phone" gorm:"size:50"`
	Notes         string `json:"notes" gorm:"type:text"`
}

// SupplierOrder buckets the requires-order part sub-items of one quote by
// supplier name, built at acceptance time. One row per (quote, supplier).
type SupplierOrder struct {
	gorm.Model
	QuoteID      uint   `json:"quote_id" gorm:"not null;index:idx_supplier_order_quote_supplier,unique"`
	SupplierName string `json:"supplier_name" gorm:"size:255;not null;index:idx_supplier_order_quote_supplier,unique"`
	Status       string `json:"status" gorm:"size:30;not null;default:'open'"`

	Quote Quote               `json:"quote,omitempty" gorm:"foreignKey:QuoteID"`
	Items []SupplierOrderItem `json:"items,omitempty" gorm:"foreignKey:SupplierOrderID;constraint:OnDelete:CASCADE"`
}

type SupplierOrderItem struct {
	gorm.Model
	SupplierOrderID uint    `json:"supplier_order_id" gorm:"not null;index"`
	SubItemID       uint    `json:"sub_item_id" gorm:"not null;index"`
	PartNumber      string  `json:"part_number" gorm:"size:100"`
	PartQuantity    string  `json:"part_quantity" gorm:"size:100"`
	PartPrice       float64 `json:"part_price"`

	SubItem SubItem `json:"sub_item,omitempty" gorm:"foreignKey:SubItemID"`
}

// BuildSupplierOrders groups a quote's ordered-part sub-items with the
// requires-order flag by supplier name and persists one SupplierOrder per
// supplier. Running it again after re-acceptance only adds sub-items that are
// not referenced yet.
func BuildSupplierOrders(tx *gorm.DB, quoteID uint) ([]SupplierOrder, error) {
	var subItems []SubItem
	err := tx.Joins("JOIN line_items ON line_items.id = sub_items.line_item_id").
		Where("line_items.quote_id = ? AND sub_items.kind = ? AND sub_items.requires_order = ? AND sub_items.supplier_name <> ''",
			quoteID, KindOrderedPart, true).
		Order("sub_items.id ASC").
		Find(&subItems).Error
	if err != nil {
		return nil, err
	}

	bySupplier := make(map[string][]SubItem)
	var supplierNames []string
	for _, sub := range subItems {
		if _, seen := bySupplier[sub.SupplierName]; !seen {
			supplierNames = append(supplierNames, sub.SupplierName)
		}
		bySupplier[sub.SupplierName] = append(bySupplier[sub.SupplierName], sub)
	}

	var orders []SupplierOrder
	for _, name := range supplierNames {
		var order SupplierOrder
		err := tx.Where(SupplierOrder{QuoteID: quoteID, SupplierName: name}).
			FirstOrCreate(&order).Error
		if err != nil {
			return nil, err
		}

		for _, sub := range bySupplier[name] {
			var existing int64
			if err := tx.Model(&SupplierOrderItem{}).
				Where("supplier_order_id = ? AND sub_item_id = ?", order.ID, sub.ID).
				Count(&existing).Error; err != nil {
				return nil, err
			}
			if existing > 0 {
				continue
			}
			item := SupplierOrderItem{
				SupplierOrderID: order.ID,
				SubItemID:       sub.ID,
				PartNumber:      sub.PartNumber,
				PartQuantity:    sub.PartQuantity,
				PartPrice:       sub.PartPrice,
			}
			if err := tx.Create(&item).Error; err != nil {
				return nil, err
			}
		}

		if err := tx.Preload("Items").First(&order, order.ID).Error; err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}
